package harness

import (
	"testing"

	"github.com/splatforge/depthsort/depthsort"
	"github.com/stretchr/testify/require"
)

func TestNewRendererRejectsZeroSplatCount(t *testing.T) {
	_, err := NewRenderer(0)
	require.Error(t, err, "NewRenderer(0) should reject an empty scene")
}

func TestNewRendererRejectsZeroDistanceMapRange(t *testing.T) {
	_, err := NewRenderer(10, WithDistanceMapRange(0))
	require.Error(t, err, "a zero histogram width should be rejected at setup, not at Sort time")
}

func TestRendererSortStaticFloat(t *testing.T) {
	r, err := NewRenderer(3, WithDistanceMapRange(4))
	require.NoError(t, err)

	indexes := []uint32{0, 1, 2}
	centers := []float32{
		0, 0, 1, 0,
		0, 0, 2, 0,
		0, 0, 3, 0,
	}
	mvp := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

	out, err := r.Sort(indexes, 3, 3, mvp, centers, nil, depthsort.TransformTable{}, false, false, false)
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.ElementsMatch(t, []uint32{0, 1, 2}, out, "Sort must return a permutation of the input indexes")
	require.Equal(t, uint32(2), out[2], "deepest splat should land at the trailing position")
}

func TestRendererSortRejectsOversizedRenderCount(t *testing.T) {
	r, err := NewRenderer(3)
	require.NoError(t, err)

	_, err = r.Sort(make([]uint32, 3), 10, 3, [16]float32{}, nil, nil, depthsort.TransformTable{}, false, false, false)
	require.Error(t, err, "renderCount beyond the allocated splatCount must be rejected before touching the kernel")
}

func TestRendererSortRejectsSortCountAboveRenderCount(t *testing.T) {
	r, err := NewRenderer(3)
	require.NoError(t, err)

	_, err = r.Sort(make([]uint32, 3), 2, 3, [16]float32{}, nil, nil, depthsort.TransformTable{}, false, false, false)
	require.Error(t, err)
}

func TestRendererReusesFrequenciesAcrossCalls(t *testing.T) {
	r, err := NewRenderer(2, WithDistanceMapRange(4))
	require.NoError(t, err)

	indexes := []uint32{0, 1}
	centers := []float32{0, 0, 1, 0, 0, 0, 2, 0}
	mvp := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

	_, err = r.Sort(indexes, 2, 2, mvp, centers, nil, depthsort.TransformTable{}, false, false, false)
	require.NoError(t, err)

	var sum uint32
	for _, f := range r.buffers.Frequencies {
		sum += f
	}
	// Buckets 0 and 3: the scatter leaves each entry holding the number of
	// splats in lower buckets, [0 1 1 1], which sums to 3.
	require.Equal(t, uint32(3), sum, "frequencies after one call should hold the post-scatter offsets")

	// A second call must re-zero the histogram rather than accumulate.
	_, err = r.Sort(indexes, 2, 2, mvp, centers, nil, depthsort.TransformTable{}, false, false, false)
	require.NoError(t, err)

	sum = 0
	for _, f := range r.buffers.Frequencies {
		sum += f
	}
	require.Equal(t, uint32(3), sum, "frequencies must not accumulate across calls")
}
