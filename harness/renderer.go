package harness

import (
	"fmt"

	"github.com/splatforge/depthsort/depthsort"
)

// DefaultDistanceMapRange matches the original WASM sorter's hardcoded
// DEPTH_MAP_RANGE constant (src/worker/SortWorker.js): the histogram width
// used when a caller doesn't override it via WithDistanceMapRange.
const DefaultDistanceMapRange = 65536

// Renderer owns the depthsort scratch buffers and parameters across
// frames, the way SortWorker.js's closure-captured wasmMemory views do:
// allocated once at Init, reused (never reallocated) on every Sort call.
type Renderer struct {
	splatCount       uint32
	distanceMapRange uint32

	params  depthsort.Params
	buffers depthsort.Buffers

	// zeroFrequencies is a reusable zeroed template copied into
	// buffers.Frequencies before every Sort call, mirroring SortWorker.js's
	// countsZero buffer (allocated once, Set() into the live counts arrays
	// rather than looped over element-by-element).
	zeroFrequencies []uint32
}

// Option configures a Renderer at construction.
type Option func(*Renderer)

// WithDistanceMapRange overrides DefaultDistanceMapRange.
func WithDistanceMapRange(n uint32) Option {
	return func(r *Renderer) { r.distanceMapRange = n }
}

// NewRenderer allocates the scratch buffers for a scene of splatCount
// splats. Buffer sizing is the one place this package can fail — the
// kernel itself never validates, so harness validates once here instead
// of on every frame.
func NewRenderer(splatCount uint32, opts ...Option) (*Renderer, error) {
	if splatCount == 0 {
		return nil, fmt.Errorf("harness: NewRenderer: splatCount must be > 0")
	}

	r := &Renderer{
		splatCount:       splatCount,
		distanceMapRange: DefaultDistanceMapRange,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.distanceMapRange == 0 {
		return nil, fmt.Errorf("harness: NewRenderer: distanceMapRange must be > 0")
	}

	r.buffers = depthsort.Buffers{
		MappedDistances: make([]int32, splatCount),
		Frequencies:     make([]uint32, r.distanceMapRange),
		IndexesOut:      make([]uint32, splatCount),
	}
	r.zeroFrequencies = make([]uint32, r.distanceMapRange)

	Logger().Info("harness: renderer initialized",
		"splatCount", splatCount,
		"distanceMapRange", r.distanceMapRange,
	)
	return r, nil
}

// Sort re-zeroes the frequency histogram and runs one depthsort pass over
// indexes, returning the back-to-front permutation. indexes, renderCount
// and sortCount are forwarded to depthsort.Params verbatim; the caller
// retains ownership of indexes and centers/scene data across calls, exactly
// as depthsort.SortIndices requires.
func (r *Renderer) Sort(indexes []uint32, renderCount, sortCount uint32, modelViewProj [16]float32, centersF []float32, centersI []int32, dynamic depthsort.TransformTable, useIntegerSort, usePrecomputed, dynamicMode bool) ([]uint32, error) {
	if renderCount > r.splatCount {
		return nil, fmt.Errorf("harness: Sort: renderCount %d exceeds splatCount %d", renderCount, r.splatCount)
	}
	if sortCount > renderCount {
		return nil, fmt.Errorf("harness: Sort: sortCount %d exceeds renderCount %d", sortCount, renderCount)
	}
	if sortCount == 0 {
		Logger().Warn("harness: Sort called with sortCount == 0, passthrough only")
	}

	copy(r.buffers.Frequencies, r.zeroFrequencies)

	r.params = depthsort.Params{
		Indexes:                 indexes,
		CentersF:                centersF,
		CentersI:                centersI,
		ModelViewProj:           modelViewProj,
		Dynamic:                 dynamic,
		DistanceMapRange:        r.distanceMapRange,
		SortCount:               sortCount,
		RenderCount:             renderCount,
		SplatCount:              r.splatCount,
		UsePrecomputedDistances: usePrecomputed,
		IntegerSort:             useIntegerSort,
		DynamicMode:             dynamicMode,
	}

	depthsort.SortIndices(&r.params, &r.buffers)

	Logger().Debug("harness: sort complete", "renderCount", renderCount, "sortCount", sortCount)
	return r.buffers.IndexesOut[:renderCount], nil
}
