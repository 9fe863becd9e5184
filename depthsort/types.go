// Package depthsort implements the view-depth index-sorting kernel for a
// real-time Gaussian-splat renderer: project splat centers to a scalar
// depth, range-map the depths into a fixed-width histogram domain, and
// counting-sort the render window's indices back-to-front.
//
// The kernel is a single pure function, SortIndices, with no retained
// state. It never allocates: every buffer it touches is owned and sized by
// the caller and reused across frames. See SortIndices for the full
// contract.
package depthsort

// Buffers groups the caller-owned scratch and output memory the kernel
// reads and writes. All four are exclusively owned by the kernel for the
// duration of a SortIndices call; the caller must not read them until the
// call returns.
type Buffers struct {
	// MappedDistances holds, on entry, uninitialized scratch of length
	// RenderCount. Project writes raw signed depths into its sortable
	// suffix; Quantize then overwrites that same suffix with bucket ids.
	MappedDistances []int32

	// Frequencies holds, on entry, a caller-zeroed scratch of length
	// DistanceMapRange (or more). Quantize writes per-bucket counts into
	// it; the counting-sort stage overwrites it in place with cumulative
	// offsets. The caller must re-zero it before every call.
	Frequencies []uint32

	// IndexesOut is the output permutation, length RenderCount. Fully
	// written by every call.
	IndexesOut []uint32
}

// TransformTable holds the per-scene 4x4 transforms used in dynamic mode
// (spec.md §4.1 "dynamic"), flattened the same way as Params.ModelViewProj.
// Scene id s occupies the 16 contiguous float32 lanes Transforms[16*s : 16*s+16].
type TransformTable struct {
	Transforms   []float32 // len == 16*SceneCount, flattened per scene (see Params.ModelViewProj)
	SceneIndexes []uint32  // len == splatCount, sceneIndexes[splatIndex] -> scene id
}

// Params bundles the per-call configuration of SortIndices: the render
// window bookkeeping, the mode flags, and the read-only inputs that are not
// scratch buffers.
type Params struct {
	// Indexes is the caller's input index array; only the trailing
	// SortCount entries of the leading RenderCount prefix are re-sorted.
	// Values are splat indices in [0, SplatCount).
	Indexes []uint32

	// Centers holds splat centers in one of two packed layouts, selected
	// by IntegerSort: four float32 lanes (x, y, z, pad) per splat, or four
	// pre-scaled int32 lanes, stride 4. Unused when PrecomputedDistances
	// is set.
	CentersF []float32
	CentersI []int32

	// PrecomputedDistances is an optional parallel-per-splat depth array,
	// indexed by splat index (not by position in Indexes). Exactly one of
	// the two is read, selected by IntegerSort, and only when
	// UsePrecomputedDistances is true.
	PrecomputedDistancesF []float32
	PrecomputedDistancesI []int32

	// ModelViewProj is the 4x4 view-projection matrix, flattened so that
	// M[2], M[6], M[10], M[14] form the third row (the layout a column-major,
	// OpenGL-convention mgl32.Mat4 already has in memory — no transpose
	// needed when building it with mathgl). Only that third row is
	// consulted, in both modes; dynamic mode combines it with all 16
	// entries of the splat's scene transform.
	ModelViewProj [16]float32

	// Dynamic holds the per-scene transform table, same flattening as
	// ModelViewProj. Required when DynamicMode is true, ignored otherwise.
	Dynamic TransformTable

	DistanceMapRange uint32
	SortCount        uint32
	RenderCount      uint32
	SplatCount       uint32

	UsePrecomputedDistances bool
	IntegerSort             bool
	DynamicMode             bool
}
