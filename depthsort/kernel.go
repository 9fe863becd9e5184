package depthsort

// SortIndices is the kernel's single entry point: a pure, synchronous,
// zero-allocation function that projects, range-maps, and counting-sorts
// the sortable suffix of p.Indexes into b.IndexesOut.
//
// Preconditions (spec.md §6 — assumed, never checked):
//
//   - 0 <= p.SortCount <= p.RenderCount <= p.SplatCount
//   - len(p.Indexes) >= p.RenderCount; every entry in [0, p.SplatCount)
//   - b.MappedDistances and b.IndexesOut have length >= p.RenderCount
//   - b.Frequencies has length >= p.DistanceMapRange and is zeroed by the
//     caller before this call
//   - p.DistanceMapRange >= 1
//   - when p.DynamicMode, p.Dynamic.Transforms and p.Dynamic.SceneIndexes
//     are non-nil and sized per TransformTable's doc comment
//   - when p.UsePrecomputedDistances, the matching precomputed slice
//     (CentersF/CentersI is not read in that case)
//
// A call outside these preconditions is undefined behavior, not a
// reported error (spec.md §7): the kernel has no return code, no
// logging, and no latitude to branch on invariants the caller's own
// validator already enforces at a lower frequency.
//
// On return, b.IndexesOut is a permutation of
// p.Indexes[0:p.RenderCount] whose leading p.RenderCount-p.SortCount
// entries equal p.Indexes verbatim, and whose trailing p.SortCount
// entries are ordered by non-decreasing bucket id with increasing
// position (larger bucket id == greater depth == drawn first in this
// renderer's back-to-front convention).
//
// Three open questions from spec.md §9 are deliberately left open by this
// implementation, exactly as spec.md instructs:
//
//   - (a) depth sign convention: "bucket id increases with depth" is this
//     kernel's contract, but whether that matches front-to-back or
//     back-to-front drawing depends on the handedness of the caller's
//     ModelViewProj — verify it matches your draw order.
//   - (b) the integer-static SIMD path sums only three lanes while the
//     integer-dynamic SIMD path sums four; see project.go.
//   - (c) min/max are seeded with ±2_147_483_640, not the true int32
//     limits; see minDistanceSentinel/maxDistanceSentinel in project.go.
func SortIndices(p *Params, b *Buffers) {
	sortStart := p.RenderCount - p.SortCount

	if p.SortCount == 0 {
		for i := uint32(0); i < p.RenderCount; i++ {
			b.IndexesOut[i] = p.Indexes[i]
		}
		return
	}

	// Note: the original WASM sorter clamps distanceMapRange down to
	// sortCount before using it as the histogram width. spec.md's own
	// worked example (a 3-splat, B=4 case expecting the deepest splat to
	// land in bucket 3) only holds without that clamp, so it is
	// deliberately not carried over here — see DESIGN.md.
	bucketCount := p.DistanceMapRange

	minDistance, maxDistance := project(p, b, sortStart)
	quantize(b, sortStart, p.RenderCount, minDistance, maxDistance, bucketCount)
	countingSort(p, b, sortStart)
}
