package depthsort

// quantize implements spec.md §4.2: given the (min, max) depth found by
// project, rewrite each mappedDistances[i] in the sortable window to its
// bucket id in [0, bucketCount) and increment frequencies[bucket].
//
// bucketCount is the caller's DistanceMapRange, used exactly as supplied
// (see SPEC_FULL.md section C for why this does not reproduce the original
// sorter's distanceMapRange-vs-sortCount clamp).
func quantize(b *Buffers, sortStart, renderCount uint32, minDistance, maxDistance int32, bucketCount uint32) {
	if bucketCount <= 1 {
		for i := sortStart; i < renderCount; i++ {
			b.MappedDistances[i] = 0
			b.Frequencies[0]++
		}
		return
	}

	// The true difference can exceed int32 range once the min/max
	// sentinels (spec.md §9(c)) are involved, so widen before subtracting
	// (spec.md §7 "Numeric boundary").
	distancesRange := float64(maxDistance) - float64(minDistance)
	if distancesRange == 0 {
		// maxDistance == minDistance: scale is undefined. Documented
		// behavior (spec.md §4.2): every entry maps to bucket 0.
		for i := sortStart; i < renderCount; i++ {
			b.MappedDistances[i] = 0
			b.Frequencies[0]++
		}
		return
	}

	scale := float32(float64(bucketCount-1) / distancesRange)
	for i := sortStart; i < renderCount; i++ {
		diff := float64(b.MappedDistances[i]) - float64(minDistance)
		bucket := int32(float32(diff) * scale)
		b.MappedDistances[i] = bucket
		b.Frequencies[bucket]++
	}
}
