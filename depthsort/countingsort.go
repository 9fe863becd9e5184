package depthsort

// countingSort implements spec.md §4.3: turn the per-bucket counts in
// b.Frequencies into cumulative offsets, copy the passthrough prefix
// verbatim, then scatter the sortable window's indices into b.IndexesOut
// back-to-front (largest bucket id lands at the high end).
func countingSort(p *Params, b *Buffers, sortStart uint32) {
	// Prefix sum: frequencies[k] becomes the count of buckets <= k.
	var cumulative uint32
	for k := range b.Frequencies {
		cumulative += b.Frequencies[k]
		b.Frequencies[k] = cumulative
	}

	// Passthrough prefix: order is irrelevant to correctness.
	for i := uint32(0); i < sortStart; i++ {
		b.IndexesOut[i] = p.Indexes[i]
	}

	// Reverse scatter over the sortable window. b.Frequencies[bucket] is
	// the cumulative count of entries with bucket id <= this one still
	// awaiting placement; converting that to a position within
	// [sortStart, RenderCount) — rather than [0, RenderCount) — keeps the
	// sortable window's own ascending-bucket order independent of how
	// large the passthrough prefix is.
	for i := int64(p.RenderCount) - 1; i >= int64(sortStart); i-- {
		bucket := b.MappedDistances[i]
		pos := sortStart + b.Frequencies[bucket] - 1
		b.IndexesOut[pos] = p.Indexes[i]
		b.Frequencies[bucket]--
	}
}
