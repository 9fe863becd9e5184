package depthsort

import (
	"github.com/splatforge/depthsort/hwy"
)

// minDistanceSentinel and maxDistanceSentinel seed the running min/max scan.
// The original WASM sorter uses these exact values (not INT32_MIN/MAX) to
// leave headroom around the signed 32-bit range; spec.md §9(c) preserves
// them for reproducibility. A conforming implementation may use the true
// limits instead and still satisfy every test.
const (
	minDistanceSentinel int32 = 2147483640
	maxDistanceSentinel int32 = -2147483640
)

// project runs spec.md §4.1 over the sortable window
// [sortStart, p.RenderCount), writing raw signed depths into
// b.MappedDistances and returning the (min, max) seen.
//
// Exactly one of the eight variants below runs, selected by the
// (UsePrecomputedDistances, IntegerSort, DynamicMode) flag triple. Each
// variant body is compact by design (spec.md §9 "Variant explosion"): the
// dispatch is the one switch here, not a nested conditional inside the
// per-splat loop.
func project(p *Params, b *Buffers, sortStart uint32) (minDistance, maxDistance int32) {
	minDistance, maxDistance = minDistanceSentinel, maxDistanceSentinel

	switch {
	case p.UsePrecomputedDistances && p.IntegerSort:
		minDistance, maxDistance = projectPrecomputedInt(p, b, sortStart)
	case p.UsePrecomputedDistances && !p.IntegerSort:
		minDistance, maxDistance = projectPrecomputedFloat(p, b, sortStart)
	case p.IntegerSort && p.DynamicMode:
		minDistance, maxDistance = projectDynamicIntDispatch(p, b, sortStart)
	case p.IntegerSort && !p.DynamicMode:
		minDistance, maxDistance = projectStaticIntDispatch(p, b, sortStart)
	case !p.IntegerSort && p.DynamicMode:
		minDistance, maxDistance = projectDynamicFloat(p, b, sortStart)
	default:
		minDistance, maxDistance = projectStaticFloat(p, b, sortStart)
	}
	return minDistance, maxDistance
}

// hasHardwareSIMD reports whether hwy detected a real vector unit at
// process start. When false, the portable hwy.Vec[T] path would still be
// correct (ops_base.go's generic implementation is scalar-equivalent by
// construction) but there is no benefit to going through it, so the
// integer projection variants fall back to plain int32 arithmetic instead
// — spec.md §9's required scalar fallback, expressed as a real second code
// path rather than relying on hwy's own scalar degradation.
var hasHardwareSIMD = hwy.CurrentLevel() != hwy.DispatchScalar

func projectStaticIntDispatch(p *Params, b *Buffers, sortStart uint32) (int32, int32) {
	if hasHardwareSIMD {
		return projectStaticInt(p, b, sortStart)
	}
	return projectStaticIntScalar(p, b, sortStart)
}

func projectDynamicIntDispatch(p *Params, b *Buffers, sortStart uint32) (int32, int32) {
	if hasHardwareSIMD {
		return projectDynamicInt(p, b, sortStart)
	}
	return projectDynamicIntScalar(p, b, sortStart)
}

func scanMinMax(distance, minDistance, maxDistance int32) (int32, int32) {
	if distance > maxDistance {
		maxDistance = distance
	}
	if distance < minDistance {
		minDistance = distance
	}
	return minDistance, maxDistance
}

// projectPrecomputedInt: distance = precomputedDistances[indexes[i]].
func projectPrecomputedInt(p *Params, b *Buffers, sortStart uint32) (int32, int32) {
	minDistance, maxDistance := minDistanceSentinel, maxDistanceSentinel
	for i := sortStart; i < p.RenderCount; i++ {
		distance := p.PrecomputedDistancesI[p.Indexes[i]]
		b.MappedDistances[i] = distance
		minDistance, maxDistance = scanMinMax(distance, minDistance, maxDistance)
	}
	return minDistance, maxDistance
}

// projectPrecomputedFloat: distance = int32(precomputedDistances[indexes[i]] * 4096.0).
func projectPrecomputedFloat(p *Params, b *Buffers, sortStart uint32) (int32, int32) {
	minDistance, maxDistance := minDistanceSentinel, maxDistanceSentinel
	for i := sortStart; i < p.RenderCount; i++ {
		distance := int32(p.PrecomputedDistancesF[p.Indexes[i]] * 4096.0)
		b.MappedDistances[i] = distance
		minDistance, maxDistance = scanMinMax(distance, minDistance, maxDistance)
	}
	return minDistance, maxDistance
}

// projectStaticFloat: distance = int32((M2*cx + M6*cy + M10*cz) * 4096.0).
// The original sorter's float-SIMD variant is commented out in its own
// source ("SIMD approach with floats seems slower"); per spec.md §9 it is
// not reinstated here, so this path stays scalar.
func projectStaticFloat(p *Params, b *Buffers, sortStart uint32) (int32, int32) {
	minDistance, maxDistance := minDistanceSentinel, maxDistanceSentinel
	m2, m6, m10 := p.ModelViewProj[2], p.ModelViewProj[6], p.ModelViewProj[10]
	for i := sortStart; i < p.RenderCount; i++ {
		off := 4 * p.Indexes[i]
		cx, cy, cz := p.CentersF[off], p.CentersF[off+1], p.CentersF[off+2]
		distance := int32((m2*cx + m6*cy + m10*cz) * 4096.0)
		b.MappedDistances[i] = distance
		minDistance, maxDistance = scanMinMax(distance, minDistance, maxDistance)
	}
	return minDistance, maxDistance
}

// projectStaticInt: distance = (M2*1000)*cx + (M6*1000)*cy + (M10*1000)*cz,
// all in int32. Expressed against the portable hwy.Vec[int32] abstraction:
// a 4-lane load of the (pre-scaled) center against the pre-broadcast
// projection row, lane-wise multiply, and a partial 3-lane reduction (the
// 4th lane, a synthetic 1, must NOT be summed here — see
// projectDynamicInt, which does sum all four. spec.md §9(b)).
//
//go:generate hwygen -input $GOFILE -output . -targets avx2,neon,fallback
func projectStaticInt(p *Params, b *Buffers, sortStart uint32) (int32, int32) {
	minDistance, maxDistance := minDistanceSentinel, maxDistanceSentinel

	row := [4]int32{
		int32(p.ModelViewProj[2] * 1000.0),
		int32(p.ModelViewProj[6] * 1000.0),
		int32(p.ModelViewProj[10] * 1000.0),
		1,
	}
	vRow := hwy.Load(row[:])

	var lanes [4]int32
	for i := sortStart; i < p.RenderCount; i++ {
		off := 4 * p.Indexes[i]
		vCenter := hwy.Load(p.CentersI[off : off+4])
		prod := hwy.Mul(vCenter, vRow)
		prod.Store(lanes[:])
		distance := lanes[0] + lanes[1] + lanes[2]
		b.MappedDistances[i] = distance
		minDistance, maxDistance = scanMinMax(distance, minDistance, maxDistance)
	}
	return minDistance, maxDistance
}

// projectStaticIntScalar is projectStaticInt without hwy.Vec[T]: the same
// three-term products and the same partial 3-lane sum, written as plain
// int32 arithmetic. spec.md §9 requires a scalar path that "must exist and
// produce numerically identical results in integer mode" — this is that
// path, exercised whenever hasHardwareSIMD is false.
func projectStaticIntScalar(p *Params, b *Buffers, sortStart uint32) (int32, int32) {
	minDistance, maxDistance := minDistanceSentinel, maxDistanceSentinel

	m2 := int32(p.ModelViewProj[2] * 1000.0)
	m6 := int32(p.ModelViewProj[6] * 1000.0)
	m10 := int32(p.ModelViewProj[10] * 1000.0)
	for i := sortStart; i < p.RenderCount; i++ {
		off := 4 * p.Indexes[i]
		cx, cy, cz := p.CentersI[off], p.CentersI[off+1], p.CentersI[off+2]
		distance := m2*cx + m6*cy + m10*cz
		b.MappedDistances[i] = distance
		minDistance, maxDistance = scanMinMax(distance, minDistance, maxDistance)
	}
	return minDistance, maxDistance
}

// projectDynamicFloat: per scene-id change, recompute the composed
// third-row R = (ModelViewProj * transform)[row 2]; then
// distance = int32((R0*cx + R1*cy + R2*cz + R3*cw) * 4096.0).
func projectDynamicFloat(p *Params, b *Buffers, sortStart uint32) (int32, int32) {
	minDistance, maxDistance := minDistanceSentinel, maxDistanceSentinel

	lastScene := int64(-1)
	var r [4]float32
	for i := sortStart; i < p.RenderCount; i++ {
		realIndex := p.Indexes[i]
		sceneIndex := p.Dynamic.SceneIndexes[realIndex]
		if int64(sceneIndex) != lastScene {
			r = composeThirdRowFloat(&p.ModelViewProj, p.Dynamic.Transforms[16*sceneIndex:16*sceneIndex+16])
			lastScene = int64(sceneIndex)
		}
		off := 4 * realIndex
		cx, cy, cz, cw := p.CentersF[off], p.CentersF[off+1], p.CentersF[off+2], p.CentersF[off+3]
		distance := int32((r[0]*cx + r[1]*cy + r[2]*cz + r[3]*cw) * 4096.0)
		b.MappedDistances[i] = distance
		minDistance, maxDistance = scanMinMax(distance, minDistance, maxDistance)
	}
	return minDistance, maxDistance
}

// projectDynamicInt: same per-scene caching as projectDynamicFloat, but R is
// scaled by 1000 and the product-and-sum is carried out entirely in int32
// (no rescale after the dot product — the magnitude lives in the product
// itself, per spec.md §4.1 "Rounding"). The SIMD reduction sums all four
// lanes here, unlike projectStaticInt's three: the 4th lane carries the
// real translation contribution in dynamic mode.
//
//go:generate hwygen -input $GOFILE -output . -targets avx2,neon,fallback
func projectDynamicInt(p *Params, b *Buffers, sortStart uint32) (int32, int32) {
	minDistance, maxDistance := minDistanceSentinel, maxDistanceSentinel

	lastScene := int64(-1)
	var vRow hwy.Vec[int32]
	for i := sortStart; i < p.RenderCount; i++ {
		realIndex := p.Indexes[i]
		sceneIndex := p.Dynamic.SceneIndexes[realIndex]
		if int64(sceneIndex) != lastScene {
			rF := composeThirdRowFloat(&p.ModelViewProj, p.Dynamic.Transforms[16*sceneIndex:16*sceneIndex+16])
			rI := [4]int32{
				int32(rF[0] * 1000.0),
				int32(rF[1] * 1000.0),
				int32(rF[2] * 1000.0),
				int32(rF[3] * 1000.0),
			}
			vRow = hwy.Load(rI[:])
			lastScene = int64(sceneIndex)
		}
		off := 4 * realIndex
		vCenter := hwy.Load(p.CentersI[off : off+4])
		prod := hwy.Mul(vCenter, vRow)
		distance := hwy.ReduceSum(prod)
		b.MappedDistances[i] = distance
		minDistance, maxDistance = scanMinMax(distance, minDistance, maxDistance)
	}
	return minDistance, maxDistance
}

// projectDynamicIntScalar is projectDynamicInt without hwy.Vec[T]: same
// per-scene-id caching, same four-term product-and-sum, written as plain
// int32 arithmetic (spec.md §9's required scalar fallback).
func projectDynamicIntScalar(p *Params, b *Buffers, sortStart uint32) (int32, int32) {
	minDistance, maxDistance := minDistanceSentinel, maxDistanceSentinel

	lastScene := int64(-1)
	var r0, r1, r2, r3 int32
	for i := sortStart; i < p.RenderCount; i++ {
		realIndex := p.Indexes[i]
		sceneIndex := p.Dynamic.SceneIndexes[realIndex]
		if int64(sceneIndex) != lastScene {
			rF := composeThirdRowFloat(&p.ModelViewProj, p.Dynamic.Transforms[16*sceneIndex:16*sceneIndex+16])
			r0 = int32(rF[0] * 1000.0)
			r1 = int32(rF[1] * 1000.0)
			r2 = int32(rF[2] * 1000.0)
			r3 = int32(rF[3] * 1000.0)
			lastScene = int64(sceneIndex)
		}
		off := 4 * realIndex
		cx, cy, cz, cw := p.CentersI[off], p.CentersI[off+1], p.CentersI[off+2], p.CentersI[off+3]
		distance := r0*cx + r1*cy + r2*cz + r3*cw
		b.MappedDistances[i] = distance
		minDistance, maxDistance = scanMinMax(distance, minDistance, maxDistance)
	}
	return minDistance, maxDistance
}

// composeThirdRowFloat computes out such that
//
//	out[c] = sum_r mvp[2 + 4*r] * transform[4*c + r]   for r in 0..3
//
// i.e. the dot product of modelViewProj's third row with each column of
// transform, reproducing computeMatMul4x4ThirdRow from the original WASM
// sorter exactly.
func composeThirdRowFloat(mvp *[16]float32, transform []float32) [4]float32 {
	a2, a6, a10, a14 := mvp[2], mvp[6], mvp[10], mvp[14]
	return [4]float32{
		a2*transform[0] + a6*transform[1] + a10*transform[2] + a14*transform[3],
		a2*transform[4] + a6*transform[5] + a10*transform[6] + a14*transform[7],
		a2*transform[8] + a6*transform[9] + a10*transform[10] + a14*transform[11],
		a2*transform[12] + a6*transform[13] + a10*transform[14] + a14*transform[15],
	}
}

