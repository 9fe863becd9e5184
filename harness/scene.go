package harness

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera describes a simple perspective camera, the minimum needed to
// build the view-projection matrix depthsort.Params.ModelViewProj
// expects.
type Camera struct {
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
	Up       mgl32.Vec3
	FovY     float32 // radians
	Aspect   float32
	Near     float32
	Far      float32
}

// ViewProjFlat builds the camera's view-projection matrix and returns it
// flattened exactly as depthsort.Params.ModelViewProj expects: mathgl
// already stores mgl32.Mat4 in the same layout the kernel's M[2]/M[6]/
// M[10]/M[14] third-row indexing assumes, so no transpose is needed.
func (c Camera) ViewProjFlat() [16]float32 {
	view := mgl32.LookAtV(c.Position, c.LookAt, c.Up)
	proj := mgl32.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
	return toFlat(proj.Mul4(view))
}

func toFlat(m mgl32.Mat4) [16]float32 {
	var out [16]float32
	copy(out[:], m[:])
	return out
}

// SyntheticScene is a deterministic splat cloud and per-scene transform
// table for demos and tests: splatCount centers scattered in a cube, split
// across sceneCount scene ids, each with its own translate+rotate
// transform (dynamic mode), plus the identity-equivalent static centers.
type SyntheticScene struct {
	SplatCount uint32
	CentersF   []float32 // x,y,z,pad stride-4, len 4*SplatCount
	CentersI   []int32   // pre-scaled (x1000) int32 mirror, same layout

	SceneCount   uint32
	Transforms   []float32 // len 16*SceneCount, flattened per scene per depthsort.TransformTable
	SceneIndexes []uint32  // len SplatCount
}

// NewSyntheticScene builds a reproducible scene using seed to drive a
// local random source (no global rand state is touched).
func NewSyntheticScene(splatCount, sceneCount uint32, seed int64) *SyntheticScene {
	rng := rand.New(rand.NewSource(seed))

	s := &SyntheticScene{
		SplatCount:   splatCount,
		CentersF:     make([]float32, 4*splatCount),
		CentersI:     make([]int32, 4*splatCount),
		SceneCount:   sceneCount,
		Transforms:   make([]float32, 16*sceneCount),
		SceneIndexes: make([]uint32, splatCount),
	}

	for i := uint32(0); i < splatCount; i++ {
		x := rng.Float32()*20 - 10
		y := rng.Float32()*20 - 10
		z := rng.Float32()*20 - 10
		off := 4 * i
		s.CentersF[off], s.CentersF[off+1], s.CentersF[off+2], s.CentersF[off+3] = x, y, z, 0
		s.CentersI[off] = int32(x * 1000)
		s.CentersI[off+1] = int32(y * 1000)
		s.CentersI[off+2] = int32(z * 1000)
		s.CentersI[off+3] = 1

		if sceneCount > 0 {
			s.SceneIndexes[i] = uint32(rng.Intn(int(sceneCount)))
		}
	}

	for scene := uint32(0); scene < sceneCount; scene++ {
		translate := mgl32.Translate3D(rng.Float32()*4-2, rng.Float32()*4-2, rng.Float32()*4-2)
		rotate := mgl32.HomogRotate3DY(rng.Float32() * 6.28)
		transform := toFlat(translate.Mul4(rotate))
		copy(s.Transforms[16*scene:16*scene+16], transform[:])
	}

	return s
}
