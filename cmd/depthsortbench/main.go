// Command depthsortbench runs the depthsort kernel's static/dynamic ×
// float/integer projection variants against a synthetic splat cloud and
// prints, for each, the time taken and the first and last output index.
// The precomputed-distance variants are not run, and no bucket histogram
// is printed.
//
// Usage:
//
//	depthsortbench -splats 200000 -buckets 65536 -scenes 4
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/splatforge/depthsort/depthsort"
	"github.com/splatforge/depthsort/harness"
)

var (
	splatCount  = flag.Int("splats", 100_000, "number of splats in the synthetic scene")
	sceneCount  = flag.Int("scenes", 4, "number of scenes for dynamic-mode variants")
	bucketCount = flag.Uint("buckets", harness.DefaultDistanceMapRange, "histogram width (DistanceMapRange)")
	seed        = flag.Int64("seed", 1, "random seed for the synthetic scene")
	verbose     = flag.Bool("v", false, "enable debug logging")
)

func main() {
	flag.Parse()

	if *verbose {
		harness.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	fmt.Println("=== depthsort bench ===")
	fmt.Printf("splats=%d scenes=%d buckets=%d\n\n", *splatCount, *sceneCount, *bucketCount)

	scene := harness.NewSyntheticScene(uint32(*splatCount), uint32(*sceneCount), *seed)
	camera := harness.Camera{
		Position: [3]float32{0, 0, -15},
		LookAt:   [3]float32{0, 0, 0},
		Up:       [3]float32{0, 1, 0},
		FovY:     1.0,
		Aspect:   16.0 / 9.0,
		Near:     0.1,
		Far:      1000,
	}
	mvp := camera.ViewProjFlat()

	renderer, err := harness.NewRenderer(uint32(*splatCount), harness.WithDistanceMapRange(uint32(*bucketCount)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	indexes := make([]uint32, *splatCount)
	for i := range indexes {
		indexes[i] = uint32(i)
	}

	variants := []struct {
		name           string
		useIntegerSort bool
		usePrecomputed bool
		dynamicMode    bool
	}{
		{name: "static float", useIntegerSort: false, usePrecomputed: false, dynamicMode: false},
		{name: "static int", useIntegerSort: true, usePrecomputed: false, dynamicMode: false},
		{name: "dynamic float", useIntegerSort: false, usePrecomputed: false, dynamicMode: true},
		{name: "dynamic int", useIntegerSort: true, usePrecomputed: false, dynamicMode: true},
	}

	for _, v := range variants {
		start := time.Now()
		out, err := renderer.Sort(indexes, uint32(*splatCount), uint32(*splatCount), mvp,
			scene.CentersF, scene.CentersI,
			depthsort.TransformTable{Transforms: scene.Transforms, SceneIndexes: scene.SceneIndexes},
			v.useIntegerSort, v.usePrecomputed, v.dynamicMode)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error (%s): %v\n", v.name, err)
			os.Exit(1)
		}
		fmt.Printf("%-16s %8d splats in %v (first=%d last=%d)\n", v.name, len(out), elapsed, out[0], out[len(out)-1])
	}
}
