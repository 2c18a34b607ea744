// Command bvhdemo builds a synthetic sphere-grid scene, builds both a BVH
// and an OBVH over it, and reports their stats — a minimal harness for
// exercising the acceleration structures without the outer renderer this
// module deliberately excludes.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/df07/go-bvh-tracer/pkg/accel"
	"github.com/df07/go-bvh-tracer/pkg/core"
	"github.com/df07/go-bvh-tracer/pkg/shapes"
)

// Config holds the command-line configuration for the demo.
type Config struct {
	GridSize int
	Spacing  float64
	Radius   float64
	Help     bool
}

func main() {
	config := parseFlags()
	if config.Help {
		showHelp()
		return
	}

	logger, err := accel.NewZapLogger()
	if err != nil {
		fmt.Printf("could not create logger: %v\n", err)
		os.Exit(1)
	}

	prims := sphereGrid(config.GridSize, config.Spacing, config.Radius)
	fmt.Printf("built scene: %d spheres on a %dx%dx%d grid\n", len(prims), config.GridSize, config.GridSize, config.GridSize)

	start := time.Now()
	bvh := accel.Build(prims, 0, 1, logger)
	fmt.Printf("BVH build: %v\n", time.Since(start))

	start = time.Now()
	obvh := accel.BuildOBVH(bvh, logger)
	fmt.Printf("OBVH flatten: %v (AVX2 available: %v)\n", time.Since(start), accel.HasAVX2())

	diagonal := gridDiagonalRay(config.GridSize, config.Spacing)
	bvhRec, bvhOK := bvh.Hit(diagonal, 0.001, math.Inf(1))
	obvhRec, obvhOK := obvh.Hit(diagonal, 0.001, math.Inf(1))

	fmt.Printf("diagonal ray: BVH hit=%v OBVH hit=%v\n", bvhOK, obvhOK)
	if bvhOK && obvhOK {
		fmt.Printf("BVH t=%.6f OBVH t=%.6f (match=%v)\n", bvhRec.T, obvhRec.T, math.Abs(bvhRec.T-obvhRec.T) < 1e-6)
	}
}

// sphereGrid builds a cubic grid of spheres of the given radius, good at
// stressing both BVH and OBVH construction and traversal because the
// bounding boxes tile evenly on every axis.
func sphereGrid(n int, spacing, radius float64) []core.Hitable {
	prims := make([]core.Hitable, 0, n*n*n)
	offset := spacing * float64(n-1) / 2
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				center := core.NewVec3(
					float64(x)*spacing-offset,
					float64(y)*spacing-offset,
					float64(z)*spacing-offset,
				)
				prims = append(prims, shapes.NewSphere(center, radius, nil))
			}
		}
	}
	return prims
}

// gridDiagonalRay aims a ray through the cube's long diagonal, guaranteed
// to traverse many of the grid's cells.
func gridDiagonalRay(n int, spacing float64) core.Ray {
	extent := spacing * float64(n-1) / 2
	origin := core.NewVec3(-extent-10, -extent-10, -extent-10)
	target := core.NewVec3(extent, extent, extent)
	return core.NewRay(origin, target.Subtract(origin).Normalize())
}

func parseFlags() Config {
	config := Config{}
	flag.IntVar(&config.GridSize, "grid", 10, "grid edge length (total spheres = grid^3)")
	flag.Float64Var(&config.Spacing, "spacing", 2.5, "distance between adjacent sphere centers")
	flag.Float64Var(&config.Radius, "radius", 1.0, "sphere radius")
	flag.BoolVar(&config.Help, "help", false, "show help information")
	flag.Parse()
	return config
}

func showHelp() {
	fmt.Println("bvhdemo")
	fmt.Println("Usage: bvhdemo [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  bvhdemo --grid=10 --spacing=2.5")
}
