package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/df07/go-shading-core/cmd"
	"github.com/df07/go-shading-core/pkg/integrator"
	"github.com/df07/go-shading-core/pkg/renderer"
	"github.com/df07/go-shading-core/pkg/scene"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	defaults := renderer.DefaultConfig()

	app := cli.NewApp()
	app.Name = "shading-core"
	app.Usage = "path trace triangle scenes with low-discrepancy sampling"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Before = cmd.ConfigureLogging
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene or a glTF file to PNG",
			Description: `
Accumulate --spp progressive frames of the reference path tracer. Each frame
draws one Halton sample per pixel; the per-pixel running average is written
to --out when all frames are done.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "cornell",
					Usage: "built-in scene: " + strings.Join(scene.BuiltinNames(), ", "),
				},
				cli.StringFlag{
					Name:  "gltf",
					Usage: "render a .gltf/.glb file instead of a built-in scene",
				},
				cli.StringFlag{
					Name:  "ply",
					Usage: "render a .ply mesh inside the Cornell room",
				},
				cli.IntFlag{
					Name:  "width",
					Value: defaults.Width,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: defaults.Height,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: defaults.SamplesPerPixel,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "bounces",
					Value: integrator.DefaultMaxBounces,
					Usage: fmt.Sprintf("surface interactions per path (at most %d)", integrator.MaxSupportedBounces),
				},
				cli.IntFlag{
					Name:  "tile",
					Value: defaults.TileSize,
					Usage: "tile edge length in pixels",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "parallel workers (0 = one per CPU)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "sequence",
			Usage: "print Halton sequence values",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "start",
					Usage: "first sample index",
				},
				cli.IntFlag{
					Name:  "count",
					Value: 8,
					Usage: "number of sample indices",
				},
				cli.IntFlag{
					Name:  "dims",
					Value: 4,
					Usage: "number of dimensions per index",
				},
			},
			Action: cmd.PrintSequence,
		},
		{
			Name:  "lightcheck",
			Usage: "compare sampled area light irradiance against C·area/d²",
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "distance",
					Value: 10,
					Usage: "distance from the shading point to the light center",
				},
				cli.Float64Flag{
					Name:  "extent",
					Value: 0.5,
					Usage: "half extent of the square light",
				},
				cli.IntFlag{
					Name:  "samples",
					Value: 4096,
					Usage: "number of Halton samples",
				},
			},
			Action: cmd.CheckAreaLight,
		},
	}

	return app
}
