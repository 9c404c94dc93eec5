package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-shading-core/pkg/renderer"
	"github.com/df07/go-shading-core/pkg/scene"
)

// Render a still frame by accumulating spp progressive frames.
func RenderFrame(ctx *cli.Context) error {
	config := renderer.Config{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxBounces:      ctx.Int("bounces"),
		TileSize:        ctx.Int("tile"),
		NumWorkers:      ctx.Int("workers"),
	}
	if err := config.Validate(); err != nil {
		return err
	}

	sc, err := loadScene(ctx.String("scene"), ctx.String("gltf"), ctx.String("ply"))
	if err != nil {
		return err
	}
	displaySceneStats(sc)

	r, err := renderer.NewProgressiveRenderer(sc, config)
	if err != nil {
		return err
	}

	// Ctrl-C stops the render between tiles
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, err := r.Render(renderCtx)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if err := renderer.SavePNG(out, img); err != nil {
		return err
	}

	displayRenderStats(config, stats, renderer.CalculateAverageLuminance(img))
	logger.Noticef("render saved as %s", out)
	return nil
}

// loadScene returns the glTF scene at gltfPath when set, the PLY mesh at
// plyPath in the Cornell room when set, and the named built-in scene otherwise
func loadScene(name, gltfPath, plyPath string) (*scene.Scene, error) {
	switch {
	case gltfPath != "":
		return scene.LoadGLTF(gltfPath)
	case plyPath != "":
		return scene.LoadPLYScene(plyPath)
	}
	return scene.Builtin(name)
}

func displaySceneStats(sc *scene.Scene) {
	var buf bytes.Buffer
	sc.WriteStats(&buf)
	logger.Infof("scene %q geometry\n%s", sc.Name, buf.String())

	buf.Reset()
	sc.WriteLights(&buf)
	logger.Infof("scene %q lights\n%s", sc.Name, buf.String())
}

func displayRenderStats(config renderer.Config, stats renderer.RenderStats, luminance float64) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Resolution", "Frames", "Samples", "Avg luminance", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", config.Width, config.Height),
		fmt.Sprintf("%d", stats.Frames),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.4f", luminance),
		stats.Duration.String(),
	})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
