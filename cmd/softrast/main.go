// Command softrast renders a scene description to a sequence of PNG frames.
//
//	softrast -scene examples/cube/scene.yaml -frames 60 -out frame%03d.png
//
// Without -scene the built in spinning cube is rendered.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/schollz/progressbar/v3"
	"github.com/soypat/softrast/render"
	"github.com/soypat/softrast/resource"
	"github.com/soypat/softrast/scene"
)

var (
	sceneFile = flag.String("scene", "", "scene description YAML file. Built in cube if empty")
	texture   = flag.String("texture", "", "texture for the built in cube")
	out       = flag.String("out", "frame%03d.png", "output file name, formatted with the frame number")
	frames    = flag.Int("frames", 1, "number of frames to render")
	fps       = flag.Float64("fps", 30, "animation frames per second")
	width     = flag.Int("width", 320, "surface width in pixels")
	height    = flag.Int("height", 240, "surface height in pixels")
	scale     = flag.Int("scale", 1, "integer upscaling applied to saved frames")
	wireframe = flag.Bool("wireframe", false, "draw triangle edges only")
	pattern   = flag.Bool("pattern", false, "render the palette test pattern and exit")
	verbose   = flag.Bool("v", false, "log per frame statistics")
	filter    resource.Filter
)

func main() {
	flag.TextVar(&filter, "filter", resource.FilterNearest, "texture filter: nearest or bilinear")
	flag.Parse()
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, log); err != nil {
		log.Error("softrast failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	if *width <= 0 || *height <= 0 || *scale <= 0 {
		return fmt.Errorf("invalid surface size %dx%d scale %d", *width, *height, *scale)
	}
	if *frames > 1 && !strings.Contains(*out, "%") {
		return errors.New("-out must contain a format verb when rendering more than one frame")
	}
	if *fps <= 0 {
		return fmt.Errorf("invalid fps %v", *fps)
	}
	fb := render.NewFramebuffer(*width, *height)
	if *pattern {
		render.DrawPattern(fb)
		return save(frameName(0), fb)
	}

	textures := resource.NewTextureCatalog(resource.WithLogger(log))
	meshes := resource.NewMeshCatalog(resource.WithLogger(log))
	s, err := loadScene(meshes, textures)
	if err != nil {
		return err
	}
	r := render.NewRenderer(log)
	applySettings(r, s.Settings)
	log.Info("rendering", "nodes", len(s.Nodes), "meshes", meshes.Len(), "textures", textures.Len(),
		"frames", *frames, "size", fmt.Sprintf("%dx%d", *width, *height))

	pb := progressbar.Default(int64(*frames))
	defer pb.Close()
	for i := 0; i < *frames; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stopped after %d frames: %w", i, err)
		}
		s.Update(float32(float64(i) / *fps))
		r.Render(fb, s)
		if err := save(frameName(i), fb); err != nil {
			return err
		}
		pb.Add(1)
	}
	return nil
}

func loadScene(meshes *resource.MeshCatalog, textures *resource.TextureCatalog) (*scene.Scene, error) {
	if *sceneFile == "" {
		return scene.Demo(meshes, textures, *texture), nil
	}
	return scene.LoadFile(*sceneFile, meshes, textures)
}

// applySettings copies the scene's renderer settings. Flags given on the
// command line take precedence.
func applySettings(r *render.Renderer, st scene.Settings) {
	r.Wireframe = st.Wireframe
	r.Filter = st.Filter
	r.Light = st.Light
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "wireframe":
			r.Wireframe = *wireframe
		case "filter":
			r.Filter = filter
		}
	})
}

func frameName(i int) string {
	if !strings.Contains(*out, "%") {
		return *out
	}
	return fmt.Sprintf(*out, i)
}

func save(name string, fb *render.Framebuffer) error {
	var img image.Image = fb.Image()
	if *scale > 1 {
		b := img.Bounds()
		img = resize.Resize(uint(b.Dx()**scale), uint(b.Dy()**scale), img, resize.NearestNeighbor)
	}
	if err := fauxgl.SavePNG(name, img); err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	return nil
}
