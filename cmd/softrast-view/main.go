// Command softrast-view presents an animated scene in a window.
//
// Keys: F1 toggles wireframe, F2 toggles bilinear filtering, Space pauses
// the animation and R toggles node visibility.
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/soypat/softrast/render"
	"github.com/soypat/softrast/resource"
	"github.com/soypat/softrast/scene"
)

const tps = 60

var (
	sceneFile = flag.String("scene", "", "scene description YAML file. Built in cube if empty")
	texture   = flag.String("texture", "", "texture for the built in cube")
	width     = flag.Int("width", 320, "surface width in pixels")
	height    = flag.Int("height", 240, "surface height in pixels")
	scale     = flag.Int("scale", 2, "window scale")
	noHUD     = flag.Bool("nohud", false, "hide the status line")
	verbose   = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if err := run(log); err != nil {
		log.Error("softrast-view failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	if *width <= 0 || *height <= 0 || *scale <= 0 {
		return fmt.Errorf("invalid surface size %dx%d scale %d", *width, *height, *scale)
	}
	textures := resource.NewTextureCatalog(resource.WithLogger(log))
	meshes := resource.NewMeshCatalog(resource.WithLogger(log))
	var s *scene.Scene
	if *sceneFile == "" {
		s = scene.Demo(meshes, textures, *texture)
	} else {
		var err error
		s, err = scene.LoadFile(*sceneFile, meshes, textures)
		if err != nil {
			return err
		}
	}
	r := render.NewRenderer(log)
	r.Wireframe = s.Settings.Wireframe
	r.Filter = s.Settings.Filter
	r.Light = s.Settings.Light

	g := &game{
		log:   log,
		scene: s,
		r:     r,
		fb:    render.NewFramebuffer(*width, *height),
		hud:   !*noHUD,
	}
	ebiten.SetWindowTitle("softrast")
	ebiten.SetWindowSize(*width**scale, *height**scale)
	ebiten.SetTPS(tps)
	return ebiten.RunGame(g)
}

type game struct {
	log   *slog.Logger
	scene *scene.Scene
	r     *render.Renderer
	fb    *render.Framebuffer
	hud   bool

	img       *image.RGBA
	fbImg     *ebiten.Image
	frameTime time.Duration
	stats     render.Stats
	titleTick int
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.r.Wireframe = !g.r.Wireframe
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		if g.r.Filter == resource.FilterNearest {
			g.r.Filter = resource.FilterBilinear
		} else {
			g.r.Filter = resource.FilterNearest
		}
		g.log.Debug("texture filter", "filter", g.r.Filter)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.scene.Paused = !g.scene.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.scene.ToggleVisible()
	}
	g.scene.Advance(1. / tps)

	start := time.Now()
	g.stats = g.r.Render(g.fb, g.scene)
	g.frameTime = time.Since(start)
	if g.hud {
		drawStatus(g.fb, g.status())
	}

	g.titleTick++
	if g.titleTick%tps == 0 {
		ebiten.SetWindowTitle(fmt.Sprintf("softrast %.2fms", float64(g.frameTime.Microseconds())/1000))
	}
	return nil
}

func (g *game) status() string {
	mode := "fill"
	if g.r.Wireframe {
		mode = "wire"
	}
	paused := ""
	if g.scene.Paused {
		paused = " paused"
	}
	return fmt.Sprintf("%s %s tri %d px %d%s", mode, g.r.Filter, g.stats.Triangles-g.stats.Culled, g.stats.Pixels, paused)
}

func (g *game) Draw(screen *ebiten.Image) {
	src := g.fb.Image()
	b := src.Bounds()
	if g.img == nil || g.img.Bounds() != b {
		g.img = image.NewRGBA(b)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(b.Dx(), b.Dy())
	}
	toRGBA(g.img, src)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Size()
}

// toRGBA expands palette indices of src into dst. Both must share bounds.
func toRGBA(dst *image.RGBA, src *image.Paletted) {
	var lut [256][4]uint8
	for i, c := range src.Palette {
		r, g, b, a := c.RGBA()
		lut[i] = [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	}
	for i, idx := range src.Pix {
		copy(dst.Pix[i*4:i*4+4], lut[idx][:])
	}
}
