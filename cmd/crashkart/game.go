package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/crashkart/pkg/kart"
	"github.com/taigrr/crashkart/pkg/render"
)

// keyHold is how long a key counts as held after its last press. It spans
// the usual delay before a terminal starts auto-repeating.
const keyHold = 550 * time.Millisecond

// errQuit ends the session without reporting a failure.
var errQuit = errors.New("quit")

// game owns everything the frame loop touches. Only Input is shared with
// the event pump; the rest is handed over through channels.
type game struct {
	term   *uv.Terminal
	world  *kart.World
	input  *kart.Input
	scene  *render.Scene
	camera *render.Camera
	fb     *render.Framebuffer
	raster *render.Rasterizer
	hud    *HUD
	log    *zap.Logger
	fps    int

	cmds    chan command
	resizes chan uv.WindowSizeEvent
}

func newGame(term *uv.Terminal, world *kart.World, scene *render.Scene, fps int, log *zap.Logger) *game {
	camera := render.NewCamera()
	fb := render.NewFramebuffer(render.FramebufferSize(80, 24))
	return &game{
		term:    term,
		world:   world,
		input:   kart.NewInput(),
		scene:   scene,
		camera:  camera,
		fb:      fb,
		raster:  render.NewRasterizer(camera, fb),
		hud:     NewHUD(fps, world.Setup.Variant),
		log:     log,
		fps:     fps,
		cmds:    make(chan command, 8),
		resizes: make(chan uv.WindowSizeEvent, 1),
	}
}

// pump turns terminal events into input state and commands until ctx ends
// or the player quits.
func (g *game) pump(ctx context.Context, events <-chan uv.Event) error {
	for {
		var ev uv.Event
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			ev = e
		}

		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			// Only the latest size matters.
			select {
			case <-g.resizes:
			default:
			}
			g.resizes <- ev

		case uv.KeyPressEvent:
			if a, ok := actionFor(ev); ok {
				g.input.Press(a, time.Now())
				continue
			}
			switch cmd := commandFor(ev); cmd {
			case cmdNone:
			case cmdQuit:
				return errQuit
			default:
				select {
				case g.cmds <- cmd:
				case <-ctx.Done():
					return nil
				}
			}

		case uv.KeyReleaseEvent:
			if a, ok := actionFor(ev); ok {
				g.input.Release(a)
			}
		}
	}
}

// loop runs one frame per tick until ctx ends.
func (g *game) loop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(g.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-g.resizes:
			g.resize(ev.Width, ev.Height)
		case cmd := <-g.cmds:
			g.handle(cmd, time.Now())
		case now := <-ticker.C:
			if err := g.frame(now); err != nil {
				return err
			}
		}
	}
}

func (g *game) resize(width, height int) {
	g.term.Erase()
	g.term.Resize(width, height)
	g.fb.Resize(render.FramebufferSize(width, height))
	g.raster.Resize()
	g.camera.SetAspectRatio(float64(g.fb.Width) / float64(g.fb.Height))
	g.log.Debug("resized", zap.Int("cols", width), zap.Int("rows", height))
}

func (g *game) handle(cmd command, now time.Time) {
	switch cmd {
	case cmdReset:
		g.world.Reset()
		g.input.Reset()
		g.hud.Reset()
	case cmdToggleHUD:
		g.hud.Visible = !g.hud.Visible
	case cmdScreenshot:
		path := fmt.Sprintf("crashkart-%s.png", now.Format("20060102-150405"))
		if err := g.fb.SavePNG(path); err != nil {
			g.log.Warn("screenshot failed", zap.Error(err))
			g.hud.Flash(now, "Screenshot failed")
			return
		}
		g.log.Info("screenshot saved", zap.String("path", path))
		g.hud.Flash(now, "Saved "+path)
	}
}

// frame steps the simulation once and presents the result.
func (g *game) frame(now time.Time) error {
	g.input.Expire(now, keyHold)
	out := g.world.Step(g.input.Snapshot())

	g.camera.Follow(g.world.Camera)
	g.scene.Draw(g.raster, g.world)

	area := g.term.Bounds()
	g.fb.Draw(g.term, area)
	g.hud.Update(now, out)
	g.hud.Draw(g.term, area, now)

	if err := g.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}
