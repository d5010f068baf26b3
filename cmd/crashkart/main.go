// crashkart - arcade kart driving in the terminal.
// Drive around a stadium track or an open lot, and steal any parked car
// you pull up next to.
//
// Controls:
//
//	W/Up        - Accelerate
//	S/Down      - Brake, then reverse
//	A/Left      - Steer left
//	D/Right     - Steer right
//	F           - Steal the nearby car
//	R           - Reset every car to its spawn
//	P           - Save a screenshot (PNG)
//	?           - Toggle HUD overlay (FPS, variant, controls)
//	Esc/Ctrl+C  - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/crashkart/pkg/config"
	"github.com/taigrr/crashkart/pkg/kart"
	"github.com/taigrr/crashkart/pkg/models"
	"github.com/taigrr/crashkart/pkg/render"
)

var (
	configPath = flag.String("config", "", "Path to a YAML config file")
	variant    = flag.String("variant", string(kart.VariantTrack), "Game variant: track or open")
	targetFPS  = flag.Int("fps", 60, "Target FPS")
	bgColor    = flag.String("bg", "110,160,230", "Sky color (R,G,B)")
	carModel   = flag.String("car-model", "", "Path to a .glb model used as the kart body")
	logPath    = flag.String("log", "", "Write JSON logs to this file")
	seed       = flag.Int64("seed", 1, "Seed for the headings of parked cars")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "crashkart - Arcade kart driving in the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: crashkart [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S or Up/Down     - Accelerate / brake and reverse\n")
		fmt.Fprintf(os.Stderr, "  A/D or Left/Right  - Steer\n")
		fmt.Fprintf(os.Stderr, "  F                  - Steal the nearby car\n")
		fmt.Fprintf(os.Stderr, "  R                  - Reset\n")
		fmt.Fprintf(os.Stderr, "  P                  - Screenshot\n")
		fmt.Fprintf(os.Stderr, "  ?                  - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc                - Quit\n")
	}
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, then applies the flags that
// were set explicitly on the command line.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "variant":
			cfg.Variant = kart.Variant(*variant)
		case "fps":
			cfg.FPS = *targetFPS
		case "bg":
			cfg.Background = *bgColor
		case "car-model":
			cfg.CarModel = *carModel
		case "log":
			cfg.Log.Path = *logPath
		case "seed":
			cfg.Seed = *seed
		}
	})

	return cfg, cfg.Validate()
}

func run(cfg *config.Config) error {
	log, err := newLogger(cfg.Log, uuid.NewString())
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = log.Sync() }()

	rgb, err := config.ParseRGB(cfg.Background)
	if err != nil {
		return err
	}

	body := models.KartBody()
	if cfg.CarModel != "" {
		body, err = models.LoadKartBody(cfg.CarModel)
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
		log.Info("loaded car model",
			zap.String("path", cfg.CarModel),
			zap.Int("triangles", body.TriangleCount()),
		)
	}

	world := kart.Build(cfg.Setup(), cfg.Seed, log)
	log.Info("session started",
		zap.String("variant", string(cfg.Variant)),
		zap.Int("fps", cfg.FPS),
		zap.Int("cars", len(world.Cars)),
	)

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	scene := render.NewScene(body, models.KartWheel(), render.RGB(rgb[0], rgb[1], rgb[2]))
	g := newGame(term, world, scene, cfg.FPS, log)
	g.resize(width, height)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return g.pump(ctx, term.Events()) })
	eg.Go(func() error { return g.loop(ctx) })

	err = eg.Wait()
	log.Info("session ended", zap.Uint64("frames", world.Frame()))
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
