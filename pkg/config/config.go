// Package config loads Crash Kart settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/crashkart/pkg/kart"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Log selects where structured logs go. An empty path disables logging,
// since the terminal itself is taken by the renderer.
type Log struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// ZapLevel parses Level. An empty level means info.
func (l Log) ZapLevel() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return lvl, fmt.Errorf("%w: log level %q", ErrInvalidConfig, l.Level)
	}
	return lvl, nil
}

// Config is the full set of user-tunable settings.
type Config struct {
	Variant     kart.Variant     `yaml:"variant"`
	FPS         int              `yaml:"fps"`
	Background  string           `yaml:"background"`
	Seed        int64            `yaml:"seed"`
	CarModel    string           `yaml:"car_model"`
	Log         Log              `yaml:"log"`
	Tuning      kart.Tuning      `yaml:"tuning"`
	Track       kart.Stadium     `yaml:"track"`
	Camera      kart.RigSettings `yaml:"camera"`
	StealRadius float64          `yaml:"steal_radius"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Variant:     kart.VariantTrack,
		FPS:         60,
		Background:  "110,160,230",
		Seed:        1,
		Log:         Log{Level: "info"},
		Track:       kart.DefaultStadium(),
		Camera:      kart.DefaultRig(),
		StealRadius: kart.DefaultStealRadius,
	}
}

// Load decodes YAML from r on top of the defaults.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads and decodes the YAML file at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks that the settings describe a playable session.
func (c *Config) Validate() error {
	if !c.Variant.Valid() {
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, c.Variant)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("%w: fps %d out of range [1, 240]", ErrInvalidConfig, c.FPS)
	}
	if _, err := ParseRGB(c.Background); err != nil {
		return err
	}
	if _, err := c.Log.ZapLevel(); err != nil {
		return err
	}
	if c.StealRadius <= 0 {
		return fmt.Errorf("%w: steal_radius must be positive", ErrInvalidConfig)
	}
	if s := c.Camera.Smoothing; s <= 0 || s > 1 {
		return fmt.Errorf("%w: camera smoothing %v out of range (0, 1]", ErrInvalidConfig, s)
	}
	if f := c.Tuning.Friction; f < 0 || f >= 1 {
		return fmt.Errorf("%w: friction %v out of range (0, 1)", ErrInvalidConfig, f)
	}
	if d := c.Tuning.SteerDecay; d < 0 || d >= 1 {
		return fmt.Errorf("%w: steer_decay %v out of range (0, 1)", ErrInvalidConfig, d)
	}
	// Zero keeps the variant default, so only negatives are rejected.
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"max_speed", c.Tuning.MaxSpeed},
		{"accel", c.Tuning.Accel},
		{"brake", c.Tuning.Brake},
		{"steer_rate", c.Tuning.SteerRate},
		{"steer_ease", c.Tuning.SteerEase},
		{"steer_max", c.Tuning.SteerMax},
	} {
		if f.v < 0 {
			return fmt.Errorf("%w: tuning %s %v must not be negative", ErrInvalidConfig, f.name, f.v)
		}
	}
	if c.Variant == kart.VariantTrack {
		t := c.Track
		if t.HalfLength < 0 || t.HalfWidth <= 0 {
			return fmt.Errorf("%w: track dimensions must be positive", ErrInvalidConfig)
		}
		if t.Margin() <= 0 {
			return fmt.Errorf("%w: wall_inset %v leaves no room inside half_width %v", ErrInvalidConfig, t.WallInset, t.HalfWidth)
		}
		if t.Radius <= t.Margin() {
			return fmt.Errorf("%w: radius %v must exceed the drivable margin %v", ErrInvalidConfig, t.Radius, t.Margin())
		}
		if t.Penalty < 0 {
			return fmt.Errorf("%w: penalty_rate %v must not be negative", ErrInvalidConfig, t.Penalty)
		}
		if t.MinRetain <= 0 || t.MinRetain > 1 {
			return fmt.Errorf("%w: min_retain %v out of range (0, 1]", ErrInvalidConfig, t.MinRetain)
		}
	}
	return nil
}

// Setup converts the configuration into simulation settings. Tuning values
// left at zero keep the variant's defaults.
func (c *Config) Setup() kart.Setup {
	s := kart.DefaultSetup(c.Variant)
	s.Tuning = s.Tuning.Merge(c.Tuning)
	s.Rig = c.Camera
	s.StealRadius = c.StealRadius
	if s.Track != nil {
		track := c.Track
		s.Track = &track
	}
	return s
}

// ParseRGB parses an "R,G,B" triple.
func ParseRGB(s string) ([3]uint8, error) {
	var rgb [3]uint8
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return rgb, fmt.Errorf("%w: color %q is not R,G,B", ErrInvalidConfig, s)
	}
	for i, p := range parts {
		var v int
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &v); err != nil || v < 0 || v > 255 {
			return rgb, fmt.Errorf("%w: color component %q", ErrInvalidConfig, p)
		}
		rgb[i] = uint8(v)
	}
	return rgb, nil
}
