package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/taigrr/crashkart/pkg/config"
)

// newLogger builds a JSON file logger tagged with the session id. The
// terminal belongs to the renderer, so without a path nothing is logged.
func newLogger(c config.Log, session string) (*zap.Logger, error) {
	if c.Path == "" {
		return zap.NewNop(), nil
	}

	level, err := c.ZapLevel()
	if err != nil {
		return nil, err
	}

	zc := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{c.Path},
		ErrorOutputPaths: []string{c.Path},
		DisableCaller:    true,
	}
	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log.With(zap.String("session", session)), nil
}
