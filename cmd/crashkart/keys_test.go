package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/taigrr/crashkart/pkg/config"
	"github.com/taigrr/crashkart/pkg/kart"
)

// fakeKey matches a fixed key name.
type fakeKey string

func (k fakeKey) MatchString(s ...string) bool {
	return slices.Contains(s, string(k))
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		key  string
		want kart.Action
		ok   bool
	}{
		{"w", kart.ActionForward, true},
		{"up", kart.ActionForward, true},
		{"down", kart.ActionBackward, true},
		{"a", kart.ActionLeft, true},
		{"right", kart.ActionRight, true},
		{"f", kart.ActionSteal, true},
		{"r", 0, false},
	}
	for _, tt := range tests {
		got, ok := actionFor(fakeKey(tt.key))
		if ok != tt.ok || got != tt.want {
			t.Errorf("actionFor(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCommandFor(t *testing.T) {
	tests := []struct {
		key  string
		want command
	}{
		{"escape", cmdQuit},
		{"ctrl+c", cmdQuit},
		{"r", cmdReset},
		{"?", cmdToggleHUD},
		{"p", cmdScreenshot},
		{"w", cmdNone},
	}
	for _, tt := range tests {
		if got := commandFor(fakeKey(tt.key)); got != tt.want {
			t.Errorf("commandFor(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger(config.Log{}, "s")
	if err != nil || log == nil {
		t.Fatalf("no path should give a no-op logger, got %v, %v", log, err)
	}

	path := filepath.Join(t.TempDir(), "kart.log")
	log, err = newLogger(config.Log{Path: path, Level: "info"}, "session-1")
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	log.Debug("hidden")
	log.Info("shown")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `"session":"session-1"`) || !strings.Contains(out, "shown") {
		t.Errorf("log output missing session or message: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug line written at info level")
	}

	if _, err := newLogger(config.Log{Path: path, Level: "loud"}, "s"); err == nil {
		t.Error("bad level should fail")
	}
}
