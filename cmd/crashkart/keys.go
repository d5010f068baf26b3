package main

import "github.com/taigrr/crashkart/pkg/kart"

// keyMatcher is satisfied by ultraviolet key press and release events.
type keyMatcher interface {
	MatchString(s ...string) bool
}

var bindings = []struct {
	action kart.Action
	keys   []string
}{
	{kart.ActionForward, []string{"w", "up"}},
	{kart.ActionBackward, []string{"s", "down"}},
	{kart.ActionLeft, []string{"a", "left"}},
	{kart.ActionRight, []string{"d", "right"}},
	{kart.ActionSteal, []string{"f"}},
}

// actionFor maps a key to the driving action it is bound to.
func actionFor(k keyMatcher) (kart.Action, bool) {
	for _, b := range bindings {
		if k.MatchString(b.keys...) {
			return b.action, true
		}
	}
	return 0, false
}

// command is a frontend request that is not part of driving.
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdReset
	cmdToggleHUD
	cmdScreenshot
)

func commandFor(k keyMatcher) command {
	switch {
	case k.MatchString("escape", "ctrl+c"):
		return cmdQuit
	case k.MatchString("r"):
		return cmdReset
	case k.MatchString("?", "shift+/"):
		return cmdToggleHUD
	case k.MatchString("p"):
		return cmdScreenshot
	}
	return cmdNone
}
