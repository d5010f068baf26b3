package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/crashkart/pkg/kart"
)

const flashFor = 2 * time.Second

var (
	hudBg    = color.RGBA{0, 0, 0, 255}
	hudFg    = color.RGBA{255, 255, 255, 255}
	hudDim   = color.RGBA{150, 150, 150, 255}
	hudGreen = color.RGBA{90, 230, 120, 255}
	hudLight = color.RGBA{210, 210, 210, 255}
)

// hudText is one run of text at a cell position.
type hudText struct {
	Row, Col int
	Text     string
	Fg, Bg   color.RGBA
}

// HUD shows the speedometer and the steal prompt, plus an optional info
// overlay. The speedometer needle eases toward the true speed on a
// critically damped spring.
type HUD struct {
	Visible bool

	variant kart.Variant
	spring  harmonica.Spring
	shown   float64 // displayed km/h
	vel     float64 // spring velocity of shown
	prompt  kart.Prompt

	fps       float64
	fpsFrames int
	fpsTime   time.Time

	flash      string
	flashColor color.RGBA
	flashUntil time.Time
}

// NewHUD creates a HUD for a loop running at fps.
func NewHUD(fps int, variant kart.Variant) *HUD {
	return &HUD{
		variant: variant,
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		fpsTime: time.Now(),
	}
}

// Update advances the HUD by one frame.
func (h *HUD) Update(now time.Time, r kart.Readout) {
	h.shown, h.vel = h.spring.Update(h.shown, h.vel, r.SpeedKMH)
	if h.shown < 0 {
		h.shown, h.vel = 0, 0
	}
	h.prompt = r.Prompt

	if r.Stole != nil {
		h.flash = fmt.Sprintf("Stole the %s car!", r.Stole.Label())
		h.flashColor = r.Stole.Paint.Color
		h.flashUntil = now.Add(flashFor)
	}

	h.fpsFrames++
	if elapsed := now.Sub(h.fpsTime); elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// Flash shows a short message in place of the steal prompt.
func (h *HUD) Flash(now time.Time, msg string) {
	h.flash = msg
	h.flashColor = hudFg
	h.flashUntil = now.Add(flashFor)
}

// Reset drops the needle and any message.
func (h *HUD) Reset() {
	h.shown, h.vel = 0, 0
	h.prompt = kart.Prompt{}
	h.flash = ""
}

// Speed returns the displayed speed in km/h.
func (h *HUD) Speed() float64 {
	return h.shown
}

// layout places the HUD text on a width x height cell grid.
func (h *HUD) layout(now time.Time, width, height int) []hudText {
	var out []hudText
	center := func(row int, s string, fg, bg color.RGBA) {
		out = append(out, hudText{Row: row, Col: max((width-len(s))/2, 0), Text: s, Fg: fg, Bg: bg})
	}

	switch {
	case h.flash != "" && now.Before(h.flashUntil):
		center(1, " "+h.flash+" ", h.flashColor, backdrop(h.flashColor))
	case h.prompt.InRange:
		msg := fmt.Sprintf(" Press F to steal the %s car! ", h.prompt.Label)
		center(1, msg, h.prompt.Color, backdrop(h.prompt.Color))
	}

	out = append(out, hudText{
		Row:  height - 1,
		Text: fmt.Sprintf(" %3.0f km/h ", h.shown),
		Fg:   hudFg,
		Bg:   hudBg,
	})

	if !h.Visible {
		return out
	}

	out = append(out, hudText{Row: 0, Col: 0, Text: fmt.Sprintf(" %.0f FPS ", h.fps), Fg: hudGreen, Bg: hudBg})
	center(0, " "+strings.ToUpper(string(h.variant))+" ", hudFg, hudBg)
	help := " WASD drive  F steal  R reset  P shot  ? hud "
	out = append(out, hudText{Row: height - 1, Col: max(width-len(help), 0), Text: help, Fg: hudDim, Bg: hudBg})
	return out
}

// backdrop picks a background that keeps text in c readable.
func backdrop(c color.RGBA) color.RGBA {
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if lum < 64 {
		return hudLight
	}
	return hudBg
}

// Draw writes the HUD over the scene.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle, now time.Time) {
	for _, t := range h.layout(now, area.Dx(), area.Dy()) {
		y := area.Min.Y + t.Row
		if y < area.Min.Y || y >= area.Max.Y {
			continue
		}
		x := area.Min.X + t.Col
		for _, r := range t.Text {
			if x >= area.Max.X {
				break
			}
			scr.SetCell(x, y, &uv.Cell{
				Content: string(r),
				Width:   1,
				Style:   uv.Style{Fg: t.Fg, Bg: t.Bg},
			})
			x++
		}
	}
}
