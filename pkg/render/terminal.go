package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each cell shows two stacked pixels: ▀ with the top pixel as
// foreground and the bottom pixel as background.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		if topY >= fb.Height {
			break
		}

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, topY+1)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Scene colors.
var (
	ColorSky      = color.RGBA{110, 160, 230, 255}
	ColorGrass    = color.RGBA{58, 120, 52, 255}
	ColorGrassAlt = color.RGBA{52, 110, 47, 255}
	ColorLot      = color.RGBA{96, 96, 100, 255}
	ColorLotAlt   = color.RGBA{88, 88, 92, 255}
	ColorRoad     = color.RGBA{64, 64, 64, 255}
	ColorLine     = color.RGBA{230, 230, 230, 255}
	ColorKerb     = color.RGBA{210, 40, 40, 255}
	ColorKerbAlt  = color.RGBA{240, 240, 240, 255}
	ColorMarker   = color.RGBA{255, 220, 0, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// Shade scales a color's brightness by k, clamped to [0, 1].
func Shade(c color.RGBA, k float64) color.RGBA {
	k = max(0, min(1, k))
	return color.RGBA{
		uint8(float64(c.R) * k),
		uint8(float64(c.G) * k),
		uint8(float64(c.B) * k),
		c.A,
	}
}
