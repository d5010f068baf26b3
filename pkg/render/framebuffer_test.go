package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFramebufferSize(t *testing.T) {
	tests := []struct {
		cols, rows int
		w, h       int
	}{
		{80, 24, 80, 48},
		{1, 1, 1, 2},
		{0, 0, 1, 2},
	}
	for _, tt := range tests {
		w, h := FramebufferSize(tt.cols, tt.rows)
		if w != tt.w || h != tt.h {
			t.Errorf("FramebufferSize(%d, %d) = %d, %d; want %d, %d", tt.cols, tt.rows, w, h, tt.w, tt.h)
		}
	}
}

func TestFramebufferPixels(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Clear(testClear)
	fb.SetPixel(1, 2, testRed)
	fb.SetPixel(-1, 0, testRed)
	fb.SetPixel(4, 0, testRed)

	if got := fb.GetPixel(1, 2); got != testRed {
		t.Errorf("GetPixel(1, 2) = %v, want red", got)
	}
	if got := fb.GetPixel(9, 9); got != (Color{}) {
		t.Errorf("out of bounds GetPixel = %v, want transparent", got)
	}
	if n := countNot(fb, testClear); n != 1 {
		t.Errorf("%d pixels changed, want 1", n)
	}

	fb.Resize(2, 2)
	if len(fb.Pixels) != 4 || fb.Width != 2 || fb.Height != 2 {
		t.Errorf("Resize left %dx%d with %d pixels", fb.Width, fb.Height, len(fb.Pixels))
	}
}

func TestFramebufferDrawRectClamps(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.DrawRect(-2, -2, 4, 4, testRed)
	if n := countNot(fb, Color{}); n != 4 {
		t.Errorf("%d pixels filled, want 4", n)
	}
}

func TestFramebufferDrawLine(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.DrawLine(0, 0, 7, 7, testRed)
	for i := range 8 {
		if fb.GetPixel(i, i) != testRed {
			t.Errorf("diagonal pixel %d not set", i)
		}
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(testBlue)
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("image bounds = %v, want 3x2", b)
	}
}

func TestShade(t *testing.T) {
	tests := []struct {
		k    float64
		want Color
	}{
		{1, RGB(200, 100, 50)},
		{0.5, RGB(100, 50, 25)},
		{0, RGB(0, 0, 0)},
		{2, RGB(200, 100, 50)},
		{-1, RGB(0, 0, 0)},
	}
	for _, tt := range tests {
		if got := Shade(RGB(200, 100, 50), tt.k); got != tt.want {
			t.Errorf("Shade(%v) = %v, want %v", tt.k, got, tt.want)
		}
	}
}
