package render

import (
	"testing"

	"github.com/taigrr/crashkart/pkg/kart"
	"github.com/taigrr/crashkart/pkg/models"
)

func drawWorld(t *testing.T, v kart.Variant, withCars bool) (*Rasterizer, *Framebuffer, *Scene) {
	t.Helper()
	w := kart.Build(kart.DefaultSetup(v), 1, nil)
	w.Camera.Snap(w.Controlled())

	fb := NewFramebuffer(80, 48)
	cam := NewCamera()
	cam.SetAspectRatio(80.0 / 48.0)
	cam.Follow(w.Camera)
	r := NewRasterizer(cam, fb)

	scene := NewScene(models.KartBody(), models.KartWheel(), ColorSky)
	if !withCars {
		scene.Body, scene.Wheel = nil, nil
	}
	scene.Draw(r, w)
	return r, fb, scene
}

func TestSceneDraw(t *testing.T) {
	for _, v := range []kart.Variant{kart.VariantTrack, kart.VariantOpen} {
		t.Run(string(v), func(t *testing.T) {
			r, fb, scene := drawWorld(t, v, true)

			if r.Stats.Triangles == 0 {
				t.Fatal("nothing reached the fill stage")
			}
			if r.Stats.MeshesTested == 0 {
				t.Error("car meshes were never frustum tested")
			}
			sky := 0
			for _, p := range fb.Pixels {
				if p == scene.Sky {
					sky++
				}
			}
			if sky == 0 || sky == len(fb.Pixels) {
				t.Errorf("%d of %d pixels are sky, want a horizon", sky, len(fb.Pixels))
			}
		})
	}
}

func TestSceneDrawsPlayerCar(t *testing.T) {
	_, with, _ := drawWorld(t, kart.VariantTrack, true)
	_, without, _ := drawWorld(t, kart.VariantTrack, false)

	// The chase camera frames the controlled car in the lower middle of
	// the screen.
	changed := 0
	for y := with.Height / 2; y < with.Height; y++ {
		for x := with.Width / 3; x < 2*with.Width/3; x++ {
			if with.GetPixel(x, y) != without.GetPixel(x, y) {
				changed++
			}
		}
	}
	if changed == 0 {
		t.Error("player car not drawn in front of the camera")
	}
}
