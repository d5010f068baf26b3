package render

import (
	"math"

	"github.com/taigrr/crashkart/pkg/kart"
	"github.com/taigrr/crashkart/pkg/math3d"
)

const (
	tileSize    = 20.0
	groundTiles = 10 // tiles drawn on each side of the camera
	roadLift    = 0.02
	lineLift    = 0.04
)

// Scene draws a kart world: ground, the stadium when there is one, and
// every car with its wheels.
type Scene struct {
	Body  MeshRenderer // kart body, painted faces take the car color
	Wheel MeshRenderer

	Sky        Color
	Light      math3d.Vec3 // direction toward the sun
	Segments   int         // samples around the track outline
	WallHeight float64
	ShowMarker bool // ring the car that can be stolen
}

// NewScene creates a scene with the stock look.
func NewScene(body, wheel MeshRenderer, sky Color) *Scene {
	return &Scene{
		Body:       body,
		Wheel:      wheel,
		Sky:        sky,
		Light:      math3d.V3(0.4, 1, -0.3).Normalize(),
		Segments:   96,
		WallHeight: 1.2,
		ShowMarker: true,
	}
}

// Draw renders one frame of w through r's camera.
func (s *Scene) Draw(r *Rasterizer, w *kart.World) {
	r.Clear(s.Sky)

	if w.Setup.Track != nil {
		s.drawGround(r, ColorGrass, ColorGrassAlt)
		s.drawTrack(r, *w.Setup.Track)
	} else {
		s.drawGround(r, ColorLot, ColorLotAlt)
	}

	ride := w.Setup.Tuning.RideHeight
	for _, car := range w.Cars {
		s.drawCar(r, car, ride)
	}

	if c := w.Candidate(); c != nil && s.ShowMarker {
		s.drawMarker(r, c, ride)
	}
}

// drawGround tiles a checkerboard around the camera so the ground never
// ends in view. Tile colors are fixed to world coordinates.
func (s *Scene) drawGround(r *Rasterizer, a, b Color) {
	cam := r.camera.Position
	cx := int(math.Floor(cam.X / tileSize))
	cz := int(math.Floor(cam.Z / tileSize))

	for i := cx - groundTiles; i <= cx+groundTiles; i++ {
		for j := cz - groundTiles; j <= cz+groundTiles; j++ {
			x0, z0 := float64(i)*tileSize, float64(j)*tileSize
			x1, z1 := x0+tileSize, z0+tileSize
			c := a
			if (i+j)&1 != 0 {
				c = b
			}
			r.DrawQuad(
				math3d.V3(x0, 0, z0),
				math3d.V3(x1, 0, z0),
				math3d.V3(x1, 0, z1),
				math3d.V3(x0, 0, z1),
				c,
			)
		}
	}
}

// drawTrack lays the road, a dashed centerline and striped walls along the
// stadium outline.
func (s *Scene) drawTrack(r *Rasterizer, t kart.Stadium) {
	pts := t.Outline(s.Segments)
	n := len(pts)

	edges := func(p math3d.Vec3) (inner, outer math3d.Vec3) {
		_, normal := t.Project(p)
		return p.Sub(normal.Scale(t.HalfWidth)), p.Add(normal.Scale(t.HalfWidth))
	}
	up := func(p math3d.Vec3, y float64) math3d.Vec3 { return p.WithY(y) }

	for i := range n {
		a, b := pts[i], pts[(i+1)%n]
		ai, ao := edges(a)
		bi, bo := edges(b)

		r.DrawQuad(up(ai, roadLift), up(ao, roadLift), up(bo, roadLift), up(bi, roadLift), ColorRoad)

		if i%2 == 0 {
			_, na := t.Project(a)
			_, nb := t.Project(b)
			const half = 0.15
			r.DrawQuad(
				up(a.Sub(na.Scale(half)), lineLift),
				up(a.Add(na.Scale(half)), lineLift),
				up(b.Add(nb.Scale(half)), lineLift),
				up(b.Sub(nb.Scale(half)), lineLift),
				ColorLine,
			)
		}

		wall := ColorKerb
		if i%2 != 0 {
			wall = ColorKerbAlt
		}
		h := s.WallHeight
		r.DrawQuad(ai, bi, up(bi, h), up(ai, h), Shade(wall, 0.85))
		r.DrawQuad(ao, bo, up(bo, h), up(ao, h), Shade(wall, 0.7))
	}
}

// drawCar places the body on the ground below the car's ride height and
// each wheel at its hub, yawed for steering and spun about its axle.
func (s *Scene) drawCar(r *Rasterizer, car *kart.Car, ride float64) {
	root := math3d.Pose(car.Position.WithY(car.Position.Y-ride), car.Heading)
	if s.Body != nil {
		r.DrawMesh(s.Body, root, car.Paint.Color, s.Light)
	}
	if s.Wheel == nil {
		return
	}
	for _, wh := range car.Wheels {
		m := root.
			Mul(math3d.Translate(wh.Offset)).
			Mul(math3d.RotateY(wh.Yaw)).
			Mul(math3d.RotateX(wh.Spin))
		r.DrawMesh(s.Wheel, m, car.Paint.Color, s.Light)
	}
}

// drawMarker rings a car on the ground.
func (s *Scene) drawMarker(r *Rasterizer, car *kart.Car, ride float64) {
	const (
		radius = 3.5
		steps  = 24
	)
	base := car.Position.WithY(car.Position.Y - ride + lineLift)
	prev := base.Add(math3d.HeadingForward(0).Scale(radius))
	for i := 1; i <= steps; i++ {
		next := base.Add(math3d.HeadingForward(2 * math.Pi * float64(i) / steps).Scale(radius))
		r.DrawLine3D(prev, next, ColorMarker)
		prev = next
	}
}
