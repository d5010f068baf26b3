package kart

import (
	"math"

	"github.com/taigrr/crashkart/pkg/math3d"
)

// Stadium is a closed track made of two straights at x = ±Radius, running
// from z = -HalfLength to z = +HalfLength, joined by semicircular turns
// centered on (0, ±HalfLength).
//
// The centerline is never stored; every query projects analytically.
type Stadium struct {
	HalfLength float64 `yaml:"half_length"`
	Radius     float64 `yaml:"radius"`
	HalfWidth  float64 `yaml:"half_width"`
	WallInset  float64 `yaml:"wall_inset"`   // distance kept between a car's center and the wall
	Penalty    float64 `yaml:"penalty_rate"` // speed lost per unit of wall penetration
	MinRetain  float64 `yaml:"min_retain"`   // floor on the speed kept by one correction
}

// DefaultStadium returns the stock track.
func DefaultStadium() Stadium {
	return Stadium{
		HalfLength: 40,
		Radius:     30,
		HalfWidth:  8,
		WallInset:  1.2,
		Penalty:    0.5,
		MinRetain:  0.3,
	}
}

// Margin is the largest lateral offset a car may reach.
func (s Stadium) Margin() float64 {
	return s.HalfWidth - s.WallInset
}

// Project returns the centerline point nearest to p and the outward unit
// normal there. Both lie in p's horizontal plane.
func (s Stadium) Project(p math3d.Vec3) (center, normal math3d.Vec3) {
	if math.Abs(p.Z) >= s.HalfLength {
		turn := math3d.V3(0, p.Y, math.Copysign(s.HalfLength, p.Z))
		radial := p.Sub(turn)
		dist := radial.Len()
		if dist == 0 {
			// Exactly on the turn center: any normal is as good as another.
			dist = 1
		}
		normal = radial.Scale(1 / dist)
		return turn.Add(normal.Scale(s.Radius)), normal
	}

	side := 1.0
	if p.X < 0 {
		side = -1
	}
	return math3d.V3(side*s.Radius, p.Y, p.Z), math3d.V3(side, 0, 0)
}

// Offset returns the signed lateral distance of p from the centerline,
// positive toward the outside of the track.
func (s Stadium) Offset(p math3d.Vec3) float64 {
	center, normal := s.Project(p)
	return p.Sub(center).Dot(normal)
}

// Constrain keeps car inside the walls. A car past the margin is pushed
// back onto it and loses speed in proportion to how far it went in, never
// keeping less than MinRetain of its speed and never gaining any. It
// returns the penetration depth.
func (s Stadium) Constrain(car *Car) float64 {
	center, normal := s.Project(car.Position)
	offset := car.Position.Sub(center).Dot(normal)
	margin := s.Margin()

	var depth float64
	switch {
	case offset > margin:
		depth = offset - margin
		car.Position = car.Position.Sub(normal.Scale(depth))
	case offset < -margin:
		depth = -margin - offset
		car.Position = car.Position.Add(normal.Scale(depth))
	default:
		return 0
	}

	car.Speed *= math.Min(1, math.Max(s.MinRetain, 1-depth*s.Penalty))
	return depth
}

// PointAt returns the centerline point a fraction u ∈ [0, 1) of the way
// around the lap, starting at the middle of the right straight and heading
// toward +Z, together with the direction of travel there.
func (s Stadium) PointAt(u float64) (math3d.Vec3, float64) {
	straight := 2 * s.HalfLength
	turn := math.Pi * s.Radius
	lap := 2*straight + 2*turn

	d := math.Mod(u, 1)
	if d < 0 {
		d++
	}
	d *= lap

	// Right straight, second half.
	if d < s.HalfLength {
		return math3d.V3(s.Radius, 0, d), 0
	}
	d -= s.HalfLength

	// Far turn around (0, +L), from +X through +Z to -X.
	if d < turn {
		a := d / s.Radius
		p := math3d.V3(s.Radius*math.Cos(a), 0, s.HalfLength+s.Radius*math.Sin(a))
		return p, -a
	}
	d -= turn

	// Left straight, heading -Z.
	if d < straight {
		return math3d.V3(-s.Radius, 0, s.HalfLength-d), math.Pi
	}
	d -= straight

	// Near turn around (0, -L), from -X through -Z to +X.
	if d < turn {
		a := d / s.Radius
		p := math3d.V3(-s.Radius*math.Cos(a), 0, -s.HalfLength-s.Radius*math.Sin(a))
		return p, math.Pi - a
	}
	d -= turn

	// Right straight, first half.
	return math3d.V3(s.Radius, 0, -s.HalfLength+d), 0
}

// Outline samples the centerline into n points around the lap. Renderers
// offset the samples along Project's normal to build the road and walls.
func (s Stadium) Outline(n int) []math3d.Vec3 {
	if n < 4 {
		n = 4
	}
	pts := make([]math3d.Vec3, n)
	for i := range pts {
		pts[i], _ = s.PointAt(float64(i) / float64(n))
	}
	return pts
}
