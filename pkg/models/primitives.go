package models

import (
	"image/color"
	"math"

	"github.com/taigrr/crashkart/pkg/math3d"
)

// Stock materials of the procedural kart.
var (
	Paint     = Material{Name: PaintMaterial}
	Trim      = Material{Name: "trim", Color: color.RGBA{13, 13, 13, 255}}
	Glass     = Material{Name: "glass", Color: color.RGBA{40, 44, 60, 255}}
	Headlight = Material{Name: "headlight", Color: color.RGBA{255, 255, 230, 255}}
	Taillight = Material{Name: "taillight", Color: color.RGBA{204, 0, 0, 255}}
	Tire      = Material{Name: "tire", Color: color.RGBA{26, 26, 26, 255}}
	Rim       = Material{Name: "rim", Color: color.RGBA{180, 180, 180, 255}}
)

// Box builds an axis-aligned box centered on the origin. Every side has
// its own four vertices so the box shades flat.
func Box(name string, width, height, depth float64, mat Material) *Mesh {
	m := NewMesh(name)
	mi := m.AddMaterial(mat)
	hx, hy, hz := width/2, height/2, depth/2

	sides := []struct {
		normal math3d.Vec3
		u, v   math3d.Vec3 // in-plane half axes, u × v along normal
	}{
		{math3d.V3(1, 0, 0), math3d.V3(0, 0, -hz), math3d.V3(0, hy, 0)},
		{math3d.V3(-1, 0, 0), math3d.V3(0, 0, hz), math3d.V3(0, hy, 0)},
		{math3d.V3(0, 1, 0), math3d.V3(hx, 0, 0), math3d.V3(0, 0, -hz)},
		{math3d.V3(0, -1, 0), math3d.V3(hx, 0, 0), math3d.V3(0, 0, hz)},
		{math3d.V3(0, 0, 1), math3d.V3(hx, 0, 0), math3d.V3(0, hy, 0)},
		{math3d.V3(0, 0, -1), math3d.V3(-hx, 0, 0), math3d.V3(0, hy, 0)},
	}
	extent := math3d.V3(hx, hy, hz)

	for _, s := range sides {
		center := s.normal.Mul(extent)
		base := len(m.Vertices)
		for _, corner := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := center.Add(s.u.Scale(corner[0])).Add(s.v.Scale(corner[1]))
			m.Vertices = append(m.Vertices, MeshVertex{Position: p, Normal: s.normal})
		}
		m.Faces = append(m.Faces,
			Face{V: [3]int{base, base + 1, base + 2}, Material: mi},
			Face{V: [3]int{base, base + 2, base + 3}, Material: mi},
		)
	}
	m.CalculateBounds()
	return m
}

// Cylinder builds a closed cylinder whose axis runs along X, the way a
// wheel sits on an axle.
func Cylinder(name string, diameter, width float64, segments int, side, hub Material) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := NewMesh(name)
	si := m.AddMaterial(side)
	ci := m.AddMaterial(hub)
	r, hw := diameter/2, width/2

	ring := func(i int) (y, z float64) {
		a := 2 * math.Pi * float64(i) / float64(segments)
		return r * math.Sin(a), r * math.Cos(a)
	}

	// Tread.
	for i := range segments {
		y0, z0 := ring(i)
		y1, z1 := ring(i + 1)
		n := math3d.V3(0, (y0+y1)/2, (z0+z1)/2).Normalize()
		base := len(m.Vertices)
		m.Vertices = append(m.Vertices,
			MeshVertex{Position: math3d.V3(-hw, y0, z0), Normal: n},
			MeshVertex{Position: math3d.V3(hw, y0, z0), Normal: n},
			MeshVertex{Position: math3d.V3(hw, y1, z1), Normal: n},
			MeshVertex{Position: math3d.V3(-hw, y1, z1), Normal: n},
		)
		m.Faces = append(m.Faces,
			Face{V: [3]int{base, base + 1, base + 2}, Material: si},
			Face{V: [3]int{base, base + 2, base + 3}, Material: si},
		)
	}

	// Hub caps as triangle fans.
	for _, x := range []float64{-hw, hw} {
		n := math3d.V3(math.Copysign(1, x), 0, 0)
		center := len(m.Vertices)
		m.Vertices = append(m.Vertices, MeshVertex{Position: math3d.V3(x, 0, 0), Normal: n})
		for i := range segments {
			y, z := ring(i)
			m.Vertices = append(m.Vertices, MeshVertex{Position: math3d.V3(x, y, z), Normal: n})
		}
		for i := range segments {
			a := center + 1 + i
			b := center + 1 + (i+1)%segments
			if x > 0 {
				a, b = b, a
			}
			m.Faces = append(m.Faces, Face{V: [3]int{center, a, b}, Material: ci})
		}
	}

	m.CalculateBounds()
	return m
}

// part places one box of the kart body.
type part struct {
	name    string
	size    math3d.Vec3
	pos     math3d.Vec3
	pitch   float64
	mat     Material
	mirrorX bool // also place a copy at -pos.X
}

var kartParts = []part{
	{name: "lowerBody", size: math3d.V3(2, 0.4, 4.5), pos: math3d.V3(0, 0.3, 0), mat: Paint},
	{name: "frontWedge", size: math3d.V3(1.9, 0.3, 1.2), pos: math3d.V3(0, 0.25, 2.5), pitch: -0.15, mat: Paint},
	{name: "frontSplitter", size: math3d.V3(2.1, 0.08, 0.6), pos: math3d.V3(0, 0.1, 2.9), mat: Trim},
	{name: "rearSection", size: math3d.V3(2, 0.5, 1.2), pos: math3d.V3(0, 0.35, -1.8), mat: Paint},
	{name: "cabin", size: math3d.V3(1.6, 0.5, 1.8), pos: math3d.V3(0, 0.7, -0.2), mat: Paint},
	{name: "windshield", size: math3d.V3(1.5, 0.5, 0.1), pos: math3d.V3(0, 0.85, 0.75), pitch: -0.6, mat: Glass},
	{name: "rearWindow", size: math3d.V3(1.4, 0.4, 0.1), pos: math3d.V3(0, 0.85, -1.0), pitch: 0.5, mat: Glass},
	{name: "sideWindow", size: math3d.V3(0.1, 0.35, 1.2), pos: math3d.V3(0.8, 0.8, -0.1), mat: Glass, mirrorX: true},
	{name: "intake", size: math3d.V3(0.15, 0.25, 0.8), pos: math3d.V3(1.0, 0.35, -0.8), mat: Trim, mirrorX: true},
	{name: "spoiler", size: math3d.V3(2.0, 0.05, 0.3), pos: math3d.V3(0, 1.0, -2.2), mat: Paint},
	{name: "spoilerSupport", size: math3d.V3(0.08, 0.35, 0.1), pos: math3d.V3(0.7, 0.8, -2.2), mat: Paint, mirrorX: true},
	{name: "headlight", size: math3d.V3(0.35, 0.1, 0.05), pos: math3d.V3(0.6, 0.35, 3.0), mat: Headlight, mirrorX: true},
	{name: "tailLight", size: math3d.V3(0.4, 0.15, 0.05), pos: math3d.V3(0.6, 0.45, -2.4), mat: Taillight, mirrorX: true},
}

// KartBody builds the kart body without wheels, nose toward +Z, resting on
// y = 0. Painted panels use PaintMaterial.
func KartBody() *Mesh {
	body := NewMesh("kart")
	body.AddMaterial(Paint)
	for _, p := range kartParts {
		box := Box(p.name, p.size.X, p.size.Y, p.size.Z, p.mat)
		place := func(pos math3d.Vec3) {
			body.Append(box, math3d.Translate(pos).Mul(math3d.RotateX(p.pitch)))
		}
		place(p.pos)
		if p.mirrorX {
			place(math3d.V3(-p.pos.X, p.pos.Y, p.pos.Z))
		}
	}
	return body
}

// KartWheel builds one wheel centered on its hub: a tire with a rim inset.
func KartWheel() *Mesh {
	wheel := Cylinder("tire", 0.7, 0.35, 16, Tire, Tire)
	rim := Cylinder("rim", 0.45, 0.36, 8, Rim, Rim)
	wheel.Append(rim, math3d.Identity())
	wheel.Name = "wheel"
	return wheel
}
