// Package models provides kart geometry for Crash Kart: the mesh type the
// rasterizer draws, procedural kart parts, and GLB loading.
package models

import (
	"image/color"

	"github.com/taigrr/crashkart/pkg/math3d"
)

// PaintMaterial is the material name renderers replace with the car's color.
const PaintMaterial = "paint"

// Mesh represents a 3D mesh with vertices, faces, and materials.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Face represents a triangle face with vertex indices and material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is a flat surface color.
type Material struct {
	Name  string
	Color color.RGBA
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateNormals assigns each face's normal to its vertices. Vertices
// shared between faces end up with the normal of the last face.
func (m *Mesh) CalculateNormals() {
	for i := range m.Faces {
		f := &m.Faces[i]
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()

		m.Vertices[f.V[0]].Normal = normal
		m.Vertices[f.V[1]].Normal = normal
		m.Vertices[f.V[2]].Normal = normal
	}
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// AddMaterial registers a material and returns its index. A material with
// the same name is reused.
func (m *Mesh) AddMaterial(mat Material) int {
	for i, existing := range m.Materials {
		if existing.Name == mat.Name {
			return i
		}
	}
	m.Materials = append(m.Materials, mat)
	return len(m.Materials) - 1
}

// Append merges part into m after transforming it. Part materials are
// matched to m's by name.
func (m *Mesh) Append(part *Mesh, mat math3d.Mat4) {
	remap := make([]int, len(part.Materials))
	for i, pm := range part.Materials {
		remap[i] = m.AddMaterial(pm)
	}

	base := len(m.Vertices)
	for _, v := range part.Vertices {
		m.Vertices = append(m.Vertices, MeshVertex{
			Position: mat.MulVec3(v.Position),
			Normal:   mat.MulVec3Dir(v.Normal).Normalize(),
		})
	}
	for _, f := range part.Faces {
		nf := Face{V: [3]int{f.V[0] + base, f.V[1] + base, f.V[2] + base}, Material: -1}
		if f.Material >= 0 && f.Material < len(remap) {
			nf.Material = remap[f.Material]
		}
		m.Faces = append(m.Faces, nf)
	}
	m.CalculateBounds()
}

// FitLength rescales the mesh uniformly so its Z extent equals length,
// centers it on the origin in X and Z, and rests its lowest point on y = 0.
func (m *Mesh) FitLength(length float64) {
	m.CalculateBounds()
	size := m.Size()
	if size.Z <= 0 {
		return
	}
	s := length / size.Z
	c := m.Center()
	lift := math3d.V3(-c.X, -m.BoundsMin.Y, -c.Z)
	m.Transform(math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(lift)))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}

// GetVertex returns the position and normal for vertex i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3) {
	v := m.Vertices[i]
	return v.Position, v.Normal
}

// GetFace returns the vertex indices for face i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// GetFaceMaterial returns the material index for face i.
// Returns -1 if no material assigned.
func (m *Mesh) GetFaceMaterial(i int) int {
	return m.Faces[i].Material
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// GetBounds returns the bounding box.
// Implements render.BoundedMeshRenderer interface.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// FaceColor returns the fixed color of face i. It reports false for
// painted faces and faces without a material, which take the draw tint.
// Implements render.MeshRenderer interface.
func (m *Mesh) FaceColor(i int) (color.RGBA, bool) {
	mat := m.GetMaterial(m.Faces[i].Material)
	if mat == nil || mat.Name == PaintMaterial {
		return color.RGBA{}, false
	}
	return mat.Color, true
}
