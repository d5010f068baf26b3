// Package render draws Crash Kart scenes into a framebuffer of half-block
// terminal cells using a small z-buffered software rasterizer.
package render

import (
	"math"

	"github.com/taigrr/crashkart/pkg/math3d"
)

// Rasterizer handles software triangle rasterization.
type Rasterizer struct {
	camera       *Camera
	fb           *Framebuffer
	zbuffer      []float64 // Depth buffer (1D array, row-major)
	frustum      Frustum   // Cached frustum planes
	frustumDirty bool      // Whether frustum needs recalculation

	Stats                  Stats   // Per-frame counters, reset by Clear
	DisableBackfaceCulling bool    // If true, render both sides of mesh triangles
	Ambient                float64 // Light every lit face receives, in [0, 1]
}

// Stats counts the work done for one frame.
type Stats struct {
	MeshesTested int // Meshes tested against the frustum
	MeshesCulled int // Meshes skipped as off-screen
	Triangles    int // Triangles that reached the fill stage
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera:       camera,
		fb:           fb,
		frustumDirty: true,
		Ambient:      0.35,
	}
	r.Resize()
	return r
}

// Resize resizes the depth buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// Clear starts a frame: fills the framebuffer with c, resets depth and
// statistics, and picks up camera movement.
func (r *Rasterizer) Clear(c Color) {
	if r.fb != nil {
		r.fb.Clear(c)
	}
	r.ClearDepth()
	r.InvalidateFrustum()
	r.Stats = Stats{}
}

// ClearDepth clears the Z-buffer.
func (r *Rasterizer) ClearDepth() {
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// InvalidateFrustum marks the frustum as needing recalculation.
// Call this when the camera moves.
func (r *Rasterizer) InvalidateFrustum() {
	r.frustumDirty = true
}

// Frustum returns the current frustum (updating if needed).
func (r *Rasterizer) Frustum() Frustum {
	if r.frustumDirty {
		r.frustum = r.camera.Frustum()
		r.frustumDirty = false
	}
	return r.frustum
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y float64 // Screen coordinates
	Z    float64 // NDC depth, smaller is nearer
}

func (r *Rasterizer) toScreen(clip math3d.Vec4) screenVertex {
	ndc := clip.PerspectiveDivide()
	return screenVertex{
		X: (ndc.X + 1) * 0.5 * float64(r.Width()),
		Y: (1 - ndc.Y) * 0.5 * float64(r.Height()), // Y flipped
		Z: ndc.Z,
	}
}

// nearDistance is positive for clip-space points in front of the near plane.
func nearDistance(v math3d.Vec4) float64 {
	return v.Z + v.W
}

func lerp4(a, b math3d.Vec4, t float64) math3d.Vec4 {
	return math3d.Vec4{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
		W: a.W + (b.W-a.W)*t,
	}
}

// clipNear clips a convex clip-space polygon against the near plane
// (Sutherland-Hodgman), appending the result to out. A triangle yields at
// most four vertices.
func clipNear(in, out []math3d.Vec4) []math3d.Vec4 {
	for i, a := range in {
		b := in[(i+1)%len(in)]
		da, db := nearDistance(a), nearDistance(b)
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerp4(a, b, da/(da-db)))
		}
	}
	return out
}

// DrawTriangle rasterizes a world-space triangle in a flat color. Parts
// behind the near plane are clipped away.
func (r *Rasterizer) DrawTriangle(v0, v1, v2 math3d.Vec3, c Color) {
	if r.fb == nil {
		return
	}
	vp := r.camera.ViewProjectionMatrix()
	in := [3]math3d.Vec4{
		vp.MulVec4(math3d.V4FromV3(v0, 1)),
		vp.MulVec4(math3d.V4FromV3(v1, 1)),
		vp.MulVec4(math3d.V4FromV3(v2, 1)),
	}

	var buf [4]math3d.Vec4
	poly := clipNear(in[:], buf[:0])
	if len(poly) < 3 {
		return
	}

	first := r.toScreen(poly[0])
	for i := 1; i+1 < len(poly); i++ {
		r.fill(first, r.toScreen(poly[i]), r.toScreen(poly[i+1]), c)
	}
}

// edge is twice the signed area of (a, b, p).
func edge(a, b screenVertex, px, py float64) float64 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

// fill scan-converts a screen triangle of either winding with depth testing.
func (r *Rasterizer) fill(a, b, c screenVertex, col Color) {
	area := edge(a, b, c.X, c.Y)
	if area == 0 {
		return
	}
	r.Stats.Triangles++

	minX := int(math.Max(0, math.Floor(min3(a.X, b.X, c.X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(a.X, b.X, c.X))))
	minY := int(math.Max(0, math.Floor(min3(a.Y, b.Y, c.Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(a.Y, b.Y, c.Y))))

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			w0 := edge(b, c, px, py) / area
			w1 := edge(c, a, px, py) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*a.Z + w1*b.Z + w2*c.Z
			i := y*r.fb.Width + x
			if z >= r.zbuffer[i] {
				continue
			}
			r.zbuffer[i] = z
			r.fb.Pixels[i] = col
		}
	}
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

// DrawQuad draws a planar quad as two triangles.
func (r *Rasterizer) DrawQuad(v0, v1, v2, v3 math3d.Vec3, c Color) {
	r.DrawTriangle(v0, v1, v2, c)
	r.DrawTriangle(v0, v2, v3, c)
}

// DrawTriangleLit draws a triangle with ambient plus directional diffuse
// lighting. The face normal follows the winding of v0, v1, v2.
func (r *Rasterizer) DrawTriangleLit(v0, v1, v2 math3d.Vec3, base Color, lightDir math3d.Vec3) {
	normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
	r.DrawTriangle(v0, v1, v2, r.lit(base, normal, lightDir.Normalize()))
}

func (r *Rasterizer) lit(base Color, normal, light math3d.Vec3) Color {
	diffuse := math.Max(0, normal.Dot(light))
	return Shade(base, r.Ambient+(1-r.Ambient)*diffuse)
}

// DrawLine3D draws a world-space line on top of the scene, ignoring depth.
func (r *Rasterizer) DrawLine3D(a, b math3d.Vec3, c Color) {
	if r.fb == nil {
		return
	}
	vp := r.camera.ViewProjectionMatrix()
	ca := vp.MulVec4(math3d.V4FromV3(a, 1))
	cb := vp.MulVec4(math3d.V4FromV3(b, 1))

	da, db := nearDistance(ca), nearDistance(cb)
	switch {
	case da < 0 && db < 0:
		return
	case da < 0:
		ca = lerp4(ca, cb, da/(da-db))
	case db < 0:
		cb = lerp4(ca, cb, da/(da-db))
	}

	sa, sb := r.toScreen(ca), r.toScreen(cb)
	// Keep Bresenham's walk bounded when an endpoint sits near the eye.
	limit := float64(4 * (r.Width() + r.Height()))
	if math.Abs(sa.X) > limit || math.Abs(sa.Y) > limit || math.Abs(sb.X) > limit || math.Abs(sb.Y) > limit {
		return
	}
	r.fb.DrawLine(int(sa.X), int(sa.Y), int(sb.X), int(sb.Y), c)
}

// MeshRenderer is implemented by models.Mesh. Declaring it here keeps this
// package free of a models import.
type MeshRenderer interface {
	TriangleCount() int
	GetFace(i int) [3]int
	GetVertex(i int) (pos, normal math3d.Vec3)
	// FaceColor reports a face's own color, or false if the face takes the
	// draw tint.
	FaceColor(i int) (Color, bool)
}

// BoundedMeshRenderer extends MeshRenderer with bounding box support for frustum culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// culled reports whether a bounded mesh placed by a rigid transform is
// entirely off-screen.
func (r *Rasterizer) culled(mesh MeshRenderer, transform math3d.Mat4) bool {
	bounded, ok := mesh.(BoundedMeshRenderer)
	if !ok {
		return false
	}
	r.Stats.MeshesTested++

	lo, hi := bounded.GetBounds()
	center := transform.MulVec3(lo.Add(hi).Scale(0.5))
	if r.Frustum().IntersectsSphere(center, hi.Sub(lo).Len()/2) {
		return false
	}
	r.Stats.MeshesCulled++
	return true
}

// DrawMesh renders a mesh placed by transform with flat lighting. Faces
// without their own color are drawn in tint.
func (r *Rasterizer) DrawMesh(mesh MeshRenderer, transform math3d.Mat4, tint Color, lightDir math3d.Vec3) {
	if r.culled(mesh, transform) {
		return
	}

	light := lightDir.Normalize()
	eye := r.camera.Position

	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)
		p0, _ := mesh.GetVertex(face[0])
		p1, _ := mesh.GetVertex(face[1])
		p2, _ := mesh.GetVertex(face[2])

		v0 := transform.MulVec3(p0)
		v1 := transform.MulVec3(p1)
		v2 := transform.MulVec3(p2)

		normal := v1.Sub(v0).Cross(v2.Sub(v0))
		if !r.DisableBackfaceCulling && normal.Dot(eye.Sub(v0)) <= 0 {
			continue
		}

		base := tint
		if c, ok := mesh.FaceColor(i); ok {
			base = c
		}
		r.DrawTriangle(v0, v1, v2, r.lit(base, normal.Normalize(), light))
	}
}
