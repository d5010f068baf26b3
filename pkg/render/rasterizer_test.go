package render

import (
	"math"
	"testing"

	"github.com/taigrr/crashkart/pkg/math3d"
)

var (
	testRed   = RGB(255, 0, 0)
	testBlue  = RGB(0, 0, 255)
	testClear = RGB(1, 2, 3)
)

// mockMesh implements MeshRenderer for testing.
type mockMesh struct {
	verts []math3d.Vec3
	faces [][3]int
	fixed map[int]Color
}

func (m *mockMesh) TriangleCount() int   { return len(m.faces) }
func (m *mockMesh) GetFace(i int) [3]int { return m.faces[i] }
func (m *mockMesh) GetVertex(i int) (pos, normal math3d.Vec3) {
	return m.verts[i], math3d.Zero3()
}

func (m *mockMesh) FaceColor(i int) (Color, bool) {
	c, ok := m.fixed[i]
	return c, ok
}

// boundedMesh adds bounds so the rasterizer can frustum-cull it.
type boundedMesh struct {
	mockMesh
	lo, hi math3d.Vec3
}

func (m *boundedMesh) GetBounds() (min, max math3d.Vec3) { return m.lo, m.hi }

// createTestRasterizer creates a rasterizer whose camera sits at z = -10
// looking at the origin.
func createTestRasterizer(width, height int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(width, height)
	camera := NewCamera()
	camera.SetPosition(math3d.V3(0, 0, -10))
	camera.LookAt(math3d.Zero3())
	camera.SetAspectRatio(float64(width) / float64(height))
	r := NewRasterizer(camera, fb)
	r.Clear(testClear)
	return r, fb
}

func countNot(fb *Framebuffer, c Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p != c {
			n++
		}
	}
	return n
}

func TestClipNear(t *testing.T) {
	front := math3d.Vec4{Z: 0, W: 1}
	behind := math3d.Vec4{Z: -3, W: 1}

	tests := []struct {
		name string
		in   []math3d.Vec4
		want int
	}{
		{"all in front", []math3d.Vec4{front, front, front}, 3},
		{"one behind", []math3d.Vec4{front, front, behind}, 4},
		{"two behind", []math3d.Vec4{front, behind, behind}, 3},
		{"all behind", []math3d.Vec4{behind, behind, behind}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := clipNear(tc.in, nil)
			if len(out) != tc.want {
				t.Fatalf("clipNear returned %d vertices, want %d", len(out), tc.want)
			}
			for _, v := range out {
				if nearDistance(v) < -1e-9 {
					t.Errorf("vertex %v left behind the near plane", v)
				}
			}
		})
	}
}

func TestEdge(t *testing.T) {
	a := screenVertex{X: 0, Y: 0}
	b := screenVertex{X: 1, Y: 0}
	if got := edge(a, b, 0, 1); got != 1 {
		t.Errorf("edge = %v, want 1", got)
	}
	if got := edge(b, a, 0, 1); got != -1 {
		t.Errorf("reversed edge = %v, want -1", got)
	}
}

func TestDrawTriangleEitherWinding(t *testing.T) {
	tris := map[string][3]math3d.Vec3{
		"ccw": {math3d.V3(-5, -5, 0), math3d.V3(5, -5, 0), math3d.V3(0, 5, 0)},
		"cw":  {math3d.V3(-5, -5, 0), math3d.V3(0, 5, 0), math3d.V3(5, -5, 0)},
	}

	for name, tri := range tris {
		t.Run(name, func(t *testing.T) {
			r, fb := createTestRasterizer(40, 40)
			r.DrawTriangle(tri[0], tri[1], tri[2], testRed)

			if got := fb.GetPixel(20, 20); got != testRed {
				t.Errorf("center pixel = %v, want red", got)
			}
			if got := fb.GetPixel(0, 0); got != testClear {
				t.Errorf("corner pixel = %v, want clear", got)
			}
			if r.Stats.Triangles != 1 {
				t.Errorf("Stats.Triangles = %d, want 1", r.Stats.Triangles)
			}
		})
	}
}

func TestDrawTriangleDepth(t *testing.T) {
	near := [3]math3d.Vec3{math3d.V3(-5, -5, 0), math3d.V3(5, -5, 0), math3d.V3(0, 5, 0)}
	far := [3]math3d.Vec3{math3d.V3(-5, -5, 2), math3d.V3(5, -5, 2), math3d.V3(0, 5, 2)}

	for _, nearFirst := range []bool{true, false} {
		r, fb := createTestRasterizer(40, 40)
		if nearFirst {
			r.DrawTriangle(near[0], near[1], near[2], testRed)
			r.DrawTriangle(far[0], far[1], far[2], testBlue)
		} else {
			r.DrawTriangle(far[0], far[1], far[2], testBlue)
			r.DrawTriangle(near[0], near[1], near[2], testRed)
		}
		if got := fb.GetPixel(20, 20); got != testRed {
			t.Errorf("nearFirst=%v: center pixel = %v, want the nearer red", nearFirst, got)
		}
	}
}

func TestDrawTriangleBehindCamera(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	r.DrawTriangle(math3d.V3(-5, -5, -20), math3d.V3(5, -5, -20), math3d.V3(0, 5, -20), testRed)

	if n := countNot(fb, testClear); n != 0 {
		t.Errorf("%d pixels drawn for a triangle behind the camera", n)
	}
}

func TestDrawQuadStraddlingNearPlane(t *testing.T) {
	fb := NewFramebuffer(40, 40)
	camera := NewCamera()
	camera.SetPosition(math3d.V3(0, 2, 0))
	camera.LookAt(math3d.V3(0, 0, 10))
	camera.SetAspectRatio(1)
	r := NewRasterizer(camera, fb)
	r.Clear(testClear)

	// Ground running from behind the camera to well in front of it.
	r.DrawQuad(
		math3d.V3(-10, 0, -10),
		math3d.V3(10, 0, -10),
		math3d.V3(10, 0, 10),
		math3d.V3(-10, 0, 10),
		testRed,
	)

	if got := fb.GetPixel(20, 39); got != testRed {
		t.Errorf("bottom center pixel = %v, want ground", got)
	}
	if got := fb.GetPixel(20, 0); got != testClear {
		t.Errorf("top center pixel = %v, want sky", got)
	}
}

func TestDrawMeshBackfaceCulling(t *testing.T) {
	facing := &mockMesh{
		verts: []math3d.Vec3{math3d.V3(-5, -5, 0), math3d.V3(0, 5, 0), math3d.V3(5, -5, 0)},
		faces: [][3]int{{0, 1, 2}},
	}
	away := &mockMesh{verts: facing.verts, faces: [][3]int{{0, 2, 1}}}
	light := math3d.V3(0, 0, -1)

	r, fb := createTestRasterizer(40, 40)
	r.DrawMesh(away, math3d.Identity(), testRed, light)
	if n := countNot(fb, testClear); n != 0 {
		t.Errorf("back face drew %d pixels", n)
	}

	r.DrawMesh(facing, math3d.Identity(), testRed, light)
	if got := fb.GetPixel(20, 20); got != testRed {
		t.Errorf("front face lit toward the light = %v, want full red", got)
	}

	r.Clear(testClear)
	r.DisableBackfaceCulling = true
	r.DrawMesh(away, math3d.Identity(), testRed, light)
	if got := fb.GetPixel(20, 20); got == testClear {
		t.Error("culling disabled but back face was skipped")
	}
}

func TestDrawMeshFaceColor(t *testing.T) {
	m := &mockMesh{
		verts: []math3d.Vec3{math3d.V3(-5, -5, 0), math3d.V3(0, 5, 0), math3d.V3(5, -5, 0)},
		faces: [][3]int{{0, 1, 2}},
		fixed: map[int]Color{0: testBlue},
	}

	r, fb := createTestRasterizer(40, 40)
	r.DrawMesh(m, math3d.Identity(), testRed, math3d.V3(0, 0, -1))
	if got := fb.GetPixel(20, 20); got != testBlue {
		t.Errorf("center pixel = %v, want the face's own blue", got)
	}
}

func TestDrawMeshFrustumCull(t *testing.T) {
	m := &boundedMesh{
		mockMesh: mockMesh{
			verts: []math3d.Vec3{math3d.V3(-1, -1, 0), math3d.V3(0, 1, 0), math3d.V3(1, -1, 0)},
			faces: [][3]int{{0, 1, 2}},
		},
		lo: math3d.V3(-1, -1, 0),
		hi: math3d.V3(1, 1, 0),
	}
	light := math3d.V3(0, 0, -1)

	r, _ := createTestRasterizer(40, 40)
	r.DrawMesh(m, math3d.Translate(math3d.V3(0, 0, -30)), testRed, light)
	r.DrawMesh(m, math3d.Identity(), testRed, light)

	if r.Stats.MeshesTested != 2 || r.Stats.MeshesCulled != 1 {
		t.Errorf("Stats = %+v, want 2 tested and 1 culled", r.Stats)
	}
}

func TestDrawTriangleLit(t *testing.T) {
	tests := []struct {
		name  string
		light math3d.Vec3
		want  Color
	}{
		{"toward light", math3d.V3(0, 0, -1), testRed},
		{"away from light", math3d.V3(0, 0, 1), Shade(testRed, 0.35)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, fb := createTestRasterizer(40, 40)
			// Normal points at the camera (-Z).
			r.DrawTriangleLit(math3d.V3(-5, -5, 0), math3d.V3(0, 5, 0), math3d.V3(5, -5, 0), testRed, tc.light)
			if got := fb.GetPixel(20, 20); got != tc.want {
				t.Errorf("center pixel = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDrawLine3D(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	r.DrawLine3D(math3d.V3(-2, 0, 0), math3d.V3(2, 0, 0), testRed)
	if n := countNot(fb, testClear); n == 0 {
		t.Error("line in view drew nothing")
	}

	r.Clear(testClear)
	r.DrawLine3D(math3d.V3(-2, 0, -20), math3d.V3(2, 0, -20), testRed)
	if n := countNot(fb, testClear); n != 0 {
		t.Errorf("line behind the camera drew %d pixels", n)
	}
}

func TestRasterizerClearDepth(t *testing.T) {
	r, _ := createTestRasterizer(7, 5)
	for i := range r.zbuffer {
		r.zbuffer[i] = 0
	}
	r.ClearDepth()
	for i, z := range r.zbuffer {
		if z != math.MaxFloat64 {
			t.Fatalf("zbuffer[%d] = %v after clear", i, z)
		}
	}
}

func BenchmarkDrawTriangle(b *testing.B) {
	r, _ := createTestRasterizer(160, 90)
	v0, v1, v2 := math3d.V3(-5, -5, 0), math3d.V3(5, -5, 0), math3d.V3(0, 5, 0)
	for b.Loop() {
		r.ClearDepth()
		r.DrawTriangle(v0, v1, v2, testRed)
	}
}
