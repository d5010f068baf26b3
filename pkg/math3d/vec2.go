package math3d

// Vec2 is a point on the ground plane. X maps to world X and Y maps to
// world Z.
type Vec2 struct {
	X, Y float64
}

// Lift returns the 3D point on the plane y = height.
func (a Vec2) Lift(height float64) Vec3 {
	return Vec3{a.X, height, a.Y}
}
