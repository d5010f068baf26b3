package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Pose(V3(1, 2, 3), 0.5)
	v := V4FromV3(V3(1, 2, 3), 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkPose(b *testing.B) {
	p := V3(30, 1, -12)

	for b.Loop() {
		_ = Pose(p, 1.2)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkHeadingForward(b *testing.B) {
	for b.Loop() {
		_ = HeadingForward(0.7)
	}
}
