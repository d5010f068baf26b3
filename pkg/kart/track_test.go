package kart

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/crashkart/pkg/math3d"
)

func TestStadiumProject(t *testing.T) {
	s := DefaultStadium()
	R, L := s.Radius, s.HalfLength

	tests := []struct {
		name   string
		p      math3d.Vec3
		center math3d.Vec3
		normal math3d.Vec3
		offset float64
	}{
		{"right straight centerline", math3d.V3(R, 1, 0), math3d.V3(R, 1, 0), math3d.V3(1, 0, 0), 0},
		{"right straight outside", math3d.V3(R+3, 1, 10), math3d.V3(R, 1, 10), math3d.V3(1, 0, 0), 3},
		{"left straight inside", math3d.V3(-R+2, 1, -5), math3d.V3(-R, 1, -5), math3d.V3(-1, 0, 0), -2},
		{"infield on axis picks right", math3d.V3(0, 1, 0), math3d.V3(R, 1, 0), math3d.V3(1, 0, 0), -R},
		{"far turn apex", math3d.V3(0, 1, L+R+1), math3d.V3(0, 1, L+R), math3d.V3(0, 0, 1), 1},
		{"near turn apex", math3d.V3(0, 1, -L-R), math3d.V3(0, 1, -L-R), math3d.V3(0, 0, -1), 0},
		{"turn boundary", math3d.V3(R, 1, L), math3d.V3(R, 1, L), math3d.V3(1, 0, 0), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			center, normal := s.Project(tc.p)
			assert.InDelta(t, tc.center.X, center.X, 1e-9)
			assert.InDelta(t, tc.center.Y, center.Y, 1e-9)
			assert.InDelta(t, tc.center.Z, center.Z, 1e-9)
			assert.InDelta(t, tc.normal.X, normal.X, 1e-9)
			assert.InDelta(t, tc.normal.Z, normal.Z, 1e-9)
			assert.InDelta(t, tc.offset, s.Offset(tc.p), 1e-9)
		})
	}
}

func TestStadiumProjectTurnCenter(t *testing.T) {
	s := DefaultStadium()

	center, normal := s.Project(math3d.V3(0, 1, s.HalfLength))

	for _, v := range []float64{center.X, center.Y, center.Z, normal.X, normal.Y, normal.Z} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
	assert.Zero(t, s.Offset(math3d.V3(0, 1, -s.HalfLength)))
}

func TestStadiumConstrainKeepsCarInside(t *testing.T) {
	s := DefaultStadium()
	rng := rand.New(rand.NewSource(7))
	extent := s.HalfLength + s.Radius + 2*s.HalfWidth

	for i := range 5000 {
		car := newTestCar(0.6, 0)
		car.Position = math3d.V3(
			(rng.Float64()*2-1)*extent,
			1,
			(rng.Float64()*2-1)*extent,
		)
		before := car.Speed

		depth := s.Constrain(car)

		require.LessOrEqual(t, math.Abs(s.Offset(car.Position)), s.Margin()+1e-9, "sample %d at %v", i, car.Position)
		require.GreaterOrEqual(t, car.Speed, before*s.MinRetain-1e-12)
		if depth == 0 {
			require.Equal(t, before, car.Speed)
		}
	}
}

func TestStadiumConstrainOutsideWall(t *testing.T) {
	s := DefaultStadium()
	car := newTestCar(0.8, 0)
	car.Position = math3d.V3(s.Radius+s.Margin()+1, 1, 5)

	depth := s.Constrain(car)

	assert.InDelta(t, 1, depth, 1e-9)
	assert.InDelta(t, s.Radius+s.Margin(), car.Position.X, 1e-9)
	assert.InDelta(t, 5, car.Position.Z, 1e-12)
	assert.InDelta(t, 0.8*(1-s.Penalty), car.Speed, 1e-12)
}

func TestStadiumConstrainInsideWallInTurn(t *testing.T) {
	s := DefaultStadium()
	car := newTestCar(0.5, 0)
	// Deep in the infield beyond the far turn.
	car.Position = math3d.V3(0, 1, s.HalfLength+5)

	depth := s.Constrain(car)

	assert.InDelta(t, s.Radius-s.Margin()-5, depth, 1e-9)
	assert.InDelta(t, s.HalfLength+s.Radius-s.Margin(), car.Position.Z, 1e-9)
	assert.InDelta(t, 0.5*s.MinRetain, car.Speed, 1e-12, "deep hits are floored")
}

func TestStadiumConstrainNeverSpeedsUp(t *testing.T) {
	s := DefaultStadium()
	s.Penalty = -2
	car := newTestCar(0.8, 0)
	car.Position = math3d.V3(s.Radius+s.Margin()+1, 1, 5)

	require.Positive(t, s.Constrain(car))
	assert.Equal(t, 0.8, car.Speed)
}

func TestStadiumConstrainLeavesTrackAlone(t *testing.T) {
	s := DefaultStadium()
	car := newTestCar(0.7, 0)
	car.Position = math3d.V3(-s.Radius+s.Margin()-0.01, 1, 12)
	start := car.Position

	assert.Zero(t, s.Constrain(car))
	assert.Equal(t, start, car.Position)
	assert.Equal(t, 0.7, car.Speed)
}

func TestStadiumPointAtStaysOnCenterline(t *testing.T) {
	s := DefaultStadium()

	for i := range 200 {
		u := float64(i) / 200
		p, heading := s.PointAt(u)
		assert.InDelta(t, 0, s.Offset(p), 1e-9, "u=%v", u)

		// The direction of travel is tangent to the centerline.
		_, normal := s.Project(p)
		assert.InDelta(t, 0, math3d.HeadingForward(heading).Dot(normal), 1e-9, "u=%v", u)
	}

	start, heading := s.PointAt(0)
	assert.Equal(t, math3d.V3(s.Radius, 0, 0), start)
	assert.Zero(t, heading)
}

func TestStadiumOutline(t *testing.T) {
	s := DefaultStadium()
	assert.Len(t, s.Outline(64), 64)
	assert.Len(t, s.Outline(1), 4)
}
