package kart

import "github.com/taigrr/crashkart/pkg/math3d"

// RigSettings positions the chase camera relative to the car.
type RigSettings struct {
	Distance  float64 `yaml:"distance"`   // behind the car
	Height    float64 `yaml:"height"`     // above the car
	LookAhead float64 `yaml:"look_ahead"` // aim point in front of the car
	Smoothing float64 `yaml:"smoothing"`  // fraction of the gap closed per frame
}

// DefaultRig returns the stock chase camera.
func DefaultRig() RigSettings {
	return RigSettings{
		Distance:  12,
		Height:    5,
		LookAhead: 3,
		Smoothing: 0.08,
	}
}

// ChaseCamera follows a car from behind. Position and aim are each eased
// toward their targets by a constant fraction per frame, which gives a
// damped lag without tracking velocity.
type ChaseCamera struct {
	Settings RigSettings
	Position math3d.Vec3
	Target   math3d.Vec3
}

// NewChaseCamera returns a rig at its initial pose.
func NewChaseCamera(s RigSettings) ChaseCamera {
	return ChaseCamera{
		Settings: s,
		Position: math3d.V3(0, 8, -15),
		Target:   math3d.Zero3(),
	}
}

// Goal returns where the rig wants to be and where it wants to look for
// a car at position facing heading.
func (c *ChaseCamera) Goal(position math3d.Vec3, heading float64) (eye, aim math3d.Vec3) {
	back := math3d.HeadingBackward(heading)
	eye = math3d.V3(
		position.X+back.X*c.Settings.Distance,
		position.Y+c.Settings.Height,
		position.Z+back.Z*c.Settings.Distance,
	)
	fwd := back.Negate()
	aim = math3d.V3(
		position.X+fwd.X*c.Settings.LookAhead,
		position.Y+1,
		position.Z+fwd.Z*c.Settings.LookAhead,
	)
	return eye, aim
}

// Follow eases the rig one frame toward car. A nil car leaves it in place.
func (c *ChaseCamera) Follow(car *Car) {
	if car == nil {
		return
	}
	eye, aim := c.Goal(car.Position, car.Heading)
	c.Position = c.Position.Lerp(eye, c.Settings.Smoothing)
	c.Target = c.Target.Lerp(aim, c.Settings.Smoothing)
}

// Snap moves the rig straight onto its goal for car.
func (c *ChaseCamera) Snap(car *Car) {
	if car == nil {
		return
	}
	c.Position, c.Target = c.Goal(car.Position, car.Heading)
}
