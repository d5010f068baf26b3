// Package kart implements the Crash Kart simulation: the arcade motion
// model, the stadium wall constraint, car stealing and the chase camera.
//
// Everything here is engine-agnostic. A World is advanced once per frame
// with a Controls snapshot and yields a Readout for the HUD; renderers read
// car poses and the camera rig after each step.
package kart

import (
	"image/color"

	"github.com/taigrr/crashkart/pkg/math3d"
)

// Paint is a named car color.
type Paint struct {
	Name  string
	Color color.RGBA
}

// Paints is the fixed palette cars are painted from.
var Paints = []Paint{
	{"White", color.RGBA{255, 255, 255, 255}},
	{"Red", color.RGBA{230, 26, 26, 255}},
	{"Blue", color.RGBA{26, 77, 230, 255}},
	{"Yellow", color.RGBA{255, 217, 0, 255}},
	{"Green", color.RGBA{26, 179, 51, 255}},
	{"Orange", color.RGBA{255, 128, 0, 255}},
	{"Purple", color.RGBA{153, 26, 204, 255}},
	{"Black", color.RGBA{26, 26, 26, 255}},
}

// WheelSlot identifies one of a car's four wheels.
type WheelSlot int

const (
	FrontLeft WheelSlot = iota
	FrontRight
	RearLeft
	RearRight
)

func (s WheelSlot) String() string {
	switch s {
	case FrontLeft:
		return "FL"
	case FrontRight:
		return "FR"
	case RearLeft:
		return "RL"
	case RearRight:
		return "RR"
	}
	return "?"
}

// Front reports whether the wheel steers.
func (s WheelSlot) Front() bool {
	return s == FrontLeft || s == FrontRight
}

// Wheel is the animation state of one wheel, relative to the car body.
type Wheel struct {
	Slot   WheelSlot
	Offset math3d.Vec3 // hub position in body space
	Spin   float64     // accumulated tire rotation around the axle
	Yaw    float64     // steering yaw, front wheels only
}

// wheelOffsets are hub positions relative to the visual root, which sits
// on the ground directly below the body origin.
var wheelOffsets = [4]math3d.Vec3{
	FrontLeft:  {X: -1.0, Y: 0.35, Z: 1.6},
	FrontRight: {X: 1.0, Y: 0.35, Z: 1.6},
	RearLeft:   {X: -1.05, Y: 0.35, Z: -1.5},
	RearRight:  {X: 1.05, Y: 0.35, Z: -1.5},
}

// Car is one vehicle of the roster. Cars are created once and live for the
// whole session; a car exclusively owns its wheel state.
type Car struct {
	Paint Paint

	Position math3d.Vec3
	Heading  float64 // yaw about +Y, the only rotational degree of freedom
	Speed    float64 // signed forward speed, negative when reversing
	Steering float64 // cosmetic wheel angle in [-SteerMax, SteerMax]

	PlayerControlled bool
	Wheels           [4]Wheel

	spawn    math3d.Vec3
	spawnYaw float64
}

// NewCar creates a parked car.
func NewCar(paint Paint, position math3d.Vec3, heading float64) *Car {
	c := &Car{
		Paint:    paint,
		Position: position,
		Heading:  heading,
		spawn:    position,
		spawnYaw: heading,
	}
	for i := range c.Wheels {
		c.Wheels[i] = Wheel{Slot: WheelSlot(i), Offset: wheelOffsets[i]}
	}
	return c
}

// Label is the car's display name.
func (c *Car) Label() string {
	return c.Paint.Name
}

// Forward returns the unit direction the car drives along.
func (c *Car) Forward() math3d.Vec3 {
	return math3d.HeadingForward(c.Heading)
}

// SpeedKMH is the HUD speed figure.
func (c *Car) SpeedKMH() float64 {
	if c.Speed < 0 {
		return -c.Speed * kmhPerUnit
	}
	return c.Speed * kmhPerUnit
}

// Park stops the car and straightens its wheels.
func (c *Car) Park() {
	c.Speed = 0
	c.Steering = 0
	for i := range c.Wheels {
		c.Wheels[i].Yaw = 0
	}
}

// Respawn returns the car to where it was created.
func (c *Car) Respawn() {
	c.Position = c.spawn
	c.Heading = c.spawnYaw
	c.Park()
}
