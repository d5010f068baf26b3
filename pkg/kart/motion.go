package kart

import "math"

// Drive advances one car by one frame of arcade motion.
//
// Speed integrates from the throttle, heading from the steering input, and
// position from heading and speed. Height is pinned to the ride height.
func Drive(car *Car, in Controls, t Tuning) {
	switch {
	case in.Forward:
		car.Speed = math.Min(car.Speed+t.Accel, t.MaxSpeed)
	case in.Backward:
		car.Speed = math.Max(car.Speed-t.Brake, t.MinSpeed())
	default:
		car.Speed *= t.Friction
		if math.Abs(car.Speed) < stopEpsilon {
			car.Speed = 0
		}
	}

	steer(car, in, t)

	fwd := car.Forward()
	car.Position.X += fwd.X * car.Speed
	car.Position.Z += fwd.Z * car.Speed
	car.Position.Y = t.RideHeight

	animateWheels(car)
}

// steer turns the car and eases the cosmetic wheel angle. Reversing
// mirrors the turn like a real car backing up.
func steer(car *Car, in Controls, t Tuning) {
	if math.Abs(car.Speed) <= steerThreshold {
		car.Steering *= t.SteerDecay
		return
	}

	amount := t.SteerRate * sign(car.Speed)
	switch {
	case in.Left:
		car.Heading -= amount
		car.Steering = math.Min(car.Steering+t.SteerEase, t.SteerMax)
	case in.Right:
		car.Heading += amount
		car.Steering = math.Max(car.Steering-t.SteerEase, -t.SteerMax)
	default:
		car.Steering *= t.SteerDecay
	}
}

func animateWheels(car *Car) {
	for i := range car.Wheels {
		w := &car.Wheels[i]
		w.Spin += car.Speed * wheelSpinRate
		if w.Slot.Front() {
			w.Yaw = car.Steering * frontWheelYaw
		}
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
