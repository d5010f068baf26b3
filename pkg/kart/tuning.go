package kart

// Tuning holds the per-frame constants of the arcade motion model.
// Speeds are in world units per frame and angles in radians per frame.
type Tuning struct {
	MaxSpeed   float64 `yaml:"max_speed"`
	Accel      float64 `yaml:"accel"`
	Brake      float64 `yaml:"brake"`
	Friction   float64 `yaml:"friction"`    // multiplier applied while coasting
	SteerRate  float64 `yaml:"steer_rate"`  // heading change per frame
	SteerEase  float64 `yaml:"steer_ease"`  // wheel yaw change per frame while turning
	SteerMax   float64 `yaml:"steer_max"`   // wheel yaw limit
	SteerDecay float64 `yaml:"steer_decay"` // wheel yaw multiplier while not turning
	RideHeight float64 `yaml:"ride_height"`
}

const (
	// stopEpsilon is the coasting speed below which a car snaps to rest.
	stopEpsilon = 1e-3
	// steerThreshold is the minimum |speed| at which steering turns the car.
	steerThreshold = 0.01
	// reverseFraction caps reverse speed relative to MaxSpeed.
	reverseFraction = 0.5
	// wheelSpinRate converts speed into tire rotation per frame.
	wheelSpinRate = 2
	// frontWheelYaw scales the steering angle into front wheel yaw.
	frontWheelYaw = 0.5
	// kmhPerUnit converts per-frame speed into the HUD's km/h figure.
	kmhPerUnit = 120
)

// OpenWorldTuning is the tuning of the unbounded parking-lot variant.
func OpenWorldTuning() Tuning {
	return Tuning{
		MaxSpeed:   0.8,
		Accel:      0.02,
		Brake:      0.03,
		Friction:   0.98,
		SteerRate:  0.04,
		SteerEase:  0.15,
		SteerMax:   0.6,
		SteerDecay: 0.7,
		RideHeight: 1,
	}
}

// TrackTuning is the tuning of the walled stadium variant. It accelerates
// and turns more gently than the open world so the walls stay drivable.
func TrackTuning() Tuning {
	t := OpenWorldTuning()
	t.Accel = 0.015
	t.SteerRate = 0.03
	return t
}

// Merge returns t with every non-zero field of o applied on top.
func (t Tuning) Merge(o Tuning) Tuning {
	set := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	set(&t.MaxSpeed, o.MaxSpeed)
	set(&t.Accel, o.Accel)
	set(&t.Brake, o.Brake)
	set(&t.Friction, o.Friction)
	set(&t.SteerRate, o.SteerRate)
	set(&t.SteerEase, o.SteerEase)
	set(&t.SteerMax, o.SteerMax)
	set(&t.SteerDecay, o.SteerDecay)
	set(&t.RideHeight, o.RideHeight)
	return t
}

// MinSpeed is the most negative (reverse) speed the tuning allows.
func (t Tuning) MinSpeed() float64 {
	return -t.MaxSpeed * reverseFraction
}
