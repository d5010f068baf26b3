package kart

import (
	"image/color"
	"math/rand"

	"go.uber.org/zap"
)

// Setup collects everything that shapes a session.
type Setup struct {
	Variant     Variant
	Tuning      Tuning
	Track       *Stadium // nil means no walls
	Rig         RigSettings
	StealRadius float64
}

// DefaultSetup returns the stock configuration of a variant. Anything that
// is not VariantOpen gets the stadium.
func DefaultSetup(v Variant) Setup {
	if v == VariantOpen {
		return Setup{
			Variant:     VariantOpen,
			Tuning:      OpenWorldTuning(),
			Rig:         DefaultRig(),
			StealRadius: DefaultStealRadius,
		}
	}
	track := DefaultStadium()
	return Setup{
		Variant:     VariantTrack,
		Tuning:      TrackTuning(),
		Track:       &track,
		Rig:         DefaultRig(),
		StealRadius: DefaultStealRadius,
	}
}

// Prompt tells the HUD whether a car can be stolen right now.
type Prompt struct {
	InRange bool
	Label   string
	Color   color.RGBA
}

// Readout is what the HUD shows after a frame.
type Readout struct {
	SpeedKMH float64
	Prompt   Prompt
	Stole    *Car // the car taken this frame, if any
}

// World is the whole simulation state. It replaces the loose globals of a
// scripted scene with one value the frame loop owns and passes around.
type World struct {
	Setup  Setup
	Cars   []*Car
	Camera ChaseCamera

	prox       Proximity
	controlled *Car
	frame      uint64
	log        *zap.Logger
}

// NewWorld creates a world over a fixed roster. The first car starts under
// player control. A nil logger is replaced with a no-op one.
func NewWorld(s Setup, cars []*Car, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		Setup:  s,
		Cars:   cars,
		Camera: NewChaseCamera(s.Rig),
		prox:   NewProximity(s.StealRadius),
		log:    log,
	}
	for _, c := range cars {
		c.PlayerControlled = false
	}
	if len(cars) > 0 {
		w.controlled = cars[0]
		w.controlled.PlayerControlled = true
	}
	log.Debug("world created",
		zap.String("variant", string(s.Variant)),
		zap.Int("cars", len(cars)),
		zap.Bool("walls", s.Track != nil),
	)
	return w
}

// Build creates a world with the stock roster for s.Variant. seed drives
// the headings of the open lot's parked cars.
func Build(s Setup, seed int64, log *zap.Logger) *World {
	var cars []*Car
	switch {
	case s.Variant == VariantOpen || s.Track == nil:
		cars = OpenRoster(rand.New(rand.NewSource(seed)), s.Tuning.RideHeight)
	default:
		cars = TrackRoster(*s.Track, s.Tuning.RideHeight)
	}
	return NewWorld(s, cars, log)
}

// Controlled returns the car the player drives, or nil before setup.
func (w *World) Controlled() *Car {
	return w.controlled
}

// Candidate returns the car that can be stolen, or nil.
func (w *World) Candidate() *Car {
	return w.prox.Candidate()
}

// Frame returns how many frames have been stepped.
func (w *World) Frame() uint64 {
	return w.frame
}

// Step advances the world by one frame: motion, wall constraint, camera,
// proximity scan, then the steal on a fresh press of the steal button.
func (w *World) Step(in Controls) Readout {
	car := w.controlled
	if car == nil {
		return Readout{}
	}
	w.frame++

	Drive(car, in, w.Setup.Tuning)
	if w.Setup.Track != nil {
		if depth := w.Setup.Track.Constrain(car); depth > 0 {
			w.log.Debug("wall contact",
				zap.Uint64("frame", w.frame),
				zap.Float64("depth", depth),
				zap.Float64("speed", car.Speed),
			)
		}
	}
	w.Camera.Follow(car)
	w.prox.Scan(w.Cars, car)

	var stole *Car
	if in.Steal {
		stole = w.steal()
	}
	return w.readout(stole)
}

func (w *World) steal() *Car {
	from := w.controlled
	dist := w.prox.Distance()
	next, ok := w.prox.Steal(from)
	if !ok {
		return nil
	}
	// Speed belongs to the driver: the stolen car takes it over and the
	// abandoned one stays where it was left.
	next.Speed = from.Speed
	from.Park()
	w.controlled = next
	w.log.Info("stole car",
		zap.String("from", from.Label()),
		zap.String("to", next.Label()),
		zap.Float64("distance", dist),
		zap.Uint64("frame", w.frame),
	)
	return next
}

func (w *World) readout(stole *Car) Readout {
	r := Readout{
		SpeedKMH: w.controlled.SpeedKMH(),
		Stole:    stole,
	}
	if c := w.prox.Candidate(); c != nil {
		r.Prompt = Prompt{InRange: true, Label: c.Label(), Color: c.Paint.Color}
	}
	return r
}

// Reset puts every car back on its spawn and hands control to the first car.
func (w *World) Reset() {
	for _, c := range w.Cars {
		c.Respawn()
		c.PlayerControlled = false
	}
	w.prox.Clear()
	w.controlled = nil
	if len(w.Cars) > 0 {
		w.controlled = w.Cars[0]
		w.controlled.PlayerControlled = true
	}
	w.Camera = NewChaseCamera(w.Setup.Rig)
	w.Camera.Snap(w.controlled)
	w.log.Info("world reset", zap.Uint64("frame", w.frame))
}
