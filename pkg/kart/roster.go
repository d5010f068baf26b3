package kart

import (
	"math"
	"math/rand"

	"github.com/taigrr/crashkart/pkg/math3d"
)

// Variant selects the playfield.
type Variant string

const (
	// VariantTrack is the walled stadium.
	VariantTrack Variant = "track"
	// VariantOpen is the unbounded lot with no walls.
	VariantOpen Variant = "open"
)

// Valid reports whether v names a known variant.
func (v Variant) Valid() bool {
	return v == VariantTrack || v == VariantOpen
}

// openSpawns are where the parked cars of the open lot stand.
var openSpawns = []math3d.Vec2{
	{X: 15, Y: 10},
	{X: -20, Y: 5},
	{X: 30, Y: -15},
	{X: -10, Y: -25},
	{X: 25, Y: 25},
	{X: -30, Y: -30},
	{X: 40, Y: 0},
}

// OpenRoster builds the open lot: the player's white car at the origin and
// the rest parked at fixed spots facing random directions.
func OpenRoster(rng *rand.Rand, rideHeight float64) []*Car {
	cars := make([]*Car, 0, len(openSpawns)+1)
	cars = append(cars, NewCar(Paints[0], math3d.V3(0, rideHeight, 0), 0))
	for i, p := range openSpawns {
		paint := Paints[(i+1)%len(Paints)]
		cars = append(cars, NewCar(paint, p.Lift(rideHeight), rng.Float64()*2*math.Pi))
	}
	return cars
}

// TrackRoster builds the stadium grid: the player on the right straight
// facing +Z and one parked car of every other color spread around the lap.
func TrackRoster(s Stadium, rideHeight float64) []*Car {
	n := len(Paints)
	cars := make([]*Car, 0, n)
	for i, paint := range Paints {
		p, heading := s.PointAt(float64(i) / float64(n))
		cars = append(cars, NewCar(paint, p.WithY(rideHeight), heading))
	}
	return cars
}
