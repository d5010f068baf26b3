package kart

import "math"

// DefaultStealRadius is how close another car must be to be stolen.
const DefaultStealRadius = 8.0

// Proximity tracks the nearest stealable car. It is in one of two states:
// no target in range (Candidate returns nil) or a target in range.
type Proximity struct {
	Radius float64

	candidate *Car
	distance  float64
}

// NewProximity returns a scanner for the given radius.
func NewProximity(radius float64) Proximity {
	return Proximity{Radius: radius}
}

// Scan picks the car nearest to from, strictly inside the radius.
// Ties go to the car that comes first in cars.
func (p *Proximity) Scan(cars []*Car, from *Car) *Car {
	p.candidate = nil
	p.distance = math.Inf(1)
	if from == nil {
		return nil
	}

	for _, c := range cars {
		if c == from {
			continue
		}
		d := from.Position.Distance(c.Position)
		if d < p.distance && d < p.Radius {
			p.candidate = c
			p.distance = d
		}
	}
	return p.candidate
}

// Candidate returns the car in range, or nil.
func (p *Proximity) Candidate() *Car {
	return p.candidate
}

// Distance returns the candidate's distance, or +Inf with no candidate.
func (p *Proximity) Distance() float64 {
	if p.candidate == nil {
		return math.Inf(1)
	}
	return p.distance
}

// Clear drops the candidate.
func (p *Proximity) Clear() {
	p.candidate = nil
	p.distance = math.Inf(1)
}

// Steal hands control from current to the candidate and clears the
// candidate. With no candidate it returns current unchanged and false.
func (p *Proximity) Steal(current *Car) (*Car, bool) {
	target := p.candidate
	if target == nil || target == current {
		return current, false
	}
	if current != nil {
		current.PlayerControlled = false
	}
	target.PlayerControlled = true
	p.Clear()
	return target, true
}
