package motion

import (
	"math"
	"math/rand"
	"time"
)

const (
	randomStepFraction = 0.05
	arrivalThreshold   = 2.0
	infinityStep       = 0.01
	circleStep         = 0.02
	initialOffset      = 50.0
	maxTargetRedraws   = 8
)

// Point is a position in the area's coordinate space.
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance between two points.
func (point Point) Distance(other Point) float64 {
	return math.Hypot(other.X-point.X, other.Y-point.Y)
}

// Bounds is the reachable extent of the marker: the area size minus the
// marker size. Valid positions lie in [0, Width] x [0, Height].
type Bounds struct {
	Width  float64
	Height float64
}

// Degenerate reports whether no position can be produced.
func (bounds Bounds) Degenerate() bool {
	return bounds.Width <= 0 || bounds.Height <= 0
}

// Center returns the middle of the reachable extent.
func (bounds Bounds) Center() Point {
	return Point{X: bounds.Width / 2, Y: bounds.Height / 2}
}

// Clamp moves a point inside the bounds.
func (bounds Bounds) Clamp(point Point) Point {
	return Point{
		X: clamp(point.X, 0, math.Max(bounds.Width, 0)),
		Y: clamp(point.Y, 0, math.Max(bounds.Height, 0)),
	}
}

// State is a snapshot of the generator.
type State struct {
	Position   Point
	Target     Point
	Pattern    Pattern
	Speed      Speed
	PhaseParam float64
	Bounds     Bounds
}

// Generator computes the marker position for each animation frame. It knows
// nothing about the session phase; callers only advance it while training.
type Generator struct {
	bounds     Bounds
	position   Point
	target     Point
	pattern    Pattern
	speed      Speed
	phaseParam float64
	placed     bool
	rng        *rand.Rand
}

// NewGenerator creates a generator with the marker near the top-left corner
// and a random first target. With degenerate bounds the marker is placed on
// the first SetBounds call that gives it room.
func NewGenerator(bounds Bounds, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	generator := &Generator{
		bounds:  bounds,
		pattern: PatternRandom,
		speed:   SpeedMedium,
		rng:     rng,
	}
	generator.Reset()
	return generator
}

// Reset puts the marker back at its starting point with a fresh target and
// phase. The selected pattern and speed are kept.
func (generator *Generator) Reset() {
	generator.phaseParam = 0
	generator.position = generator.bounds.Clamp(Point{X: initialOffset, Y: initialOffset})
	generator.target = generator.position
	generator.placed = !generator.bounds.Degenerate()
	generator.NewTarget()
}

// State returns the current snapshot.
func (generator *Generator) State() State {
	return State{
		Position:   generator.position,
		Target:     generator.target,
		Pattern:    generator.pattern,
		Speed:      generator.speed,
		PhaseParam: generator.phaseParam,
		Bounds:     generator.bounds,
	}
}

// Position returns the current marker position.
func (generator *Generator) Position() Point {
	return generator.position
}

// SelectPattern switches the trajectory algorithm and restarts its phase.
func (generator *Generator) SelectPattern(pattern Pattern) {
	generator.pattern = pattern
	generator.phaseParam = 0
}

// SelectSpeed changes the multiplier applied from the next frame on.
func (generator *Generator) SelectSpeed(speed Speed) {
	generator.speed = speed
}

// SetBounds updates the reachable extent and pulls position and target
// back inside it.
func (generator *Generator) SetBounds(bounds Bounds) {
	generator.bounds = bounds
	if bounds.Degenerate() {
		return
	}
	if !generator.placed {
		generator.Reset()
		return
	}
	generator.position = bounds.Clamp(generator.position)
	generator.target = bounds.Clamp(generator.target)
}

// NewTarget draws a uniformly random target inside the bounds that differs
// from the current one.
func (generator *Generator) NewTarget() {
	if generator.bounds.Degenerate() {
		return
	}
	previous := generator.target
	for attempt := 0; attempt < maxTargetRedraws; attempt++ {
		generator.target = Point{
			X: generator.rng.Float64() * generator.bounds.Width,
			Y: generator.rng.Float64() * generator.bounds.Height,
		}
		if generator.target != previous {
			return
		}
	}
}

// AdvanceFrame computes the next position. It returns false and keeps the
// last position when the bounds are degenerate.
func (generator *Generator) AdvanceFrame() (Point, bool) {
	if generator.bounds.Degenerate() {
		return generator.position, false
	}

	multiplier := generator.speed.Multiplier()
	switch generator.pattern {
	case PatternInfinity:
		generator.position = infinityPoint(generator.bounds, generator.phaseParam)
		generator.phaseParam += infinityStep * multiplier
	case PatternCircle:
		generator.position = circlePoint(generator.bounds, generator.phaseParam)
		generator.phaseParam += circleStep * multiplier
	default:
		generator.advanceRandom(multiplier)
	}

	generator.position = generator.bounds.Clamp(generator.position)
	return generator.position, true
}

func (generator *Generator) advanceRandom(multiplier float64) {
	if generator.position.Distance(generator.target) < arrivalThreshold {
		generator.NewTarget()
	}
	generator.position.X += (generator.target.X - generator.position.X) * randomStepFraction * multiplier
	generator.position.Y += (generator.target.Y - generator.position.Y) * randomStepFraction * multiplier
}

func infinityPoint(bounds Bounds, t float64) Point {
	center := bounds.Center()
	return Point{
		X: center.X + (bounds.Width/3)*math.Sin(t),
		Y: center.Y + (bounds.Height/4)*math.Sin(2*t),
	}
}

func circlePoint(bounds Bounds, angle float64) Point {
	center := bounds.Center()
	radius := math.Min(bounds.Width, bounds.Height) / 3
	return Point{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
