package motion

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(bounds Bounds) *Generator {
	return NewGenerator(bounds, rand.New(rand.NewSource(7)))
}

func TestNewGeneratorStartsInsideBounds(t *testing.T) {
	generator := newTestGenerator(Bounds{Width: 400, Height: 300})
	state := generator.State()

	assert.Equal(t, Point{X: 50, Y: 50}, state.Position)
	assert.Equal(t, PatternRandom, state.Pattern)
	assert.Equal(t, SpeedMedium, state.Speed)
	assert.True(t, inside(state.Target, state.Bounds))

	small := newTestGenerator(Bounds{Width: 20, Height: 30})
	assert.Equal(t, Point{X: 20, Y: 30}, small.Position())
}

func TestRandomMovesFractionTowardTarget(t *testing.T) {
	generator := newTestGenerator(Bounds{Width: 400, Height: 300})
	generator.position = Point{X: 0, Y: 0}
	generator.target = Point{X: 200, Y: 100}

	position, ok := generator.AdvanceFrame()
	require.True(t, ok)
	assert.InDelta(t, 10, position.X, 1e-9)
	assert.InDelta(t, 5, position.Y, 1e-9)
}

func TestSpeedScalesRandomStep(t *testing.T) {
	tests := []struct {
		speed Speed
		wantX float64
	}{
		{SpeedSlow, 5},
		{SpeedMedium, 10},
		{SpeedFast, 20},
	}
	for _, tt := range tests {
		t.Run(string(tt.speed), func(t *testing.T) {
			generator := newTestGenerator(Bounds{Width: 400, Height: 300})
			generator.SelectSpeed(tt.speed)
			generator.position = Point{X: 0, Y: 100}
			generator.target = Point{X: 200, Y: 100}

			position, _ := generator.AdvanceFrame()
			assert.InDelta(t, tt.wantX, position.X, 1e-9)
			assert.InDelta(t, 100, position.Y, 1e-9)
		})
	}
}

func TestRandomDrawsNewTargetOnArrival(t *testing.T) {
	bounds := Bounds{Width: 120, Height: 80}
	generator := newTestGenerator(bounds)
	exhausted := Point{X: 60, Y: 40}
	generator.target = exhausted
	generator.position = Point{X: 61, Y: 40.5}

	generator.AdvanceFrame()

	target := generator.State().Target
	assert.NotEqual(t, exhausted, target)
	assert.True(t, inside(target, bounds), "target %+v outside %+v", target, bounds)
}

func TestCircleAfterPatternSwitch(t *testing.T) {
	bounds := Bounds{Width: 400, Height: 300}
	generator := newTestGenerator(bounds)
	for i := 0; i < 10; i++ {
		generator.AdvanceFrame()
	}

	generator.SelectPattern(PatternCircle)
	assert.Zero(t, generator.State().PhaseParam)

	position, ok := generator.AdvanceFrame()
	require.True(t, ok)
	assert.InDelta(t, 200+100, position.X, 1e-9)
	assert.InDelta(t, 150, position.Y, 1e-9)
	assert.InDelta(t, 0.02, generator.State().PhaseParam, 1e-12)
}

func TestInfinityCurve(t *testing.T) {
	bounds := Bounds{Width: 300, Height: 200}
	generator := newTestGenerator(bounds)
	generator.SelectPattern(PatternInfinity)
	generator.SelectSpeed(SpeedFast)

	first, _ := generator.AdvanceFrame()
	assert.InDelta(t, 150, first.X, 1e-9)
	assert.InDelta(t, 100, first.Y, 1e-9)

	second, _ := generator.AdvanceFrame()
	assert.InDelta(t, 150+100*math.Sin(0.02), second.X, 1e-9)
	assert.InDelta(t, 100+50*math.Sin(0.04), second.Y, 1e-9)
}

func TestPatternSwitchResetsPhase(t *testing.T) {
	generator := newTestGenerator(Bounds{Width: 300, Height: 200})
	generator.SelectPattern(PatternInfinity)
	for i := 0; i < 50; i++ {
		generator.AdvanceFrame()
	}
	require.NotZero(t, generator.State().PhaseParam)

	generator.SelectPattern(PatternInfinity)
	assert.Zero(t, generator.State().PhaseParam)
}

func TestPositionsStayInBounds(t *testing.T) {
	bounds := Bounds{Width: 250, Height: 90}
	for _, pattern := range Patterns() {
		for _, speed := range Speeds() {
			generator := newTestGenerator(bounds)
			generator.SelectPattern(pattern)
			generator.SelectSpeed(speed)
			for frame := 0; frame < 5000; frame++ {
				position, ok := generator.AdvanceFrame()
				require.True(t, ok)
				require.True(t, inside(position, bounds), "%s/%s frame %d: %+v", pattern, speed, frame, position)
			}
		}
	}
}

func TestDegenerateBoundsIsNoop(t *testing.T) {
	generator := newTestGenerator(Bounds{Width: 400, Height: 300})
	generator.AdvanceFrame()
	before := generator.Position()

	generator.SetBounds(Bounds{Width: 0, Height: 300})
	for _, pattern := range Patterns() {
		generator.SelectPattern(pattern)
		position, ok := generator.AdvanceFrame()
		assert.False(t, ok)
		assert.Equal(t, before, position)
	}

	negative := newTestGenerator(Bounds{Width: -10, Height: -10})
	_, ok := negative.AdvanceFrame()
	assert.False(t, ok)
}

func TestSetBoundsClampsPositionAndTarget(t *testing.T) {
	generator := newTestGenerator(Bounds{Width: 400, Height: 300})
	generator.position = Point{X: 390, Y: 290}
	generator.target = Point{X: 350, Y: 10}

	generator.SetBounds(Bounds{Width: 100, Height: 100})

	state := generator.State()
	assert.Equal(t, Point{X: 100, Y: 100}, state.Position)
	assert.Equal(t, Point{X: 100, Y: 10}, state.Target)
}

func TestFirstRoomyBoundsPlaceMarker(t *testing.T) {
	generator := newTestGenerator(Bounds{})
	_, ok := generator.AdvanceFrame()
	assert.False(t, ok)

	generator.SetBounds(Bounds{Width: 300, Height: 200})
	state := generator.State()
	assert.Equal(t, Point{X: 50, Y: 50}, state.Position)
	assert.NotEqual(t, state.Position, state.Target)
	assert.True(t, inside(state.Target, state.Bounds))
}

func TestResetKeepsSelection(t *testing.T) {
	generator := newTestGenerator(Bounds{Width: 300, Height: 200})
	generator.SelectPattern(PatternInfinity)
	generator.SelectSpeed(SpeedSlow)
	for i := 0; i < 20; i++ {
		generator.AdvanceFrame()
	}

	generator.Reset()
	state := generator.State()
	assert.Equal(t, Point{X: 50, Y: 50}, state.Position)
	assert.Zero(t, state.PhaseParam)
	assert.Equal(t, PatternInfinity, state.Pattern)
	assert.Equal(t, SpeedSlow, state.Speed)
}

func TestParsePatternAndSpeed(t *testing.T) {
	pattern, err := ParsePattern(" Circle ")
	require.NoError(t, err)
	assert.Equal(t, PatternCircle, pattern)

	_, err = ParsePattern("spiral")
	assert.Error(t, err)

	speed, err := ParseSpeed("FAST")
	require.NoError(t, err)
	assert.Equal(t, 2.0, speed.Multiplier())

	_, err = ParseSpeed("warp")
	assert.Error(t, err)
	assert.Equal(t, 1.0, Speed("warp").Multiplier())
}

func inside(point Point, bounds Bounds) bool {
	return point.X >= 0 && point.X <= bounds.Width && point.Y >= 0 && point.Y <= bounds.Height
}
