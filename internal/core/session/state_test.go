package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eyeflow/internal/core/model"
)

func tickN(timer *Timer, n int) {
	for i := 0; i < n; i++ {
		timer.Tick()
	}
}

func TestNewTimerInitialState(t *testing.T) {
	timer := NewTimer(model.DefaultSessionConfig())
	state := timer.State()

	assert.Equal(t, PhaseTraining, state.Phase)
	assert.Equal(t, 1, state.CurrentSet)
	assert.Equal(t, 3, state.TotalSets)
	assert.Equal(t, 25, state.SecondsRemaining)
}

func TestTrainingEndsAfter25Ticks(t *testing.T) {
	timer := NewTimer(model.DefaultSessionConfig())

	tickN(timer, 24)
	assert.Equal(t, PhaseTraining, timer.State().Phase)
	assert.Equal(t, 1, timer.State().SecondsRemaining)

	transition := timer.Tick()
	assert.True(t, transition.Changed)
	assert.Equal(t, PhaseTraining, transition.From)
	assert.Equal(t, PhaseResting, transition.To)

	state := timer.State()
	assert.Equal(t, PhaseResting, state.Phase)
	assert.Equal(t, 2, state.CurrentSet)
	assert.Equal(t, 10, state.SecondsRemaining)
}

func TestRestReturnsToTraining(t *testing.T) {
	timer := NewTimer(model.DefaultSessionConfig())
	tickN(timer, 25+9)
	assert.Equal(t, PhaseResting, timer.State().Phase)

	transition := timer.Tick()
	assert.Equal(t, PhaseResting, transition.From)
	assert.Equal(t, PhaseTraining, transition.To)
	assert.Equal(t, 2, timer.State().CurrentSet)
	assert.Equal(t, 25, timer.State().SecondsRemaining)
}

func TestCompletesAfterThreeCycles(t *testing.T) {
	timer := NewTimer(model.DefaultSessionConfig())

	tickN(timer, 3*(25+10)-1)
	require.Equal(t, PhaseResting, timer.State().Phase)
	require.Equal(t, 4, timer.State().CurrentSet)

	transition := timer.Tick()
	assert.Equal(t, PhaseComplete, transition.To)
	assert.Equal(t, PhaseComplete, timer.State().Phase)
	assert.Equal(t, 0, timer.State().SecondsRemaining)

	for i := 0; i < 100; i++ {
		transition = timer.Tick()
		assert.False(t, transition.Changed)
	}
	assert.Equal(t, PhaseComplete, timer.State().Phase)
	assert.Equal(t, 3, timer.State().DisplaySet())
}

func TestCycleCountBeforeComplete(t *testing.T) {
	timer := NewTimer(model.DefaultSessionConfig())

	restToTraining := 0
	trainingToRest := 0
	for timer.State().Phase != PhaseComplete {
		transition := timer.Tick()
		if !transition.Changed {
			continue
		}
		switch {
		case transition.From == PhaseTraining && transition.To == PhaseResting:
			trainingToRest++
		case transition.From == PhaseResting && transition.To == PhaseTraining:
			restToTraining++
		}
		assert.LessOrEqual(t, timer.State().DisplaySet(), timer.State().TotalSets)
	}

	assert.Equal(t, 3, trainingToRest)
	assert.Equal(t, 2, restToTraining)
}

func TestCountdownMonotonicWithinPhase(t *testing.T) {
	timer := NewTimer(model.DefaultSessionConfig())
	previous := timer.State()

	for n := 0; n < 3*(25+10); n++ {
		transition := timer.Tick()
		current := timer.State()
		assert.GreaterOrEqual(t, current.SecondsRemaining, 0)
		if transition.Changed {
			assert.Equal(t, 1, previous.SecondsRemaining, "phase changed before reaching zero at tick %d", n)
		} else {
			assert.Equal(t, previous.SecondsRemaining-1, current.SecondsRemaining, "tick %d", n)
		}
		previous = current
	}
}

func TestCustomSchedule(t *testing.T) {
	timer := NewTimer(model.SessionConfig{
		TrainingDuration: 2 * time.Second,
		RestDuration:     time.Second,
		TotalSets:        1,
	})

	tickN(timer, 2)
	assert.Equal(t, PhaseResting, timer.State().Phase)
	assert.Equal(t, 1, timer.State().SecondsRemaining)

	timer.Tick()
	assert.Equal(t, PhaseComplete, timer.State().Phase)
}

func TestResetRestoresInitialState(t *testing.T) {
	timer := NewTimer(model.DefaultSessionConfig())
	tickN(timer, 200)
	require.Equal(t, PhaseComplete, timer.State().Phase)

	timer.Reset()
	assert.Equal(t, State{Phase: PhaseTraining, CurrentSet: 1, TotalSets: 3, SecondsRemaining: 25}, timer.State())
}

func TestZeroConfigFallsBackToDefaults(t *testing.T) {
	timer := NewTimer(model.SessionConfig{})
	assert.Equal(t, model.DefaultSessionConfig(), timer.Config())
}
