package session

import "eyeflow/internal/core/model"

// Phase represents the current session mode.
type Phase string

const (
	PhaseTraining Phase = "training"
	PhaseResting  Phase = "resting"
	PhaseComplete Phase = "complete"
)

// State is a snapshot of the session countdown.
type State struct {
	Phase            Phase
	CurrentSet       int
	TotalSets        int
	SecondsRemaining int
}

// DisplaySet returns the set number shown to the user, never above TotalSets.
func (state State) DisplaySet() int {
	if state.CurrentSet > state.TotalSets {
		return state.TotalSets
	}
	return state.CurrentSet
}

// Transition describes what a single tick changed.
type Transition struct {
	From    Phase
	To      Phase
	Changed bool
}

// Timer is the Training/Resting/Complete state machine. It has no clock of
// its own; every call to Tick is one elapsed second.
type Timer struct {
	config model.SessionConfig
	state  State
}

// NewTimer creates a timer in its initial Training state.
func NewTimer(config model.SessionConfig) *Timer {
	timer := &Timer{config: config.Normalized()}
	timer.Reset()
	return timer
}

// Reset returns the timer to set 1 of Training.
func (timer *Timer) Reset() {
	timer.state = State{
		Phase:            PhaseTraining,
		CurrentSet:       1,
		TotalSets:        timer.config.TotalSets,
		SecondsRemaining: timer.config.TrainingSeconds(),
	}
}

// State returns the current snapshot.
func (timer *Timer) State() State {
	return timer.state
}

// Config returns the schedule the timer runs.
func (timer *Timer) Config() model.SessionConfig {
	return timer.config
}

// Tick advances the countdown by one second and performs at most one
// phase transition. Ticks after Complete change nothing.
func (timer *Timer) Tick() Transition {
	from := timer.state.Phase
	if from == PhaseComplete {
		return Transition{From: from, To: from}
	}

	if timer.state.SecondsRemaining > 0 {
		timer.state.SecondsRemaining--
	}
	if timer.state.SecondsRemaining > 0 {
		return Transition{From: from, To: from}
	}

	switch from {
	case PhaseTraining:
		timer.state.Phase = PhaseResting
		timer.state.CurrentSet++
		timer.state.SecondsRemaining = timer.config.RestSeconds()
	case PhaseResting:
		if timer.state.CurrentSet > timer.state.TotalSets {
			timer.state.Phase = PhaseComplete
			timer.state.SecondsRemaining = 0
		} else {
			timer.state.Phase = PhaseTraining
			timer.state.SecondsRemaining = timer.config.TrainingSeconds()
		}
	}

	return Transition{From: from, To: timer.state.Phase, Changed: true}
}
