package trainer

import (
	"time"

	"eyeflow/internal/core/motion"
	"eyeflow/internal/core/session"
)

// EventType defines the type of Trainer event.
type EventType string

// EventStarted is emitted whenever a session starts, Restart included, after
// EventRestart. EventPhaseChange is only emitted when the phase actually changes.
const (
	EventStarted     EventType = "started"
	EventPhaseChange EventType = "phase_change"
	EventCountdown   EventType = "countdown"
	EventPaused      EventType = "paused"
	EventResumed     EventType = "resumed"
	EventRestart     EventType = "restart"
)

// Snapshot is a consistent view of the whole training session.
type Snapshot struct {
	Session   session.State
	Motion    motion.State
	Paused    bool
	StartedAt time.Time
}

// Event represents a Trainer update for observers.
type Event struct {
	Type     EventType
	Previous session.Phase
	Snapshot Snapshot
	At       time.Time
}
