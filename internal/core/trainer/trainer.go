package trainer

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"eyeflow/internal/core/model"
	"eyeflow/internal/core/motion"
	"eyeflow/internal/core/session"
)

const defaultFrameInterval = time.Second / 60

// Config contains runtime options for Trainer.
type Config struct {
	TickInterval  time.Duration
	FrameInterval time.Duration
	Logger        *slog.Logger
	Rand          *rand.Rand
}

// Trainer is the session context shared by the one-second countdown loop and
// the per-frame motion loop. Every handler runs under one mutex, so the two
// loops never interleave inside a handler.
type Trainer struct {
	mu              sync.Mutex
	options         Config
	timer           *session.Timer
	generator       *motion.Generator
	sink            motion.Sink
	events          []chan Event
	stopCh          chan struct{}
	running         bool
	paused          bool
	runGeneration   uint64
	frameCancel     context.CancelFunc
	frameGeneration uint64
	startedAt       time.Time
}

// New creates a Trainer in the initial Training state. Nothing runs until
// Start is called.
func New(config model.SessionConfig, options Config, sink motion.Sink) *Trainer {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.FrameInterval <= 0 {
		options.FrameInterval = defaultFrameInterval
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if sink == nil {
		sink = motion.NopSink{}
	}

	return &Trainer{
		options:   options,
		timer:     session.NewTimer(config),
		generator: motion.NewGenerator(motion.Bounds{}, options.Rand),
		sink:      sink,
	}
}

// Subscribe registers a new observer channel.
func (trainer *Trainer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	trainer.mu.Lock()
	trainer.events = append(trainer.events, ch)
	trainer.mu.Unlock()
	return ch
}

// Snapshot returns the current session and motion state.
func (trainer *Trainer) Snapshot() Snapshot {
	trainer.mu.Lock()
	defer trainer.mu.Unlock()
	return trainer.snapshotLocked()
}

// Start launches the countdown loop and, while training, the frame loop.
func (trainer *Trainer) Start() {
	trainer.mu.Lock()
	if trainer.running {
		trainer.mu.Unlock()
		return
	}
	if trainer.timer.State().Phase == session.PhaseComplete {
		trainer.mu.Unlock()
		return
	}
	trainer.running = true
	trainer.stopCh = make(chan struct{})
	trainer.startedAt = time.Now()
	trainer.runGeneration++
	stopCh := trainer.stopCh
	generation := trainer.runGeneration
	if trainer.motionActiveLocked() {
		trainer.startFramesLocked()
	}
	trainer.emitLocked(Event{
		Type:     EventStarted,
		Previous: trainer.timer.State().Phase,
		Snapshot: trainer.snapshotLocked(),
		At:       time.Now(),
	})
	position := trainer.generator.Position()
	trainer.mu.Unlock()

	trainer.options.Logger.Info("training session started",
		"sets", trainer.timer.Config().TotalSets,
		"training", trainer.timer.Config().TrainingDuration,
		"rest", trainer.timer.Config().RestDuration)
	trainer.sink.SetPosition(position.X, position.Y)

	go trainer.run(stopCh, generation)
}

// Stop terminates both loops and closes observers.
func (trainer *Trainer) Stop() {
	trainer.mu.Lock()
	trainer.haltLocked()
	events := trainer.events
	trainer.events = nil
	trainer.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Restart discards the current session and begins a new one from set 1.
func (trainer *Trainer) Restart() {
	trainer.mu.Lock()
	trainer.haltLocked()
	trainer.paused = false
	trainer.timer.Reset()
	trainer.generator.Reset()
	trainer.emitLocked(Event{
		Type:     EventRestart,
		Snapshot: trainer.snapshotLocked(),
		At:       time.Now(),
	})
	trainer.mu.Unlock()

	trainer.options.Logger.Info("training session restarted")
	trainer.Start()
}

// Pause freezes the countdown and the marker.
func (trainer *Trainer) Pause() {
	trainer.mu.Lock()
	if trainer.paused {
		trainer.mu.Unlock()
		return
	}
	trainer.paused = true
	trainer.stopFramesLocked()
	trainer.emitLocked(Event{
		Type:     EventPaused,
		Previous: trainer.timer.State().Phase,
		Snapshot: trainer.snapshotLocked(),
		At:       time.Now(),
	})
	trainer.mu.Unlock()
}

// Resume unfreezes the countdown and, while training, the marker.
func (trainer *Trainer) Resume() {
	trainer.mu.Lock()
	if !trainer.paused {
		trainer.mu.Unlock()
		return
	}
	trainer.paused = false
	if trainer.motionActiveLocked() {
		trainer.startFramesLocked()
	}
	trainer.emitLocked(Event{
		Type:     EventResumed,
		Previous: trainer.timer.State().Phase,
		Snapshot: trainer.snapshotLocked(),
		At:       time.Now(),
	})
	trainer.mu.Unlock()
}

// SelectPattern switches the trajectory algorithm.
func (trainer *Trainer) SelectPattern(pattern motion.Pattern) {
	trainer.mu.Lock()
	trainer.generator.SelectPattern(pattern)
	trainer.mu.Unlock()
}

// SelectSpeed changes the motion speed from the next frame on.
func (trainer *Trainer) SelectSpeed(speed motion.Speed) {
	trainer.mu.Lock()
	trainer.generator.SelectSpeed(speed)
	trainer.mu.Unlock()
}

// SetArea updates the training area and marker sizes.
func (trainer *Trainer) SetArea(areaWidth, areaHeight, markerSize float64) {
	trainer.mu.Lock()
	trainer.generator.SetBounds(motion.Bounds{
		Width:  areaWidth - markerSize,
		Height: areaHeight - markerSize,
	})
	position := trainer.generator.Position()
	trainer.mu.Unlock()

	trainer.sink.SetPosition(position.X, position.Y)
}

func (trainer *Trainer) run(stopCh <-chan struct{}, generation uint64) {
	ticker := time.NewTicker(trainer.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			if !trainer.tick(generation, tickTime) {
				return
			}
		}
	}
}

// tick handles one countdown second. It returns false once the session is
// complete or the loop that delivered the tick has been replaced.
func (trainer *Trainer) tick(generation uint64, now time.Time) bool {
	trainer.mu.Lock()
	defer trainer.mu.Unlock()

	if generation != trainer.runGeneration {
		return false
	}
	if trainer.paused {
		return true
	}
	transition := trainer.timer.Tick()
	if !transition.Changed {
		if transition.From == session.PhaseComplete {
			return false
		}
		trainer.emitLocked(Event{
			Type:     EventCountdown,
			Previous: transition.From,
			Snapshot: trainer.snapshotLocked(),
			At:       now,
		})
		return true
	}

	switch transition.To {
	case session.PhaseResting:
		trainer.stopFramesLocked()
	case session.PhaseTraining:
		trainer.generator.NewTarget()
		trainer.startFramesLocked()
	case session.PhaseComplete:
		trainer.stopFramesLocked()
		trainer.running = false
	}

	state := trainer.timer.State()
	trainer.options.Logger.Info("phase change",
		"from", transition.From,
		"to", transition.To,
		"set", state.DisplaySet(),
		"remaining", state.SecondsRemaining)

	trainer.emitLocked(Event{
		Type:     EventPhaseChange,
		Previous: transition.From,
		Snapshot: trainer.snapshotLocked(),
		At:       now,
	})
	return transition.To != session.PhaseComplete
}

func (trainer *Trainer) runFrames(ctx context.Context, generation uint64) {
	ticker := time.NewTicker(trainer.options.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			trainer.frame(generation)
		}
	}
}

// frame advances the marker once. Frames from a cancelled loop, or frames
// arriving while the session is not training, change nothing.
func (trainer *Trainer) frame(generation uint64) {
	trainer.mu.Lock()
	if generation != trainer.frameGeneration || !trainer.motionActiveLocked() {
		trainer.mu.Unlock()
		return
	}
	position, moved := trainer.generator.AdvanceFrame()
	trainer.mu.Unlock()

	if moved {
		trainer.sink.SetPosition(position.X, position.Y)
	}
}

func (trainer *Trainer) motionActiveLocked() bool {
	return !trainer.paused && trainer.timer.State().Phase == session.PhaseTraining
}

func (trainer *Trainer) startFramesLocked() {
	trainer.stopFramesLocked()
	if !trainer.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	trainer.frameCancel = cancel
	go trainer.runFrames(ctx, trainer.frameGeneration)
}

func (trainer *Trainer) stopFramesLocked() {
	if trainer.frameCancel != nil {
		trainer.frameCancel()
		trainer.frameCancel = nil
	}
	trainer.frameGeneration++
}

func (trainer *Trainer) haltLocked() {
	trainer.stopFramesLocked()
	trainer.runGeneration++
	if trainer.running {
		close(trainer.stopCh)
		trainer.running = false
	}
}

func (trainer *Trainer) snapshotLocked() Snapshot {
	return Snapshot{
		Session:   trainer.timer.State(),
		Motion:    trainer.generator.State(),
		Paused:    trainer.paused,
		StartedAt: trainer.startedAt,
	}
}

func (trainer *Trainer) emitLocked(event Event) {
	events := append([]chan Event(nil), trainer.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
