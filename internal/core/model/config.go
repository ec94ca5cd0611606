package model

import "time"

const (
	DefaultTrainingDuration = 25 * time.Second
	DefaultRestDuration     = 10 * time.Second
	DefaultTotalSets        = 3
)

// SessionConfig defines the set/rest schedule of a training session.
type SessionConfig struct {
	TrainingDuration time.Duration
	RestDuration     time.Duration
	TotalSets        int
}

// DefaultSessionConfig returns the fixed EyeFlow schedule: three sets of
// 25 seconds of tracking followed by 10 seconds of rest.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		TrainingDuration: DefaultTrainingDuration,
		RestDuration:     DefaultRestDuration,
		TotalSets:        DefaultTotalSets,
	}
}

// TrainingSeconds returns the training duration in whole ticks.
func (config SessionConfig) TrainingSeconds() int {
	return durationToTicks(config.TrainingDuration)
}

// RestSeconds returns the rest duration in whole ticks.
func (config SessionConfig) RestSeconds() int {
	return durationToTicks(config.RestDuration)
}

// Normalized replaces unset fields with defaults.
func (config SessionConfig) Normalized() SessionConfig {
	if config.TrainingDuration < time.Second {
		config.TrainingDuration = DefaultTrainingDuration
	}
	if config.RestDuration < time.Second {
		config.RestDuration = DefaultRestDuration
	}
	if config.TotalSets <= 0 {
		config.TotalSets = DefaultTotalSets
	}
	return config
}

func durationToTicks(value time.Duration) int {
	ticks := int(value / time.Second)
	if ticks < 1 {
		return 1
	}
	return ticks
}
