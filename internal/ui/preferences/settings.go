package preferences

import (
	"eyeflow/internal/core/motion"
)

const (
	MinBallSize     = 16
	MaxBallSize     = 64
	DefaultBallSize = 32
)

// Settings defines editable user preferences.
type Settings struct {
	Speed        motion.Speed
	Pattern      motion.Pattern
	SoundEnabled bool
	BallSize     float32
}

// DefaultSettings returns default settings for EyeFlow.
func DefaultSettings() Settings {
	return Settings{
		Speed:        motion.SpeedMedium,
		Pattern:      motion.PatternRandom,
		SoundEnabled: true,
		BallSize:     DefaultBallSize,
	}
}

// Sanitized replaces out-of-range values with defaults.
func (settings Settings) Sanitized() Settings {
	defaults := DefaultSettings()
	if _, err := motion.ParseSpeed(string(settings.Speed)); err != nil {
		settings.Speed = defaults.Speed
	}
	if _, err := motion.ParsePattern(string(settings.Pattern)); err != nil {
		settings.Pattern = defaults.Pattern
	}
	if settings.BallSize < MinBallSize || settings.BallSize > MaxBallSize {
		settings.BallSize = defaults.BallSize
	}
	return settings
}
