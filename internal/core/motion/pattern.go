package motion

import (
	"fmt"
	"strings"
)

// Pattern selects the trajectory algorithm.
type Pattern string

const (
	PatternRandom   Pattern = "random"
	PatternInfinity Pattern = "infinity"
	PatternCircle   Pattern = "circle"
)

// Patterns lists every pattern in display order.
func Patterns() []Pattern {
	return []Pattern{PatternRandom, PatternInfinity, PatternCircle}
}

// Label returns the human readable pattern name.
func (pattern Pattern) Label() string {
	switch pattern {
	case PatternRandom:
		return "Random"
	case PatternInfinity:
		return "Infinity"
	case PatternCircle:
		return "Circle"
	default:
		return string(pattern)
	}
}

// PatternLabels returns the labels of Patterns in display order.
func PatternLabels() []string {
	labels := make([]string, 0, len(Patterns()))
	for _, pattern := range Patterns() {
		labels = append(labels, pattern.Label())
	}
	return labels
}

// PatternFromLabel maps a display label back to its pattern.
func PatternFromLabel(label string) (Pattern, bool) {
	for _, pattern := range Patterns() {
		if pattern.Label() == label {
			return pattern, true
		}
	}
	return "", false
}

// ParsePattern accepts either the identifier or the label.
func ParsePattern(value string) (Pattern, error) {
	normalized := Pattern(strings.ToLower(strings.TrimSpace(value)))
	for _, pattern := range Patterns() {
		if normalized == pattern {
			return pattern, nil
		}
	}
	return "", fmt.Errorf("unknown pattern %q", value)
}

// Speed is one of the enumerated speed settings.
type Speed string

const (
	SpeedSlow   Speed = "slow"
	SpeedMedium Speed = "medium"
	SpeedFast   Speed = "fast"
)

// Speeds lists every speed in display order.
func Speeds() []Speed {
	return []Speed{SpeedSlow, SpeedMedium, SpeedFast}
}

// Multiplier returns the per-frame scale factor for the speed.
func (speed Speed) Multiplier() float64 {
	switch speed {
	case SpeedSlow:
		return 0.5
	case SpeedFast:
		return 2
	default:
		return 1
	}
}

// Label returns the human readable speed name.
func (speed Speed) Label() string {
	switch speed {
	case SpeedSlow:
		return "Slow"
	case SpeedMedium:
		return "Medium"
	case SpeedFast:
		return "Fast"
	default:
		return string(speed)
	}
}

// SpeedLabels returns the labels of Speeds in display order.
func SpeedLabels() []string {
	labels := make([]string, 0, len(Speeds()))
	for _, speed := range Speeds() {
		labels = append(labels, speed.Label())
	}
	return labels
}

// SpeedFromLabel maps a display label back to its speed.
func SpeedFromLabel(label string) (Speed, bool) {
	for _, speed := range Speeds() {
		if speed.Label() == label {
			return speed, true
		}
	}
	return "", false
}

// ParseSpeed accepts either the identifier or the label.
func ParseSpeed(value string) (Speed, error) {
	normalized := Speed(strings.ToLower(strings.TrimSpace(value)))
	for _, speed := range Speeds() {
		if normalized == speed {
			return speed, nil
		}
	}
	return "", fmt.Errorf("unknown speed %q", value)
}
