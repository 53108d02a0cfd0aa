package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects which motion state keeps a phase progressing
type Mode int

const (
	// ModeMotion requires the user to keep moving
	ModeMotion Mode = 1
	// ModeStillness requires the user to stay still
	ModeStillness Mode = 2
)

// RequiredState returns the debounced motion reading that satisfies the mode
func (m Mode) RequiredState() bool {
	return m == ModeMotion
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == ModeStillness {
		return ModeMotion
	}
	return ModeStillness
}

func (m Mode) String() string {
	switch m {
	case ModeMotion:
		return "motion"
	case ModeStillness:
		return "stillness"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode from config or flag values.
// Accepts the numeric menu values as well as names.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "motion", "move":
		return ModeMotion, nil
	case "2", "stillness", "still", "stay":
		return ModeStillness, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (use motion or stillness)", s)
	}
}

// SessionConfig is the immutable configuration of one exercise session
type SessionConfig struct {
	Mode            Mode `json:"mode"`
	ExerciseSeconds int  `json:"exercise_seconds"`
	RestSeconds     int  `json:"rest_seconds"`
	Sets            int  `json:"sets"`
}

// Validate reports configuration the session engine does not support.
// The engine itself never calls this; callers must pass a valid config.
func (c SessionConfig) Validate() error {
	var errs []error
	if c.Mode != ModeMotion && c.Mode != ModeStillness {
		errs = append(errs, fmt.Errorf("invalid mode %d", int(c.Mode)))
	}
	if c.ExerciseSeconds < 1 {
		errs = append(errs, fmt.Errorf("exercise seconds must be at least 1, got %d", c.ExerciseSeconds))
	}
	if c.RestSeconds < 0 {
		errs = append(errs, fmt.Errorf("rest seconds must not be negative, got %d", c.RestSeconds))
	}
	if c.Sets < 1 {
		errs = append(errs, fmt.Errorf("sets must be at least 1, got %d", c.Sets))
	}
	return errors.Join(errs...)
}

// Phase is a sub-period of a set
type Phase string

const (
	PhaseExercise Phase = "exercise"
	PhaseRest     Phase = "rest"
)

// SessionProgress is the position of a running session
type SessionProgress struct {
	Set     int   `json:"set"`
	Phase   Phase `json:"phase"`
	Elapsed int   `json:"elapsed_seconds"`
}

// PauseReason explains why an exercise phase was paused
type PauseReason int

const (
	PauseNone PauseReason = iota
	PauseNoMotion
	PauseMotionDetected
)

// Message returns the text shown on the display while paused
func (r PauseReason) Message() string {
	switch r {
	case PauseNoMotion:
		return "No Motion!"
	case PauseMotionDetected:
		return "Motion Detect!"
	default:
		return ""
	}
}

func (r PauseReason) String() string {
	switch r {
	case PauseNoMotion:
		return "no_motion"
	case PauseMotionDetected:
		return "motion_detected"
	default:
		return "none"
	}
}

// PauseState exists only while a session is paused
type PauseState struct {
	Reason        PauseReason
	RequiredState bool
}

// Outcome is how a session ended
type Outcome string

const (
	OutcomeFinished Outcome = "finished"
	OutcomeAborted  Outcome = "aborted"
)
