package domain

import "time"

// SchemaVersion is the version of every NDJSON event type
const SchemaVersion = 1

// SessionStart is emitted when a session begins
type SessionStart struct {
	Type          string        `json:"type"`          // "session_start"
	SchemaVersion int           `json:"schemaVersion"` // 1
	SessionID     string        `json:"session_id"`
	Config        SessionConfig `json:"config"`
	Timestamp     string        `json:"timestamp"` // ISO8601 timestamp
}

// PhaseStart is emitted when an exercise or rest phase begins
type PhaseStart struct {
	Type          string `json:"type"` // "phase_start"
	SchemaVersion int    `json:"schemaVersion"`
	SessionID     string `json:"session_id"`
	Set           int    `json:"set"`
	Sets          int    `json:"sets"`
	Phase         Phase  `json:"phase"`
	Seconds       int    `json:"seconds"`
	Timestamp     string `json:"timestamp"`
}

// Pause is emitted when the required motion state was violated past its grace window
type Pause struct {
	Type          string `json:"type"` // "pause"
	SchemaVersion int    `json:"schemaVersion"`
	SessionID     string `json:"session_id"`
	Set           int    `json:"set"`
	Elapsed       int    `json:"elapsed_seconds"`
	Reason        string `json:"reason"`  // no_motion, motion_detected
	Message       string `json:"message"` // text shown on the display
	RequiredState bool   `json:"required_state"`
	Timestamp     string `json:"timestamp"`
}

// Resume is emitted when a paused session continues
type Resume struct {
	Type          string  `json:"type"` // "resume"
	SchemaVersion int     `json:"schemaVersion"`
	SessionID     string  `json:"session_id"`
	Set           int     `json:"set"`
	PausedSeconds float64 `json:"paused_seconds"`
	Timestamp     string  `json:"timestamp"`
}

// SessionEnd is emitted when a session finishes or is stopped
type SessionEnd struct {
	Type          string         `json:"type"` // "session_end"
	SchemaVersion int            `json:"schemaVersion"`
	SessionID     string         `json:"session_id"`
	Outcome       Outcome        `json:"outcome"`
	Summary       SessionSummary `json:"summary"`
	Timestamp     string         `json:"timestamp"`
}

// SessionSummary contains statistics about a completed session
type SessionSummary struct {
	SetsCompleted   int     `json:"sets_completed"`
	ExerciseSeconds int     `json:"exercise_seconds"`
	RestSeconds     int     `json:"rest_seconds"`
	Pauses          int     `json:"pauses"`
	PausedSeconds   float64 `json:"paused_seconds"`
	Transitions     int     `json:"transitions"`
	DurationSeconds float64 `json:"duration_seconds"`
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// NewSessionStart creates a new SessionStart event
func NewSessionStart(id string, cfg SessionConfig, at time.Time) *SessionStart {
	return &SessionStart{
		Type:          "session_start",
		SchemaVersion: SchemaVersion,
		SessionID:     id,
		Config:        cfg,
		Timestamp:     stamp(at),
	}
}

// NewPhaseStart creates a new PhaseStart event
func NewPhaseStart(id string, set, sets int, phase Phase, seconds int, at time.Time) *PhaseStart {
	return &PhaseStart{
		Type:          "phase_start",
		SchemaVersion: SchemaVersion,
		SessionID:     id,
		Set:           set,
		Sets:          sets,
		Phase:         phase,
		Seconds:       seconds,
		Timestamp:     stamp(at),
	}
}

// NewPause creates a new Pause event
func NewPause(id string, progress SessionProgress, state PauseState, at time.Time) *Pause {
	return &Pause{
		Type:          "pause",
		SchemaVersion: SchemaVersion,
		SessionID:     id,
		Set:           progress.Set,
		Elapsed:       progress.Elapsed,
		Reason:        state.Reason.String(),
		Message:       state.Reason.Message(),
		RequiredState: state.RequiredState,
		Timestamp:     stamp(at),
	}
}

// NewResume creates a new Resume event
func NewResume(id string, set int, paused time.Duration, at time.Time) *Resume {
	return &Resume{
		Type:          "resume",
		SchemaVersion: SchemaVersion,
		SessionID:     id,
		Set:           set,
		PausedSeconds: paused.Seconds(),
		Timestamp:     stamp(at),
	}
}

// NewSessionEnd creates a new SessionEnd event
func NewSessionEnd(id string, outcome Outcome, summary SessionSummary, at time.Time) *SessionEnd {
	return &SessionEnd{
		Type:          "session_end",
		SchemaVersion: SchemaVersion,
		SessionID:     id,
		Outcome:       outcome,
		Summary:       summary,
		Timestamp:     stamp(at),
	}
}
