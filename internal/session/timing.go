package session

import "time"

// Sensor sampling
const (
	SampleCount     = 3
	SampleInterval  = 100 * time.Millisecond
	MotionThreshold = 2
)

// Polling sub-intervals. These bound how long a stop request can go unnoticed.
const (
	PollInterval         = 100 * time.Millisecond
	ResumePollInterval   = 300 * time.Millisecond
	CompletePollInterval = 50 * time.Millisecond
)

// Grace windows before a violated required state pauses the session
const (
	NoMotionGrace = 8 * time.Second
	MotionGrace   = 8 * time.Second
)

const (
	// StartDelay separates the start cue from the first tick
	StartDelay = 500 * time.Millisecond
	// TickDuration is the length of one counted second
	TickDuration = time.Second
	// StopHold keeps the stop message visible before returning
	StopHold = 1500 * time.Millisecond
	// ButtonSettle is waited after a button press is consumed
	ButtonSettle = 150 * time.Millisecond
	// BarWidth is the progress bar width in cells
	BarWidth = 10
)
