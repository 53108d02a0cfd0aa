package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeRequiredState(t *testing.T) {
	assert.True(t, ModeMotion.RequiredState())
	assert.False(t, ModeStillness.RequiredState())
	assert.Equal(t, ModeStillness, ModeMotion.Toggle())
	assert.Equal(t, ModeMotion, ModeStillness.Toggle())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		hasError bool
	}{
		{"1", ModeMotion, false},
		{"motion", ModeMotion, false},
		{"Move", ModeMotion, false},
		{"2", ModeStillness, false},
		{"stillness", ModeStillness, false},
		{" stay ", ModeStillness, false},
		{"", 0, true},
		{"3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}

func TestSessionConfigValidate(t *testing.T) {
	valid := SessionConfig{Mode: ModeMotion, ExerciseSeconds: 30, RestSeconds: 0, Sets: 1}
	assert.NoError(t, valid.Validate())

	bad := SessionConfig{Mode: 7, ExerciseSeconds: 0, RestSeconds: -1, Sets: 0}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mode")
	assert.Contains(t, err.Error(), "exercise seconds")
	assert.Contains(t, err.Error(), "rest seconds")
	assert.Contains(t, err.Error(), "sets")
}

func TestPauseReasonMessage(t *testing.T) {
	assert.Equal(t, "No Motion!", PauseNoMotion.Message())
	assert.Equal(t, "Motion Detect!", PauseMotionDetected.Message())
	assert.Empty(t, PauseNone.Message())
	assert.Equal(t, "no_motion", PauseNoMotion.String())
}

func TestNewPause(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	ev := NewPause("abc", SessionProgress{Set: 2, Phase: PhaseExercise, Elapsed: 9},
		PauseState{Reason: PauseMotionDetected, RequiredState: false}, at)

	assert.Equal(t, "pause", ev.Type)
	assert.Equal(t, SchemaVersion, ev.SchemaVersion)
	assert.Equal(t, 2, ev.Set)
	assert.Equal(t, 9, ev.Elapsed)
	assert.Equal(t, "motion_detected", ev.Reason)
	assert.Equal(t, "Motion Detect!", ev.Message)
	assert.Equal(t, "2025-01-02T03:04:05Z", ev.Timestamp)
}
