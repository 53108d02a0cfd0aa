package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/pirtimer/internal/domain"
	"github.com/vburojevic/pirtimer/internal/hal/halfake"
)

type failingSink struct{ calls int }

func (f *failingSink) Emit(interface{}) error {
	f.calls++
	return errors.New("disk full")
}

func TestTrackerProgress(t *testing.T) {
	clk := halfake.NewClock()
	rec := &recorder{}
	cfg := domain.SessionConfig{Mode: domain.ModeMotion, ExerciseSeconds: 30, RestSeconds: 10, Sets: 3}
	tr := NewTracker("id-1", cfg, clk, rec)

	tr.Start()
	tr.EnterPhase(1, domain.PhaseExercise)
	tr.Tick()
	tr.Tick()
	assert.Equal(t, domain.SessionProgress{Set: 1, Phase: domain.PhaseExercise, Elapsed: 2}, tr.Progress())

	tr.Paused(domain.PauseState{Reason: domain.PauseNoMotion, RequiredState: true})
	clk.Sleep(4 * time.Second)
	tr.Resumed()
	tr.CompleteSet()

	tr.EnterPhase(1, domain.PhaseRest)
	assert.Zero(t, tr.Progress().Elapsed, "phase boundary resets elapsed")
	tr.Tick()

	end := tr.Finish(domain.OutcomeAborted)
	assert.Equal(t, "id-1", end.SessionID)
	assert.Equal(t, domain.OutcomeAborted, end.Outcome)
	assert.Equal(t, 1, end.Summary.SetsCompleted)
	assert.Equal(t, 2, end.Summary.ExerciseSeconds)
	assert.Equal(t, 1, end.Summary.RestSeconds)
	assert.Equal(t, 1, end.Summary.Pauses)
	assert.InDelta(t, 4.0, end.Summary.PausedSeconds, 0.001)
	assert.InDelta(t, 4.0, end.Summary.DurationSeconds, 0.001)

	require.Len(t, rec.events, 6)
	phase := rec.events[4].(*domain.PhaseStart)
	assert.Equal(t, domain.PhaseRest, phase.Phase)
	assert.Equal(t, 10, phase.Seconds)
	assert.Equal(t, 3, phase.Sets)
	assert.NoError(t, tr.Err())
}

func TestTrackerKeepsFirstSinkError(t *testing.T) {
	clk := halfake.NewClock()
	sink := &failingSink{}
	tr := NewTracker("id-2", domain.SessionConfig{Mode: domain.ModeMotion, ExerciseSeconds: 1, Sets: 1}, clk, sink)

	tr.Start()
	tr.Finish(domain.OutcomeFinished)

	assert.Equal(t, 2, sink.calls)
	assert.EqualError(t, tr.Err(), "disk full")
}

func TestTrackerWithoutSink(t *testing.T) {
	tr := NewTracker("id-3", domain.SessionConfig{}, halfake.NewClock(), nil)
	tr.Start()
	tr.Finish(domain.OutcomeFinished)
	assert.NoError(t, tr.Err())
}
