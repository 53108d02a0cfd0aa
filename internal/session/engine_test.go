package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/pirtimer/internal/domain"
	"github.com/vburojevic/pirtimer/internal/hal"
	"github.com/vburojevic/pirtimer/internal/hal/halfake"
)

const ms = time.Millisecond

type recorder struct {
	events []interface{}
}

func (r *recorder) Emit(event interface{}) error {
	r.events = append(r.events, event)
	return nil
}

func (r *recorder) types() []string {
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		switch e := ev.(type) {
		case *domain.SessionStart:
			out = append(out, e.Type)
		case *domain.PhaseStart:
			out = append(out, fmt.Sprintf("%s:%d:%s", e.Type, e.Set, e.Phase))
		case *domain.Pause:
			out = append(out, e.Type+":"+e.Reason)
		case *domain.Resume:
			out = append(out, e.Type)
		case *domain.SessionEnd:
			out = append(out, e.Type+":"+string(e.Outcome))
		}
	}
	return out
}

func (r *recorder) end(t *testing.T) *domain.SessionEnd {
	t.Helper()
	require.NotEmpty(t, r.events)
	end, ok := r.events[len(r.events)-1].(*domain.SessionEnd)
	require.True(t, ok, "last event must be session_end")
	return end
}

type harness struct {
	engine  *Engine
	clock   *halfake.Clock
	display *halfake.Display
	buzzer  *halfake.Buzzer
	buttons [4]*halfake.Button
	events  *recorder
}

func newHarness(motion halfake.Script) *harness {
	clk := halfake.NewClock()
	board, display, buzzer, buttons := halfake.Board(clk, motion)
	// B1 is held so the completion screen returns at once
	buttons[hal.ButtonUp].Script = halfake.Always(true)
	events := &recorder{}
	engine := NewEngine(board, Options{
		Clock:  clk,
		Events: events,
		NewID:  func() string { return "test-session" },
	})
	return &harness{
		engine:  engine,
		clock:   clk,
		display: display,
		buzzer:  buzzer,
		buttons: buttons,
		events:  events,
	}
}

func (h *harness) stopAt(script halfake.Script) {
	h.buttons[hal.ButtonBack].Script = script
}

func count(lines []string, want string) int {
	n := 0
	for _, l := range lines {
		if l == want {
			n++
		}
	}
	return n
}

func TestEngineFinishesAllSets(t *testing.T) {
	h := newHarness(halfake.Always(true))
	cfg := domain.SessionConfig{Mode: domain.ModeMotion, ExerciseSeconds: 3, RestSeconds: 2, Sets: 2}

	outcome := h.engine.Run(context.Background(), cfg)

	require.Equal(t, domain.OutcomeFinished, outcome)
	assert.Equal(t, []string{
		"M1 Set 1/2 MOVE", "M1 Set 1/2 MOVE", "M1 Set 1/2 MOVE",
		"Rest 1/2", "Rest 1/2",
		"M1 Set 2/2 MOVE", "M1 Set 2/2 MOVE", "M1 Set 2/2 MOVE",
		"Complete!",
	}, h.display.Lines())

	assert.Equal(t, "░░░░░░░░░░ 3s", h.display.Frames[0].Line2)
	assert.Equal(t, "███░░░░░░░ 2s", h.display.Frames[1].Line2)
	assert.Equal(t, "██████░░░░ 1s", h.display.Frames[2].Line2)
	assert.Equal(t, "█████░░░░░ 1s", h.display.Frames[4].Line2)
	assert.Equal(t, hal.ColorGreen, h.display.Frames[0].Color)
	assert.Equal(t, hal.ColorRest, h.display.Frames[3].Color)
	assert.Equal(t, hal.ColorMagenta, h.display.Last().Color)

	// start cue, 500ms delay, 3x(300ms sampling + 1s), 2x1s rest,
	// start cue, 3x(300ms + 1s), 150ms settle
	assert.Equal(t, 10770*ms, h.clock.Elapsed())

	assert.Equal(t, []time.Duration{120 * ms, 120 * ms, 400 * ms, 120 * ms, 120 * ms, 400 * ms}, h.buzzer.Tones)

	assert.Equal(t, []string{
		"session_start",
		"phase_start:1:exercise",
		"phase_start:1:rest",
		"phase_start:2:exercise",
		"session_end:finished",
	}, h.events.types())

	summary := h.events.end(t).Summary
	assert.Equal(t, 2, summary.SetsCompleted)
	assert.Equal(t, 6, summary.ExerciseSeconds)
	assert.Equal(t, 2, summary.RestSeconds)
	assert.Zero(t, summary.Pauses)
	assert.Zero(t, summary.Transitions)
	assert.InDelta(t, 10.77, summary.DurationSeconds, 0.001)
}

func TestEngineStopMidExercise(t *testing.T) {
	h := newHarness(halfake.Always(true))
	h.stopAt(halfake.After(2 * time.Second))
	cfg := domain.SessionConfig{Mode: domain.ModeMotion, ExerciseSeconds: 5, RestSeconds: 2, Sets: 2}

	outcome := h.engine.Run(context.Background(), cfg)

	require.Equal(t, domain.OutcomeAborted, outcome)
	lines := h.display.Lines()
	assert.Zero(t, count(lines, "Rest 1/2"), "no rest after stop")
	assert.Zero(t, count(lines, "Complete!"))
	assert.Equal(t, 2, count(lines, "M1 Set 1/2 MOVE"))

	last := h.display.Last()
	assert.Equal(t, "Stopped", last.Line1)
	assert.Equal(t, "Returning...", last.Line2)
	assert.Equal(t, hal.ColorRed, last.Color)
	assert.Equal(t, 2260*ms+StopHold, h.clock.Elapsed())

	assert.Equal(t, []string{"session_start", "phase_start:1:exercise", "session_end:aborted"}, h.events.types())
	assert.Equal(t, 1, h.events.end(t).Summary.ExerciseSeconds)
	assert.Zero(t, h.events.end(t).Summary.SetsCompleted)
}

func TestEngineStopDuringStartDelay(t *testing.T) {
	h := newHarness(halfake.Always(true))
	h.stopAt(halfake.Always(true))
	cfg := domain.SessionConfig{Mode: domain.ModeMotion, ExerciseSeconds: 5, RestSeconds: 0, Sets: 1}

	outcome := h.engine.Run(context.Background(), cfg)

	assert.Equal(t, domain.OutcomeAborted, outcome)
	assert.Equal(t, []string{"Stopped"}, h.display.Lines())
}

func TestEngineContextCancelStops(t *testing.T) {
	h := newHarness(halfake.Always(true))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := h.engine.Run(ctx, domain.SessionConfig{Mode: domain.ModeMotion, ExerciseSeconds: 5, Sets: 1})

	assert.Equal(t, domain.OutcomeAborted, outcome)
}

func TestEnginePausesWithoutMotion(t *testing.T) {
	h := newHarness(halfake.After(15 * time.Second))
	cfg := domain.SessionConfig{Mode: domain.ModeMotion, ExerciseSeconds: 12, RestSeconds: 0, Sets: 1}

	outcome := h.engine.Run(context.Background(), cfg)

	require.Equal(t, domain.OutcomeFinished, outcome)

	lines := h.display.Lines()
	pauseAt := -1
	for i, l := range lines {
		if l == "PAUSED" {
			pauseAt = i
			break
		}
	}
	require.Equal(t, 6, pauseAt, "six ticks fit in the eight second grace window")
	assert.Equal(t, "No Motion!", h.display.Frames[pauseAt].Line2)
	assert.Equal(t, hal.ColorOrange, h.display.Frames[pauseAt].Color)
	assert.Equal(t, 1, count(lines, "PAUSED"))
	// the first tick after resuming still shows the reading taken while paused
	assert.Equal(t, 7, count(lines, "M1 Set 1/1 STAY"))
	assert.Equal(t, 5, count(lines, "M1 Set 1/1 MOVE"))

	// start, pause, resume, end of exercise; no chirp right after resume
	assert.Equal(t, []time.Duration{120 * ms, 120 * ms, 80 * ms, 80 * ms, 120 * ms, 400 * ms}, h.buzzer.Tones)

	assert.Equal(t, []string{
		"session_start",
		"phase_start:1:exercise",
		"pause:no_motion",
		"resume",
		"session_end:finished",
	}, h.events.types())

	pause := h.events.events[2].(*domain.Pause)
	assert.Equal(t, 6, pause.Elapsed)
	assert.True(t, pause.RequiredState)

	resume := h.events.events[3].(*domain.Resume)
	assert.InDelta(t, 6.46, resume.PausedSeconds, 0.001)

	summary := h.events.end(t).Summary
	assert.Equal(t, 1, summary.Pauses)
	assert.Equal(t, 12, summary.ExerciseSeconds)
}

func TestEngineStillnessPauseThenStop(t *testing.T) {
	h := newHarness(halfake.Always(true))
	h.stopAt(halfake.After(20 * time.Second))
	cfg := domain.SessionConfig{Mode: domain.ModeStillness, ExerciseSeconds: 30, RestSeconds: 5, Sets: 2}

	outcome := h.engine.Run(context.Background(), cfg)

	require.Equal(t, domain.OutcomeAborted, outcome)
	lines := h.display.Lines()
	require.Contains(t, lines, "PAUSED")
	assert.Equal(t, "M2 Set 1/2 MOVE", lines[0])

	var pauseFrame halfake.Frame
	for _, f := range h.display.Frames {
		if f.Line1 == "PAUSED" {
			pauseFrame = f
		}
	}
	assert.Equal(t, "Motion Detect!", pauseFrame.Line2)
	assert.Equal(t, "Stopped", h.display.Last().Line1)
	assert.Equal(t, []string{
		"session_start",
		"phase_start:1:exercise",
		"pause:motion_detected",
		"session_end:aborted",
	}, h.events.types())
}

func TestEngineChirpsOnMotionChange(t *testing.T) {
	h := newHarness(func(e time.Duration) bool { return e < 2*time.Second || e >= 4*time.Second })
	cfg := domain.SessionConfig{Mode: domain.ModeMotion, ExerciseSeconds: 6, RestSeconds: 0, Sets: 1}

	outcome := h.engine.Run(context.Background(), cfg)

	require.Equal(t, domain.OutcomeFinished, outcome)
	chirps := 0
	for _, d := range h.buzzer.Tones {
		if d == 50*ms {
			chirps++
		}
	}
	assert.Equal(t, 2, chirps)
	assert.Equal(t, 2, h.events.end(t).Summary.Transitions)
	assert.Zero(t, count(h.display.Lines(), "PAUSED"))
}

func TestEngineSkipsZeroRest(t *testing.T) {
	h := newHarness(halfake.Always(true))
	cfg := domain.SessionConfig{Mode: domain.ModeMotion, ExerciseSeconds: 1, RestSeconds: 0, Sets: 2}

	outcome := h.engine.Run(context.Background(), cfg)

	require.Equal(t, domain.OutcomeFinished, outcome)
	assert.Equal(t, []string{"M1 Set 1/2 MOVE", "M1 Set 2/2 MOVE", "Complete!"}, h.display.Lines())
}

func TestEngineCompleteWaitsForButton(t *testing.T) {
	h := newHarness(halfake.Always(true))
	h.buttons[hal.ButtonUp].Script = halfake.Always(false)
	h.buttons[hal.ButtonNext].Script = halfake.After(20 * time.Second)
	cfg := domain.SessionConfig{Mode: domain.ModeMotion, ExerciseSeconds: 1, RestSeconds: 0, Sets: 1}

	outcome := h.engine.Run(context.Background(), cfg)

	assert.Equal(t, domain.OutcomeFinished, outcome)
	// the completion screen appears at 1.96s and polls every 50ms, so the
	// button is first seen at 20.01s
	assert.Equal(t, 20010*ms+ButtonSettle, h.clock.Elapsed())
}

func TestEngineIgnoresDeviceFailures(t *testing.T) {
	h := newHarness(halfake.Always(true))
	h.display.Err = assert.AnError
	h.buzzer.Err = assert.AnError
	cfg := domain.SessionConfig{Mode: domain.ModeStillness, ExerciseSeconds: 2, RestSeconds: 1, Sets: 1}

	outcome := h.engine.Run(context.Background(), cfg)

	assert.Equal(t, domain.OutcomeFinished, outcome)
}
