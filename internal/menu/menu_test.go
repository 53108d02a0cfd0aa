package menu

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/pirtimer/internal/domain"
	"github.com/vburojevic/pirtimer/internal/hal"
	"github.com/vburojevic/pirtimer/internal/hal/halfake"
)

const ms = time.Millisecond

var defaults = domain.SessionConfig{Mode: domain.ModeMotion, ExerciseSeconds: 30, RestSeconds: 10, Sets: 3}

type fakeSessions struct {
	configs []domain.SessionConfig
	outcome domain.Outcome
}

func (f *fakeSessions) Run(_ context.Context, cfg domain.SessionConfig) domain.Outcome {
	f.configs = append(f.configs, cfg)
	return f.outcome
}

func or(scripts ...halfake.Script) halfake.Script {
	return func(e time.Duration) bool {
		for _, s := range scripts {
			if s(e) {
				return true
			}
		}
		return false
	}
}

// --- Screens ---

func TestScreenRender(t *testing.T) {
	st := NewState(defaults)

	tests := []struct {
		screen       Screen
		line1, line2 string
		color        hal.Color
	}{
		{ScreenMode, "Mode 1", "Move Detection", hal.ColorGreen},
		{ScreenExercise, "Exercise Time", "30s", hal.ColorWhite},
		{ScreenRest, "Rest Time", "10s", hal.ColorWhite},
		{ScreenSets, "M:1 Ex:30 R:10", "Sets:3 (Press>)", hal.ColorCyan},
	}

	for _, tt := range tests {
		t.Run(tt.screen.String(), func(t *testing.T) {
			line1, line2, color := tt.screen.Render(st)
			assert.Equal(t, tt.line1, line1)
			assert.Equal(t, tt.line2, line2)
			assert.Equal(t, tt.color, color)
		})
	}

	st.Mode = domain.ModeStillness
	line1, line2, color := ScreenMode.Render(st)
	assert.Equal(t, "Mode 2", line1)
	assert.Equal(t, "Stay Detection", line2)
	assert.Equal(t, hal.ColorBlue, color)
}

func TestScreenNavigation(t *testing.T) {
	next, done := ScreenMode.Next()
	assert.Equal(t, ScreenExercise, next)
	assert.False(t, done)

	next, done = ScreenSets.Next()
	assert.Equal(t, ScreenMode, next)
	assert.True(t, done)

	assert.Equal(t, ScreenMode, ScreenMode.Prev())
	assert.Equal(t, ScreenRest, ScreenSets.Prev())
	assert.Len(t, Screens, 4)
}

// --- State ---

func TestStateEditing(t *testing.T) {
	st := NewState(defaults)

	st.Increment(ScreenMode)
	assert.Equal(t, domain.ModeStillness, st.Mode)
	st.Decrement(ScreenMode)
	assert.Equal(t, domain.ModeMotion, st.Mode)

	st.Increment(ScreenExercise)
	assert.Equal(t, 40, st.ExerciseSeconds)
	for i := 0; i < 10; i++ {
		st.Decrement(ScreenExercise)
	}
	assert.Equal(t, ExerciseMin, st.ExerciseSeconds)

	st.Increment(ScreenRest)
	assert.Equal(t, 15, st.RestSeconds)
	for i := 0; i < 10; i++ {
		st.Decrement(ScreenRest)
	}
	assert.Equal(t, RestMin, st.RestSeconds)

	st.Increment(ScreenSets)
	assert.Equal(t, 4, st.Sets)
	for i := 0; i < 10; i++ {
		st.Decrement(ScreenSets)
	}
	assert.Equal(t, SetsMin, st.Sets)

	assert.Equal(t, domain.SessionConfig{Mode: domain.ModeMotion, ExerciseSeconds: 10, RestSeconds: 5, Sets: 1}, st.SessionConfig())
}

// --- Runner ---

func newRunner(sessions SessionRunner) (*Runner, *halfake.Clock, *halfake.Display, *halfake.Buzzer, [4]*halfake.Button) {
	clk := halfake.NewClock()
	board, display, buzzer, buttons := halfake.Board(clk, halfake.Always(false))
	r := NewRunner(board, sessions, defaults, Options{Clock: clk})
	return r, clk, display, buzzer, buttons
}

func TestRunnerHoldToQuit(t *testing.T) {
	r, clk, display, buzzer, buttons := newRunner(&fakeSessions{})
	buttons[hal.ButtonUp].Script = halfake.Between(0, 50*ms)
	buttons[hal.ButtonBack].Script = halfake.After(time.Second)

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, domain.ModeStillness, r.State().Mode, "B1 on the mode screen toggles the mode")
	assert.Equal(t, "Mode 1", display.Frames[0].Line1)
	assert.Equal(t, "Mode 2", display.Frames[1].Line1)

	last := display.Last()
	assert.Equal(t, "Goodbye!", last.Line1)
	assert.Equal(t, hal.ColorGray, last.Color)
	assert.Equal(t, []time.Duration{120 * ms, 400 * ms}, buzzer.Tones)
	assert.Greater(t, clk.Elapsed(), 3*time.Second)
	assert.Less(t, clk.Elapsed(), 3200*ms)
}

func TestRunnerStartsSessionAfterSetsScreen(t *testing.T) {
	sessions := &fakeSessions{outcome: domain.OutcomeFinished}
	r, _, display, _, buttons := newRunner(sessions)
	buttons[hal.ButtonNext].Script = or(
		halfake.Between(0, 50*ms),
		halfake.Between(200*ms, 250*ms),
		halfake.Between(400*ms, 450*ms),
		halfake.Between(800*ms, 850*ms),
	)
	buttons[hal.ButtonDown].Script = halfake.Between(550*ms, 600*ms)
	buttons[hal.ButtonBack].Script = halfake.After(2 * time.Second)

	require.NoError(t, r.Run(context.Background()))

	require.Len(t, sessions.configs, 1)
	assert.Equal(t, domain.SessionConfig{Mode: domain.ModeMotion, ExerciseSeconds: 30, RestSeconds: 10, Sets: 2}, sessions.configs[0])
	assert.Equal(t, ScreenMode, r.Screen())

	lines := display.Lines()
	assert.Equal(t, []string{
		"Mode 1",
		"Exercise Time",
		"Rest Time",
		"M:1 Ex:30 R:10",
		"M:1 Ex:30 R:10",
		"Back to Menu",
		"Mode 1",
		"Goodbye!",
	}, lines)
	assert.Equal(t, "Sets:2 (Press>)", display.Frames[4].Line2)
}

func TestRunnerShortBackPressGoesBack(t *testing.T) {
	r, _, _, _, buttons := newRunner(&fakeSessions{})
	buttons[hal.ButtonNext].Script = halfake.Between(0, 50*ms)
	buttons[hal.ButtonBack].Script = or(halfake.Between(300*ms, 400*ms), halfake.After(time.Second))

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, ScreenMode, r.Screen())
}

func TestRunnerMediumBackPressIsIgnored(t *testing.T) {
	r, _, _, buzzer, buttons := newRunner(&fakeSessions{})
	buttons[hal.ButtonNext].Script = halfake.Between(0, 50*ms)
	buttons[hal.ButtonBack].Script = or(halfake.Between(300*ms, 1300*ms), halfake.After(2*time.Second))

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, ScreenExercise, r.Screen())
	assert.Equal(t, []time.Duration{120 * ms, 400 * ms}, buzzer.Tones)
}

func TestRunnerStopsOnContextCancel(t *testing.T) {
	r, _, display, _, _ := newRunner(&fakeSessions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, r.Run(ctx))

	assert.Equal(t, []string{"Mode 1", "Goodbye!"}, display.Lines())
}
