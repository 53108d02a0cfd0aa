package sim

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/pirtimer/internal/hal"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPressIsAPulse(t *testing.T) {
	mock := clock.NewMock()
	dev := NewDevice(mock)
	board := dev.Board()

	dev.Press(hal.ButtonNext)
	assert.True(t, board.Buttons[hal.ButtonNext].Pressed())
	assert.False(t, board.Buttons[hal.ButtonUp].Pressed())

	mock.Add(PressDuration)
	assert.False(t, board.Buttons[hal.ButtonNext].Pressed())
}

func TestHoldLatchesStopButton(t *testing.T) {
	dev := NewDevice(clock.NewMock())
	board := dev.Board()

	assert.True(t, dev.ToggleHold())
	assert.True(t, board.Stop().Pressed())
	assert.True(t, dev.Snapshot().Held)

	assert.False(t, dev.ToggleHold())
	assert.False(t, board.Stop().Pressed())
}

func TestMotionAndDisplay(t *testing.T) {
	dev := NewDevice(clock.NewMock())
	board := dev.Board()

	motion, err := board.Sensor.ReadMotion()
	require.NoError(t, err)
	assert.False(t, motion)

	dev.ToggleMotion()
	motion, _ = board.Sensor.ReadMotion()
	assert.True(t, motion)

	require.NoError(t, board.Display.Render("PAUSED", "No Motion!", hal.ColorOrange))
	snap := dev.Snapshot()
	assert.Equal(t, "PAUSED", snap.Line1)
	assert.Equal(t, "No Motion!", snap.Line2)
	assert.Equal(t, hal.ColorOrange, snap.Color)
	assert.True(t, snap.Motion)
}

func TestBuzzerBlocksAndShowsBeep(t *testing.T) {
	mock := clock.NewMock()
	dev := NewDevice(mock)
	board := dev.Board()

	done := make(chan struct{})
	go func() {
		defer close(done)
		board.Buzzer.Tone(400 * time.Millisecond)
	}()

	assert.Eventually(t, func() bool { return dev.Snapshot().Beeping }, time.Second, time.Millisecond)
	for finished := false; !finished; {
		select {
		case <-done:
			finished = true
		default:
			mock.Add(100 * time.Millisecond)
		}
	}
	assert.False(t, dev.Snapshot().Beeping)
}

func TestModelKeys(t *testing.T) {
	mock := clock.NewMock()
	dev := NewDevice(mock)
	var m tea.Model = New(dev)

	m, _ = m.Update(keyMsg("1"))
	assert.True(t, m.(Model).snap.Pressed[hal.ButtonUp])

	m, _ = m.Update(keyMsg("m"))
	assert.True(t, m.(Model).snap.Motion)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, m.(Model).snap.Held)

	m, _ = m.Update(keyMsg("?"))
	assert.True(t, m.(Model).help.ShowAll)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelTickRefreshesSnapshot(t *testing.T) {
	dev := NewDevice(clock.NewMock())
	var m tea.Model = New(dev)

	require.NoError(t, dev.Board().Display.Render("Mode 1", "Move Detection", hal.ColorGreen))
	m, cmd := m.Update(tickMsg(time.Now()))

	assert.NotNil(t, cmd)
	assert.Equal(t, "Mode 1", m.(Model).snap.Line1)
	assert.Contains(t, m.View(), "Move Detection")
	assert.Contains(t, m.View(), "PIR")
}

func TestModelDoneQuits(t *testing.T) {
	var m tea.Model = New(NewDevice(clock.NewMock()))

	m, cmd := m.Update(DoneMsg{Err: errors.New("display failed")})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.EqualError(t, m.(Model).Err(), "display failed")
	assert.Empty(t, m.View())
}

func TestLCDLine(t *testing.T) {
	assert.Equal(t, "Rest 1/3        ", lcdLine("Rest 1/3"))
	assert.Equal(t, "abcdefghijklmnop", lcdLine("abcdefghijklmnopq"))
}
