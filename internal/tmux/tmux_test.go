package tmux

import (
	"errors"
	"strings"
	"testing"

	"github.com/GianlucaP106/gotmux/gotmux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/pirtimer/internal/hal"
)

type fakeTmux struct {
	sessions map[string]bool
	created  []string
	commands [][]string
	err      error
}

func (f *fakeTmux) HasSession(name string) bool { return f.sessions[name] }

func (f *fakeTmux) NewSession(op *gotmux.SessionOptions) (*gotmux.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, op.Name)
	return nil, nil
}

func (f *fakeTmux) Command(req ...string) (string, error) {
	f.commands = append(f.commands, req)
	return "", nil
}

func TestSetupCreatesSession(t *testing.T) {
	fake := &fakeTmux{}
	m := newManager(fake, Config{})

	require.NoError(t, m.Setup())

	assert.Equal(t, []string{"pirtimer"}, fake.created)
	require.Len(t, fake.commands, 3)
	assert.Equal(t, []string{"send-keys", "-t", "pirtimer:0.0", "-R"}, fake.commands[0])
	assert.Equal(t, []string{"clear-history", "-t", "pirtimer:0.0"}, fake.commands[1])
	assert.Equal(t, "tmux attach -t pirtimer", m.AttachCommand())
}

func TestSetupReusesSession(t *testing.T) {
	fake := &fakeTmux{sessions: map[string]bool{"bench": true}}
	m := newManager(fake, Config{SessionName: "bench"})

	require.NoError(t, m.Setup())

	assert.Empty(t, fake.created)
	assert.Equal(t, "bench", m.SessionName())
}

func TestSetupError(t *testing.T) {
	m := newManager(&fakeTmux{err: errors.New("no server")}, Config{})

	err := m.Setup()

	assert.ErrorContains(t, err, "no server")
	assert.ErrorIs(t, m.Render("a", "b", hal.ColorRed), ErrNoPaneAvailable)
}

func TestCloseClearsAndReleasesPane(t *testing.T) {
	fake := &fakeTmux{}
	m := newManager(fake, Config{})
	require.NoError(t, m.Setup())
	require.NoError(t, m.Render("Goodbye!", "", hal.ColorGray))
	before := len(fake.commands)

	require.NoError(t, m.Close())

	require.Len(t, fake.commands, before+3)
	assert.Equal(t, []string{"clear-history", "-t", "pirtimer:0.0"}, fake.commands[before+1])
	assert.ErrorIs(t, m.Render("a", "b", hal.ColorRed), ErrNoPaneAvailable)

	require.NoError(t, m.Close(), "closing twice is a no-op")
	assert.Len(t, fake.commands, before+3)
}

func TestRender(t *testing.T) {
	fake := &fakeTmux{}
	m := newManager(fake, Config{})
	require.NoError(t, m.Setup())

	require.NoError(t, m.Render("Set 1/3 MOVE", "it's 5s", hal.ColorGreen))

	last := fake.commands[len(fake.commands)-1]
	require.Len(t, last, 5)
	assert.Equal(t, "Enter", last[4])
	assert.True(t, strings.HasPrefix(last[3], "clear; echo '┌"))
	assert.Contains(t, last[3], "│Set 1/3 MOVE    │")
	assert.Contains(t, last[3], `it'"'"'s 5s`)
	assert.Contains(t, last[3], "backlight #00FF00")
}

func TestLCDFrame(t *testing.T) {
	lines := LCDFrame("██░░ 12s", "a line that is too long", hal.ColorRest)

	require.Len(t, lines, 5)
	assert.Equal(t, "│██░░ 12s        │", lines[1])
	assert.Equal(t, "│a line that is t│", lines[2])
	assert.Equal(t, " backlight #0096FF", lines[4])
}

func TestEscapeTmuxString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"it's", `it'"'"'s`},
		{`a\b`, `a\\b`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeTmuxString(tt.in))
	}
}
