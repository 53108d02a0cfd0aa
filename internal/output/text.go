package output

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/pirtimer/internal/domain"
)

// TextWriter prints session events as human-readable lines
type TextWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextWriter creates a text writer on w
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// Emit prints one event. Unknown events are ignored.
func (t *TextWriter) Emit(event interface{}) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var err error
	switch e := event.(type) {
	case *domain.SessionStart:
		_, err = fmt.Fprintf(t.w, "=== Session %s started ===\nMode: %s, exercise: %ds, rest: %ds, sets: %d\n",
			shortID(e.SessionID), e.Config.Mode, e.Config.ExerciseSeconds, e.Config.RestSeconds, e.Config.Sets)
	case *domain.PhaseStart:
		_, err = fmt.Fprintf(t.w, "Set %d/%d %s (%ds)\n", e.Set, e.Sets, e.Phase, e.Seconds)
	case *domain.Pause:
		_, err = fmt.Fprintf(t.w, "PAUSED at %ds: %s\n", e.Elapsed, e.Message)
	case *domain.Resume:
		_, err = fmt.Fprintf(t.w, "Resumed after %.1fs\n", e.PausedSeconds)
	case *domain.SessionEnd:
		if _, err = fmt.Fprintf(t.w, "=== Session %s %s ===\n", shortID(e.SessionID), e.Outcome); err != nil {
			return err
		}
		err = WriteSummaryTable(t.w, e.Summary)
	}
	return err
}

// WriteSummaryTable renders a session summary as a table
func WriteSummaryTable(w io.Writer, s domain.SessionSummary) error {
	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	rows := [][]string{
		{"Sets completed", strconv.Itoa(s.SetsCompleted)},
		{"Exercise", fmt.Sprintf("%ds", s.ExerciseSeconds)},
		{"Rest", fmt.Sprintf("%ds", s.RestSeconds)},
		{"Pauses", strconv.Itoa(s.Pauses)},
		{"Paused", fmt.Sprintf("%.1fs", s.PausedSeconds)},
		{"Motion changes", strconv.Itoa(s.Transitions)},
		{"Duration", fmt.Sprintf("%.1fs", s.DurationSeconds)},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
