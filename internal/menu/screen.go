// Package menu implements the four-button configuration menu that edits
// the session settings and starts sessions.
package menu

import (
	"fmt"

	"github.com/vburojevic/pirtimer/internal/domain"
	"github.com/vburojevic/pirtimer/internal/hal"
)

// Screen is one page of the menu
type Screen int

const (
	ScreenMode Screen = iota
	ScreenExercise
	ScreenRest
	ScreenSets
)

// Screens lists the pages in navigation order
var Screens = []Screen{ScreenMode, ScreenExercise, ScreenRest, ScreenSets}

func (s Screen) String() string {
	switch s {
	case ScreenMode:
		return "mode"
	case ScreenExercise:
		return "exercise"
	case ScreenRest:
		return "rest"
	case ScreenSets:
		return "sets"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

// Next returns the following screen and whether the menu is done
func (s Screen) Next() (Screen, bool) {
	if s >= ScreenSets {
		return ScreenMode, true
	}
	return s + 1, false
}

// Prev returns the previous screen, stopping at the first
func (s Screen) Prev() Screen {
	if s <= ScreenMode {
		return ScreenMode
	}
	return s - 1
}

// Render returns the display content of the screen for st
func (s Screen) Render(st State) (string, string, hal.Color) {
	switch s {
	case ScreenExercise:
		return "Exercise Time", fmt.Sprintf("%ds", st.ExerciseSeconds), hal.ColorWhite
	case ScreenRest:
		return "Rest Time", fmt.Sprintf("%ds", st.RestSeconds), hal.ColorWhite
	case ScreenSets:
		return fmt.Sprintf("M:%d Ex:%d R:%d", int(st.Mode), st.ExerciseSeconds, st.RestSeconds),
			fmt.Sprintf("Sets:%d (Press>)", st.Sets),
			hal.ColorCyan
	default:
		if st.Mode == domain.ModeMotion {
			return "Mode 1", "Move Detection", hal.ColorGreen
		}
		return "Mode 2", "Stay Detection", hal.ColorBlue
	}
}
