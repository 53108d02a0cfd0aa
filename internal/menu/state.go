package menu

import "github.com/vburojevic/pirtimer/internal/domain"

// Step sizes and lower bounds of the editable values
const (
	ExerciseStep = 10
	ExerciseMin  = 10
	RestStep     = 5
	RestMin      = 5
	SetsStep     = 1
	SetsMin      = 1
)

// State is the mutable menu model. Sessions receive a copy as SessionConfig.
type State struct {
	Mode            domain.Mode
	ExerciseSeconds int
	RestSeconds     int
	Sets            int
}

// NewState starts the menu from configured defaults
func NewState(cfg domain.SessionConfig) State {
	return State{
		Mode:            cfg.Mode,
		ExerciseSeconds: cfg.ExerciseSeconds,
		RestSeconds:     cfg.RestSeconds,
		Sets:            cfg.Sets,
	}
}

// Increment raises the value shown on screen s
func (st *State) Increment(s Screen) {
	switch s {
	case ScreenMode:
		st.Mode = st.Mode.Toggle()
	case ScreenExercise:
		st.ExerciseSeconds += ExerciseStep
	case ScreenRest:
		st.RestSeconds += RestStep
	case ScreenSets:
		st.Sets += SetsStep
	}
}

// Decrement lowers the value shown on screen s, not below its minimum
func (st *State) Decrement(s Screen) {
	switch s {
	case ScreenMode:
		st.Mode = st.Mode.Toggle()
	case ScreenExercise:
		st.ExerciseSeconds = max(ExerciseMin, st.ExerciseSeconds-ExerciseStep)
	case ScreenRest:
		st.RestSeconds = max(RestMin, st.RestSeconds-RestStep)
	case ScreenSets:
		st.Sets = max(SetsMin, st.Sets-SetsStep)
	}
}

// SessionConfig returns the configuration for the next session
func (st State) SessionConfig() domain.SessionConfig {
	return domain.SessionConfig{
		Mode:            st.Mode,
		ExerciseSeconds: st.ExerciseSeconds,
		RestSeconds:     st.RestSeconds,
		Sets:            st.Sets,
	}
}
