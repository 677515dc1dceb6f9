package session

import (
	"github.com/julianstephens/fitcoach/internal/models"
	"github.com/julianstephens/fitcoach/internal/profile"
)

type View string

const (
	ViewLogin       View = "LOGIN"
	ViewDashboard   View = "DASHBOARD"
	ViewProfile     View = "PROFILE"
	ViewMealPlan    View = "MEAL_PLAN"
	ViewWorkoutPlan View = "WORKOUT_PLAN"
	ViewProgress    View = "PROGRESS"
)

// State is the in-memory session. It is never persisted; Manager.Restore
// rebuilds it from the record store at startup.
type State struct {
	User    *models.UserProfile
	Plan    *models.GeneratedPlan
	View    View
	Pending *profile.Draft // credentials held between registration start and profile submit
	Loading bool           // a plan generation is outstanding
}

// LoggedOut is the empty session at the login screen.
func LoggedOut() State {
	return State{View: ViewLogin}
}

func (s State) LoggedIn() bool {
	return s.User != nil
}

// Navigate moves to target when the session satisfies it, otherwise to LOGIN.
// PROFILE needs a user or pending registration; LOGIN is always allowed;
// every other view needs a user.
func (s State) Navigate(target View) State {
	s.View = target
	if !s.allows(target) {
		s.View = ViewLogin
	}
	return s
}

func (s State) allows(v View) bool {
	switch v {
	case ViewLogin:
		return true
	case ViewProfile:
		return s.User != nil || s.Pending != nil
	case ViewDashboard, ViewMealPlan, ViewWorkoutPlan, ViewProgress:
		return s.User != nil
	default:
		return false
	}
}

// Valid reports whether the current view satisfies its guard.
func (s State) Valid() bool {
	return s.allows(s.View)
}
