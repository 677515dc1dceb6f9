package session

import (
	"testing"

	"github.com/julianstephens/fitcoach/internal/models"
	"github.com/julianstephens/fitcoach/internal/profile"
)

func TestNavigateGuard(t *testing.T) {
	user := &models.UserProfile{ID: "u1"}
	draft := &profile.Draft{Email: "a@x.com", Password: "pw"}

	tests := []struct {
		name   string
		state  State
		target View
		want   View
	}{
		{"logged out to dashboard", LoggedOut(), ViewDashboard, ViewLogin},
		{"logged out to progress", LoggedOut(), ViewProgress, ViewLogin},
		{"logged out to meal plan", LoggedOut(), ViewMealPlan, ViewLogin},
		{"logged out to workout plan", LoggedOut(), ViewWorkoutPlan, ViewLogin},
		{"logged out to profile", LoggedOut(), ViewProfile, ViewLogin},
		{"pending registration to profile", State{Pending: draft}, ViewProfile, ViewProfile},
		{"pending registration to dashboard", State{Pending: draft}, ViewDashboard, ViewLogin},
		{"user to dashboard", State{User: user}, ViewDashboard, ViewDashboard},
		{"user to progress", State{User: user}, ViewProgress, ViewProgress},
		{"user to profile", State{User: user}, ViewProfile, ViewProfile},
		{"user to login", State{User: user}, ViewLogin, ViewLogin},
		{"unknown view", State{User: user}, View("SETTINGS"), ViewLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.state.Navigate(tt.target)
			if got.View != tt.want {
				t.Errorf("Navigate(%s) = %s, want %s", tt.target, got.View, tt.want)
			}
			if !got.Valid() {
				t.Errorf("Navigate(%s) produced an invalid state", tt.target)
			}
		})
	}
}

func TestNavigateKeepsSessionData(t *testing.T) {
	plan := &models.GeneratedPlan{Summary: "p"}
	st := State{User: &models.UserProfile{ID: "u1"}, Plan: plan, View: ViewDashboard, Loading: true}

	got := st.Navigate(ViewMealPlan)
	if got.Plan != plan || !got.Loading || got.User.ID != "u1" {
		t.Errorf("Navigate() dropped session data: %+v", got)
	}
}

func TestValid(t *testing.T) {
	if (State{View: ViewDashboard}).Valid() {
		t.Error("dashboard without user should be invalid")
	}
	if !LoggedOut().Valid() {
		t.Error("logged out state should be valid")
	}
}
