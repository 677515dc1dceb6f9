// Package storagetest holds the behaviour every storage.Provider must share.
package storagetest

import (
	"testing"
	"time"

	"github.com/julianstephens/fitcoach/internal/models"
	"github.com/julianstephens/fitcoach/internal/storage"
)

// SamplePlan returns a plan that passes models.GeneratedPlan.Validate.
func SamplePlan(summary string) models.GeneratedPlan {
	return models.GeneratedPlan{
		DietPlan: models.DietPlan{
			DailyMacros: models.MacroNutrients{Protein: 140, Carbs: 200, Fats: 60, TotalCalories: 1900},
			SampleDay: models.DailyMealPlan{
				Breakfast: []models.MealItem{{Name: "Oats", Calories: 350, Protein: 12, Carbs: 60, Fats: 6}},
				Lunch:     []models.MealItem{{Name: "Lentil bowl", Calories: 550, Protein: 30, Carbs: 70, Fats: 12}},
				Dinner:    []models.MealItem{{Name: "Tofu stir fry", Calories: 600, Protein: 35, Carbs: 55, Fats: 20}},
			},
			HydrationTips: "Drink 2.5 L of water",
		},
		WorkoutPlan: models.WorkoutPlan{
			Frequency: "3 days per week",
			Routine: []models.WorkoutDay{{
				DayName:   "Day 1",
				Exercises: []models.Exercise{{Name: "Squat", Sets: "3", Reps: "10", Notes: "slow eccentric"}},
			}},
		},
		Summary: summary,
	}
}

func sampleUser(id, email string) models.UserProfile {
	return models.UserProfile{
		ID:         id,
		Email:      email,
		Password:   "pw-" + id,
		Name:       "User " + id,
		Age:        30,
		Height:     175,
		Weight:     72.5,
		Gender:     models.GenderOther,
		CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		WeightLogs: []models.WeightLog{{Date: "2026-01-02", Weight: 72.5}},
	}
}

// Run exercises p, which must be freshly created and empty.
func Run(t *testing.T, p storage.Provider) {
	t.Helper()

	t.Run("missing keys read as empty", func(t *testing.T) {
		users, err := p.LoadUsers()
		if err != nil || len(users) != 0 {
			t.Errorf("LoadUsers() = %v, %v; want empty", users, err)
		}
		plan, err := p.LoadPlan("nobody")
		if err != nil || plan != nil {
			t.Errorf("LoadPlan() = %v, %v; want nil", plan, err)
		}
		active, err := p.ActiveUser()
		if err != nil || active != "" {
			t.Errorf("ActiveUser() = %q, %v; want empty", active, err)
		}
	})

	t.Run("users round trip whole collection", func(t *testing.T) {
		users := []models.UserProfile{sampleUser("2", "b@x.com"), sampleUser("1", "a@x.com")}
		if err := p.SaveUsers(users); err != nil {
			t.Fatalf("SaveUsers() error = %v", err)
		}
		got, err := p.LoadUsers()
		if err != nil {
			t.Fatalf("LoadUsers() error = %v", err)
		}
		if len(got) != 2 || got[0].ID != "2" || got[1].ID != "1" {
			t.Fatalf("LoadUsers() order = %+v", got)
		}
		if got[1].Password != "pw-1" || !got[1].CreatedAt.Equal(users[1].CreatedAt) || len(got[1].WeightLogs) != 1 {
			t.Errorf("LoadUsers() lost fields: %+v", got[1])
		}

		if err := p.SaveUsers(users[:1]); err != nil {
			t.Fatalf("SaveUsers() error = %v", err)
		}
		if got, _ = p.LoadUsers(); len(got) != 1 {
			t.Errorf("SaveUsers() did not overwrite, got %d users", len(got))
		}
	})

	t.Run("plans are keyed by user and replaced", func(t *testing.T) {
		if err := p.SavePlan("1", SamplePlan("first")); err != nil {
			t.Fatalf("SavePlan() error = %v", err)
		}
		if err := p.SavePlan("2", SamplePlan("other")); err != nil {
			t.Fatalf("SavePlan() error = %v", err)
		}
		if err := p.SavePlan("1", SamplePlan("second")); err != nil {
			t.Fatalf("SavePlan() error = %v", err)
		}

		plan, err := p.LoadPlan("1")
		if err != nil || plan == nil {
			t.Fatalf("LoadPlan() = %v, %v", plan, err)
		}
		if plan.Summary != "second" {
			t.Errorf("Summary = %q, want second", plan.Summary)
		}
		if plan.DietPlan.DailyMacros.TotalCalories != 1900 || len(plan.WorkoutPlan.Routine) != 1 {
			t.Errorf("plan lost fields: %+v", plan)
		}
		if other, _ := p.LoadPlan("2"); other == nil || other.Summary != "other" {
			t.Errorf("LoadPlan(2) = %+v", other)
		}
	})

	t.Run("active user marker", func(t *testing.T) {
		if err := p.SetActiveUser("a@x.com"); err != nil {
			t.Fatalf("SetActiveUser() error = %v", err)
		}
		if got, _ := p.ActiveUser(); got != "a@x.com" {
			t.Errorf("ActiveUser() = %q", got)
		}
		if err := p.ClearActiveUser(); err != nil {
			t.Fatalf("ClearActiveUser() error = %v", err)
		}
		if got, _ := p.ActiveUser(); got != "" {
			t.Errorf("ActiveUser() after clear = %q", got)
		}
		if err := p.ClearActiveUser(); err != nil {
			t.Errorf("ClearActiveUser() on empty marker error = %v", err)
		}
	})
}
