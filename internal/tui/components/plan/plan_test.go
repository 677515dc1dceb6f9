package plan

import (
	"strings"
	"testing"

	"github.com/julianstephens/fitcoach/internal/models"
)

func samplePlan() models.GeneratedPlan {
	return models.GeneratedPlan{
		Summary: "steady cut",
		DietPlan: models.DietPlan{
			DailyMacros: models.MacroNutrients{Protein: 120, Carbs: 180, Fats: 60, TotalCalories: 1800},
			SampleDay: models.DailyMealPlan{
				Breakfast: []models.MealItem{{Name: "Oats", Calories: 350, Description: "with berries"}},
				Dinner:    []models.MealItem{{Name: "Tofu stir fry", Calories: 600}},
			},
			HydrationTips: "Drink 2.5 litres a day.",
		},
		WorkoutPlan: models.WorkoutPlan{
			Frequency: "3 days/week",
			Routine: []models.WorkoutDay{
				{DayName: "Day 1 - Full body", Exercises: []models.Exercise{{Name: "Squat", Sets: "3", Reps: "8-10", Notes: "slow eccentric"}}},
			},
		},
	}
}

func TestRenderMeals(t *testing.T) {
	out := RenderMeals(samplePlan())
	for _, want := range []string{"1800 kcal", "Breakfast", "Oats", "with berries", "Tofu stir fry", "Drink 2.5 litres a day."} {
		if !strings.Contains(out, want) {
			t.Errorf("meal render missing %q", want)
		}
	}
	if strings.Contains(out, "Lunch") {
		t.Error("empty meals should be skipped")
	}
}

func TestRenderWorkout(t *testing.T) {
	out := RenderWorkout(samplePlan())
	for _, want := range []string{"3 days/week", "Day 1 - Full body", "Squat", "3 x 8-10", "slow eccentric"} {
		if !strings.Contains(out, want) {
			t.Errorf("workout render missing %q", want)
		}
	}
}

func TestViewWithoutPlan(t *testing.T) {
	m := New(Meals, 40, 10)
	if !strings.Contains(m.View(), "Press 'g'") {
		t.Errorf("View() = %q", m.View())
	}

	p := samplePlan()
	m.SetPlan(&p)
	if m.Plan == nil {
		t.Fatal("plan not set")
	}
	m.SetPlan(nil)
	if !strings.Contains(m.View(), "No plan yet") {
		t.Error("clearing the plan should restore the empty view")
	}
}
