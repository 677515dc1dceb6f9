package models

import "errors"

type MealItem struct {
	Name        string  `json:"name"`
	Calories    float64 `json:"calories"`
	Description string  `json:"description"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
}

type DailyMealPlan struct {
	Breakfast []MealItem `json:"breakfast"`
	Lunch     []MealItem `json:"lunch"`
	Dinner    []MealItem `json:"dinner"`
	Snacks    []MealItem `json:"snacks"`
}

type MacroNutrients struct {
	Protein       float64 `json:"protein"` // grams
	Carbs         float64 `json:"carbs"`   // grams
	Fats          float64 `json:"fats"`    // grams
	TotalCalories float64 `json:"totalCalories"`
}

type DietPlan struct {
	DailyMacros   MacroNutrients `json:"dailyMacros"`
	SampleDay     DailyMealPlan  `json:"sampleDay"`
	HydrationTips string         `json:"hydrationTips"`
}

type Exercise struct {
	Name  string `json:"name"`
	Sets  string `json:"sets"`
	Reps  string `json:"reps"`
	Notes string `json:"notes,omitempty"`
}

type WorkoutDay struct {
	DayName   string     `json:"dayName"` // e.g. "Day 1 - Push"
	Exercises []Exercise `json:"exercises"`
}

type WorkoutPlan struct {
	Frequency string       `json:"frequency"`
	Routine   []WorkoutDay `json:"routine"`
}

// GeneratedPlan is the diet and workout plan produced for a user. At most one
// is kept per user; a new one replaces the old one entirely.
type GeneratedPlan struct {
	DietPlan    DietPlan    `json:"dietPlan"`
	WorkoutPlan WorkoutPlan `json:"workoutPlan"`
	Summary     string      `json:"summary"`
}

// Validate rejects structurally incomplete plans so a partial generator
// response is never cached.
func (p GeneratedPlan) Validate() error {
	if p.DietPlan.DailyMacros.TotalCalories <= 0 {
		return errors.New("plan has no calorie target")
	}
	if len(p.WorkoutPlan.Routine) == 0 {
		return errors.New("plan has no workout routine")
	}
	meals := p.DietPlan.SampleDay
	if len(meals.Breakfast)+len(meals.Lunch)+len(meals.Dinner)+len(meals.Snacks) == 0 {
		return errors.New("plan has no meals")
	}
	return nil
}
