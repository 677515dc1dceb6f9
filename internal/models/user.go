package models

import (
	"math"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "Sedentary"
	ActivityLightlyActive    ActivityLevel = "Lightly Active"
	ActivityModeratelyActive ActivityLevel = "Moderately Active"
	ActivityVeryActive       ActivityLevel = "Very Active"
	ActivitySuperActive      ActivityLevel = "Super Active"
)

type FitnessGoal string

const (
	GoalLoseWeight FitnessGoal = "Lose Weight"
	GoalMaintain   FitnessGoal = "Maintain Weight"
	GoalGainMuscle FitnessGoal = "Build Muscle"
)

type FoodPreference string

const (
	FoodVegetarian FoodPreference = "Vegetarian"
	FoodNonVeg     FoodPreference = "Non-Vegetarian"
	FoodVegan      FoodPreference = "Vegan"
	FoodKeto       FoodPreference = "Keto"
	FoodPaleo      FoodPreference = "Paleo"
)

var (
	Genders         = []Gender{GenderMale, GenderFemale, GenderOther}
	ActivityLevels  = []ActivityLevel{ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive, ActivityVeryActive, ActivitySuperActive}
	FitnessGoals    = []FitnessGoal{GoalLoseWeight, GoalMaintain, GoalGainMuscle}
	FoodPreferences = []FoodPreference{FoodVegetarian, FoodNonVeg, FoodVegan, FoodKeto, FoodPaleo}
)

// UserProfile is one registered person. ID and CreatedAt are set once at
// creation and never change afterwards.
type UserProfile struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	Password       string         `json:"password,omitempty"`
	Name           string         `json:"name"`
	Age            int            `json:"age"`
	Height         float64        `json:"height"` // cm
	Weight         float64        `json:"weight"` // kg
	Gender         Gender         `json:"gender"`
	ActivityLevel  ActivityLevel  `json:"activityLevel"`
	FitnessGoal    FitnessGoal    `json:"fitnessGoal"`
	FoodPreference FoodPreference `json:"foodPreference"`
	HealthIssues   string         `json:"healthIssues,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	WeightLogs     []WeightLog    `json:"weightLogs,omitempty"`
}

// ProfileInput carries the fields of a profile form. Nil fields are left
// untouched when merged onto an existing profile.
type ProfileInput struct {
	Email          *string         `json:"email,omitempty"`
	Name           *string         `json:"name,omitempty"`
	Age            *int            `json:"age,omitempty"`
	Height         *float64        `json:"height,omitempty"`
	Weight         *float64        `json:"weight,omitempty"`
	Gender         *Gender         `json:"gender,omitempty"`
	ActivityLevel  *ActivityLevel  `json:"activityLevel,omitempty"`
	FitnessGoal    *FitnessGoal    `json:"fitnessGoal,omitempty"`
	FoodPreference *FoodPreference `json:"foodPreference,omitempty"`
	HealthIssues   *string         `json:"healthIssues,omitempty"`
}

// PublicProfile is a UserProfile with the password stripped, safe to return
// across any transport boundary.
type PublicProfile struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	Name           string         `json:"name"`
	Age            int            `json:"age"`
	Height         float64        `json:"height"`
	Weight         float64        `json:"weight"`
	Gender         Gender         `json:"gender"`
	ActivityLevel  ActivityLevel  `json:"activityLevel"`
	FitnessGoal    FitnessGoal    `json:"fitnessGoal"`
	FoodPreference FoodPreference `json:"foodPreference"`
	HealthIssues   string         `json:"healthIssues,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	WeightLogs     []WeightLog    `json:"weightLogs"`
}

func (u UserProfile) Public() PublicProfile {
	logs := u.WeightLogs
	if logs == nil {
		logs = []WeightLog{}
	}
	return PublicProfile{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Age:            u.Age,
		Height:         u.Height,
		Weight:         u.Weight,
		Gender:         u.Gender,
		ActivityLevel:  u.ActivityLevel,
		FitnessGoal:    u.FitnessGoal,
		FoodPreference: u.FoodPreference,
		HealthIssues:   u.HealthIssues,
		CreatedAt:      u.CreatedAt,
		WeightLogs:     logs,
	}
}

// Clone returns a copy that shares no slices with u.
func (u UserProfile) Clone() UserProfile {
	if u.WeightLogs != nil {
		logs := make([]WeightLog, len(u.WeightLogs))
		copy(logs, u.WeightLogs)
		u.WeightLogs = logs
	}
	return u
}

// BMI returns the body mass index for the current weight, or 0 when height is unknown.
func (u UserProfile) BMI() float64 {
	if u.Height <= 0 {
		return 0
	}
	m := u.Height / 100
	return math.Round(u.Weight/(m*m)*10) / 10
}

// WeightChange returns the difference between the latest and the first logged weight.
func (u UserProfile) WeightChange() float64 {
	if len(u.WeightLogs) < 2 {
		return 0
	}
	first := u.WeightLogs[0].Weight
	last := u.WeightLogs[len(u.WeightLogs)-1].Weight
	return math.Round((last-first)*10) / 10
}
