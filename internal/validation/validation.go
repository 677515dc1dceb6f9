package validation

import (
	"fmt"
	"math"
	"net/mail"
	"strings"

	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/models"
)

const (
	MinAge    = 10
	MaxAge    = 120
	MinHeight = 50.0  // cm
	MaxHeight = 272.0 // cm
	MaxWeight = 650.0 // kg
)

// ValidateWeight accepts finite positive weights within a human range.
func ValidateWeight(weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 || weight > MaxWeight {
		return fmt.Errorf("%w: got %v", errors.ErrInvalidWeight, weight)
	}
	return nil
}

// ValidateCredentials checks the email/password pair entered at login or
// registration start. Passwords are compared verbatim, so only emptiness is
// rejected.
func ValidateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", errors.ErrInvalidProfile)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email %q", errors.ErrInvalidProfile, email)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", errors.ErrInvalidProfile)
	}
	return nil
}

// ValidateInput checks every field present in the input.
func ValidateInput(in models.ProfileInput) error {
	var problems []string

	if in.Email != nil {
		if _, err := mail.ParseAddress(strings.TrimSpace(*in.Email)); err != nil {
			problems = append(problems, fmt.Sprintf("invalid email %q", *in.Email))
		}
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		problems = append(problems, "name cannot be empty")
	}
	if in.Age != nil && (*in.Age < MinAge || *in.Age > MaxAge) {
		problems = append(problems, fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge))
	}
	if in.Height != nil && (math.IsNaN(*in.Height) || *in.Height < MinHeight || *in.Height > MaxHeight) {
		problems = append(problems, fmt.Sprintf("height must be between %.0f and %.0f cm", MinHeight, MaxHeight))
	}
	if in.Weight != nil {
		if err := ValidateWeight(*in.Weight); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if in.Gender != nil && !contains(models.Genders, *in.Gender) {
		problems = append(problems, fmt.Sprintf("unknown gender %q", *in.Gender))
	}
	if in.ActivityLevel != nil && !contains(models.ActivityLevels, *in.ActivityLevel) {
		problems = append(problems, fmt.Sprintf("unknown activity level %q", *in.ActivityLevel))
	}
	if in.FitnessGoal != nil && !contains(models.FitnessGoals, *in.FitnessGoal) {
		problems = append(problems, fmt.Sprintf("unknown fitness goal %q", *in.FitnessGoal))
	}
	if in.FoodPreference != nil && !contains(models.FoodPreferences, *in.FoodPreference) {
		problems = append(problems, fmt.Sprintf("unknown food preference %q", *in.FoodPreference))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", errors.ErrInvalidProfile, strings.Join(problems, "; "))
	}
	return nil
}

// ValidateNewProfile requires every mandatory field for a first-time profile.
func ValidateNewProfile(in models.ProfileInput) error {
	var missing []string
	if in.Name == nil {
		missing = append(missing, "name")
	}
	if in.Age == nil {
		missing = append(missing, "age")
	}
	if in.Height == nil {
		missing = append(missing, "height")
	}
	if in.Weight == nil {
		missing = append(missing, "weight")
	}
	if in.Gender == nil {
		missing = append(missing, "gender")
	}
	if in.ActivityLevel == nil {
		missing = append(missing, "activity level")
	}
	if in.FitnessGoal == nil {
		missing = append(missing, "fitness goal")
	}
	if in.FoodPreference == nil {
		missing = append(missing, "food preference")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", errors.ErrInvalidProfile, strings.Join(missing, ", "))
	}
	return ValidateInput(in)
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
