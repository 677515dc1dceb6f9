package validation

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestValidateWeight(t *testing.T) {
	tests := []struct {
		name    string
		weight  float64
		wantErr bool
	}{
		{"typical", 70.5, false},
		{"small positive", 0.1, false},
		{"zero", 0, true},
		{"negative", -3, true},
		{"NaN", math.NaN(), true},
		{"positive infinity", math.Inf(1), true},
		{"negative infinity", math.Inf(-1), true},
		{"too heavy", MaxWeight + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeight(tt.weight)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateWeight(%v) error = %v, wantErr %v", tt.weight, err, tt.wantErr)
			}
			if err != nil && !stderrors.Is(err, errors.ErrInvalidWeight) {
				t.Errorf("ValidateWeight(%v) error = %v, want ErrInvalidWeight", tt.weight, err)
			}
		})
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "alice@x.com", "pw1", false},
		{"empty email", "", "pw1", true},
		{"malformed email", "alice", "pw1", true},
		{"empty password", "alice@x.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.email, tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCredentials() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNewProfile(t *testing.T) {
	complete := models.ProfileInput{
		Name:           ptr("Alice"),
		Age:            ptr(30),
		Height:         ptr(165.0),
		Weight:         ptr(70.0),
		Gender:         ptr(models.GenderFemale),
		ActivityLevel:  ptr(models.ActivityModeratelyActive),
		FitnessGoal:    ptr(models.GoalLoseWeight),
		FoodPreference: ptr(models.FoodVegetarian),
	}
	if err := ValidateNewProfile(complete); err != nil {
		t.Fatalf("ValidateNewProfile(complete) error = %v", err)
	}

	missingWeight := complete
	missingWeight.Weight = nil
	if err := ValidateNewProfile(missingWeight); !stderrors.Is(err, errors.ErrInvalidProfile) {
		t.Errorf("ValidateNewProfile(missing weight) error = %v, want ErrInvalidProfile", err)
	}

	badGoal := complete
	badGoal.FitnessGoal = ptr(models.FitnessGoal("Fly"))
	if err := ValidateNewProfile(badGoal); err == nil {
		t.Error("ValidateNewProfile(bad goal) expected error")
	}
}

func TestValidateInputPartial(t *testing.T) {
	if err := ValidateInput(models.ProfileInput{}); err != nil {
		t.Errorf("empty input should be valid, got %v", err)
	}
	if err := ValidateInput(models.ProfileInput{Age: ptr(5)}); err == nil {
		t.Error("age below minimum should fail")
	}
	if err := ValidateInput(models.ProfileInput{Name: ptr("  ")}); err == nil {
		t.Error("blank name should fail")
	}
}
