// Package profile merges profile edits and weight logs onto user records.
// Every function here is pure: callers own persistence and the clock.
package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/fitcoach/internal/constants"
	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/models"
	"github.com/julianstephens/fitcoach/internal/validation"
)

// Draft holds the credentials captured at registration start, before the
// profile form has been completed.
type Draft struct {
	Email    string
	Password string
}

// Submit applies a completed profile form. With an existing user it is an
// edit: only the provided fields change and ID, CreatedAt, Password and
// WeightLogs are kept. Without one it creates a new record from the draft
// credentials, seeding WeightLogs with today's weight.
func Submit(existing *models.UserProfile, draft *Draft, in models.ProfileInput, now time.Time, newID func() string) (models.UserProfile, error) {
	if existing != nil {
		if err := validation.ValidateInput(in); err != nil {
			return models.UserProfile{}, err
		}
		return merge(existing.Clone(), in), nil
	}

	if draft == nil {
		return models.UserProfile{}, errors.ErrNoDraft
	}
	if err := validation.ValidateNewProfile(in); err != nil {
		return models.UserProfile{}, err
	}

	u := models.UserProfile{
		ID:        newID(),
		Email:     strings.TrimSpace(draft.Email),
		Password:  draft.Password,
		CreatedAt: now,
	}
	u = merge(u, in)
	u.WeightLogs = []models.WeightLog{{Date: now.Format(constants.DateFormat), Weight: u.Weight}}
	return u, nil
}

func merge(u models.UserProfile, in models.ProfileInput) models.UserProfile {
	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil {
		u.Age = *in.Age
	}
	if in.Height != nil {
		u.Height = *in.Height
	}
	if in.Weight != nil {
		u.Weight = *in.Weight
	}
	if in.Gender != nil {
		u.Gender = *in.Gender
	}
	if in.ActivityLevel != nil {
		u.ActivityLevel = *in.ActivityLevel
	}
	if in.FitnessGoal != nil {
		u.FitnessGoal = *in.FitnessGoal
	}
	if in.FoodPreference != nil {
		u.FoodPreference = *in.FoodPreference
	}
	if in.HealthIssues != nil {
		u.HealthIssues = strings.TrimSpace(*in.HealthIssues)
	}
	return u
}

// LogWeight records today's weight. An earlier entry for the same calendar
// day is replaced, the log is re-sorted ascending and Weight is set to the
// new value.
func LogWeight(u models.UserProfile, weight float64, now time.Time) (models.UserProfile, error) {
	if err := validation.ValidateWeight(weight); err != nil {
		return models.UserProfile{}, err
	}

	today := now.Format(constants.DateFormat)
	logs := make([]models.WeightLog, 0, len(u.WeightLogs)+1)
	for _, l := range u.WeightLogs {
		if l.Date != today {
			logs = append(logs, l)
		}
	}
	logs = append(logs, models.WeightLog{Date: today, Weight: weight})
	models.SortWeightLogs(logs)

	u = u.Clone()
	u.WeightLogs = logs
	u.Weight = weight
	return u, nil
}

// Upsert replaces the record sharing u's ID or email and puts u first.
// Another user already holding u's email is a conflict.
func Upsert(users []models.UserProfile, u models.UserProfile) ([]models.UserProfile, error) {
	out := make([]models.UserProfile, 0, len(users)+1)
	out = append(out, u)
	for _, existing := range users {
		sameEmail := strings.EqualFold(existing.Email, u.Email)
		if sameEmail && existing.ID != u.ID {
			return nil, fmt.Errorf("%w: %s", errors.ErrAlreadyExists, u.Email)
		}
		if sameEmail || existing.ID == u.ID {
			continue
		}
		out = append(out, existing)
	}
	return out, nil
}

// FindByEmail looks a user up by case-insensitive email.
func FindByEmail(users []models.UserProfile, email string) (models.UserProfile, bool) {
	email = strings.TrimSpace(email)
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.UserProfile{}, false
}

func FindByID(users []models.UserProfile, id string) (models.UserProfile, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return models.UserProfile{}, false
}
