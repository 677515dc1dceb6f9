package tui

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/models"
	"github.com/julianstephens/fitcoach/internal/validation"
)

type LoginFormModel struct {
	Register bool
	Email    string
	Password string
}

type ProfileFormModel struct {
	Name           string
	Age            string
	Height         string
	Weight         string
	Gender         models.Gender
	ActivityLevel  models.ActivityLevel
	FitnessGoal    models.FitnessGoal
	FoodPreference models.FoodPreference
	HealthIssues   string
}

type WeightFormModel struct {
	Weight string
}

// NewProfileFormModel prefills the form from u, or with the first option of
// every choice for a new account.
func NewProfileFormModel(u *models.UserProfile) *ProfileFormModel {
	if u == nil {
		return &ProfileFormModel{
			Gender:         models.Genders[0],
			ActivityLevel:  models.ActivityLevels[0],
			FitnessGoal:    models.FitnessGoals[0],
			FoodPreference: models.FoodPreferences[0],
		}
	}
	return &ProfileFormModel{
		Name:           u.Name,
		Age:            strconv.Itoa(u.Age),
		Height:         formatNumber(u.Height),
		Weight:         formatNumber(u.Weight),
		Gender:         u.Gender,
		ActivityLevel:  u.ActivityLevel,
		FitnessGoal:    u.FitnessGoal,
		FoodPreference: u.FoodPreference,
		HealthIssues:   u.HealthIssues,
	}
}

// Input converts the text fields into a complete ProfileInput.
func (f *ProfileFormModel) Input() (models.ProfileInput, error) {
	age, err := strconv.Atoi(strings.TrimSpace(f.Age))
	if err != nil {
		return models.ProfileInput{}, fmt.Errorf("%w: age must be a whole number", errors.ErrInvalidProfile)
	}
	height, err := parseNumber(f.Height)
	if err != nil {
		return models.ProfileInput{}, fmt.Errorf("%w: height must be a number", errors.ErrInvalidProfile)
	}
	weight, err := parseNumber(f.Weight)
	if err != nil {
		return models.ProfileInput{}, fmt.Errorf("%w: weight must be a number", errors.ErrInvalidProfile)
	}

	name, health := f.Name, f.HealthIssues
	gender, activity, goal, food := f.Gender, f.ActivityLevel, f.FitnessGoal, f.FoodPreference
	return models.ProfileInput{
		Name:           &name,
		Age:            &age,
		Height:         &height,
		Weight:         &weight,
		Gender:         &gender,
		ActivityLevel:  &activity,
		FitnessGoal:    &goal,
		FoodPreference: &food,
		HealthIssues:   &health,
	}, nil
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func NewLoginForm(fm *LoginFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[bool]().
				Title("FitCoach").
				Options(
					huh.NewOption("Log in", false),
					huh.NewOption("Create an account", true),
				).
				Value(&fm.Register),
			huh.NewInput().
				Title("Email").
				Value(&fm.Email).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return stderrors.New("email is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password).
				Validate(func(s string) error {
					if s == "" {
						return stderrors.New("password is required")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewProfileForm(fm *ProfileFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					return validation.ValidateInput(models.ProfileInput{Name: &s})
				}),
			huh.NewInput().
				Title("Age").
				Value(&fm.Age).
				Validate(func(s string) error {
					age, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return stderrors.New("age must be a whole number")
					}
					return validation.ValidateInput(models.ProfileInput{Age: &age})
				}),
			huh.NewInput().
				Title("Height (cm)").
				Value(&fm.Height).
				Validate(func(s string) error {
					h, err := parseNumber(s)
					if err != nil {
						return stderrors.New("height must be a number")
					}
					return validation.ValidateInput(models.ProfileInput{Height: &h})
				}),
			huh.NewInput().
				Title("Weight (kg)").
				Value(&fm.Weight).
				Validate(validWeight),
		),
		huh.NewGroup(
			huh.NewSelect[models.Gender]().
				Title("Gender").
				Options(enumOptions(models.Genders)...).
				Value(&fm.Gender),
			huh.NewSelect[models.ActivityLevel]().
				Title("Activity level").
				Options(enumOptions(models.ActivityLevels)...).
				Value(&fm.ActivityLevel),
			huh.NewSelect[models.FitnessGoal]().
				Title("Fitness goal").
				Options(enumOptions(models.FitnessGoals)...).
				Value(&fm.FitnessGoal),
			huh.NewSelect[models.FoodPreference]().
				Title("Food preference").
				Options(enumOptions(models.FoodPreferences)...).
				Value(&fm.FoodPreference),
			huh.NewText().
				Title("Health issues").
				Description("Injuries, conditions or allergies the plan should respect").
				Value(&fm.HealthIssues),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewWeightForm(fm *WeightFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Today's weight (kg)").
				Value(&fm.Weight).
				Validate(validWeight),
		),
	).WithTheme(huh.ThemeDracula())
}

func validWeight(s string) error {
	w, err := parseNumber(s)
	if err != nil {
		return stderrors.New("weight must be a number")
	}
	return validation.ValidateWeight(w)
}

func enumOptions[T ~string](values []T) []huh.Option[T] {
	opts := make([]huh.Option[T], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(string(v), v)
	}
	return opts
}
