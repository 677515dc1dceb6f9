package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fitcoach/internal/session"
	"github.com/julianstephens/fitcoach/internal/tui"
)

func promptPassword(password string) (string, error) {
	if password != "" {
		return password, nil
	}
	err := huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password).
		WithTheme(huh.ThemeDracula()).
		Run()
	return password, err
}

// runProfileForm asks for the profile fields, prefilled from st.User when editing.
func runProfileForm(st session.State) (*tui.ProfileFormModel, error) {
	fm := tui.NewProfileFormModel(st.User)
	if err := tui.NewProfileForm(fm).Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return nil, stderrors.New("cancelled")
		}
		return nil, err
	}
	return fm, nil
}

type RegisterCmd struct {
	Email    string `arg:"" help:"Email address for the new account."`
	Password string `help:"Password; prompted for when omitted."`
}

func (c *RegisterCmd) Run(ctx *Context) error {
	password, err := promptPassword(c.Password)
	if err != nil {
		return err
	}

	mgr := ctx.Manager()
	st, err := mgr.RegisterStart(session.LoggedOut(), c.Email, password)
	if err != nil {
		return friendly(err, "")
	}

	fm, err := runProfileForm(st)
	if err != nil {
		return err
	}
	in, err := fm.Input()
	if err != nil {
		return friendly(err, "")
	}
	st, err = mgr.SubmitProfile(st, in)
	if err != nil {
		return friendly(err, "")
	}

	fmt.Printf("✓ Welcome, %s! Your account is ready and you are logged in.\n", st.User.Name)
	return nil
}

type LoginCmd struct {
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Password; prompted for when omitted."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	password, err := promptPassword(c.Password)
	if err != nil {
		return err
	}

	st, err := ctx.Manager().Login(session.LoggedOut(), c.Email, password)
	if err != nil && !st.LoggedIn() {
		return friendly(err, "")
	}
	fmt.Printf("✓ Logged in as %s <%s>\n", st.User.Name, st.User.Email)
	return friendly(err, "")
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	mgr := ctx.Manager()
	if _, err := mgr.Logout(mgr.Restore()); err != nil {
		return friendly(err, "")
	}
	fmt.Println("✓ Logged out")
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	st := ctx.Manager().Restore()
	fmt.Printf("Store: %s\n", ctx.Store.GetConfigPath())
	if !st.LoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	u := st.User
	fmt.Printf("User:    %s <%s>\n", u.Name, u.Email)
	fmt.Printf("Weight:  %.1f kg (%+.1f kg since first log)\n", u.Weight, u.WeightChange())
	fmt.Printf("BMI:     %.1f (%s)\n", u.BMI(), tui.BMICategory(u.BMI()))
	fmt.Printf("Goal:    %s\n", u.FitnessGoal)
	if st.Plan != nil {
		fmt.Printf("Plan:    %.0f kcal/day, %s\n", st.Plan.DietPlan.DailyMacros.TotalCalories, st.Plan.WorkoutPlan.Frequency)
	} else {
		fmt.Println("Plan:    none yet (run 'fitcoach plan generate')")
	}
	return nil
}

type ProfileCmd struct{}

func (c *ProfileCmd) Run(ctx *Context) error {
	mgr := ctx.Manager()
	st, err := ctx.currentSession(mgr)
	if err != nil {
		return err
	}

	fm, err := runProfileForm(st)
	if err != nil {
		return err
	}
	in, err := fm.Input()
	if err != nil {
		return friendly(err, "")
	}
	if _, err := mgr.SubmitProfile(st, in); err != nil {
		return friendly(err, "")
	}
	fmt.Println("✓ Profile updated")
	return nil
}
