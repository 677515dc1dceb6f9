package cli

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/logger"
	"github.com/julianstephens/fitcoach/internal/tui/components/plan"
)

// confirm asks a y/N question on stdin.
func confirm(in io.Reader, question string) (bool, error) {
	fmt.Print(question + " [y/N]: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !stderrors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

type PlanGenerateCmd struct {
	Yes bool `short:"y" help:"Replace an existing plan without asking."`
}

func (c *PlanGenerateCmd) Run(ctx *Context) error {
	mgr := ctx.Manager()
	st, err := ctx.currentSession(mgr)
	if err != nil {
		return err
	}

	if st.Plan != nil && !c.Yes {
		fmt.Println("Warning: you already have a plan. Generating a new one will replace it.")
		ok, err := confirm(os.Stdin, "Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Plan generation cancelled.")
			return nil
		}
	}

	fmt.Printf("Generating a plan for %s...\n", st.User.Name)
	st, err = mgr.Generate(ctx.Ctx(), st)
	if err != nil && !stderrors.Is(err, errors.ErrIO) {
		logger.Error("Plan generation failed", "user", st.User.ID, "error", err)
		return friendly(err, "")
	}

	fmt.Println("✓ " + st.Plan.Summary)
	fmt.Println("Run 'fitcoach plan show' to see the details.")
	return friendly(err, "")
}

type PlanShowCmd struct {
	Section string `arg:"" optional:"" enum:"all,meals,workout" default:"all" help:"Which part of the plan to show (all, meals, workout)."`
}

func (c *PlanShowCmd) Run(ctx *Context) error {
	st, err := ctx.currentSession(ctx.Manager())
	if err != nil {
		return err
	}
	if st.Plan == nil {
		fmt.Println("No plan yet. Run 'fitcoach plan generate' to create one.")
		return nil
	}

	if st.Plan.Summary != "" {
		fmt.Println(st.Plan.Summary)
		fmt.Println()
	}
	if c.Section == "all" || c.Section == "meals" {
		fmt.Println(plan.RenderMeals(*st.Plan))
	}
	if c.Section == "all" || c.Section == "workout" {
		fmt.Println(plan.RenderWorkout(*st.Plan))
	}
	return nil
}
