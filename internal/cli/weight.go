package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/tui/components/weightlog"
)

type WeightLogCmd struct {
	Kg float64 `arg:"" help:"Today's weight in kilograms."`
}

func (c *WeightLogCmd) Run(ctx *Context) error {
	mgr := ctx.Manager()
	st, err := ctx.currentSession(mgr)
	if err != nil {
		return err
	}

	st, err = mgr.LogWeight(st, c.Kg)
	// a failed write still reports the logged weight
	if err != nil && !stderrors.Is(err, errors.ErrIO) {
		return friendly(err, "")
	}
	fmt.Printf("✓ Logged %.1f kg for today (%+.1f kg since first log)\n", c.Kg, st.User.WeightChange())
	return friendly(err, "")
}

type WeightHistoryCmd struct{}

func (c *WeightHistoryCmd) Run(ctx *Context) error {
	st, err := ctx.currentSession(ctx.Manager())
	if err != nil {
		return err
	}

	items := weightlog.Items(st.User.WeightLogs)
	if len(items) == 0 {
		fmt.Println("No weight logged yet.")
		return nil
	}
	for _, it := range items {
		item := it.(weightlog.Item)
		fmt.Printf("  %s  (%s)\n", item.Title(), item.Description())
	}
	return nil
}
