package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/fitcoach/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Delete an existing local store before initializing."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		path, ok := ctx.StorePath()
		if !ok {
			return fmt.Errorf("--force only applies to local stores, not %s", ctx.Store.GetConfigPath())
		}
		if _, err := os.Stat(path); err == nil {
			// Close first so SQLite releases the file
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		if stderrors.Is(err, storage.ErrAlreadyInitialized) {
			fmt.Printf("Store already initialized at: %s\n", ctx.Store.GetConfigPath())
			return nil
		}
		return err
	}
	fmt.Printf("Initialized fitcoach storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
