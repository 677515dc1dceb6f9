package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fitcoach/internal/keyring"
)

// KeyringSetCmd stores the Gemini API key in the OS keyring
type KeyringSetCmd struct {
	Key string `arg:"" optional:"" help:"Gemini API key; prompted for when omitted."`
}

func (cmd *KeyringSetCmd) Run(ctx *Context) error {
	key := cmd.Key
	if key == "" {
		err := huh.NewInput().
			Title("Gemini API key").
			EchoMode(huh.EchoModePassword).
			Value(&key).
			WithTheme(huh.ThemeDracula()).
			Run()
		if err != nil {
			return err
		}
	}

	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}
	fmt.Println("✓ API key stored in the OS keyring")
	if ctx.Config != nil && ctx.Config.GeminiAPIKey != "" {
		fmt.Println("  Note: GEMINI_API_KEY is set in the environment and takes precedence.")
	}
	return nil
}

// KeyringDeleteCmd removes the Gemini API key from the OS keyring
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if stderrors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No API key stored in the keyring.")
			return nil
		}
		return err
	}
	fmt.Println("✓ API key removed from the OS keyring")
	return nil
}

// KeyringStatusCmd reports where the API key would be read from
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *Context) error {
	if keyring.IsAvailable() {
		fmt.Println("OS keyring: available")
	} else {
		fmt.Println("OS keyring: unavailable")
	}

	explicit := ""
	if ctx.Config != nil {
		explicit = ctx.Config.GeminiAPIKey
	}
	key, source := keyring.ResolveAPIKey(explicit)
	if key == "" {
		fmt.Println("API key:    not configured")
		return nil
	}
	fmt.Printf("API key:    %s (from %s)\n", keyring.Mask(key), source)
	return nil
}
