package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/fitcoach/internal/logger"
)

var (
	// ErrNotFound is returned when a login names an unknown email or a
	// lookup names an unknown user id
	ErrNotFound = stderrors.New("account not found")
	// ErrWrongPassword is returned when the email exists but the password differs
	ErrWrongPassword = stderrors.New("incorrect password")
	// ErrAlreadyExists is returned when an email is already registered
	ErrAlreadyExists = stderrors.New("account already exists")
	// ErrGenerationFailure is returned when the plan generator fails
	ErrGenerationFailure = stderrors.New("plan generation failed")
	// ErrIO marks a record store read or write failure
	ErrIO = stderrors.New("record store unavailable")

	ErrInvalidWeight        = stderrors.New("weight must be a finite positive number")
	ErrInvalidProfile       = stderrors.New("invalid profile")
	ErrNoDraft              = stderrors.New("no pending registration")
	ErrNotLoggedIn          = stderrors.New("no active user")
	ErrGenerationInProgress = stderrors.New("plan generation already in progress")
)

// IO wraps a storage failure so it matches ErrIO while keeping the cause.
func IO(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}

// UserMessage maps an error to the message shown to the person at the keyboard.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, ErrNotFound):
		return "Account not found. Please register to create a new account."
	case stderrors.Is(err, ErrWrongPassword):
		return "Incorrect password. Please try again."
	case stderrors.Is(err, ErrAlreadyExists):
		return "Account with this email already exists. Please login."
	case stderrors.Is(err, ErrGenerationFailure):
		return "Failed to generate plan. Please try again."
	case stderrors.Is(err, ErrGenerationInProgress):
		return "A plan is already being generated."
	case stderrors.Is(err, ErrIO):
		return "Your data could not be saved or loaded. Changes may be lost on restart."
	default:
		return err.Error()
	}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
