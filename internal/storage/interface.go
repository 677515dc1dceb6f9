package storage

import (
	stderrors "errors"

	"github.com/julianstephens/fitcoach/internal/models"
)

var (
	ErrAlreadyInitialized = stderrors.New("storage already initialized")
	ErrNotInitialized     = stderrors.New("storage not initialized, run 'fitcoach init' first")
)

// Provider is the record store. Reads of a missing key return the empty
// value; every write replaces the whole value.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	LoadUsers() ([]models.UserProfile, error)
	SaveUsers([]models.UserProfile) error

	// Plans, at most one per user id
	LoadPlan(userID string) (*models.GeneratedPlan, error)
	SavePlan(userID string, plan models.GeneratedPlan) error

	// Active user marker, holding the email of the logged-in user
	ActiveUser() (string, error)
	SetActiveUser(email string) error
	ClearActiveUser() error

	// Utils
	GetConfigPath() string
}
