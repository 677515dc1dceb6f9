package session

import (
	"context"
	"fmt"

	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/logger"
	"github.com/julianstephens/fitcoach/internal/models"
	"github.com/julianstephens/fitcoach/internal/profile"
	"github.com/julianstephens/fitcoach/internal/validation"
)

// Account operations work on stored users directly and never touch the
// active user marker. The HTTP server uses them; the session operations in
// manager.go are built on top of them.

// Authenticate matches email case-insensitively and password exactly.
func (m *Manager) Authenticate(email, password string) (models.UserProfile, error) {
	users, err := m.store.LoadUsers()
	if err != nil {
		return models.UserProfile{}, err
	}
	u, ok := profile.FindByEmail(users, email)
	if !ok {
		return models.UserProfile{}, errors.ErrNotFound
	}
	if u.Password != password {
		return models.UserProfile{}, errors.ErrWrongPassword
	}
	return u, nil
}

// EmailTaken reports whether any stored user holds email, ignoring case.
func (m *Manager) EmailTaken(email string) (bool, error) {
	users, err := m.store.LoadUsers()
	if err != nil {
		return false, err
	}
	_, ok := profile.FindByEmail(users, email)
	return ok, nil
}

// Register creates and stores a user in one step.
func (m *Manager) Register(email, password string, in models.ProfileInput) (models.UserProfile, error) {
	if err := validation.ValidateCredentials(email, password); err != nil {
		return models.UserProfile{}, err
	}
	taken, err := m.EmailTaken(email)
	if err != nil {
		return models.UserProfile{}, err
	}
	if taken {
		return models.UserProfile{}, errors.ErrAlreadyExists
	}

	u, err := profile.Submit(nil, &profile.Draft{Email: email, Password: password}, in, m.now(), m.newID)
	if err != nil {
		return models.UserProfile{}, err
	}
	if _, err := m.saveUser(u); err != nil {
		return models.UserProfile{}, err
	}
	logger.Info("User registered", "user", u.ID)
	return u, nil
}

// User looks a stored user up by id.
func (m *Manager) User(id string) (models.UserProfile, error) {
	users, err := m.store.LoadUsers()
	if err != nil {
		return models.UserProfile{}, err
	}
	u, ok := profile.FindByID(users, id)
	if !ok {
		return models.UserProfile{}, fmt.Errorf("%w: user %s", errors.ErrNotFound, id)
	}
	return u, nil
}

// Users returns every stored user, most recently saved first.
func (m *Manager) Users() ([]models.UserProfile, error) {
	return m.store.LoadUsers()
}

// UpdateProfile merges in onto the stored user id.
func (m *Manager) UpdateProfile(id string, in models.ProfileInput) (models.UserProfile, error) {
	u, _, err := m.updateUser(id, func(existing *models.UserProfile) (models.UserProfile, error) {
		return profile.Submit(existing, nil, in, m.now(), m.newID)
	})
	if err != nil {
		return models.UserProfile{}, err
	}
	return u, nil
}

// RecordWeight logs today's weight for the stored user id.
func (m *Manager) RecordWeight(id string, weight float64) (models.UserProfile, error) {
	u, _, err := m.updateUser(id, func(existing *models.UserProfile) (models.UserProfile, error) {
		return profile.LogWeight(*existing, weight, m.now())
	})
	if err != nil {
		return models.UserProfile{}, err
	}
	return u, nil
}

// GeneratePlan generates and caches a plan for the stored user id.
func (m *Manager) GeneratePlan(ctx context.Context, id string) (models.GeneratedPlan, error) {
	u, err := m.User(id)
	if err != nil {
		return models.GeneratedPlan{}, err
	}
	return m.plans.Generate(ctx, u)
}

// CachedPlan returns the stored plan for id, nil if none.
func (m *Manager) CachedPlan(id string) (*models.GeneratedPlan, error) {
	return m.plans.LoadCached(id)
}

// saveUser upserts u into the stored collection. applied is false when
// nothing was attempted (read failure or email conflict); a write failure
// reports applied=true with an ErrIO error.
func (m *Manager) saveUser(u models.UserProfile) (applied bool, err error) {
	_, applied, err = m.updateUser("", func(*models.UserProfile) (models.UserProfile, error) {
		return u, nil
	})
	return applied, err
}

// updateUser loads the collection, builds the new record from the stored
// one with id and saves it, all under m.mu. change is only called with a
// nil record when id is empty; an unknown id is ErrNotFound.
func (m *Manager) updateUser(id string, change func(existing *models.UserProfile) (models.UserProfile, error)) (u models.UserProfile, applied bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users, err := m.store.LoadUsers()
	if err != nil {
		return models.UserProfile{}, false, err
	}

	var existing *models.UserProfile
	if id != "" {
		found, ok := profile.FindByID(users, id)
		if !ok {
			return models.UserProfile{}, false, fmt.Errorf("%w: user %s", errors.ErrNotFound, id)
		}
		existing = &found
	}

	u, err = change(existing)
	if err != nil {
		return models.UserProfile{}, false, err
	}
	users, err = profile.Upsert(users, u)
	if err != nil {
		return models.UserProfile{}, false, err
	}
	if err := m.store.SaveUsers(users); err != nil {
		logger.Error("Failed to save users", "user", u.ID, "error", err)
		return u, true, err
	}
	return u, true, nil
}
