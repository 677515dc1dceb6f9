// Package session resolves identities and drives the session state through
// login, registration, profile edits, weight logging and plan generation.
package session

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/logger"
	"github.com/julianstephens/fitcoach/internal/models"
	"github.com/julianstephens/fitcoach/internal/plancache"
	"github.com/julianstephens/fitcoach/internal/profile"
	"github.com/julianstephens/fitcoach/internal/storage"
	"github.com/julianstephens/fitcoach/internal/validation"
)

// Manager applies session operations. Each operation takes the current State
// and returns the next one; on error the input State is returned unchanged,
// except for ErrIO write failures, where the returned State already carries
// the change and only the store is behind.
type Manager struct {
	mu    sync.Mutex // serialises read-modify-write of the user collection
	store storage.Provider
	plans *plancache.Cache
	now   func() time.Time
	newID func() string
}

type Option func(*Manager)

// WithClock overrides time.Now, used for weight log dates and createdAt.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator overrides uuid generation for new users.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

func NewManager(store storage.Provider, plans *plancache.Cache, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		plans: plans,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store exposes the record store backing the manager.
func (m *Manager) Store() storage.Provider {
	return m.store
}

// Restore rebuilds the session from the active user marker. Any read
// failure or dangling marker yields the logged-out state.
func (m *Manager) Restore() State {
	email, err := m.store.ActiveUser()
	if err != nil {
		logger.Warn("Failed to read active user, starting logged out", "error", err)
		return LoggedOut()
	}
	if email == "" {
		return LoggedOut()
	}

	users, err := m.store.LoadUsers()
	if err != nil {
		logger.Warn("Failed to read users, starting logged out", "error", err)
		return LoggedOut()
	}
	u, ok := profile.FindByEmail(users, email)
	if !ok {
		logger.Warn("Active user marker names an unknown account", "email", email)
		return LoggedOut()
	}

	return State{User: &u, Plan: m.cachedPlan(u.ID), View: ViewDashboard}
}

// cachedPlan degrades an unreadable plan to no plan.
func (m *Manager) cachedPlan(userID string) *models.GeneratedPlan {
	plan, err := m.plans.LoadCached(userID)
	if err != nil {
		logger.Warn("Failed to read cached plan", "user", userID, "error", err)
		return nil
	}
	return plan
}

// Login matches email case-insensitively and password exactly, loads the
// user's cached plan and marks them active.
func (m *Manager) Login(st State, email, password string) (State, error) {
	u, err := m.Authenticate(email, password)
	if err != nil {
		return st, err
	}

	next := State{User: &u, Plan: m.cachedPlan(u.ID), View: ViewDashboard}
	logger.Info("User logged in", "user", u.ID)
	return next, m.store.SetActiveUser(u.Email)
}

// RegisterStart holds the credentials as a draft and moves to PROFILE. No
// record is written until SubmitProfile.
func (m *Manager) RegisterStart(st State, email, password string) (State, error) {
	if err := validation.ValidateCredentials(email, password); err != nil {
		return st, err
	}

	taken, err := m.EmailTaken(email)
	if err != nil {
		return st, err
	}
	if taken {
		return st, errors.ErrAlreadyExists
	}

	return State{
		Pending: &profile.Draft{Email: email, Password: password},
		View:    ViewProfile,
	}, nil
}

// Logout clears the session and the active marker. Durable records are left alone.
func (m *Manager) Logout(st State) (State, error) {
	if st.User != nil {
		logger.Info("User logged out", "user", st.User.ID)
	}
	return LoggedOut(), m.store.ClearActiveUser()
}

// SubmitProfile completes a registration or applies a profile edit, then
// persists the user and points the active marker at it.
func (m *Manager) SubmitProfile(st State, in models.ProfileInput) (State, error) {
	if st.User == nil && st.Pending == nil {
		return st, errors.ErrNoDraft
	}

	u, err := profile.Submit(st.User, st.Pending, in, m.now(), m.newID)
	if err != nil {
		return st, err
	}

	next := st
	next.User = &u
	next.Pending = nil
	next.View = ViewDashboard
	if st.User == nil {
		next.Plan = nil
		logger.Info("User registered", "user", u.ID)
	}
	return m.persistUser(st, next)
}

// LogWeight records today's weight for the current user.
func (m *Manager) LogWeight(st State, weight float64) (State, error) {
	if st.User == nil {
		return st, errors.ErrNotLoggedIn
	}

	u, err := profile.LogWeight(*st.User, weight, m.now())
	if err != nil {
		return st, err
	}

	next := st
	next.User = &u
	return m.persistUser(st, next)
}

// persistUser stores next.User and points the active marker at it. A read
// failure or email conflict returns prev; a write failure keeps next.
func (m *Manager) persistUser(prev, next State) (State, error) {
	applied, err := m.saveUser(*next.User)
	if !applied {
		return prev, err
	}
	if markErr := m.store.SetActiveUser(next.User.Email); markErr != nil {
		logger.Error("Failed to save active user", "error", markErr)
		err = stderrors.Join(err, markErr)
	}
	return next, err
}

// BeginGeneration marks a generation as outstanding for the current user.
func (m *Manager) BeginGeneration(st State) (State, error) {
	if st.User == nil {
		return st, errors.ErrNotLoggedIn
	}
	if st.Loading {
		return st, errors.ErrGenerationInProgress
	}
	st.Loading = true
	return st, nil
}

// FinishGeneration applies the outcome of a generation started for userID.
// If a different user (or nobody) is active by then the outcome is logged and
// discarded. On failure the previous plan stays in place.
func (m *Manager) FinishGeneration(st State, userID string, plan *models.GeneratedPlan, genErr error) (State, error) {
	if st.User == nil || st.User.ID != userID {
		logger.Info("Discarding plan generation result for inactive user", "user", userID, "error", genErr)
		return st, nil
	}

	st.Loading = false
	if plan != nil {
		st.Plan = plan
	}
	return st, genErr
}

// Generate runs a whole generation synchronously.
func (m *Manager) Generate(ctx context.Context, st State) (State, error) {
	st, err := m.BeginGeneration(st)
	if err != nil {
		return st, err
	}
	userID := st.User.ID
	plan, genErr := m.plans.Generate(ctx, *st.User)

	var result *models.GeneratedPlan
	if genErr == nil || stderrors.Is(genErr, errors.ErrIO) {
		result = &plan
	}
	return m.FinishGeneration(st, userID, result, genErr)
}

// Plans exposes the plan cache for callers that run generation themselves.
func (m *Manager) Plans() *plancache.Cache {
	return m.plans
}
