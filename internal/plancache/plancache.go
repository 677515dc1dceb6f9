// Package plancache generates plans and keeps the latest one per user.
package plancache

import (
	"context"
	"fmt"

	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/logger"
	"github.com/julianstephens/fitcoach/internal/models"
	"github.com/julianstephens/fitcoach/internal/storage"
)

// Generator produces a plan for a profile. Implementations own their
// timeouts; the cache never retries.
type Generator interface {
	Generate(ctx context.Context, user models.UserProfile) (models.GeneratedPlan, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, user models.UserProfile) (models.GeneratedPlan, error)

func (f GeneratorFunc) Generate(ctx context.Context, user models.UserProfile) (models.GeneratedPlan, error) {
	return f(ctx, user)
}

type Cache struct {
	store storage.Provider
	gen   Generator
}

func New(store storage.Provider, gen Generator) *Cache {
	return &Cache{store: store, gen: gen}
}

// Generate asks the generator for a new plan and stores it under user.ID,
// replacing any earlier plan. A failed or incomplete generation stores
// nothing and returns ErrGenerationFailure. If only the write fails the plan
// is still returned alongside an ErrIO error.
func (c *Cache) Generate(ctx context.Context, user models.UserProfile) (models.GeneratedPlan, error) {
	if c.gen == nil {
		return models.GeneratedPlan{}, fmt.Errorf("%w: no plan generator configured", errors.ErrGenerationFailure)
	}

	plan, err := c.gen.Generate(ctx, user)
	if err != nil {
		logger.Warn("Plan generation failed", "user", user.ID, "error", err)
		return models.GeneratedPlan{}, fmt.Errorf("%w: %w", errors.ErrGenerationFailure, err)
	}
	if err := plan.Validate(); err != nil {
		logger.Warn("Generator returned an incomplete plan", "user", user.ID, "error", err)
		return models.GeneratedPlan{}, fmt.Errorf("%w: %w", errors.ErrGenerationFailure, err)
	}

	if err := c.store.SavePlan(user.ID, plan); err != nil {
		logger.Error("Failed to cache plan", "user", user.ID, "error", err)
		return plan, err
	}
	logger.Info("Plan generated", "user", user.ID)
	return plan, nil
}

// LoadCached returns the stored plan for userID, nil if there is none. It
// never generates.
func (c *Cache) LoadCached(userID string) (*models.GeneratedPlan, error) {
	return c.store.LoadPlan(userID)
}
