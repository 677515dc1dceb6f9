package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/julianstephens/fitcoach/internal/constants"
	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/models"
)

const defaultOpTimeout = 5 * time.Second

// KVStore lays records out under fixed keys on a Backend: the user list
// under "users", the active email under "active_user" and one plan per user
// under "plan_<id>".
type KVStore struct {
	backend Backend
	timeout time.Duration
}

func NewKVStore(backend Backend) *KVStore {
	return &KVStore{backend: backend, timeout: defaultOpTimeout}
}

// Backend exposes the underlying key/value store.
func (s *KVStore) Backend() Backend {
	return s.backend
}

func (s *KVStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *KVStore) Init() error {
	ctx, cancel := s.ctx()
	defer cancel()
	return s.backend.Init(ctx)
}

func (s *KVStore) Load() error {
	ctx, cancel := s.ctx()
	defer cancel()
	return s.backend.Load(ctx)
}

func (s *KVStore) Close() error {
	return s.backend.Close()
}

func (s *KVStore) GetConfigPath() string {
	return s.backend.Location()
}

func (s *KVStore) getJSON(key string, v any) (bool, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return false, errors.IO("read "+key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, errors.IO("parse "+key, err)
	}
	return true, nil
}

func (s *KVStore) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.IO("serialize "+key, err)
	}

	ctx, cancel := s.ctx()
	defer cancel()
	if err := s.backend.Set(ctx, key, string(data)); err != nil {
		return errors.IO("write "+key, err)
	}
	return nil
}

func (s *KVStore) LoadUsers() ([]models.UserProfile, error) {
	var users []models.UserProfile
	if _, err := s.getJSON(constants.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *KVStore) SaveUsers(users []models.UserProfile) error {
	if users == nil {
		users = []models.UserProfile{}
	}
	return s.setJSON(constants.KeyUsers, users)
}

func (s *KVStore) LoadPlan(userID string) (*models.GeneratedPlan, error) {
	var plan models.GeneratedPlan
	ok, err := s.getJSON(constants.PlanKey(userID), &plan)
	if err != nil || !ok {
		return nil, err
	}
	return &plan, nil
}

func (s *KVStore) SavePlan(userID string, plan models.GeneratedPlan) error {
	return s.setJSON(constants.PlanKey(userID), plan)
}

// The active marker is stored as the raw email, not JSON.
func (s *KVStore) ActiveUser() (string, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	email, _, err := s.backend.Get(ctx, constants.KeyActiveUser)
	if err != nil {
		return "", errors.IO("read "+constants.KeyActiveUser, err)
	}
	return email, nil
}

func (s *KVStore) SetActiveUser(email string) error {
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.backend.Set(ctx, constants.KeyActiveUser, email); err != nil {
		return errors.IO("write "+constants.KeyActiveUser, err)
	}
	return nil
}

func (s *KVStore) ClearActiveUser() error {
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.backend.Delete(ctx, constants.KeyActiveUser); err != nil {
		return errors.IO("delete "+constants.KeyActiveUser, err)
	}
	return nil
}
