package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/models"
)

const jsonStoreVersion = 1

// Document is the on-disk layout of a JSONStore file.
type Document struct {
	Version    int                             `json:"version"`
	Users      []models.UserProfile            `json:"users"`
	ActiveUser string                          `json:"active_user,omitempty"`
	Plans      map[string]models.GeneratedPlan `json:"plans"`
}

// JSONStore keeps every record in a single JSON file. The file is re-read on
// each call and atomically replaced on each write, so several processes
// pointed at the same path see each other's last write.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("%w at %s", ErrAlreadyInitialized, s.path)
	}
	return s.write(&Document{Version: jsonStoreVersion, Plans: map[string]models.GeneratedPlan{}})
}

// Load checks the file is readable. A missing file is an empty store.
func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.read()
	return err
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) read() (*Document, error) {
	doc := &Document{Version: jsonStoreVersion}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			doc.Plans = map[string]models.GeneratedPlan{}
			return doc, nil
		}
		return nil, errors.IO("read store", err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errors.IO("parse store", err)
	}
	if doc.Plans == nil {
		doc.Plans = map[string]models.GeneratedPlan{}
	}
	return doc, nil
}

func (s *JSONStore) write(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.IO("serialize store", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.IO("create store directory", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.IO("write store", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.IO("write store", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return errors.IO("write store", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.IO("write store", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.IO("replace store", err)
	}
	return nil
}

// update runs a read-modify-write cycle under the store lock.
func (s *JSONStore) update(fn func(*Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	fn(doc)
	return s.write(doc)
}

func (s *JSONStore) LoadUsers() ([]models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

func (s *JSONStore) SaveUsers(users []models.UserProfile) error {
	return s.update(func(doc *Document) {
		doc.Users = users
	})
}

func (s *JSONStore) LoadPlan(userID string) (*models.GeneratedPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	plan, ok := doc.Plans[userID]
	if !ok {
		return nil, nil
	}
	return &plan, nil
}

func (s *JSONStore) SavePlan(userID string, plan models.GeneratedPlan) error {
	return s.update(func(doc *Document) {
		doc.Plans[userID] = plan
	})
}

func (s *JSONStore) ActiveUser() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", err
	}
	return doc.ActiveUser, nil
}

func (s *JSONStore) SetActiveUser(email string) error {
	return s.update(func(doc *Document) {
		doc.ActiveUser = email
	})
}

func (s *JSONStore) ClearActiveUser() error {
	return s.update(func(doc *Document) {
		doc.ActiveUser = ""
	})
}
