package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/fitcoach/internal/backup"
	"github.com/julianstephens/fitcoach/internal/config"
	"github.com/julianstephens/fitcoach/internal/constants"
	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/keyring"
	"github.com/julianstephens/fitcoach/internal/logger"
	"github.com/julianstephens/fitcoach/internal/plancache"
	"github.com/julianstephens/fitcoach/internal/planner"
	"github.com/julianstephens/fitcoach/internal/session"
	"github.com/julianstephens/fitcoach/internal/storage"
	"github.com/julianstephens/fitcoach/internal/storage/postgres"
	"github.com/julianstephens/fitcoach/internal/storage/redis"
	"github.com/julianstephens/fitcoach/internal/storage/sqlite"
)

type Context struct {
	Base      context.Context
	Store     storage.Provider
	Config    *config.Config
	ConfigDir string
	// Generator overrides the Gemini generator; tests set it.
	Generator plancache.Generator
}

func (c *Context) Ctx() context.Context {
	if c.Base == nil {
		return context.Background()
	}
	return c.Base
}

// OpenStore picks a record store for target: *.json is a JSON file,
// redis:// and postgres:// URLs are shared stores, anything else is a
// SQLite database path.
func OpenStore(target string) (storage.Provider, error) {
	target = strings.TrimSpace(target)
	switch {
	case target == "":
		return nil, stderrors.New("no store configured")
	case strings.HasPrefix(target, "redis://"), strings.HasPrefix(target, "rediss://"):
		return storage.NewKVStore(redis.New(target)), nil
	case strings.HasPrefix(target, "postgres://"), strings.HasPrefix(target, "postgresql://"):
		if err := postgres.ValidateConnString(target); err != nil {
			return nil, err
		}
		return storage.NewKVStore(postgres.New(target)), nil
	case strings.EqualFold(filepath.Ext(target), ".json"):
		return storage.NewJSONStore(ExpandHome(target)), nil
	default:
		return storage.NewKVStore(sqlite.NewStore(ExpandHome(target))), nil
	}
}

// LoadStore prepares store for a command. An unreadable store is treated as
// no saved state so the session starts logged out; a missing or unreachable
// store is still an error.
func LoadStore(store storage.Provider) error {
	err := store.Load()
	if err != nil && stderrors.Is(err, errors.ErrIO) {
		logger.Warn("Store is unreadable, starting with no saved state", "store", store.GetConfigPath(), "error", err)
		return nil
	}
	return err
}

// DefaultStore is the SQLite database inside the config directory.
func DefaultStore(configDir string) string {
	return filepath.Join(configDir, constants.DefaultStoreFile)
}

func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// StorePath returns the file behind a local store, or false for shared stores.
func (c *Context) StorePath() (string, bool) {
	switch s := c.Store.(type) {
	case *storage.JSONStore:
		return s.GetConfigPath(), true
	case *storage.KVStore:
		if db, ok := s.Backend().(*sqlite.Store); ok {
			return db.Location(), true
		}
	}
	return "", false
}

func (c *Context) BackupManager() (*backup.Manager, error) {
	path, ok := c.StorePath()
	if !ok {
		return nil, fmt.Errorf("backups are only supported for local stores, not %s", c.Store.GetConfigPath())
	}
	return backup.NewManager(path), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	path, ok := c.StorePath()
	if !ok {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if _, err := backup.NewManager(path).CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// PlanGenerator returns the Gemini generator, or one that always fails
// when no API key is configured.
func (c *Context) PlanGenerator() plancache.Generator {
	if c.Generator != nil {
		return c.Generator
	}

	explicit, model := "", constants.DefaultGeminiModel
	if c.Config != nil {
		explicit, model = c.Config.GeminiAPIKey, c.Config.GeminiModel
	}
	key, source := keyring.ResolveAPIKey(explicit)
	if key == "" {
		logger.Warn("No Gemini API key configured, plan generation disabled")
		return planner.Unavailable{}
	}

	gen, err := planner.NewGemini(c.Ctx(), key, model)
	if err != nil {
		logger.Error("Failed to create Gemini client", "error", err)
		return planner.Unavailable{Reason: err}
	}
	logger.Debug("Plan generator ready", "model", gen.Model(), "key_source", source)
	return gen
}

func (c *Context) Manager() *session.Manager {
	return session.NewManager(c.Store, plancache.New(c.Store, c.PlanGenerator()))
}

// currentSession restores the active session and requires a logged-in user.
func (c *Context) currentSession(mgr *session.Manager) (session.State, error) {
	st := mgr.Restore()
	if !st.LoggedIn() {
		return st, friendly(errors.ErrNotLoggedIn, "Not logged in. Run 'fitcoach login <email>' first.")
	}
	return st, nil
}

// userError prints the friendly message while keeping the cause for errors.Is.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func friendly(err error, msg string) error {
	if err == nil {
		return nil
	}
	if msg == "" {
		msg = errors.UserMessage(err)
	}
	return &userError{msg: msg, err: err}
}
