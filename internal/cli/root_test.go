package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/fitcoach/internal/config"
	"github.com/julianstephens/fitcoach/internal/constants"
	"github.com/julianstephens/fitcoach/internal/models"
	"github.com/julianstephens/fitcoach/internal/plancache"
	"github.com/julianstephens/fitcoach/internal/storage"
	"github.com/julianstephens/fitcoach/internal/storage/postgres"
	"github.com/julianstephens/fitcoach/internal/storage/redis"
	"github.com/julianstephens/fitcoach/internal/storage/sqlite"
	"github.com/julianstephens/fitcoach/internal/storage/storagetest"
)

func setupContext(t *testing.T, file string) *Context {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), file))
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	ctx := &Context{
		Store:  store,
		Config: &config.Config{GeminiModel: constants.DefaultGeminiModel},
		Generator: plancache.GeneratorFunc(func(context.Context, models.UserProfile) (models.GeneratedPlan, error) {
			return storagetest.SamplePlan("cli plan"), nil
		}),
	}
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return ctx
}

func TestOpenStore(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		check   func(storage.Provider) bool
		wantErr bool
	}{
		{
			name:   "json file",
			target: "/tmp/fitcoach/users.json",
			check:  func(p storage.Provider) bool { _, ok := p.(*storage.JSONStore); return ok },
		},
		{
			name:   "json extension is case-insensitive",
			target: "/tmp/fitcoach/USERS.JSON",
			check:  func(p storage.Provider) bool { _, ok := p.(*storage.JSONStore); return ok },
		},
		{
			name:   "sqlite path",
			target: "/tmp/fitcoach/fitcoach.db",
			check:  func(p storage.Provider) bool { return backendIs[*sqlite.Store](p) },
		},
		{
			name:   "redis url",
			target: "redis://localhost:6379/0",
			check:  func(p storage.Provider) bool { return backendIs[*redis.Store](p) },
		},
		{
			name:   "postgres url",
			target: "postgres://fitcoach@localhost:5432/fitcoach?sslmode=disable",
			check:  func(p storage.Provider) bool { return backendIs[*postgres.Store](p) },
		},
		{
			name:   "postgresql url",
			target: "postgresql://fitcoach@localhost/fitcoach",
			check:  func(p storage.Provider) bool { return backendIs[*postgres.Store](p) },
		},
		{name: "empty", target: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := OpenStore(tt.target)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenStore(%q) error = %v", tt.target, err)
			}
			if !tt.check(p) {
				t.Errorf("OpenStore(%q) = %T", tt.target, p)
			}
		})
	}
}

func backendIs[T storage.Backend](p storage.Provider) bool {
	kv, ok := p.(*storage.KVStore)
	if !ok {
		return false
	}
	_, ok = kv.Backend().(T)
	return ok
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/fit/users.json"); got != filepath.Join(home, "fit/users.json") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/path.db"); got != "/abs/path.db" {
		t.Errorf("ExpandHome() changed an absolute path: %q", got)
	}
}

func TestStorePath(t *testing.T) {
	ctx := setupContext(t, "fitcoach.db")
	if path, ok := ctx.StorePath(); !ok || filepath.Base(path) != "fitcoach.db" {
		t.Errorf("StorePath() = %q, %v", path, ok)
	}

	shared := &Context{Store: storage.NewKVStore(storage.NewMemoryBackend())}
	if _, ok := shared.StorePath(); ok {
		t.Error("memory store should not report a file")
	}
	if _, err := shared.BackupManager(); err == nil {
		t.Error("expected backups to be refused for shared stores")
	}
}
