package postgres

import (
	stderrors "errors"
	"os"
	"strings"
	"testing"

	"github.com/julianstephens/fitcoach/internal/storage"
	"github.com/julianstephens/fitcoach/internal/storage/storagetest"
)

func TestNewAddsSearchPath(t *testing.T) {
	tests := []struct {
		name    string
		connStr string
		want    string
	}{
		{"url", "postgres://u@localhost/db?sslmode=disable", "search_path=fitcoach"},
		{"url with path set", "postgres://u@localhost/db?search_path=custom", "search_path=custom"},
		{"dsn", "host=localhost dbname=db", "search_path=fitcoach"},
		{"dsn with path set", "host=localhost search_path=custom", "search_path=custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.connStr)
			if !strings.Contains(s.connStr, tt.want) {
				t.Errorf("connStr = %q, want it to contain %q", s.connStr, tt.want)
			}
			if strings.Count(s.connStr, "search_path") != 1 {
				t.Errorf("connStr = %q has duplicate search_path", s.connStr)
			}
		})
	}
}

func TestValidateConnString(t *testing.T) {
	if err := ValidateConnString("  "); !stderrors.Is(err, ErrInvalidConnectionString) {
		t.Errorf("empty: error = %v", err)
	}
	if err := ValidateConnString("postgres://u@localhost:5432/db"); err != nil {
		t.Errorf("valid url: error = %v", err)
	}
}

func TestLocationHidesConnString(t *testing.T) {
	s := New("postgres://user@db.internal/app")
	if s.Location() != "postgresql" {
		t.Errorf("Location() = %q", s.Location())
	}
}

// Set FITCOACH_TEST_POSTGRES to a disposable database URL to run this test.
func TestIntegrationConformance(t *testing.T) {
	connStr := os.Getenv("FITCOACH_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("FITCOACH_TEST_POSTGRES not set, skipping PostgreSQL integration test")
	}

	backend := New(connStr)
	store := storage.NewKVStore(backend)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() {
		backend.GetDB().Exec("DELETE FROM kv")
		store.Close()
	})
	if _, err := backend.GetDB().Exec("DELETE FROM kv"); err != nil {
		t.Fatalf("failed to clear kv table: %v", err)
	}

	storagetest.Run(t, store)
}
