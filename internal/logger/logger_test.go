package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLog(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "logs", "fitcoach.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(data)
}

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantDebug bool
		wantText  string
	}{
		{name: "cli", cfg: Config{Mode: ModeCLI}, wantText: "store opened"},
		{name: "tui debug", cfg: Config{Mode: ModeTUI, Debug: true}, wantDebug: true, wantText: "store opened"},
		{name: "server logfmt", cfg: Config{Mode: ModeServer}, wantText: `msg="store opened"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.cfg.ConfigDir = dir
			if err := Init(tt.cfg); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			t.Cleanup(func() { Close() })

			Info("store opened", "path", "/tmp/fitcoach.db")
			Debug("weight parsed")

			out := readLog(t, dir)
			if !strings.Contains(out, tt.wantText) {
				t.Errorf("log file = %q, want %q", out, tt.wantText)
			}
			if got := strings.Contains(out, "weight parsed"); got != tt.wantDebug {
				t.Errorf("debug record present = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestCloseDropsLaterRecords(t *testing.T) {
	dir := t.TempDir()
	if err := Init(Config{ConfigDir: dir}); err != nil {
		t.Fatal(err)
	}
	Info("before close")
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	Info("after close")

	out := readLog(t, dir)
	if !strings.Contains(out, "before close") || strings.Contains(out, "after close") {
		t.Errorf("log file = %q", out)
	}
	if err := Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestHelpersWithoutInit(t *testing.T) {
	Logger = nil
	Debug("d")
	Info("i")
	Warn("w")
	Error("e")
}
