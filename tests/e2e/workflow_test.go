package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	TEST_SERVER_TIMEOUT = 15 * time.Second
	TEST_PASSWORD       = "pw1"
)

func TestEndToEndWorkflow(t *testing.T) {
	// 1. Setup Environment
	// Allow overriding bin dir via env var, default to ../../bin (relative to tests/e2e)
	binDir := os.Getenv("FITCOACH_BIN_DIR")
	if binDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Failed to get cwd: %v", err)
		}
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	cliPath := filepath.Join(binDir, "fitcoach")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s; build it with 'go build -o bin/fitcoach ./cmd/fitcoach'", cliPath)
	}

	tempDir := t.TempDir()
	storePath := filepath.Join(tempDir, "fitcoach.db")

	var cleanEnv []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "FITCOACH_") ||
			strings.HasPrefix(e, "GEMINI_API_KEY=") || strings.HasPrefix(e, "API_KEY=") {
			continue
		}
		cleanEnv = append(cleanEnv, e)
	}
	cleanEnv = append(cleanEnv,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("FITCOACH_STORE=%s", storePath),
	)
	configDir := "--config-dir=" + filepath.Join(tempDir, "config")

	// 2. Initialize
	t.Log("Initializing store...")
	runCmd(t, cliPath, cleanEnv, configDir, "init")

	// 3. Register over the API
	port := freePort(t)
	baseURL := fmt.Sprintf("http://127.0.0.1:%s/api", port)

	stopServer := startServer(t, cliPath, cleanEnv, configDir, port)
	waitForHealth(t, baseURL, TEST_SERVER_TIMEOUT)

	body := map[string]any{
		"email":          "alice@x.com",
		"password":       TEST_PASSWORD,
		"name":           "Alice",
		"age":            30,
		"height":         170,
		"weight":         72,
		"gender":         "Female",
		"activityLevel":  "Sedentary",
		"fitnessGoal":    "Lose Weight",
		"foodPreference": "Vegan",
	}
	var registered struct {
		Success bool `json:"success"`
		User    struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if status := postJSON(t, baseURL+"/auth/register", body, &registered); status != http.StatusCreated || !registered.Success {
		t.Fatalf("register returned %d: %+v", status, registered)
	}
	userID := registered.User.ID
	stopServer()

	// 4. Use the account from the CLI
	t.Log("Logging in from the CLI...")
	runCmd(t, cliPath, cleanEnv, configDir, "login", "ALICE@x.com", "--password="+TEST_PASSWORD)
	runCmd(t, cliPath, cleanEnv, configDir, "weight", "log", "70.5")

	out := runCmd(t, cliPath, cleanEnv, configDir, "weight", "history")
	if !strings.Contains(out, "70.5 kg") {
		t.Errorf("weight history missing the logged weight:\n%s", out)
	}
	out = runCmd(t, cliPath, cleanEnv, configDir, "status")
	if !strings.Contains(out, "Alice <alice@x.com>") {
		t.Errorf("status does not show the logged-in user:\n%s", out)
	}

	// Without an API key generation fails and no plan is cached
	cmd := exec.Command(cliPath, configDir, "plan", "generate", "--yes")
	cmd.Env = cleanEnv
	if out, err := cmd.CombinedOutput(); err == nil {
		t.Errorf("plan generate without an API key succeeded:\n%s", out)
	}

	runCmd(t, cliPath, cleanEnv, configDir, "logout")

	// 5. The server sees the CLI's writes
	stopServer = startServer(t, cliPath, cleanEnv, configDir, port)
	defer stopServer()
	waitForHealth(t, baseURL, TEST_SERVER_TIMEOUT)

	var user struct {
		Weight     float64 `json:"weight"`
		WeightLogs []struct {
			Weight float64 `json:"weight"`
		} `json:"weightLogs"`
	}
	if status := getJSON(t, baseURL+"/users/"+userID, &user); status != http.StatusOK {
		t.Fatalf("get user returned %d", status)
	}
	if user.Weight != 70.5 || len(user.WeightLogs) != 1 {
		t.Errorf("user after CLI weight log = %+v", user)
	}

	if status := getJSON(t, baseURL+"/plans/"+userID, nil); status != http.StatusNotFound {
		t.Errorf("get plan returned %d, want 404", status)
	}
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func startServer(t *testing.T, path string, env []string, configDir, port string) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, path, configDir, "serve", "--host=127.0.0.1", "--port="+port)
	cmd.Env = env
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf
	if err := cmd.Start(); err != nil {
		cancel()
		t.Fatalf("Failed to start server: %v", err)
	}

	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true
		cancel()
		if err := cmd.Wait(); err != nil {
			t.Logf("Server exited with error: %v", err)
		}
		if t.Failed() {
			t.Logf("Server stderr: %s", stderrBuf.String())
		}
	}
}

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find a free port: %v", err)
	}
	defer l.Close()
	_, port, _ := net.SplitHostPort(l.Addr().String())
	return port
}

func waitForHealth(t *testing.T, baseURL string, timeout time.Duration) {
	t.Helper()
	start := time.Now()
	for {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		if time.Since(start) > timeout {
			t.Fatalf("Timed out waiting for %s/health", baseURL)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func postJSON(t *testing.T, url string, body, out any) int {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode response from %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode response from %s: %v", url, err)
		}
	}
	return resp.StatusCode
}
