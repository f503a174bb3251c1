//go:build smoke

package smoke

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/codr1/leagueapi/internal/testutil"
)

type serverProcess struct {
	baseURL string
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	done    chan struct{}
	waitErr error
}

// startServer builds cmd/server, writes a config into a temp dir and waits for /health.
func startServer(t *testing.T) *serverProcess {
	t.Helper()

	repoRoot := findRepoRoot(t)
	tempDir := t.TempDir()

	binPath := filepath.Join(tempDir, "leagueapi-server")
	buildCmd := exec.Command("go", "build", "-o", binPath, "./cmd/server")
	buildCmd.Dir = repoRoot
	buildOutput, err := buildCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build server: %v\n%s", err, buildOutput)
	}

	port := reservePort(t)
	configPath := filepath.Join(tempDir, "app.yaml")
	configBody := fmt.Sprintf(`app:
  name: "League API"
  environment: "development"
  port: %d
  base_url: "http://localhost:%d"

database:
  driver: "sqlite"
  filename: "%s"

auth:
  token_ttl: 1h
  token_cleanup_cron: "*/5 * * * *"
  requests_per_second: 50
  burst: 50

features:
  enable_metrics: true
`, port, port, filepath.ToSlash(filepath.Join(tempDir, "db", "smoke.db")))

	if err := os.WriteFile(configPath, []byte(configBody), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	proc := &serverProcess{
		baseURL: fmt.Sprintf("http://localhost:%d", port),
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		done:    make(chan struct{}),
	}

	cmd := exec.Command(binPath)
	cmd.Dir = tempDir
	cmd.Stdout = proc.stdout
	cmd.Stderr = proc.stderr
	cmd.Env = append(os.Environ(), "CONFIG_PATH="+configPath, "APP_SECRET_KEY=smoke-test-secret")

	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}

	go func() {
		proc.waitErr = cmd.Wait()
		close(proc.done)
	}()

	t.Cleanup(func() {
		if cmd.Process == nil {
			return
		}
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-proc.done:
			return
		case <-time.After(5 * time.Second):
		}
		_ = cmd.Process.Kill()
		select {
		case <-proc.done:
		case <-time.After(5 * time.Second):
			t.Logf("server process did not exit after kill")
		}
	})

	client := &http.Client{Timeout: 500 * time.Millisecond}
	deadline := time.Now().Add(10 * time.Second)
	for {
		select {
		case <-proc.done:
			t.Fatalf("server exited before health check: %v\nstdout:\n%s\nstderr:\n%s", proc.waitErr, proc.stdout, proc.stderr)
		default:
		}

		resp, err := client.Get(proc.baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return proc
			}
		}

		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for health check\nstdout:\n%s\nstderr:\n%s", proc.stdout, proc.stderr)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func TestServerStartup(t *testing.T) {
	proc := startServer(t)

	resp, err := http.Get(proc.baseURL + "/api/v1/index")
	if err != nil {
		t.Fatalf("get index: %v", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	resp, err = http.Get(proc.baseURL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !bytes.Contains(body, []byte("leagueapi_http_requests_total")) {
		t.Fatalf("expected metrics exposition, got %d", resp.StatusCode)
	}

	select {
	case <-proc.done:
		t.Fatalf("server exited unexpectedly: %v\nstdout:\n%s\nstderr:\n%s", proc.waitErr, proc.stdout, proc.stderr)
	default:
	}
}

func reservePort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	defer listener.Close()

	return listener.Addr().(*net.TCPAddr).Port
}

func findRepoRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	t.Fatal("failed to locate repo root with go.mod")
	return ""
}

func TestMigrationsApplied(t *testing.T) {
	db := testutil.NewTestDB(t)

	expectedTables := []string{
		"users",
		"auth_tokens",
		"leagues",
		"teams",
		"players",
		"games",
		"matches",
	}

	for _, table := range expectedTables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name = ?",
			table,
		).Scan(&name)
		if err == sql.ErrNoRows {
			t.Fatalf("missing expected table %q after migrations", table)
		}
		if err != nil {
			t.Fatalf("query table %q existence: %v", table, err)
		}
	}
}

func TestForeignKeyIntegrity(t *testing.T) {
	db := testutil.NewTestDB(t)

	var foreignKeysEnabled int
	if err := db.QueryRow("PRAGMA foreign_keys;").Scan(&foreignKeysEnabled); err != nil {
		t.Fatalf("query foreign_keys pragma: %v", err)
	}
	if foreignKeysEnabled != 1 {
		t.Fatalf("expected foreign_keys pragma enabled, got %d", foreignKeysEnabled)
	}

	_, err := db.Exec(
		`INSERT INTO players (name, bio, age, height, average_score, team_id)
		 VALUES ('Ghost', '', 20, 180, '10.00', 9999)`,
	)
	if err == nil {
		t.Fatal("expected foreign key constraint failure for invalid team_id")
	}
}
