package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	expect "github.com/Netflix/go-expect"
	"github.com/creack/pty"
)

// buildPopcorn builds the popcorn binary for testing.
func buildPopcorn(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "popcorn")

	rootDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	// We run from test/e2e; the module root is two levels up.
	rootDir = filepath.Join(rootDir, "..", "..")

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/popcorn")
	cmd.Dir = rootDir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return binPath
}

func TestE2E_SearchRateAndAdd(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and runs the binary")
	}
	binPath := buildPopcorn(t)

	omdb := newFakeOMDb()
	defer omdb.Close()

	homeDir := t.TempDir()
	if err := seedHome(homeDir, omdb.URL); err != nil {
		t.Fatalf("failed to seed home: %v", err)
	}

	cmd := exec.Command(binPath, "-events")
	cmd.Env = append(os.Environ(),
		"HOME="+homeDir,
		"OMDB_API_KEY=",
		"POPCORN_OMDB_URL=",
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: 120, Rows: 40})
	if err != nil {
		t.Fatalf("failed to start pty: %v", err)
	}
	defer func() {
		_ = ptmx.Close()
		_ = cmd.Process.Kill()
	}()

	var outputBuf bytes.Buffer
	console, err := expect.NewConsole(
		expect.WithStdin(ptmx),
		expect.WithStdout(&outputBuf),
		expect.WithDefaultTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("failed to create console: %v", err)
	}
	defer console.Close()

	// Keys go straight to the program's terminal; the console only watches
	// its output.
	send := func(step, keys string) {
		t.Helper()
		t.Logf("Sending %s...", step)
		if _, err := ptmx.Write([]byte(keys)); err != nil {
			t.Fatalf("failed to send %s: %v", step, err)
		}
	}
	expectScreen := func(step, text string) {
		t.Helper()
		t.Logf("Waiting for %s...", step)
		if _, err := console.ExpectString(text); err != nil {
			dumpLogs(t, homeDir)
			t.Fatalf("%s: %q not found: %v\nOutput buffer:\n%s", step, text, err, outputBuf.String())
		}
	}

	// 1. Startup: empty results and an empty watched list.
	expectScreen("startup", "Found 0 results")
	expectScreen("watched summary", "MOVIES YOU WATCHED")
	time.Sleep(300 * time.Millisecond) // let the UI settle

	// 2. Search as you type.
	send("query", "incep")
	expectScreen("results", "Found 2 results")
	expectScreen("result title", "Inception: The Cobol Job")

	// 3. Open the first result.
	send("tab", "\t")
	send("enter", "\r")
	expectScreen("detail", "16 Jul 2010")
	expectScreen("runtime", "148 min")

	// 4. Rate 8 and add it to the list.
	send("rating", "8")
	send("add", "a")
	expectScreen("added", "Added Inception")
	expectScreen("summary count", "1 movies")

	// 5. Quit.
	send("ctrl+c", "\x03")
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case <-done:
		t.Log("Process exited successfully")
	case <-time.After(3 * time.Second):
		t.Error("Process did not exit after ctrl+c")
	}

	if omdb.searches.Load() == 0 || omdb.details.Load() != 1 {
		t.Errorf("server saw %d searches and %d detail fetches", omdb.searches.Load(), omdb.details.Load())
	}
	if _, err := os.Stat(filepath.Join(homeDir, ".popcorn", "events.jsonl")); err != nil {
		t.Errorf("event log not written: %v", err)
	}
}

func dumpLogs(t *testing.T, homeDir string) {
	t.Helper()
	matches, _ := filepath.Glob(filepath.Join(homeDir, ".popcorn", "logs", "*.log"))
	for _, m := range matches {
		if logs, err := os.ReadFile(m); err == nil {
			t.Logf("%s:\n%s", filepath.Base(m), logs)
		}
	}
}
