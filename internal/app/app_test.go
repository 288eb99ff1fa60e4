package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdir changes the working directory for the duration of the test,
// standing in for t.Chdir which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}

// newTestApp builds an application with config and output files rooted
// in a temp dir, feeding the given input to the REPL.
func newTestApp(t *testing.T, extraConfig, input string) (*Application, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)

	cfgPath := filepath.Join(dir, "reckon.toml")
	cfg := "log_file = \"reckon.log\"\nhistory_file = \"history.csv\"\n" + extraConfig
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	var out bytes.Buffer
	a, err := New(Options{
		ConfigPath: cfgPath,
		In:         strings.NewReader(input),
		Out:        &out,
		NoWatch:    true,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(a.Shutdown)
	return a, &out
}

func TestApplicationSession(t *testing.T) {
	a, out := newTestApp(t, "", "add 2 3\nquit\n")

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Result: 5") {
		t.Errorf("output missing result:\n%s", out.String())
	}
}

func TestApplicationAutosave(t *testing.T) {
	a, _ := newTestApp(t, "auto_save = true\n", "add 2 3\nmultiply 5 4\nquit\n")

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(a.Config().HistoryFile)
	if err != nil {
		t.Fatalf("reading autosave file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "add,2,3,5,") {
		t.Errorf("autosave missing add row:\n%s", content)
	}
	if !strings.Contains(content, "multiply,5,4,20,") {
		t.Errorf("autosave missing multiply row:\n%s", content)
	}
}

func TestApplicationAutosaveDisabled(t *testing.T) {
	a, _ := newTestApp(t, "auto_save = false\n", "add 2 3\nquit\n")

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	a.Shutdown()

	if _, err := os.Stat(a.Config().HistoryFile); !os.IsNotExist(err) {
		t.Errorf("history file exists with autosave off (stat err = %v)", err)
	}
}

func TestApplicationCalculationLogging(t *testing.T) {
	a, _ := newTestApp(t, "log_level = \"debug\"\n", "add 2 3\nquit\n")

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(a.Config().LogFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "calculation: add(2, 3) = 5") {
		t.Errorf("log missing calculation line:\n%s", data)
	}
}

func TestApplicationCustomOperations(t *testing.T) {
	dir := t.TempDir()
	opsPath := filepath.Join(dir, "ops.lua")
	script := `
register("hypot", function(a, b)
    return math.sqrt(a*a + b*b)
end)
`
	if err := os.WriteFile(opsPath, []byte(script), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}

	a, out := newTestApp(t, "ops_file = '"+opsPath+"'\n", "hypot 3 4\nquit\n")

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Result: 5") {
		t.Errorf("output missing hypot result:\n%s", out.String())
	}
}

func TestApplicationBadConfigFails(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	cfgPath := filepath.Join(dir, "reckon.toml")
	if err := os.WriteFile(cfgPath, []byte("precision = 99\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := New(Options{ConfigPath: cfgPath, NoWatch: true}); err == nil {
		t.Fatal("New succeeded with invalid config, want error")
	}
}

func TestApplicationShutdownIdempotent(t *testing.T) {
	a, _ := newTestApp(t, "", "quit\n")
	a.Shutdown()
	a.Shutdown()
}
