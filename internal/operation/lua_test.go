package operation

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ops.lua")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	return path
}

func TestLoadScriptRegistersOperations(t *testing.T) {
	src := `
register("hypot", function(a, b)
    return math.sqrt(a*a + b*b)
end)
register("avg", function(a, b)
    return (a + b) / 2
end)
`
	reg := Builtin()
	script, err := reg.LoadScript(writeScript(t, src))
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}
	defer script.Close()

	op, err := reg.Lookup("hypot")
	if err != nil {
		t.Fatalf("Lookup(hypot) failed: %v", err)
	}
	got, err := op.Fn(3, 4)
	if err != nil {
		t.Fatalf("hypot(3, 4) returned error: %v", err)
	}
	if math.Abs(got-5) > 1e-9 {
		t.Errorf("hypot(3, 4) = %v, want 5", got)
	}

	op, err = reg.Lookup("avg")
	if err != nil {
		t.Fatalf("Lookup(avg) failed: %v", err)
	}
	got, _ = op.Fn(2, 4)
	if got != 3 {
		t.Errorf("avg(2, 4) = %v, want 3", got)
	}
}

func TestLoadScriptSyntaxError(t *testing.T) {
	reg := Builtin()
	_, err := reg.LoadScript(writeScript(t, `register("broken", function(a, b`))
	if err == nil {
		t.Fatal("LoadScript succeeded, want syntax error")
	}
}

func TestLoadScriptMissingFile(t *testing.T) {
	reg := Builtin()
	_, err := reg.LoadScript(filepath.Join(t.TempDir(), "missing.lua"))
	if err == nil {
		t.Fatal("LoadScript succeeded, want error for missing file")
	}
}

func TestScriptOperationRuntimeError(t *testing.T) {
	src := `
register("explode", function(a, b)
    error("boom")
end)
register("wrongtype", function(a, b)
    return "not a number"
end)
`
	reg := Builtin()
	script, err := reg.LoadScript(writeScript(t, src))
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}
	defer script.Close()

	op, _ := reg.Lookup("explode")
	if _, err := op.Fn(1, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("explode(1, 2) error = %v, want ErrInvalidArgument", err)
	}

	op, _ = reg.Lookup("wrongtype")
	if _, err := op.Fn(1, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("wrongtype(1, 2) error = %v, want ErrInvalidArgument", err)
	}
}

func TestScriptReplacesBuiltin(t *testing.T) {
	// A script may replace a builtin; last registration wins.
	src := `
register("add", function(a, b)
    return a + b + 100
end)
`
	reg := Builtin()
	script, err := reg.LoadScript(writeScript(t, src))
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}
	defer script.Close()

	op, _ := reg.Lookup("add")
	got, _ := op.Fn(1, 2)
	if got != 103 {
		t.Errorf("scripted add(1, 2) = %v, want 103", got)
	}
}
