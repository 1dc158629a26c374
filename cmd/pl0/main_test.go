package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProgram(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunPlainReadsStdin(t *testing.T) {
	dir := t.TempDir()
	prog := writeProgram(t, dir, "sum.pl0", "VAR a, b; BEGIN ? a; ? b; ! a + b END.")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-mode", "plain", "-config", writeProgram(t, dir, "empty.yaml", ""), prog},
		strings.NewReader("40\n2"), &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit %d, stderr: %s", code, stderr.String())
	}
	if stdout.String() != "42\n" {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
}

func TestRunQueuedInputAndStats(t *testing.T) {
	dir := t.TempDir()
	prog := writeProgram(t, dir, "sq.pl0", "VAR x; BEGIN ? x; ! x * x END.")
	cfg := writeProgram(t, dir, "pl0.yaml", "mode: plain\nstats: true\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfg, "-input", "9", prog}, strings.NewReader(""), &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit %d, stderr: %s", code, stderr.String())
	}
	if stdout.String() != "81\n" {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "inputs=1") {
		t.Fatalf("missing stats in %q", stderr.String())
	}
}

func TestRunRuntimeErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	prog := writeProgram(t, dir, "bad.pl0", "VAR x; BEGIN ! 5; ? x END.")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-mode", "plain", "-config", writeProgram(t, dir, "c.yaml", ""), prog},
		strings.NewReader("not a number\n"), &stdout, &stderr)
	if code != exitRuntime {
		t.Fatalf("exit %d, want %d", code, exitRuntime)
	}
	if stdout.String() != "5\n" {
		t.Fatalf("output before failure lost: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "E_BAD_INPUT") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunStepLimitFlag(t *testing.T) {
	dir := t.TempDir()
	prog := writeProgram(t, dir, "loop.pl0", "WHILE 1 = 1 DO .")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-mode", "plain", "-max-steps", "50", "-config", writeProgram(t, dir, "c.yaml", ""), prog},
		strings.NewReader(""), &stdout, &stderr)
	if code != exitRuntime || !strings.Contains(stderr.String(), "E_STEP_LIMIT") {
		t.Fatalf("exit %d, stderr %q", code, stderr.String())
	}
}

func TestRunParseErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	prog := writeProgram(t, dir, "syntax.pl0", "BEGIN x := END.")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-mode", "plain", "-config", writeProgram(t, dir, "c.yaml", ""), prog},
		strings.NewReader(""), &stdout, &stderr)
	if code != exitFailure {
		t.Fatalf("exit %d, want %d", code, exitFailure)
	}
	if !strings.Contains(stderr.String(), "1:12") {
		t.Fatalf("missing position in %q", stderr.String())
	}
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeProgram(t, dir, "good.pl0", "VAR x; x := 1.")
	bad := writeProgram(t, dir, "bad.pl0", "VAR x x := 1.")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-check", good, bad}, strings.NewReader(""), &stdout, &stderr)
	if code != exitFailure {
		t.Fatalf("exit %d, want %d", code, exitFailure)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected report %q", stdout.String())
	}
	if !strings.HasSuffix(lines[0], "good.pl0: ok") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "bad.pl0: 1:7") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestSplitInputs(t *testing.T) {
	got := splitInputs(" 1, -2 ,3")
	if strings.Join(got, "|") != "1|-2|3" {
		t.Fatalf("unexpected split %q", got)
	}
	if splitInputs("  ") != nil {
		t.Fatalf("blank input must yield nil")
	}
}
