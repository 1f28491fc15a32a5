//go:build integration

package tests

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// getBinary returns the path to the placard binary, building it if needed
func getBinary(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	binPath := filepath.Join(tmpDir, "placard")

	cmd := exec.Command("go", "build", "-o", binPath, "../cmd/placard")
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to build binary: %v\nstderr: %s", err, stderr.String())
	}

	return binPath
}

// exitCode runs the command and returns its exit code, failing the test on
// start errors that are not exit-status failures.
func exitCode(t *testing.T, cmd *exec.Cmd) int {
	t.Helper()
	err := cmd.Run()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("command did not run: %v", err)
	}
	return exitErr.ExitCode()
}

// TestSmokeHelp verifies the binary can display help text
func TestSmokeHelp(t *testing.T) {
	binPath := getBinary(t)
	cmd := exec.Command(binPath, "--help")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	out := strings.ToLower(stdout.String())
	for _, want := range []string{"placard", "--question", "--progress", "--forms"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected help output to mention %q, got: %s", want, stdout.String())
		}
	}
}

// TestSmokeVersion verifies the version flag prints the ldflags default
func TestSmokeVersion(t *testing.T) {
	binPath := getBinary(t)
	cmd := exec.Command(binPath, "--version")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if got := stdout.String(); got != "placard dev\n" {
		t.Fatalf("expected %q, got %q", "placard dev\n", got)
	}
}

// TestSmokeNoKindFails verifies a bare invocation exits 100 with a usage hint
func TestSmokeNoKindFails(t *testing.T) {
	binPath := getBinary(t)
	cmd := exec.Command(binPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if code := exitCode(t, cmd); code != 100 {
		t.Fatalf("expected exit 100, got %d\nstderr: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "dialog kind") {
		t.Fatalf("expected stderr to name the missing dialog kind, got: %s", stderr.String())
	}
}

// TestSmokeConflictingKindsFail verifies two kind selectors exit 100
func TestSmokeConflictingKindsFail(t *testing.T) {
	binPath := getBinary(t)
	cmd := exec.Command(binPath, "--info", "--error", "oops")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if code := exitCode(t, cmd); code != 100 {
		t.Fatalf("expected exit 100, got %d\nstderr: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "conflicting") {
		t.Fatalf("expected a conflict message, got: %s", stderr.String())
	}
}

// TestSmokeMissingTextInfoFile verifies content-load failures happen before
// any window is opened
func TestSmokeMissingTextInfoFile(t *testing.T) {
	binPath := getBinary(t)
	cmd := exec.Command(binPath, "--text-info", "--filename", "/no/such/placard-smoke.txt")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if code := exitCode(t, cmd); code != 100 {
		t.Fatalf("expected exit 100, got %d\nstderr: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "text-info") {
		t.Fatalf("expected a text-info load error, got: %s", stderr.String())
	}
}

// TestSmokeNoDisplayFails verifies a scrubbed environment reports an
// unreachable display server instead of hanging
func TestSmokeNoDisplayFails(t *testing.T) {
	binPath := getBinary(t)
	cmd := exec.Command(binPath, "--info", "--text", "hello")
	cmd.Env = []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + t.TempDir(),
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if code := exitCode(t, cmd); code != 100 {
		t.Fatalf("expected exit 100, got %d\nstderr: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "display") {
		t.Fatalf("expected a display error, got: %s", stderr.String())
	}
}

// TestSmokeBuild verifies the binary builds for the display targets we ship
func TestSmokeBuild(t *testing.T) {
	tests := []struct {
		goos   string
		goarch string
	}{
		{"linux", "amd64"},
		{"linux", "arm64"},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"-"+tt.goarch, func(t *testing.T) {
			tmpDir := t.TempDir()
			binPath := filepath.Join(tmpDir, "placard")

			cmd := exec.Command("go", "build", "-o", binPath, "../cmd/placard")
			cmd.Env = append(os.Environ(),
				"CGO_ENABLED=0",
				"GOOS="+tt.goos,
				"GOARCH="+tt.goarch,
			)
			var stderr bytes.Buffer
			cmd.Stderr = &stderr

			if err := cmd.Run(); err != nil {
				t.Fatalf("build failed for %s/%s: %v\nstderr: %s", tt.goos, tt.goarch, err, stderr.String())
			}

			if _, err := os.Stat(binPath); os.IsNotExist(err) {
				t.Fatalf("binary not created at %s", binPath)
			}
		})
	}
}
