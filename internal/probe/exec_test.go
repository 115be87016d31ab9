package probe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	errs "github.com/minhnv203/toolvet/internal/shared/errors"
)

// writeScript drops an executable shell script into a temp dir and returns
// its path. Exec-strategy tests are skipped on Windows where /bin/sh is not
// available; the strategy itself is platform-neutral.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts unavailable on windows")
	}
	path := filepath.Join(t.TempDir(), "tool.sh")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestExecStrategy_Success(t *testing.T) {
	path := writeScript(t, `echo "tool version 1.2.3"`)
	out := ExecStrategy{}.Resolve(context.Background(), Probe{Name: "tool", Target: path, Arg: "--version"})
	if !out.OK() {
		t.Fatalf("expected success, got %v", out.Err)
	}
	if out.Raw != "tool version 1.2.3" {
		t.Fatalf("Raw = %q", out.Raw)
	}
}

func TestExecStrategy_StderrCaptured(t *testing.T) {
	// Version banners on stderr must count as output.
	path := writeScript(t, `echo "openjdk 21.0.2" >&2`)
	out := ExecStrategy{}.Resolve(context.Background(), Probe{Name: "java", Target: path, Arg: "-version"})
	if !out.OK() {
		t.Fatalf("expected success, got %v", out.Err)
	}
	if out.Raw != "openjdk 21.0.2" {
		t.Fatalf("Raw = %q", out.Raw)
	}
}

func TestExecStrategy_AbsentTarget(t *testing.T) {
	out := ExecStrategy{}.Resolve(context.Background(), Probe{Name: "ghost", Target: "definitely-not-a-real-binary-4f2a"})
	if out.OK() {
		t.Fatal("expected failure for absent target")
	}
	if !errors.Is(out.Err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", out.Err)
	}
}

func TestExecStrategy_NonZeroExitEmptyOutput(t *testing.T) {
	path := writeScript(t, `exit 2`)
	out := ExecStrategy{}.Resolve(context.Background(), Probe{Name: "tool", Target: path})
	if out.OK() {
		t.Fatal("expected failure for non-zero exit with no output")
	}
	if !errors.Is(out.Err, errs.ErrExecutionFailed) {
		t.Fatalf("err = %v, want ErrExecutionFailed", out.Err)
	}
}

func TestExecStrategy_ZeroExitEmptyOutput(t *testing.T) {
	path := writeScript(t, `exit 0`)
	out := ExecStrategy{}.Resolve(context.Background(), Probe{Name: "tool", Target: path})
	if out.OK() {
		t.Fatal("expected failure: success requires non-empty output")
	}
}

func TestExecStrategy_MarkerOverridesExitCode(t *testing.T) {
	path := writeScript(t, `echo "ROBOCOPY :: Robust File Copy for Windows :: Version 10.0.19041.3636"
exit 16`)
	p := Probe{Name: "Robocopy", Target: path, Arg: "/?", Marker: "ROBOCOPY"}
	out := ExecStrategy{}.Resolve(context.Background(), p)
	if !out.OK() {
		t.Fatalf("expected marker override to succeed, got %v", out.Err)
	}
}

func TestExecStrategy_Timeout(t *testing.T) {
	path := writeScript(t, `exec sleep 5`)
	out := ExecStrategy{Timeout: 100 * time.Millisecond}.Resolve(context.Background(), Probe{Name: "slow", Target: path})
	if out.OK() {
		t.Fatal("expected timeout failure")
	}
	if !errors.Is(out.Err, errs.ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", out.Err)
	}
}
