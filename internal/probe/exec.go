package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	consts "github.com/minhnv203/toolvet/internal/shared/constants"
	errs "github.com/minhnv203/toolvet/internal/shared/errors"
)

// ExecStrategy invokes the probe target directly from PATH with its
// invocation argument, capturing stdout and stderr as one ordered blob.
// Several real-world tools write version banners to stderr, so success is
// gated on a zero exit status and non-empty combined output rather than on
// stdout alone.
type ExecStrategy struct {
	// Timeout bounds the invocation. Zero applies the default.
	Timeout time.Duration
}

func (s ExecStrategy) Resolve(ctx context.Context, p Probe) Outcome {
	return runCommand(ctx, s.Timeout, p, p.Target)
}

// runCommand is the shared execution path for every strategy that ends in an
// invocation: direct PATH lookup, registry-resolved paths and filesystem
// search hits all funnel through here.
func runCommand(ctx context.Context, timeout time.Duration, p Probe, path string) Outcome {
	if timeout <= 0 {
		timeout = consts.DefaultProbeTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, path, strings.Fields(p.InvocationArg())...)
	// Avoid pagers, prompts and ANSI noise in captured output.
	cmd.Env = append(os.Environ(), "NO_COLOR=1")

	out, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(out))

	if cctx.Err() == context.DeadlineExceeded {
		return Failuref("%w after %s: %s", errs.ErrTimeout, timeout, path)
	}
	if err == nil && text != "" {
		return Success(text)
	}

	// Success-despite-nonzero-exit override: tools whose version query
	// always fails by exit code but still print a recognizable banner.
	if p.Marker != "" && text != "" && strings.Contains(text, p.Marker) {
		return Success(text)
	}

	if errors.Is(err, exec.ErrNotFound) {
		return Failuref("%w: %s", errs.ErrNotFound, path)
	}
	if err != nil {
		return Failure(fmt.Errorf("%w: %s: %v", errs.ErrExecutionFailed, path, err))
	}
	return Failuref("%w: %s", errs.ErrExecutionFailed, path)
}
