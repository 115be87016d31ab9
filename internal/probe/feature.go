package probe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	consts "github.com/minhnv203/toolvet/internal/shared/constants"
	errs "github.com/minhnv203/toolvet/internal/shared/errors"
)

// FeatureState is the answer to an OS optional-feature query.
type FeatureState int

const (
	FeatureEnabled FeatureState = iota
	FeatureDisabled
)

// FeatureQuerier answers optional-feature state queries. Returning
// errs.ErrPermissionDenied (wrapped or not) signals that the query could not
// be answered rather than that the feature is absent.
type FeatureQuerier interface {
	State(ctx context.Context, featureName string) (FeatureState, error)
}

// FeatureStrategy resolves probes whose target is an OS optional-feature
// flag rather than an executable. The three-way mapping is deliberate:
// Enabled and Disabled are definite answers, while an unanswerable query
// (typically insufficient privilege) becomes a "Check manually" warning.
// A feature probe never results in Missing.
type FeatureStrategy struct {
	// Querier overrides the platform feature query. Nil uses the default.
	Querier FeatureQuerier
	// Timeout bounds the underlying query. Zero applies the default.
	Timeout time.Duration
}

// ResolveStatus maps the feature state straight onto a final status; feature
// answers are not version text and skip normalization entirely.
func (s FeatureStrategy) ResolveStatus(ctx context.Context, p Probe) VersionStatus {
	querier := s.Querier
	if querier == nil {
		querier = execFeatureQuerier{timeout: s.Timeout}
	}
	state, err := querier.State(ctx, p.Target)
	if err != nil {
		return Warning("Check manually")
	}
	switch state {
	case FeatureEnabled:
		return Found("Enabled")
	default:
		return Warning("Disabled")
	}
}

// Resolve satisfies Strategy; the runner prefers ResolveStatus.
func (s FeatureStrategy) Resolve(ctx context.Context, p Probe) Outcome {
	st := s.ResolveStatus(ctx, p)
	if st.Kind == KindFound {
		return Success(st.Text)
	}
	return Failuref("feature %s: %s", p.Target, st.Text)
}

// execFeatureQuerier shells out to PowerShell's optional-feature cmdlet. The
// cmdlet requires elevation; an access-denied response (or a platform without
// the cmdlet at all) surfaces as ErrPermissionDenied so the probe lands in
// the warning bucket instead of the missing one.
type execFeatureQuerier struct {
	timeout time.Duration
}

func (q execFeatureQuerier) State(ctx context.Context, featureName string) (FeatureState, error) {
	timeout := q.timeout
	if timeout <= 0 {
		timeout = consts.DefaultProbeTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	script := fmt.Sprintf("(Get-WindowsOptionalFeature -Online -FeatureName %q).State", featureName)
	cmd := exec.CommandContext(cctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	out, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(out))

	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return 0, errs.ErrPermissionDenied
		}
		lower := strings.ToLower(text)
		if strings.Contains(lower, "denied") || strings.Contains(lower, "elevat") || strings.Contains(lower, "administrator") {
			return 0, errs.ErrPermissionDenied
		}
		return 0, fmt.Errorf("%w: %s", errs.ErrUnknownState, featureName)
	}

	switch {
	case strings.EqualFold(text, "Enabled"):
		return FeatureEnabled, nil
	case strings.EqualFold(text, "Disabled"), strings.EqualFold(text, "DisabledWithPayloadRemoved"):
		return FeatureDisabled, nil
	default:
		return 0, fmt.Errorf("%w: %s reported %q", errs.ErrUnknownState, featureName, text)
	}
}
