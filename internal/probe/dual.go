package probe

import (
	"context"
	"time"

	errs "github.com/minhnv203/toolvet/internal/shared/errors"
)

// Variant is one invocation form of a dual-mode probe.
type Variant struct {
	// Name is the display name recorded in the store when this form
	// succeeds, so the report shows which variant is installed.
	Name string
	// Target and Arg override the probe's execution target for this form.
	Target string
	Arg    string
	// Strategy overrides direct execution for this form. Nil runs Target
	// directly.
	Strategy Strategy
}

// DualStrategy tries a modern invocation form first and falls back to a
// legacy form only when the modern one fails. The canonical case is Docker
// Compose: the v2 plugin ("docker compose version") superseded the v1
// standalone binary ("docker-compose --version"), and either may be the one
// actually installed.
type DualStrategy struct {
	Modern Variant
	Legacy Variant
	// Timeout bounds each invocation. Zero applies the default.
	Timeout time.Duration
}

// ResolveKeyed attempts the modern form and, only on failure, the legacy
// form, reporting the result under the succeeding variant's display name.
// Both failing resolves to the probe's own name so the store still records
// exactly one entry.
func (s DualStrategy) ResolveKeyed(ctx context.Context, p Probe) (string, Outcome) {
	if out := s.attempt(ctx, p, s.Modern); out.OK() {
		return s.Modern.Name, out
	}
	if out := s.attempt(ctx, p, s.Legacy); out.OK() {
		return s.Legacy.Name, out
	}
	return p.Name, Failuref("%w: %s", errs.ErrNotFound, p.Target)
}

// Resolve satisfies Strategy for callers that do not care about the variant
// name.
func (s DualStrategy) Resolve(ctx context.Context, p Probe) Outcome {
	_, out := s.ResolveKeyed(ctx, p)
	return out
}

func (s DualStrategy) attempt(ctx context.Context, p Probe, v Variant) Outcome {
	vp := p
	if v.Target != "" {
		vp.Target = v.Target
	}
	if v.Arg != "" {
		vp.Arg = v.Arg
	}
	if v.Strategy != nil {
		return v.Strategy.Resolve(ctx, vp)
	}
	return runCommand(ctx, s.Timeout, vp, vp.Target)
}
