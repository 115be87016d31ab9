package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// Probe declares a single check for one external tool or feature. Probes are
// built once from the static catalog at startup and never mutated afterwards.
type Probe struct {
	// Name is the display name and result-store key.
	Name string
	// Target is the executable name (for exec/search strategies), a file
	// name, or a feature identifier, depending on the strategy.
	Target string
	// Arg is the invocation argument string, split on whitespace before
	// execution. Empty means "--version".
	Arg string
	// Pattern optionally refines normalized output to a precise version
	// token via its first capture group. A nil pattern stores the
	// normalized text as-is.
	Pattern *regexp.Regexp
	// Format composes multi-group pattern matches into the stored display
	// string, one %s per capture group (e.g. "pip %s, Python %s"). Ignored
	// when Pattern has fewer than two groups or Format is empty.
	Format string
	// Marker accepts a non-zero exit status as success when the combined
	// output still contains this product-name marker. Some tools answer a
	// version query on stderr with a failing exit code.
	Marker string
	// Strategy locates and interrogates the target. Nil means direct
	// execution with the runner's default timeout.
	Strategy Strategy
	// Category groups the probe in catalog listings. Cosmetic only.
	Category string
}

// InvocationArg returns the argument string, applying the "--version" default.
func (p Probe) InvocationArg() string {
	if p.Arg == "" {
		return "--version"
	}
	return p.Arg
}

// Outcome is the result of one strategy attempt: either raw captured text or
// a failure reason. It is consumed immediately by normalization and never
// persisted.
type Outcome struct {
	Raw string
	Err error
}

// Success wraps raw captured output.
func Success(raw string) Outcome {
	return Outcome{Raw: raw}
}

// Failure wraps a failure reason.
func Failure(err error) Outcome {
	if err == nil {
		err = errors.New("discovery failed")
	}
	return Outcome{Err: err}
}

// Failuref formats a failure reason. The usual callers wrap a sentinel from
// internal/shared/errors so tests can match with errors.Is.
func Failuref(format string, args ...any) Outcome {
	return Outcome{Err: fmt.Errorf(format, args...)}
}

// OK reports whether the attempt produced usable output.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Strategy resolves a probe to raw version text or a failure. Implementations
// must tolerate the target being entirely absent and report failure instead
// of panicking or aborting the run.
type Strategy interface {
	Resolve(ctx context.Context, p Probe) Outcome
}

// StatusResolver is an optional upgrade for strategies whose outcome maps
// directly onto a final status, bypassing normalization and extraction
// (feature-state queries are the one current case: they must never surface
// as Missing).
type StatusResolver interface {
	ResolveStatus(ctx context.Context, p Probe) VersionStatus
}

// KeyedResolver is an optional upgrade for strategies that report their
// result under a display name of their own choosing, such as dual-mode
// probes recording which invocation form succeeded.
type KeyedResolver interface {
	ResolveKeyed(ctx context.Context, p Probe) (key string, out Outcome)
}

// StatusKind classifies a probe's final outcome.
type StatusKind int

const (
	KindFound StatusKind = iota
	KindMissing
	KindWarning
)

var kindNames = map[StatusKind]string{
	KindFound:   "found",
	KindMissing: "missing",
	KindWarning: "warning",
}

func (k StatusKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("statuskind(%d)", int(k))
}

// MarshalJSON encodes the kind as its lowercase name.
func (k StatusKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a lowercase kind name.
func (k *StatusKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown status kind %q", name)
}

// VersionStatus is the final classification of a probe outcome.
type VersionStatus struct {
	Kind StatusKind `json:"kind"`
	Text string     `json:"text,omitempty"`
}

// Found records a discovered version or status string.
func Found(text string) VersionStatus {
	return VersionStatus{Kind: KindFound, Text: text}
}

// Missing records an absent tool.
func Missing() VersionStatus {
	return VersionStatus{Kind: KindMissing}
}

// Warning records a present-but-degraded or indeterminate state.
func Warning(text string) VersionStatus {
	return VersionStatus{Kind: KindWarning, Text: text}
}
