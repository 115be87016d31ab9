package probe

import (
	"fmt"
	"regexp"
	"strings"

	consts "github.com/minhnv203/toolvet/internal/shared/constants"
)

// versionShapeRe is the generic numeric version shape used as a last-resort
// scan over verbose output. Tuned to real-world tool banners; see Normalizer.
var versionShapeRe = regexp.MustCompile(`\d+\.\d+\.\d+`)

// Normalizer collapses raw combined-stream output into a single candidate
// version string.
//
// The first non-empty trimmed line is the candidate. A candidate longer than
// Threshold signals a verbose dump (help text, multi-line banner) rather than
// a clean version line; in that case the entire raw text is rescanned for the
// first generic numeric version shape. An empty candidate after all steps
// becomes the literal "Found": presence confirmed, version unknown.
type Normalizer struct {
	// Threshold is the verbose-dump cutoff. Zero or negative applies the
	// default of 100 characters.
	Threshold int
}

// Normalize reduces raw output to one display string. It is idempotent on
// clean one-liners under the threshold. Callers must convert empty raw output
// to a Failure outcome before normalization; Normalize itself never fails.
func (n Normalizer) Normalize(raw string) string {
	threshold := n.Threshold
	if threshold <= 0 {
		threshold = consts.DefaultVerboseThreshold
	}

	var candidate string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			candidate = trimmed
			break
		}
	}

	if len(candidate) > threshold {
		if m := versionShapeRe.FindString(raw); m != "" {
			candidate = m
		}
	}

	if candidate == "" {
		return "Found"
	}
	return candidate
}

// Extract applies an optional capture-group pattern to a normalized string.
// On a match the first capture group is returned, or, when format is set and
// the pattern captured several groups, the groups composed through format
// (one %s per group). A nil pattern or a non-match is a silent pass-through
// of the input, never an error.
func Extract(s string, pattern *regexp.Regexp, format string) string {
	out, ok := extractGroups(s, pattern, format)
	if !ok {
		return s
	}
	return out
}

func extractGroups(s string, pattern *regexp.Regexp, format string) (string, bool) {
	if pattern == nil {
		return "", false
	}
	m := pattern.FindStringSubmatch(s)
	if len(m) < 2 {
		return "", false
	}
	groups := m[1:]
	if format != "" && len(groups) > 1 {
		args := make([]any, len(groups))
		for i, g := range groups {
			args[i] = g
		}
		return fmt.Sprintf(format, args...), true
	}
	return m[1], true
}
