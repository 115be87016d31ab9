package probe

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	errs "github.com/minhnv203/toolvet/internal/shared/errors"
)

// SearchStrategy recursively enumerates known installation roots for a target
// filename when neither PATH nor the registry yields a result. When several
// copies exist (side-by-side installs, leftover upgrades) the most recently
// modified one is invoked; the first hit in enumeration order wins a tie.
type SearchStrategy struct {
	// Roots are the directories to walk. Environment references in the
	// form $VAR or ${VAR} are expanded at resolve time. Missing roots are
	// skipped, not errors.
	Roots []string
	// Filename overrides the searched-for file name. Empty uses the probe
	// target.
	Filename string
	// Timeout bounds the resolved invocation. Zero applies the default.
	Timeout time.Duration
}

func (s SearchStrategy) Resolve(ctx context.Context, p Probe) Outcome {
	filename := s.Filename
	if filename == "" {
		filename = p.Target
	}

	var (
		best     string
		bestTime time.Time
	)
	for _, root := range s.Roots {
		root = os.ExpandEnv(root)
		if _, err := os.Stat(root); err != nil {
			continue
		}
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable subtree; keep walking the rest.
				return nil
			}
			if d.IsDir() || !strings.EqualFold(d.Name(), filename) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if best == "" || info.ModTime().After(bestTime) {
				best = path
				bestTime = info.ModTime()
			}
			return nil
		})
	}

	if best == "" {
		return Failuref("%w: %s", errs.ErrNoMatch, filename)
	}
	return runCommand(ctx, s.Timeout, p, best)
}
