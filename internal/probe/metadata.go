package probe

import (
	"context"
	"fmt"
	"os"

	errs "github.com/minhnv203/toolvet/internal/shared/errors"
)

// FileVersion holds the numeric fields read from a binary's version resource.
type FileVersion struct {
	Major int
	Minor int
	Build int
}

// String renders the display form used in reports.
func (v FileVersion) String() string {
	return fmt.Sprintf("%d.%d (Build %d)", v.Major, v.Minor, v.Build)
}

// VersionInfoReader reads version metadata from a file on disk. The platform
// default is swapped for a fake in tests and a stub where version resources
// do not exist.
type VersionInfoReader interface {
	Read(path string) (FileVersion, error)
}

// MetadataStrategy reads version fields from a binary's file metadata instead
// of executing it. GUI-style executables block or open a window when invoked
// with a version flag, so they must never be run.
type MetadataStrategy struct {
	// Paths are candidate absolute locations checked in order; the first
	// existing file is read. Environment references are expanded at
	// resolve time.
	Paths []string
	// Reader overrides the platform version-info reader. Nil uses the
	// default.
	Reader VersionInfoReader
}

func (s MetadataStrategy) Resolve(ctx context.Context, p Probe) Outcome {
	reader := s.Reader
	if reader == nil {
		reader = defaultVersionInfoReader()
	}
	for _, candidate := range s.Paths {
		candidate = os.ExpandEnv(candidate)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		ver, err := reader.Read(candidate)
		if err != nil {
			return Failure(fmt.Errorf("read version metadata for %s: %w", candidate, err))
		}
		return Success(ver.String())
	}
	return Failuref("%w: %s", errs.ErrNotFound, p.Target)
}
