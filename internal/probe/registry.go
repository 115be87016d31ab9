package probe

import (
	"context"
	"os"
	"path/filepath"
	"time"

	errs "github.com/minhnv203/toolvet/internal/shared/errors"
)

// RegistryKey identifies one well-known registry value that may hold an
// install directory.
type RegistryKey struct {
	// Root is the hive shorthand: "HKLM" or "HKCU".
	Root string
	// Path is the key path below the hive.
	Path string
	// Value is the value name holding the install directory. Empty reads
	// the key's default value.
	Value string
}

// KeyReader reads a string value from the system registry. The platform
// default is swapped for a fake in tests and for a stub on systems without a
// registry.
type KeyReader interface {
	ReadString(key RegistryKey) (string, error)
}

// RegistryStrategy locates tools that install outside PATH: an ordered list
// of registry locations is consulted for an install directory, the known
// executable name is joined onto the first hit, and the resolved binary is
// executed only after the file is confirmed to exist.
type RegistryStrategy struct {
	// Keys are checked in priority order.
	Keys []RegistryKey
	// Exe is the executable filename joined onto the install directory.
	Exe string
	// Timeout bounds the resolved invocation. Zero applies the default.
	Timeout time.Duration
	// Reader overrides the platform key reader. Nil uses the default.
	Reader KeyReader
}

func (s RegistryStrategy) Resolve(ctx context.Context, p Probe) Outcome {
	reader := s.Reader
	if reader == nil {
		reader = defaultKeyReader()
	}
	for _, key := range s.Keys {
		dir, err := reader.ReadString(key)
		if err != nil || dir == "" {
			continue
		}
		path := filepath.Join(dir, s.Exe)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		return runCommand(ctx, s.Timeout, p, path)
	}
	return Failuref("%w: %s", errs.ErrNoInstallLocation, p.Target)
}
