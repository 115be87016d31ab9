package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// DefaultProbeTimeout bounds a single external tool invocation so one
	// hung binary cannot stall the whole scan.
	DefaultProbeTimeout = 8 * time.Second
	// DefaultVerboseThreshold is the candidate length above which normalized
	// output is treated as a verbose dump rather than a version line.
	DefaultVerboseThreshold = 100
	// DefaultConcurrency keeps probe execution sequential, preserving
	// declaration order in streamed console output.
	DefaultConcurrency = 1
	// DefaultRateLimit caps process spawns per second when a scan runs with
	// more than one worker.
	DefaultRateLimit = 4
)
