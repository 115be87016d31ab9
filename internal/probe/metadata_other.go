//go:build !windows

package probe

import (
	errs "github.com/minhnv203/toolvet/internal/shared/errors"
)

type noVersionInfoReader struct{}

func defaultVersionInfoReader() VersionInfoReader {
	return noVersionInfoReader{}
}

func (noVersionInfoReader) Read(string) (FileVersion, error) {
	return FileVersion{}, errs.ErrUnsupportedPlatform
}
