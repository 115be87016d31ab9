//go:build !windows

package probe

import (
	errs "github.com/minhnv203/toolvet/internal/shared/errors"
)

type noRegistryReader struct{}

func defaultKeyReader() KeyReader {
	return noRegistryReader{}
}

func (noRegistryReader) ReadString(RegistryKey) (string, error) {
	return "", errs.ErrUnsupportedPlatform
}
