//go:build windows

package probe

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

type windowsVersionInfoReader struct{}

func defaultVersionInfoReader() VersionInfoReader {
	return windowsVersionInfoReader{}
}

func (windowsVersionInfoReader) Read(path string) (FileVersion, error) {
	size, err := windows.GetFileVersionInfoSize(path, nil)
	if err != nil {
		return FileVersion{}, fmt.Errorf("no version resource: %w", err)
	}

	block := make([]byte, size)
	if err := windows.GetFileVersionInfo(path, 0, size, unsafe.Pointer(&block[0])); err != nil {
		return FileVersion{}, err
	}

	var fixed *windows.VS_FIXEDFILEINFO
	var fixedLen uint32
	if err := windows.VerQueryValue(unsafe.Pointer(&block[0]), `\`, unsafe.Pointer(&fixed), &fixedLen); err != nil {
		return FileVersion{}, err
	}
	if fixed == nil || fixedLen == 0 {
		return FileVersion{}, fmt.Errorf("empty fixed file info block")
	}

	return FileVersion{
		Major: int(fixed.FileVersionMS >> 16),
		Minor: int(fixed.FileVersionMS & 0xffff),
		Build: int(fixed.FileVersionLS >> 16),
	}, nil
}
