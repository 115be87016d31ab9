//go:build windows

package probe

import (
	"fmt"
	"strings"

	"golang.org/x/sys/windows/registry"

	errs "github.com/minhnv203/toolvet/internal/shared/errors"
)

type windowsKeyReader struct{}

func defaultKeyReader() KeyReader {
	return windowsKeyReader{}
}

func (windowsKeyReader) ReadString(key RegistryKey) (string, error) {
	var root registry.Key
	switch strings.ToUpper(key.Root) {
	case "HKLM", "":
		root = registry.LOCAL_MACHINE
	case "HKCU":
		root = registry.CURRENT_USER
	default:
		return "", fmt.Errorf("unknown registry root %q", key.Root)
	}

	k, err := registry.OpenKey(root, key.Path, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return "", fmt.Errorf("%w: %s\\%s", errs.ErrNoInstallLocation, key.Root, key.Path)
	}
	defer k.Close()

	val, _, err := k.GetStringValue(key.Value)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(val), nil
}
