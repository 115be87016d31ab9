package cmd

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/minhnv203/toolvet/internal/probe"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

// formatStatusLine renders the per-probe console line for a status:
// "[OK] name: version", "[X] name not found..." or "[!] name (text)".
func formatStatusLine(name string, status probe.VersionStatus) string {
	switch status.Kind {
	case probe.KindMissing:
		return fmt.Sprintf("%s %s not found...", colorError("[X]"), name)
	case probe.KindWarning:
		return fmt.Sprintf("%s %s (%s)", colorWarn("[!]"), name, status.Text)
	default:
		return fmt.Sprintf("%s %s: %s", colorSuccess("[OK]"), name, status.Text)
	}
}
