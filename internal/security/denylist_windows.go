//go:build windows

package security

import "os"

const caseInsensitiveFS = true

// DefaultDeniedPaths lists operating-system-critical directories that no
// action may touch, regardless of how the root is configured.
func DefaultDeniedPaths() []string {
	sys := os.Getenv("SystemDrive")
	if sys == "" {
		sys = "C:"
	}
	return []string{
		sys + `\Windows`,
		sys + `\Program Files`,
		sys + `\Program Files (x86)`,
		sys + `\$Recycle.Bin`,
		sys + `\System Volume Information`,
	}
}
