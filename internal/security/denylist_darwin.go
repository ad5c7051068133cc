//go:build darwin

package security

// APFS is case-insensitive by default.
const caseInsensitiveFS = true

// DefaultDeniedPaths lists operating-system-critical directories that no
// action may touch, regardless of how the root is configured.
func DefaultDeniedPaths() []string {
	return []string{
		"/bin",
		"/sbin",
		"/usr",
		"/etc",
		"/System",
		"/Library",
		"/private/etc",
	}
}
