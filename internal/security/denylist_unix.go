//go:build !windows && !darwin

package security

const caseInsensitiveFS = false

// DefaultDeniedPaths lists operating-system-critical directories that no
// action may touch, regardless of how the root is configured.
func DefaultDeniedPaths() []string {
	return []string{
		"/bin",
		"/sbin",
		"/usr",
		"/etc",
		"/boot",
		"/dev",
		"/proc",
		"/sys",
		"/var/lib",
	}
}
