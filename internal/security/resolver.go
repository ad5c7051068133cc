package security

import (
	"fmt"
	"os"
	"path/filepath"
)

// Resolver canonicalizes model-supplied path strings against a configured
// root directory. Relative input is always resolved under the root, never
// the process working directory, so a fragment like "Downloads" lands in
// the user's own tree regardless of where the binary was launched.
type Resolver struct {
	root string
}

// NewResolver canonicalizes the root and returns a resolver bound to it.
func NewResolver(root string) (*Resolver, error) {
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		root = home
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve root %q: %w", root, err)
	}

	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("root %q is not resolvable: %w", root, err)
	}

	return &Resolver{root: real}, nil
}

// Root returns the canonical root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve turns a path string into a canonical absolute path. It never
// fails: input that cannot be canonicalized still comes back as a cleaned
// absolute path, which the Gate will reject on its own checks.
func (r *Resolver) Resolve(input string) string {
	if input == "" {
		return r.root
	}

	input = expandHome(input)

	var abs string
	if filepath.IsAbs(input) {
		abs = filepath.Clean(input)
	} else {
		abs = filepath.Join(r.root, input)
	}

	return canonicalize(abs)
}

// canonicalize resolves symlinks where possible. A path that does not exist
// yet (e.g. a move destination about to be created) falls back to resolving
// its nearest existing ancestor so the containment check still sees through
// symlinked parents.
func canonicalize(abs string) string {
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}

	dir, base := filepath.Split(abs)
	dir = filepath.Clean(dir)
	if dir == abs {
		return abs
	}
	if realDir, err := filepath.EvalSymlinks(dir); err == nil {
		return filepath.Join(realDir, base)
	}
	return abs
}

// expandHome rewrites a leading "~" to the user's home directory.
func expandHome(input string) string {
	if input == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return input
	}
	if len(input) > 1 && input[0] == '~' && os.IsPathSeparator(input[1]) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, input[2:])
		}
	}
	return input
}
