package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Verdict is the outcome of a safety check. Reason is set when denied.
type Verdict struct {
	Allowed bool
	Reason  string
}

// Gate decides whether a resolved path may be touched at all. Two
// independent checks must both pass: the path must live inside the root,
// and it must not live inside any denied system directory. The denylist is
// redundant when the root excludes those directories, but stays as a second
// layer against a misconfigured or widened root.
type Gate struct {
	root     string
	denied   []string
	foldCase bool
}

// NewGate binds a gate to a canonical root and a set of denied directories.
// An empty denied list falls back to the platform defaults.
func NewGate(root string, denied []string) (*Gate, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve root %q: %w", root, err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("root %q is not resolvable: %w", root, err)
	}

	if denied == nil {
		denied = DefaultDeniedPaths()
	}
	cleaned := make([]string, 0, len(denied))
	for _, d := range denied {
		if d == "" {
			continue
		}
		cleaned = append(cleaned, filepath.Clean(d))
	}

	return &Gate{root: real, denied: cleaned, foldCase: caseInsensitiveFS}, nil
}

// Root returns the canonical root the gate encloses.
func (g *Gate) Root() string {
	return g.root
}

// Check computes a fresh verdict for the given path. Verdicts are never
// cached: symlink targets can change between calls. Any resolution failure
// is a denial, not an allowance.
func (g *Gate) Check(path string) Verdict {
	if path == "" {
		return Verdict{Allowed: false, Reason: "empty path"}
	}

	real := canonicalize(filepath.Clean(path))

	// Denylist wins even inside the root.
	for _, d := range g.denied {
		if g.isWithin(d, real) {
			return Verdict{Allowed: false, Reason: fmt.Sprintf("%s is inside protected directory %s", real, d)}
		}
	}

	if !g.isWithin(g.root, real) {
		return Verdict{Allowed: false, Reason: fmt.Sprintf("%s is outside the permitted root %s", real, g.root)}
	}

	return Verdict{Allowed: true}
}

// isWithin reports whether path equals base or descends from it, comparing
// case-insensitively on platforms whose filesystems do.
func (g *Gate) isWithin(base, path string) bool {
	if g.foldCase {
		base = strings.ToLower(base)
		path = strings.ToLower(path)
	}

	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
