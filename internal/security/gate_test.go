package security

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T, denied []string) (*Gate, string) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	g, err := NewGate(root, denied)
	require.NoError(t, err)
	return g, root
}

func TestGateContainment(t *testing.T) {
	g, root := newTestGate(t, []string{})

	tests := []struct {
		name    string
		path    string
		allowed bool
	}{
		{"root itself", root, true},
		{"child of root", filepath.Join(root, "docs"), true},
		{"deep descendant", filepath.Join(root, "a", "b", "c.txt"), true},
		{"parent of root", filepath.Dir(root), false},
		{"sibling with shared prefix", root + "2", false},
		{"unrelated absolute path", filepath.Join(os.TempDir(), "elsewhere"), false},
		{"empty path", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := g.Check(tt.path)
			assert.Equal(t, tt.allowed, v.Allowed)
			if !tt.allowed {
				assert.NotEmpty(t, v.Reason, "denial must carry a reason")
			}
		})
	}
}

func TestGateDenylistWinsInsideRoot(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	protected := filepath.Join(root, "system")
	require.NoError(t, os.Mkdir(protected, 0o755))

	g, err := NewGate(root, []string{protected})
	require.NoError(t, err)

	assert.False(t, g.Check(protected).Allowed)
	assert.False(t, g.Check(filepath.Join(protected, "lib", "x.so")).Allowed)
	assert.True(t, g.Check(filepath.Join(root, "docs")).Allowed)
}

func TestGateDefaultDenylist(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix denylist")
	}
	// Even with a widened root the system directories stay off limits.
	g, err := NewGate("/", nil)
	require.NoError(t, err)

	assert.False(t, g.Check("/etc/passwd").Allowed)
	assert.False(t, g.Check("/usr/lib").Allowed)
	assert.False(t, g.Check("/bin").Allowed)
}

func TestGateSymlinkEscapeDenied(t *testing.T) {
	g, root := newTestGate(t, []string{})

	outside := t.TempDir()
	link := filepath.Join(root, "sneaky")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	// The link lives inside the root but points outside it.
	assert.False(t, g.Check(link).Allowed)
	assert.False(t, g.Check(filepath.Join(link, "file.txt")).Allowed)
}

func TestGateNonexistentPathUnderRootAllowed(t *testing.T) {
	g, root := newTestGate(t, []string{})

	// A move destination that does not exist yet must still pass, as long
	// as it would be created inside the root.
	assert.True(t, g.Check(filepath.Join(root, "new", "dest")).Allowed)
}

func TestGateVerdictNotCached(t *testing.T) {
	g, root := newTestGate(t, []string{})

	target := filepath.Join(root, "swap")
	require.NoError(t, os.Mkdir(target, 0o755))
	assert.True(t, g.Check(target).Allowed)

	// Replace the directory with an escaping symlink; the next verdict
	// must reflect the new target.
	require.NoError(t, os.Remove(target))
	outside := t.TempDir()
	if err := os.Symlink(outside, target); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	assert.False(t, g.Check(target).Allowed)
}
