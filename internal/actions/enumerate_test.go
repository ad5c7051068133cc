package actions

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filepilot/filepilot/internal/config"
	"github.com/filepilot/filepilot/internal/errors"
	"github.com/filepilot/filepilot/internal/security"
)

func testConfig(t *testing.T, root string) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Root:             root,
		ExcludedPatterns: []string{".git", "*.key"},
		MaxFindResults:   50,
		MaxListEntries:   100,
		MaxWalkEntries:   10000,
		ExecTimeout:      30 * time.Second,
		ExecExtensions:   []string{".py"},
		Interpreter:      "python3",
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func newTestEnumerator(t *testing.T) (*Enumerator, string, *config.Config) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	cfg := testConfig(t, root)
	gate, err := security.NewGate(root, []string{})
	require.NoError(t, err)
	return NewEnumerator(gate, cfg), root, cfg
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func TestFindFilesExtensionFilter(t *testing.T) {
	enum, root, _ := newTestEnumerator(t)
	writeFiles(t, root, "a.pdf", "b.PDF", "c.txt", "sub/d.pdf", "sub/e.md")

	tests := []struct {
		name string
		ext  string
		want []string
	}{
		{
			name: "case-insensitive match with bare extension",
			ext:  "pdf",
			want: []string{
				filepath.Join(root, "a.pdf"),
				filepath.Join(root, "b.PDF"),
				filepath.Join(root, "sub", "d.pdf"),
			},
		},
		{
			name: "leading dot accepted",
			ext:  ".txt",
			want: []string{filepath.Join(root, "c.txt")},
		},
		{
			name: "empty filter matches everything",
			ext:  "",
			want: []string{
				filepath.Join(root, "a.pdf"),
				filepath.Join(root, "b.PDF"),
				filepath.Join(root, "c.txt"),
				filepath.Join(root, "sub", "d.pdf"),
				filepath.Join(root, "sub", "e.md"),
			},
		},
		{
			name: "no matches",
			ext:  "docx",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := enum.FindFiles(root, tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindFilesResultCap(t *testing.T) {
	enum, root, cfg := newTestEnumerator(t)
	cfg.MaxFindResults = 5

	for i := 0; i < 12; i++ {
		writeFiles(t, root, filepath.Join("docs", string(rune('a'+i))+".txt"))
	}

	got, err := enum.FindFiles(root, "txt")
	require.NoError(t, err)
	assert.Len(t, got, 5, "cap must be exact, not approximate")
}

func TestFindFilesNonexistentStart(t *testing.T) {
	enum, root, _ := newTestEnumerator(t)

	_, err := enum.FindFiles(filepath.Join(root, "missing"), "")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestFindFilesStartIsFile(t *testing.T) {
	enum, root, _ := newTestEnumerator(t)
	writeFiles(t, root, "plain.txt")

	_, err := enum.FindFiles(filepath.Join(root, "plain.txt"), "")
	assert.ErrorIs(t, err, errors.ErrNotADirectory)
}

func TestFindFilesPrunesEscapingSymlink(t *testing.T) {
	enum, root, _ := newTestEnumerator(t)

	outside := t.TempDir()
	writeFiles(t, outside, "secret.txt")
	if err := os.Symlink(outside, filepath.Join(root, "escape")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	writeFiles(t, root, "normal.txt")

	got, err := enum.FindFiles(root, "txt")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "normal.txt")}, got)
}

func TestFindFilesSkipsExcludedNames(t *testing.T) {
	enum, root, _ := newTestEnumerator(t)
	writeFiles(t, root, ".git/config", "server.key", "keep.txt")

	got, err := enum.FindFiles(root, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "keep.txt")}, got)
}

func TestFindFilesWalkEntryBudget(t *testing.T) {
	enum, root, cfg := newTestEnumerator(t)
	cfg.MaxWalkEntries = 10
	cfg.MaxFindResults = 1000

	for i := 0; i < 50; i++ {
		writeFiles(t, root, filepath.Join("big", string(rune('a'+i%26))+string(rune('0'+i/26))+".txt"))
	}

	got, err := enum.FindFiles(root, "txt")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 10)
}

func TestListDirOrdering(t *testing.T) {
	enum, root, _ := newTestEnumerator(t)

	require.NoError(t, os.Mkdir(filepath.Join(root, "A"), 0o755))
	writeFiles(t, root, "b.txt", "a.txt")

	got, err := enum.ListDir(root)
	require.NoError(t, err)

	names := make([]string, len(got))
	for i, e := range got {
		names[i] = e.Name
	}
	// Directories first, then case-insensitive lexicographic.
	assert.Equal(t, []string{"A", "a.txt", "b.txt"}, names)
	assert.Equal(t, KindDir, got[0].Kind)
	assert.Equal(t, KindFile, got[1].Kind)
}

func TestListDirSizesAndCap(t *testing.T) {
	enum, root, cfg := newTestEnumerator(t)
	cfg.MaxListEntries = 3

	require.NoError(t, os.WriteFile(filepath.Join(root, "data.bin"), make([]byte, 256), 0o644))
	writeFiles(t, root, "a.txt", "b.txt", "c.txt")

	got, err := enum.ListDir(root)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	full, err := NewEnumerator(nil, testConfig(t, root)).ListDir(root)
	require.NoError(t, err)
	for _, e := range full {
		if e.Name == "data.bin" {
			assert.Equal(t, int64(256), e.Size)
		}
	}
}

func TestListDirNonexistent(t *testing.T) {
	enum, root, _ := newTestEnumerator(t)

	_, err := enum.ListDir(filepath.Join(root, "missing"))
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
