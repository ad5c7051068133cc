package actions

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/filepilot/filepilot/internal/config"
	"github.com/filepilot/filepilot/internal/errors"
	"github.com/filepilot/filepilot/internal/security"
)

// EntryKind distinguishes files from directories in a listing.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
)

// DirectoryEntry is one discovered filesystem object. Size is meaningful
// only for files.
type DirectoryEntry struct {
	Name string
	Kind EntryKind
	Size int64
}

// Enumerator walks directory trees under the safety gate. Every
// subdirectory is re-checked before descent so a symlink that escapes the
// root gets its whole branch pruned, even though the walk started inside.
type Enumerator struct {
	gate *security.Gate
	cfg  *config.Config
}

// NewEnumerator binds an enumerator to a gate and limits.
func NewEnumerator(gate *security.Gate, cfg *config.Config) *Enumerator {
	return &Enumerator{gate: gate, cfg: cfg}
}

var errWalkDone = stderrors.New("walk done")

// FindFiles walks the tree under start and collects file paths, filtered by
// extension when ext is non-empty (case-insensitive, with or without the
// leading dot). The walk visits entries in lexical order, stops as soon as
// the result cap is reached, and never visits more than MaxWalkEntries
// filesystem entries in total.
func (e *Enumerator) FindFiles(start, ext string) ([]string, error) {
	info, err := os.Stat(start)
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.NewPathError("find", start, "", errors.ErrPermissionDenied)
		}
		return nil, errors.NewPathError("find", start, "", errors.ErrNotFound)
	}
	if !info.IsDir() {
		return nil, errors.NewPathError("find", start, "", errors.ErrNotADirectory)
	}

	suffix := ""
	if ext != "" {
		suffix = "." + strings.ToLower(strings.TrimPrefix(ext, "."))
	}

	results := []string{}
	visited := 0

	walkErr := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		visited++
		if visited > e.cfg.MaxWalkEntries {
			return errWalkDone
		}

		if d.IsDir() {
			if v := e.gate.Check(path); !v.Allowed {
				return fs.SkipDir
			}
			if path != start && e.cfg.Excluded(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		if e.cfg.Excluded(d.Name()) {
			return nil
		}
		if suffix != "" && !strings.HasSuffix(strings.ToLower(d.Name()), suffix) {
			return nil
		}

		results = append(results, path)
		if len(results) >= e.cfg.MaxFindResults {
			return errWalkDone
		}
		return nil
	})

	if walkErr != nil && !stderrors.Is(walkErr, errWalkDone) {
		return nil, errors.NewPathError("find", start, walkErr.Error(), errors.ErrPermissionDenied)
	}
	return results, nil
}

// ListDir returns the immediate children of a directory, directories before
// files, each group in case-insensitive lexicographic order, truncated to
// the configured display cap.
func (e *Enumerator) ListDir(dir string) ([]DirectoryEntry, error) {
	raw, err := os.ReadDir(dir)
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.NewPathError("list", dir, "", errors.ErrPermissionDenied)
		}
		return nil, errors.NewPathError("list", dir, "", errors.ErrNotFound)
	}

	entries := make([]DirectoryEntry, 0, len(raw))
	for _, d := range raw {
		entry := DirectoryEntry{Name: d.Name(), Kind: KindFile}
		if d.IsDir() {
			entry.Kind = KindDir
		} else if info, err := d.Info(); err == nil {
			entry.Size = info.Size()
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind == KindDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	if len(entries) > e.cfg.MaxListEntries {
		entries = entries[:e.cfg.MaxListEntries]
	}
	return entries, nil
}
