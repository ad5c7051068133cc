package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gobwas/glob"
)

// Config is the complete application configuration. It is an explicit value
// handed to constructors, never a module-level global, so tests can run the
// whole stack against a temporary sandbox root.
type Config struct {
	// Root is the single directory subtree inside which all operations are
	// permitted. Defaults to the user's home directory.
	Root string

	// DeniedPaths overrides the platform denylist of system directories.
	// Empty means the platform default.
	DeniedPaths []string

	// ExcludedPatterns are glob patterns matched against entry names during
	// enumeration, e.g. ".git" or "*.key". Matching entries are skipped.
	ExcludedPatterns []string

	MaxFindResults int
	MaxListEntries int
	// MaxWalkEntries bounds the total number of filesystem entries a single
	// walk may visit, a guard against pathological trees.
	MaxWalkEntries int

	ExecTimeout    time.Duration
	ExecExtensions []string
	Interpreter    string

	Model   string
	BaseURL string
	APIKey  string

	AuditDBPath string

	Verbose     bool
	AutoConfirm bool

	excluded []glob.Glob
}

// Validate resolves the root to an absolute existing directory and compiles
// the excluded-name patterns.
func (c *Config) Validate() error {
	if c.Root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		c.Root = home
	}

	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("cannot resolve root: %w", err)
	}
	c.Root = abs

	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("root does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", c.Root)
	}

	if c.MaxFindResults <= 0 {
		return fmt.Errorf("max find results must be positive, got %d", c.MaxFindResults)
	}
	if c.MaxListEntries <= 0 {
		return fmt.Errorf("max list entries must be positive, got %d", c.MaxListEntries)
	}
	if c.ExecTimeout <= 0 {
		return fmt.Errorf("exec timeout must be positive, got %v", c.ExecTimeout)
	}

	c.excluded = c.excluded[:0]
	for _, pattern := range c.ExcludedPatterns {
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid excluded pattern %q: %w", pattern, err)
		}
		c.excluded = append(c.excluded, g)
	}

	if c.AuditDBPath == "" {
		c.AuditDBPath = filepath.Join(c.Root, ".filepilot", "audit.db")
	}

	return nil
}

// Excluded reports whether an entry name matches any excluded pattern.
func (c *Config) Excluded(name string) bool {
	for _, g := range c.excluded {
		if g.Match(name) {
			return true
		}
	}
	return false
}
