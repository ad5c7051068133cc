package app

import (
	"fmt"
	"log"
	"os"

	"github.com/filepilot/filepilot/internal/actions"
	"github.com/filepilot/filepilot/internal/audit"
	"github.com/filepilot/filepilot/internal/config"
	"github.com/filepilot/filepilot/internal/oracle"
	"github.com/filepilot/filepilot/internal/security"
	"github.com/filepilot/filepilot/internal/session"
)

// Bootstrap wires the full application from a validated configuration.
func Bootstrap(cfg *config.Config) (*App, error) {
	resolver, err := security.NewResolver(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolver: %w", err)
	}

	gate, err := security.NewGate(cfg.Root, cfg.DeniedPaths)
	if err != nil {
		return nil, fmt.Errorf("safety gate: %w", err)
	}

	store, err := audit.Open(cfg.AuditDBPath)
	if err != nil {
		// Auditing is best-effort: a broken store must not block the tool.
		log.Printf("warning: audit log unavailable: %v", err)
		store = nil
	}
	sess := session.New(store)

	enum := actions.NewEnumerator(gate, cfg)
	executor := actions.NewExecutor(resolver, gate, enum, cfg, sess)

	client := oracle.NewClient(cfg.Model, cfg.BaseURL, cfg.APIKey)

	return &App{
		cfg:      cfg,
		oracle:   client,
		executor: executor,
		session:  sess,
		in:       os.Stdin,
		out:      os.Stdout,
	}, nil
}
