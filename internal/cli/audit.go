package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filepilot/filepilot/internal/audit"
	"github.com/filepilot/filepilot/internal/config"
)

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent actions from the audit log",
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().IntVar(&auditLimit, "limit", 20, "number of entries to show")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	store, err := audit.Open(cfg.AuditDBPath)
	if err != nil {
		return fmt.Errorf("audit log unavailable: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent("", auditLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("no recorded actions")
		return nil
	}

	for _, e := range entries {
		status := "ok"
		if !e.Success {
			status = "FAILED"
		}
		fmt.Printf("%s  %-8s %-7s %s", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Action, status, e.Target)
		if e.Detail != "" {
			fmt.Printf("  (%s)", e.Detail)
		}
		fmt.Println()
	}
	return nil
}
