package app

import (
	stderrors "errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/filepilot/filepilot/internal/actions"
	"github.com/filepilot/filepilot/internal/errors"
	"github.com/filepilot/filepilot/internal/oracle"
)

var (
	errColor  = color.New(color.FgRed)
	dirColor  = color.New(color.FgCyan)
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
)

// render prints one dispatched result. Partial batch failures come through
// as a warning with counts, not as an error: the successes already happened.
func (a *App) render(result *actions.ActionResult) {
	if result.Err != nil {
		var batchErr *errors.BatchError
		if stderrors.As(result.Err, &batchErr) {
			a.renderBatch(result.Batch, result.Action)
			for _, failure := range batchErr.Failures {
				warnColor.Fprintf(a.out, "  failed: %s\n", failure)
			}
			return
		}
		// A failed execute still carries whatever the process wrote
		// before it was stopped.
		if result.Exec != nil {
			a.renderExecOutput(result.Exec)
		}
		errColor.Fprintf(a.out, "error: %v\n", result.Err)
		return
	}

	switch result.Action {
	case oracle.ActionList:
		fmt.Fprintf(a.out, "%d entries:\n", len(result.Entries))
		for _, entry := range result.Entries {
			if entry.Kind == actions.KindDir {
				dirColor.Fprintf(a.out, "  [DIR]  %s\n", entry.Name)
			} else {
				fmt.Fprintf(a.out, "  [FILE] %s (%db)\n", entry.Name, entry.Size)
			}
		}
	case oracle.ActionFind:
		fmt.Fprintf(a.out, "found %d files:\n", len(result.Paths))
		for _, p := range result.Paths {
			fmt.Fprintf(a.out, "  %s\n", p)
		}
	case oracle.ActionMove, oracle.ActionDelete:
		a.renderBatch(result.Batch, result.Action)
	case oracle.ActionExecute:
		okColor.Fprintf(a.out, "exit code %d (%.3fs)\n", result.Exec.ExitCode, result.Exec.Duration.Seconds())
		a.renderExecOutput(result.Exec)
	case oracle.ActionError:
		warnColor.Fprintf(a.out, "refused: %s\n", result.Message)
	}
}

func (a *App) renderExecOutput(res *actions.ExecResult) {
	if res.Stdout != "" {
		fmt.Fprintf(a.out, "Output:\n%s", res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprintf(a.out, "Errors:\n%s", res.Stderr)
	}
}

func (a *App) renderBatch(batch *actions.BatchResult, action string) {
	if batch == nil {
		return
	}
	verb := "deleted"
	if action == oracle.ActionMove {
		verb = "moved"
	}
	okColor.Fprintf(a.out, "%s %d files", verb, batch.Succeeded)
	if batch.Destination != "" {
		fmt.Fprintf(a.out, " to %s", batch.Destination)
	}
	if batch.Failed > 0 {
		warnColor.Fprintf(a.out, ", %d failed", batch.Failed)
	}
	fmt.Fprintln(a.out)
}
