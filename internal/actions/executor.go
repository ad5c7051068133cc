package actions

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/filepilot/filepilot/internal/config"
	"github.com/filepilot/filepilot/internal/errors"
	"github.com/filepilot/filepilot/internal/oracle"
	"github.com/filepilot/filepilot/internal/security"
)

// Auditor records the outcome of every executed action.
type Auditor interface {
	Record(action, target string, success bool, detail string)
}

// BatchResult reports a move or delete over a set of enumerated files.
// Batches never abort: a failure on one file leaves the rest untouched.
type BatchResult struct {
	Succeeded   int
	Failed      int
	Failures    []string
	Destination string
}

// Executor implements the file actions on top of the resolver, gate and
// enumerator. All errors are recovered here and returned as typed values;
// nothing propagates past this boundary.
type Executor struct {
	resolver *security.Resolver
	gate     *security.Gate
	enum     *Enumerator
	cfg      *config.Config
	auditor  Auditor
}

// NewExecutor wires an executor from its collaborators. The auditor may be
// nil, in which case outcomes are simply not recorded.
func NewExecutor(resolver *security.Resolver, gate *security.Gate, enum *Enumerator, cfg *config.Config, auditor Auditor) *Executor {
	return &Executor{resolver: resolver, gate: gate, enum: enum, cfg: cfg, auditor: auditor}
}

func (x *Executor) audit(action, target string, success bool, detail string) {
	if x.auditor != nil {
		x.auditor.Record(action, target, success, detail)
	}
}

// List returns the immediate children of a directory.
func (x *Executor) List(source string) ([]DirectoryEntry, error) {
	target := x.resolver.Resolve(source)

	if v := x.gate.Check(target); !v.Allowed {
		x.audit("list", target, false, v.Reason)
		return nil, errors.NewPathError("list", target, v.Reason, errors.ErrPathUnsafe)
	}

	info, err := os.Stat(target)
	if err != nil {
		x.audit("list", target, false, "does not exist")
		return nil, errors.NewPathError("list", target, "", errors.ErrNotFound)
	}
	if !info.IsDir() {
		x.audit("list", target, false, "not a directory")
		return nil, errors.NewPathError("list", target, "", errors.ErrNotADirectory)
	}

	entries, err := x.enum.ListDir(target)
	if err != nil {
		x.audit("list", target, false, err.Error())
		return nil, err
	}
	x.audit("list", target, true, fmt.Sprintf("%d entries", len(entries)))
	return entries, nil
}

// Find enumerates files under source, filtered by extension.
func (x *Executor) Find(fileType, source string) ([]string, error) {
	start := x.resolver.Resolve(source)

	if v := x.gate.Check(start); !v.Allowed {
		x.audit("find", start, false, v.Reason)
		return nil, errors.NewPathError("find", start, v.Reason, errors.ErrPathUnsafe)
	}

	paths, err := x.enum.FindFiles(start, fileType)
	if err != nil {
		x.audit("find", start, false, err.Error())
		return nil, err
	}
	x.audit("find", start, true, fmt.Sprintf("%d matches", len(paths)))
	return paths, nil
}

// Move relocates every matching file under source into destination,
// re-checking each file's safety immediately before it is touched. The
// destination directory is created when absent.
func (x *Executor) Move(fileType, destination, source string) (*BatchResult, error) {
	if destination == "" {
		return nil, errors.NewPathError("move", "", "destination path required", errors.ErrDestinationRequired)
	}

	dest := x.resolver.Resolve(destination)
	if v := x.gate.Check(dest); !v.Allowed {
		x.audit("move", dest, false, v.Reason)
		return nil, errors.NewPathError("move", dest, v.Reason, errors.ErrPathUnsafe)
	}

	if info, err := os.Stat(dest); err == nil && !info.IsDir() {
		return nil, errors.NewPathError("move", dest, "", errors.ErrNotADirectory)
	} else if err != nil {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			x.audit("move", dest, false, "cannot create destination")
			return nil, errors.NewPathError("move", dest, err.Error(), errors.ErrPermissionDenied)
		}
	}

	matches, err := x.Find(fileType, source)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Destination: dest}
	for _, file := range matches {
		// Re-validate right before the mutation, not just at batch start.
		if v := x.gate.Check(file); !v.Allowed {
			result.Failed++
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %s", file, v.Reason))
			continue
		}
		target := filepath.Join(dest, filepath.Base(file))
		if err := moveFile(file, target); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", file, err))
			continue
		}
		result.Succeeded++
	}

	x.audit("move", dest, result.Failed == 0,
		fmt.Sprintf("moved %d, failed %d", result.Succeeded, result.Failed))

	if result.Failed > 0 {
		return result, &errors.BatchError{
			Op:        "move",
			Succeeded: result.Succeeded,
			Failed:    result.Failed,
			Failures:  result.Failures,
			Err:       errors.ErrPartialFailure,
		}
	}
	return result, nil
}

// Delete removes every matching file under source. There is no trash: the
// removal is irreversible.
func (x *Executor) Delete(fileType, source string) (*BatchResult, error) {
	matches, err := x.Find(fileType, source)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for _, file := range matches {
		if v := x.gate.Check(file); !v.Allowed {
			result.Failed++
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %s", file, v.Reason))
			continue
		}
		if err := os.Remove(file); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", file, err))
			continue
		}
		result.Succeeded++
	}

	x.audit("delete", x.resolver.Resolve(source), result.Failed == 0,
		fmt.Sprintf("deleted %d, failed %d", result.Succeeded, result.Failed))

	if result.Failed > 0 {
		return result, &errors.BatchError{
			Op:        "delete",
			Succeeded: result.Succeeded,
			Failed:    result.Failed,
			Failures:  result.Failures,
			Err:       errors.ErrPartialFailure,
		}
	}
	return result, nil
}

// moveFile renames src into place, falling back to copy-and-remove when the
// rename crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

// ActionResult is the single payload handed back to the caller after a
// dispatch. Exactly one of the result fields is populated, matching Action.
type ActionResult struct {
	Action  string
	Entries []DirectoryEntry
	Paths   []string
	Batch   *BatchResult
	Exec    *ExecResult
	Message string
	Err     error
}

// Dispatch routes an oracle command to the matching action. An "error"
// action passes the oracle's message through without any filesystem access.
func (x *Executor) Dispatch(ctx context.Context, cmd oracle.Command) *ActionResult {
	result := &ActionResult{Action: cmd.Action}

	switch cmd.Action {
	case oracle.ActionList:
		result.Entries, result.Err = x.List(cmd.SourcePath)
	case oracle.ActionFind:
		result.Paths, result.Err = x.Find(cmd.FileType, cmd.SourcePath)
	case oracle.ActionMove:
		result.Batch, result.Err = x.Move(cmd.FileType, cmd.DestinationPath, cmd.SourcePath)
	case oracle.ActionDelete:
		result.Batch, result.Err = x.Delete(cmd.FileType, cmd.SourcePath)
	case oracle.ActionExecute:
		result.Exec, result.Err = x.Execute(ctx, cmd.SourcePath)
	case oracle.ActionError:
		result.Message = cmd.Message
	default:
		result.Err = fmt.Errorf("unknown action %q: %w", cmd.Action, errors.ErrUnknownAction)
	}

	return result
}
