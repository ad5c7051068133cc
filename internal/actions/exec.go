package actions

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/filepilot/filepilot/internal/errors"
)

// ExecResult captures everything a finished subprocess left behind.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Execute runs the target file through the configured interpreter with a
// hard wall-clock timeout. Only files whose extension is in the configured
// allow set may run. The working directory is the target's own directory,
// and stdout/stderr are captured in full.
func (x *Executor) Execute(ctx context.Context, path string) (*ExecResult, error) {
	if path == "" {
		return nil, errors.NewPathError("execute", "", "no file specified", errors.ErrNotFound)
	}

	target := x.resolver.Resolve(path)

	if !x.executableKind(target) {
		x.audit("execute", target, false, "extension not executable by policy")
		return nil, errors.NewPathError("execute", target, "extension not executable by policy", errors.ErrUnsupportedFileKind)
	}

	if v := x.gate.Check(target); !v.Allowed {
		x.audit("execute", target, false, v.Reason)
		return nil, errors.NewPathError("execute", target, v.Reason, errors.ErrPathUnsafe)
	}

	info, err := os.Stat(target)
	if err != nil {
		x.audit("execute", target, false, "does not exist")
		return nil, errors.NewPathError("execute", target, "", errors.ErrNotFound)
	}
	if info.IsDir() {
		x.audit("execute", target, false, "is a directory")
		return nil, errors.NewPathError("execute", target, "", errors.ErrNotAFile)
	}

	runCtx, cancel := context.WithTimeout(ctx, x.cfg.ExecTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, x.cfg.Interpreter, target)
	cmd.Dir = filepath.Dir(target)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Grandchildren inherit the output pipes; without a wait bound a
	// killed interpreter's surviving children would keep Run blocked
	// until they exit.
	cmd.WaitDelay = time.Second
	configureProcessGroup(cmd)

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	result := &ExecResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: elapsed,
	}

	if runCtx.Err() == context.DeadlineExceeded {
		x.audit("execute", target, false, "timed out")
		return result, errors.NewPathError("execute", target,
			"timed out after "+x.cfg.ExecTimeout.String(), errors.ErrTimeout)
	}

	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			x.audit("execute", target, true, fmt.Sprintf("exit code %d", result.ExitCode))
			return result, nil
		}
		x.audit("execute", target, false, runErr.Error())
		return result, errors.NewPathError("execute", target, runErr.Error(), errors.ErrPermissionDenied)
	}

	x.audit("execute", target, true, "exit code 0")
	return result, nil
}

func (x *Executor) executableKind(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range x.cfg.ExecExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
