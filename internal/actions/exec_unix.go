//go:build !windows

package actions

import (
	"os/exec"
	"syscall"
)

// configureProcessGroup runs the interpreter in its own process group and
// kills the whole group on timeout, so a script cannot leave children
// running detached past the deadline.
func configureProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
