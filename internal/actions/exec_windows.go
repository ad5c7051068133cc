//go:build windows

package actions

import "os/exec"

// configureProcessGroup is a no-op on Windows: there is no process group to
// signal, and WaitDelay already bounds how long Run waits for inherited
// pipes after the interpreter is killed.
func configureProcessGroup(cmd *exec.Cmd) {}
