//go:build unix

package interp

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setProcessGroup configures cmd's process group per spec.md §4.5: joins
// pgid if non-zero, otherwise becomes its own group leader. Grounded on
// mvdan-sh/interp/os_unix.go's use of golang.org/x/sys/unix for the same
// class of process-group bookkeeping.
func setProcessGroup(cmd *exec.Cmd, pgid int) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    pgid,
	}
}

// pgidOf returns the process group id the kernel actually assigned to
// pid, used to re-derive a pipeline's group from its head stage once the
// head has actually started (spec.md §9 redesign note) rather than
// trusting that Setpgid(0) made pgid equal pid.
func pgidOf(pid int) (int, error) {
	return unix.Getpgid(pid)
}
