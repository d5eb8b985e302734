//go:build !unix

package interp

import "os/exec"

// setProcessGroup is a no-op on non-unix platforms: process groups are a
// POSIX concept spec.md §5 ties to signal delivery, which this evaluator
// does not implement beyond process creation.
func setProcessGroup(cmd *exec.Cmd, pgid int) {}

// pgidOf has no POSIX process-group concept to query on this platform; it
// reports pid itself so callers keep a stable, if meaningless, value.
func pgidOf(pid int) (int, error) { return pid, nil }
