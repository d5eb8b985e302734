package interp

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// Child is a handle to a spawned OS process, uniform across external
// commands, builtins, and the "placeholder child" used for non-launching
// constructs (spec.md §4.1 glossary: "Placeholder child").
type Child struct {
	cmd *exec.Cmd
	buf *bytes.Buffer // non-nil: stdout was captured into memory
	pid int
}

// Pid returns the OS process id, used to derive a pipeline's process
// group (spec.md §4.1 Pipeline semantics).
func (c *Child) Pid() int { return c.pid }

// Wait blocks until the child exits, returning its captured stdout (if
// any was captured — nil if this child's stdout was instead streamed to
// another process or a redirect file) and its exit code.
func (c *Child) Wait() (stdout []byte, exitCode int, err error) {
	waitErr := c.cmd.Wait()
	if c.buf != nil {
		stdout = c.buf.Bytes()
	}
	exitCode = exitCodeOf(c.cmd, waitErr)
	return stdout, exitCode, nil
}

func exitCodeOf(cmd *exec.Cmd, waitErr error) int {
	if waitErr == nil {
		return 0
	}
	if exitErr, ok := waitErr.(*exec.ExitError); ok {
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
	}
	return 1
}

// dummyChild returns a placeholder Child: a cheap no-op process (the real
// "true" utility, matching shrs::shell::dummy_child in original_source) so
// non-launching AST nodes (function definitions, empty loops, the None
// command) can return the same handle type as everything else.
func dummyChild(ctx context.Context) (*Child, error) {
	cmd := exec.CommandContext(ctx, "true")
	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Name: "true", Err: err}
	}
	return &Child{cmd: cmd, pid: cmd.Process.Pid}, nil
}

// newFalseChild spawns the real "false" utility, the natural counterpart
// to dummyChild for the "false" builtin.
func newFalseChild(ctx context.Context) *Child {
	cmd := exec.CommandContext(ctx, "false")
	if err := cmd.Start(); err != nil {
		return nil
	}
	return &Child{cmd: cmd, pid: cmd.Process.Pid}
}

// captureStdout is the default stdout discipline: every child whose
// output the evaluator might need to wait on gets a fresh in-memory
// buffer, read back in Wait (spec.md §4.6).
func captureStdout(cmd *exec.Cmd) *bytes.Buffer {
	buf := &bytes.Buffer{}
	cmd.Stdout = buf
	return buf
}

// streamStdout wires cmd's stdout directly to w (a pipe to the next
// pipeline stage, or a redirect file), so output is consumed concurrently
// rather than buffered and replayed (spec.md §5: pipeline stages "run
// concurrently with their downstream consumer").
func streamStdout(cmd *exec.Cmd, w io.Writer) {
	cmd.Stdout = w
}
