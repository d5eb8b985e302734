package interp

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/shev-sh/shev/internal/ast"
)

// launchExternal spawns a new process image for name/args (spec.md §4.5).
// stdin is the effective input source; if capture is true, stdout is
// buffered for a later Wait, otherwise it streams directly to stdoutW (a
// pipe into the next pipeline stage, or a redirect file). assigns augment
// — never replace — the runtime's environment, scoped to this child only.
// pgid joins an existing process group, or starts a new one when zero.
func (sh *Shell) launchExternal(
	ctx context.Context,
	rt *Runtime,
	name string,
	args []string,
	assigns []ast.Assign,
	stdin io.Reader,
	stdoutW io.Writer,
	capture bool,
	pgid int,
) (*Child, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = rt.WorkingDir
	cmd.Stdin = stdin
	cmd.Stderr = os.Stderr // inherited, per spec.md §4.5 ("inherited stderr")

	env := rt.Env.Strings()
	for _, a := range assigns {
		env = append(env, a.Var+"="+a.Val)
	}
	cmd.Env = env

	setProcessGroup(cmd, pgid)

	var buf *bytes.Buffer
	if capture {
		buf = captureStdout(cmd)
	} else {
		streamStdout(cmd, stdoutW)
	}

	if err := cmd.Start(); err != nil {
		sh.Logger.Error("spawn failed", "name", name, "args", args, "err", err)
		return nil, &SpawnError{Name: name, Err: err}
	}
	sh.Logger.Debug("spawn", "name", name, "args", args, "pid", cmd.Process.Pid, "pgid", pgid, "dir", cmd.Dir)
	return &Child{cmd: cmd, buf: buf, pid: cmd.Process.Pid}, nil
}
