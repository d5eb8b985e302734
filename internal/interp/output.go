package interp

import (
	"fmt"
	"unicode/utf8"

	"github.com/shev-sh/shev/internal/hooks"
)

// flusher is implemented by buffered writers (e.g. *bufio.Writer); Context
// callers that want buffering can wrap Out in one.
type flusher interface {
	Flush() error
}

// CommandOutput is the "small wrapper that outputs command output if it
// exists" of spec.md §4.6: it waits on child, decodes and writes its
// stdout to the context's output stream, records the exit status onto rt,
// fires the after_command hook, and flushes.
func (sh *Shell) CommandOutput(ctx *Context, rt *Runtime, child *Child) ([]byte, error) {
	stdout, code, err := child.Wait()
	if err != nil {
		return nil, err
	}
	sh.Logger.Debug("wait", "pid", child.Pid(), "exit_code", code, "stdout_bytes", len(stdout))

	if len(stdout) > 0 {
		if !utf8.Valid(stdout) {
			return nil, &DecodeError{Err: fmt.Errorf("child produced non-UTF-8 output")}
		}
		if _, err := ctx.Out.Write(stdout); err != nil {
			return nil, err
		}
	}

	rt.SetExitStatus(code)

	if err := sh.Hooks.RunAfterCommand(ctx.Out, &hooks.AfterCommandCtx{ExitCode: code, CmdTime: 0}); err != nil {
		return nil, &HookError{Hook: "after_command", Err: err}
	}

	if f, ok := ctx.Out.(flusher); ok {
		if err := f.Flush(); err != nil {
			return nil, err
		}
	}

	return stdout, nil
}
