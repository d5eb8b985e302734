package interp

import (
	"context"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shev-sh/shev/internal/ast"
	"github.com/shev-sh/shev/internal/expand"
	"github.com/shev-sh/shev/internal/token"
)

// Stdio bundles the effective stdin/stdout discipline and process-group
// threaded through one recursive evaluation step. Only Pipeline and Simple
// actually consult it meaningfully, and Not forwards it unchanged to its
// inner command; every other construct resets to the
// shell's own stdin with capture semantics for its nested evaluations,
// mirroring shrs::shell::Shell::eval_command's hardcoded
// Stdio::inherit()/Stdio::piped() at each of those call sites.
type Stdio struct {
	Stdin   io.Reader
	Capture bool      // true: buffer stdout for a later Wait
	StdoutW io.Writer // used when Capture is false
	Pgid    int        // 0 means "start a new process group"
}

// inherited returns the default Stdio used by every control-flow
// construct for its own nested evaluations: the shell's terminal stdin,
// captured output.
func inherited(c *Context) Stdio {
	return Stdio{Stdin: c.Stdin, Capture: true}
}

// EvalCommand is the evaluator's single entry point (spec.md §4.1): given
// a Command node it returns a handle to the terminal child process whose
// eventual exit status is this command's status.
func (sh *Shell) EvalCommand(goCtx context.Context, c *Context, rt *Runtime, cmd *ast.Command, spec Stdio) (*Child, error) {
	switch cmd.Kind {
	case ast.None:
		return dummyChild(goCtx)

	case ast.Simple:
		return sh.evalSimple(goCtx, c, rt, cmd, spec)

	case ast.Pipeline:
		return sh.evalPipelineChain(goCtx, c, rt, flattenPipeline(cmd), spec)

	case ast.And, ast.Or:
		return sh.evalAndOr(goCtx, c, rt, cmd)

	case ast.Not:
		// spec.md §9: status negation is a documented, preserved gap —
		// the inner command's own status (and stdio) pass through
		// untouched, matching the original's forwarding of stdin/stdout.
		return sh.EvalCommand(goCtx, c, rt, cmd.Inner, spec)

	case ast.AsyncList:
		return sh.evalAsyncList(goCtx, c, rt, cmd)

	case ast.SeqList:
		return sh.evalSeqList(goCtx, c, rt, cmd)

	case ast.Subshell:
		newRt := rt.Clone()
		return sh.EvalCommand(goCtx, c, newRt, cmd.Inner, inherited(c))

	case ast.If:
		return sh.evalIf(goCtx, c, rt, cmd)

	case ast.While, ast.Until:
		return sh.evalLoop(goCtx, c, rt, cmd)

	case ast.For:
		return sh.evalFor(goCtx, c, rt, cmd)

	case ast.Case:
		return sh.evalCase(goCtx, c, rt, cmd)

	case ast.Fn:
		if token.IsReserved(cmd.FName) {
			return nil, &ReservedNameError{Name: cmd.FName}
		}
		rt.Functions[cmd.FName] = cmd.FBody
		return dummyChild(goCtx)

	default:
		return dummyChild(goCtx)
	}
}

func (sh *Shell) evalSimple(goCtx context.Context, c *Context, rt *Runtime, cmd *ast.Command, spec Stdio) (*Child, error) {
	if len(cmd.Args) == 0 {
		return nil, EmptyCommandError{}
	}

	redirRes, err := applyRedirects(cmd.Redirects, rt.WorkingDir, spec.Stdin)
	if err != nil {
		return nil, err
	}

	subst := expand.Words(rt, cmd.Args)
	name, args := subst[0], subst[1:]

	if fn, ok := sh.Builtins.Lookup(name); ok {
		child, err := fn(goCtx, sh, c, rt, args)
		redirRes.Close()
		return child, err
	}

	if body, ok := rt.Functions[name]; ok {
		// spec.md §9: function-body evaluation ignores the invoking
		// Simple's redirects — a documented, preserved gap.
		redirRes.Close()
		return sh.EvalCommand(goCtx, c, rt, body, inherited(c))
	}

	capture := spec.Capture
	stdoutW := spec.StdoutW
	if redirRes.Stdout != nil {
		capture = false
		stdoutW = redirRes.Stdout
	}

	child, err := sh.launchExternal(goCtx, rt, name, args, cmd.Assigns, redirRes.Stdin, stdoutW, capture, spec.Pgid)
	redirRes.Close()
	if err != nil {
		return nil, err
	}
	return child, nil
}

func (sh *Shell) evalAndOr(goCtx context.Context, c *Context, rt *Runtime, cmd *ast.Command) (*Child, error) {
	leftChild, err := sh.EvalCommand(goCtx, c, rt, cmd.Left, inherited(c))
	if err != nil {
		return nil, err
	}
	if _, err := sh.CommandOutput(c, rt, leftChild); err != nil {
		return nil, err
	}
	leftSucceeded := rt.ExitStatus() == 0

	var proceed bool
	if cmd.Kind == ast.And {
		proceed = leftSucceeded
	} else {
		proceed = !leftSucceeded
	}
	if !proceed {
		if leftSucceeded {
			return dummyChild(goCtx)
		}
		// An And whose left side failed reports a failing status: the
		// "false" utility's 1, not the left side's own exit code.
		return builtinFalse(goCtx, sh, c, rt, nil)
	}
	return sh.EvalCommand(goCtx, c, rt, cmd.Right, inherited(c))
}

func (sh *Shell) evalAsyncList(goCtx context.Context, c *Context, rt *Runtime, cmd *ast.Command) (*Child, error) {
	leftChild, err := sh.EvalCommand(goCtx, c, rt, cmd.Left, inherited(c))
	if err != nil {
		return nil, err
	}
	if cmd.Right == nil {
		return leftChild, nil
	}
	go leftChild.cmd.Wait()
	return sh.EvalCommand(goCtx, c, rt, cmd.Right, inherited(c))
}

func (sh *Shell) evalSeqList(goCtx context.Context, c *Context, rt *Runtime, cmd *ast.Command) (*Child, error) {
	leftChild, err := sh.EvalCommand(goCtx, c, rt, cmd.Left, inherited(c))
	if err != nil {
		return nil, err
	}
	if cmd.Right == nil {
		return leftChild, nil
	}
	if _, err := sh.CommandOutput(c, rt, leftChild); err != nil {
		return nil, err
	}
	return sh.EvalCommand(goCtx, c, rt, cmd.Right, inherited(c))
}

func (sh *Shell) evalIf(goCtx context.Context, c *Context, rt *Runtime, cmd *ast.Command) (*Child, error) {
	for _, cond := range cmd.Conds {
		condChild, err := sh.EvalCommand(goCtx, c, rt, cond.Cond, inherited(c))
		if err != nil {
			return nil, err
		}
		if _, err := sh.CommandOutput(c, rt, condChild); err != nil {
			return nil, err
		}
		if rt.ExitStatus() == 0 {
			return sh.EvalCommand(goCtx, c, rt, cond.Body, inherited(c))
		}
	}
	if cmd.ElsePart != nil {
		return sh.EvalCommand(goCtx, c, rt, cmd.ElsePart, inherited(c))
	}
	return dummyChild(goCtx)
}

func (sh *Shell) evalLoop(goCtx context.Context, c *Context, rt *Runtime, cmd *ast.Command) (*Child, error) {
	until := cmd.Kind == ast.Until
	for {
		condChild, err := sh.EvalCommand(goCtx, c, rt, cmd.Cond, inherited(c))
		if err != nil {
			return nil, err
		}
		if _, err := sh.CommandOutput(c, rt, condChild); err != nil {
			return nil, err
		}
		proceed := rt.ExitStatus() == 0
		if until {
			proceed = !proceed
		}
		if !proceed {
			break
		}
		bodyChild, err := sh.EvalCommand(goCtx, c, rt, cmd.Body, inherited(c))
		if err != nil {
			return nil, err
		}
		if _, err := sh.CommandOutput(c, rt, bodyChild); err != nil {
			return nil, err
		}
	}
	return dummyChild(goCtx)
}

func (sh *Shell) evalFor(goCtx context.Context, c *Context, rt *Runtime, cmd *ast.Command) (*Child, error) {
	var tokens []string
	for _, word := range cmd.WordList {
		// Space-splitting in lieu of IFS is the entire "expansion" this
		// step performs — spec.md §4.1 For — no $VAR substitution of
		// wordlist tokens, matching the original.
		tokens = append(tokens, strings.Fields(word)...)
	}
	for _, tok := range tokens {
		// Does not unset the loop variable afterward — a documented,
		// preserved gap (spec.md §9).
		rt.Env.Set(cmd.Name, tok)
		bodyChild, err := sh.EvalCommand(goCtx, c, rt, cmd.Body, inherited(c))
		if err != nil {
			return nil, err
		}
		if _, err := sh.CommandOutput(c, rt, bodyChild); err != nil {
			return nil, err
		}
	}
	return dummyChild(goCtx)
}

func (sh *Shell) evalCase(goCtx context.Context, c *Context, rt *Runtime, cmd *ast.Command) (*Child, error) {
	word := expand.Word(rt, cmd.Word)
	for _, arm := range cmd.Arms {
		matched := false
		for _, pat := range arm.Patterns {
			if pat == word {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		bodyChild, err := sh.EvalCommand(goCtx, c, rt, arm.Body, inherited(c))
		if err != nil {
			return nil, err
		}
		if _, err := sh.CommandOutput(c, rt, bodyChild); err != nil {
			return nil, err
		}
		// No break: multiple arms may match — a documented, preserved
		// gap (spec.md §9); POSIX would stop at the first.
	}
	return dummyChild(goCtx)
}

// flattenPipeline unrolls a left-leaning Pipeline tree (the parser's
// natural shape for a|b|c|..., spec.md §3) into an ordered stage list.
func flattenPipeline(cmd *ast.Command) []*ast.Command {
	if cmd.Kind == ast.Pipeline {
		return append(flattenPipeline(cmd.Left), cmd.Right)
	}
	return []*ast.Command{cmd}
}

// evalPipelineChain spawns every stage of a flattened pipeline in order,
// wiring each stage's stdout to the next stage's stdin with a real OS
// pipe, and re-deriving the process group once from the head stage and
// applying it to every later stage — the upgrade spec.md §9 calls for in
// place of the original's fragile pairwise pgid recomputation.
func (sh *Shell) evalPipelineChain(goCtx context.Context, c *Context, rt *Runtime, stages []*ast.Command, spec Stdio) (*Child, error) {
	pgid := spec.Pgid
	var curStdin io.Reader = spec.Stdin
	var prevReadEnd *os.File
	children := make([]*Child, 0, len(stages))

	for i, stage := range stages {
		last := i == len(stages)-1

		var stageSpec Stdio
		var writeEnd, readEnd *os.File
		if !last {
			var err error
			readEnd, writeEnd, err = os.Pipe()
			if err != nil {
				if prevReadEnd != nil {
					prevReadEnd.Close()
				}
				return nil, err
			}
			stageSpec = Stdio{Stdin: curStdin, Capture: false, StdoutW: writeEnd, Pgid: pgid}
		} else {
			stageSpec = Stdio{Stdin: curStdin, Capture: spec.Capture, StdoutW: spec.StdoutW, Pgid: pgid}
		}

		child, err := sh.EvalCommand(goCtx, c, rt, stage, stageSpec)

		if !last {
			writeEnd.Close()
		}
		if prevReadEnd != nil {
			prevReadEnd.Close()
			prevReadEnd = nil
		}
		if err != nil {
			if readEnd != nil {
				readEnd.Close()
			}
			return nil, err
		}

		if pgid == 0 {
			pgid = child.Pid()
			if real, err := pgidOf(child.Pid()); err == nil {
				pgid = real
			}
		}
		children = append(children, child)

		if !last {
			curStdin = readEnd
			prevReadEnd = readEnd
		}
	}

	// spec.md §5: earlier stages run concurrently with their downstream
	// consumer; the evaluator only blocks on the terminal (rightmost)
	// child (spec.md §4.1 Pipeline). Reap the rest concurrently, the way
	// mvdan-sh/interp/interp.go's bgShells errgroup.Group joins its own
	// background processes, so they don't linger as zombies.
	var reaper errgroup.Group
	for _, ch := range children[:len(children)-1] {
		ch := ch
		reaper.Go(func() error {
			ch.cmd.Wait()
			return nil
		})
	}
	go reaper.Wait()
	return children[len(children)-1], nil
}
