// Package interp is the command evaluator: the recursive interpreter that
// walks a parsed ast.Command and realizes it as a tree of operating-system
// processes with correctly connected standard descriptors, environment,
// working directory, process groups, and exit-status propagation.
//
// This is the exclusive subject of spec.md, and the package most directly
// grounded on the teacher: the Shell/Context/Runtime split below mirrors
// shrs::shell (original_source) exactly, while the dispatch, redirection,
// and launch mechanics are built in the idiom of
// mvdan-sh/interp/{interp,runner,handler,api}.go.
package interp

import (
	"io"
	"log/slog"
	"path/filepath"

	"github.com/shev-sh/shev/internal/ast"
	"github.com/shev-sh/shev/internal/env"
	"github.com/shev-sh/shev/internal/history"
	"github.com/shev-sh/shev/internal/hooks"
	"github.com/shev-sh/shev/internal/theme"
)

// Shell holds constant shell data, not mutated during evaluation: the
// builtin registry, the hook registry, and the color theme.
type Shell struct {
	Builtins *Registry
	Hooks    *hooks.Hooks
	Theme    *theme.Theme
	// Logger receives leveled process-lifecycle diagnostics (spawn, wait,
	// signal) — distinct from user-facing command errors, which always go
	// straight to stderr via Theme.SprintError regardless of Logger's
	// configuration. Defaults to slog.Default(); cmd/shev points it at a
	// dedicated stderr text handler.
	Logger *slog.Logger
}

// NewShell returns a Shell wired with b, h, and th. Pass nil for any field
// to get an empty default.
func NewShell(b *Registry, h *hooks.Hooks, th *theme.Theme) *Shell {
	if b == nil {
		b = NewRegistry()
	}
	if h == nil {
		h = hooks.New()
	}
	if th == nil {
		th = theme.Default()
	}
	return &Shell{Builtins: b, Hooks: h, Theme: th, Logger: slog.Default()}
}

// Context is shared by every nested evaluation of one input line: the
// shell's own stdin, the history store, and the buffered output stream.
// Exactly one Context lives per shell process.
type Context struct {
	// Stdin is the real terminal (or piped-script) input the shell reads
	// commands from, and what "inherit" stdin means for child processes.
	Stdin io.Reader
	// Out is the shell's buffered output stream; command output and hook
	// writes land here (spec.md §4.6, §5).
	Out     io.Writer
	History history.History
}

// NewContext returns a Context reading commands from stdin and writing
// output to out.
func NewContext(stdin io.Reader, out io.Writer, h history.History) *Context {
	if h == nil {
		h = history.NewMemory()
	}
	return &Context{Stdin: stdin, Out: out, History: h}
}

// Runtime is per-logical-shell-invocation state: cloned whole on subshell
// entry and discarded when the subshell's command completes (spec.md §3).
type Runtime struct {
	WorkingDir string
	Env        *env.Env
	Name       string
	Args       []string
	exitStatus int
	Functions  map[string]*ast.Command
}

// NewRuntime returns a Runtime rooted at workingDir, named name, with a
// freshly loaded process environment.
func NewRuntime(workingDir, name string, args []string) *Runtime {
	e := env.New()
	e.Load()
	return &Runtime{
		WorkingDir: workingDir,
		Env:        e,
		Name:       name,
		Args:       args,
		Functions:  map[string]*ast.Command{},
	}
}

// DefaultName derives the shell's $0 from the invoking binary's basename,
// falling back to "shev". The original (shrs::shell::ShellConfig) hardcodes
// "shrs" instead; spec.md never pins a literal string for $0, only that it
// resolves to "the shell name" (spec.md §4.3), so this is a small,
// explicitly-noted upgrade (see DESIGN.md, Open Question 8).
func DefaultName(arg0 string) string {
	name := filepath.Base(arg0)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "shev"
	}
	return name
}

// Clone returns a Runtime independent of r: a deep-copied Env and a
// shallow-copied (but independently mutable) Functions map, so that
// mutations inside a subshell — env sets, cwd changes, function
// (re)definitions — never leak back to the parent (spec.md §3 invariant).
func (r *Runtime) Clone() *Runtime {
	funcs := make(map[string]*ast.Command, len(r.Functions))
	for name, body := range r.Functions {
		funcs[name] = body
	}
	args := make([]string, len(r.Args))
	copy(args, r.Args)
	return &Runtime{
		WorkingDir: r.WorkingDir,
		Env:        r.Env.Clone(),
		Name:       r.Name,
		Args:       args,
		exitStatus: r.exitStatus,
		Functions:  funcs,
	}
}

// ExitStatus returns the exit status of the most recently completed
// terminal child (spec.md §3 invariant: never an intermediate pipeline
// stage).
func (r *Runtime) ExitStatus() int { return r.exitStatus }

// SetExitStatus records the exit status of the most recent terminal child.
func (r *Runtime) SetExitStatus(code int) { r.exitStatus = code }

// ArgCount implements expand.Runtime: the shell's positional argument
// count, substituted for $#.
func (r *Runtime) ArgCount() int { return len(r.Args) }

// ShellName implements expand.Runtime: substituted for $0.
func (r *Runtime) ShellName() string { return r.Name }

// EnvGet implements expand.Runtime.
func (r *Runtime) EnvGet(name string) (string, bool) { return r.Env.Get(name) }
