// Package hooks implements the three lifecycle hook points of spec.md §6:
// startup, before_command, and after_command. A hook is a registered list
// of callbacks invoked with a typed context payload; failures propagate as
// errors scoped to the current line only (spec.md §7, HookError).
//
// Grounded on shrs::hooks::Hooks (original_source) for the three event
// points, and on mvdan-sh/interp/handler.go's context-payload-per-call
// pattern for the Go shape of each callback signature.
package hooks

import "io"

// StartupCtx is passed to every startup hook, once, before the REPL begins.
type StartupCtx struct {
	StartupTime float64
}

// BeforeCommandCtx is passed to every before_command hook, after alias
// expansion but before parsing (spec.md §2 step 3).
type BeforeCommandCtx struct {
	Raw      string
	Expanded string
}

// AfterCommandCtx is passed to every after_command hook, once the terminal
// child's exit status and output have been captured (spec.md §4.6).
type AfterCommandCtx struct {
	ExitCode int
	CmdTime  float64
}

// StartupFunc, BeforeCommandFunc, and AfterCommandFunc are the three hook
// callback signatures. Each receives the shared output writer so it may
// write directly to the shell's buffered output, as spec.md §6 allows.
type (
	StartupFunc       func(out io.Writer, ctx *StartupCtx) error
	BeforeCommandFunc func(out io.Writer, ctx *BeforeCommandCtx) error
	AfterCommandFunc  func(out io.Writer, ctx *AfterCommandCtx) error
)

// Hooks is the constant, shell-wide registry of lifecycle callbacks. It is
// part of Shell (spec.md §3) and is not mutated during evaluation.
type Hooks struct {
	Startup       []StartupFunc
	BeforeCommand []BeforeCommandFunc
	AfterCommand  []AfterCommandFunc
}

// New returns an empty Hooks registry.
func New() *Hooks {
	return &Hooks{}
}

// OnStartup registers fn to run at startup.
func (h *Hooks) OnStartup(fn StartupFunc) { h.Startup = append(h.Startup, fn) }

// OnBeforeCommand registers fn to run before each command.
func (h *Hooks) OnBeforeCommand(fn BeforeCommandFunc) {
	h.BeforeCommand = append(h.BeforeCommand, fn)
}

// OnAfterCommand registers fn to run after each command.
func (h *Hooks) OnAfterCommand(fn AfterCommandFunc) {
	h.AfterCommand = append(h.AfterCommand, fn)
}

// RunStartup invokes every registered startup callback in order, returning
// the first error encountered. Startup errors are fatal (spec.md §7).
func (h *Hooks) RunStartup(out io.Writer, ctx *StartupCtx) error {
	for _, fn := range h.Startup {
		if err := fn(out, ctx); err != nil {
			return err
		}
	}
	return nil
}

// RunBeforeCommand invokes every registered before_command callback,
// stopping and returning the first error (scoped to the current line only).
func (h *Hooks) RunBeforeCommand(out io.Writer, ctx *BeforeCommandCtx) error {
	for _, fn := range h.BeforeCommand {
		if err := fn(out, ctx); err != nil {
			return err
		}
	}
	return nil
}

// RunAfterCommand invokes every registered after_command callback,
// stopping and returning the first error (scoped to the current line only).
func (h *Hooks) RunAfterCommand(out io.Writer, ctx *AfterCommandCtx) error {
	for _, fn := range h.AfterCommand {
		if err := fn(out, ctx); err != nil {
			return err
		}
	}
	return nil
}
