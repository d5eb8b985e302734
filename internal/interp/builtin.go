// Builtin registry and default builtins, grounded on shrs::builtin::Builtins
// (original_source) for the registry shape and mvdan-sh/interp/builtin.go's
// dispatch-table style and IsBuiltin list for which names belong here.
package interp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// BuiltinFunc is a builtin's handler: it receives the shell, the shared
// context, the runtime, and the already-expanded arguments, and returns a
// child handle — typically by running a no-op child (spec.md §4.4).
type BuiltinFunc func(ctx context.Context, sh *Shell, c *Context, rt *Runtime, args []string) (*Child, error)

// Registry is the lookup table of (name, handler) pairs spec.md §4.4
// describes.
type Registry struct {
	handlers map[string]BuiltinFunc
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: map[string]BuiltinFunc{}}
}

// Register installs fn under name, replacing any prior binding.
func (r *Registry) Register(name string, fn BuiltinFunc) {
	r.handlers[name] = fn
}

// Lookup returns the handler for name, if any.
func (r *Registry) Lookup(name string) (BuiltinFunc, bool) {
	fn, ok := r.handlers[name]
	return fn, ok
}

// Default returns the Registry pre-populated with the minimum set spec.md
// §4.4 requires (cd, exit) plus the handful of side-effect-free builtins
// mvdan-sh/interp/builtin.go's IsBuiltin also always recognizes (true,
// false, pwd, :).
func Default() *Registry {
	r := NewRegistry()
	r.Register("cd", builtinCd)
	r.Register("exit", builtinExit)
	r.Register("pwd", builtinPwd)
	r.Register("true", builtinTrue)
	r.Register("false", builtinFalse)
	r.Register(":", builtinTrue)
	return r
}

func builtinCd(ctx context.Context, sh *Shell, c *Context, rt *Runtime, args []string) (*Child, error) {
	target := "/"
	if len(args) > 0 {
		target = args[0]
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(rt.WorkingDir, target)
	}
	rt.WorkingDir = filepath.Clean(target)
	return dummyChild(ctx)
}

func builtinExit(ctx context.Context, sh *Shell, c *Context, rt *Runtime, args []string) (*Child, error) {
	// spec.md §4.4: "exit (terminate the process with status 0)".
	os.Exit(0)
	panic("unreachable")
}

func builtinPwd(ctx context.Context, sh *Shell, c *Context, rt *Runtime, args []string) (*Child, error) {
	fmt.Fprintln(c.Out, rt.WorkingDir)
	return dummyChild(ctx)
}

func builtinTrue(ctx context.Context, sh *Shell, c *Context, rt *Runtime, args []string) (*Child, error) {
	return dummyChild(ctx)
}

func builtinFalse(ctx context.Context, sh *Shell, c *Context, rt *Runtime, args []string) (*Child, error) {
	child := newFalseChild(ctx)
	if child == nil {
		return nil, &SpawnError{Name: "false", Err: fmt.Errorf("failed to start")}
	}
	return child, nil
}

// ExecutablesInPath enumerates the executable files across every
// colon-separated directory in pathVar, for the (out-of-scope) tab
// completion engine spec.md §6 mentions. Ported from
// shrs::shell::find_executables_in_path (original_source).
func ExecutablesInPath(pathVar string) []string {
	var execs []string
	for _, dir := range filepath.SplitList(pathVar) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.Mode()&0o111 != 0 {
				execs = append(execs, entry.Name())
			}
		}
	}
	return execs
}
