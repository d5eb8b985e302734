package interp

import "fmt"

// The error kinds spec.md §7 requires the evaluator to distinguish. Each is
// a small typed error inspectable with errors.As, following the
// ExitStatus pattern of mvdan-sh/interp/api.go rather than the Rust
// original's catch-all anyhow::Error.

// EmptyCommandError is returned for a Simple with no args, whether or not
// it carries assigns.
type EmptyCommandError struct{}

func (EmptyCommandError) Error() string { return "command is empty" }

// RedirectOpenError wraps a failure to open a redirect's target file.
type RedirectOpenError struct {
	File string
	Err  error
}

func (e *RedirectOpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.File, e.Err)
}

func (e *RedirectOpenError) Unwrap() error { return e.Err }

// NotImplementedError is returned for constructs the evaluator recognizes
// but deliberately does not implement (ReadDup/WriteDup redirects).
type NotImplementedError struct {
	What string
}

func (e *NotImplementedError) Error() string { return e.What + " is not implemented" }

// SpawnError wraps a failure to launch an external process image.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string { return fmt.Sprintf("spawn %s: %v", e.Name, e.Err) }
func (e *SpawnError) Unwrap() error { return e.Err }

// ReservedNameError is returned when a function definition's name collides
// with a reserved word.
type ReservedNameError struct {
	Name string
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("%q is a reserved word and cannot be used as a function name", e.Name)
}

// DecodeError is returned when a child's stdout is not valid UTF-8.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode output: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// HookError wraps a failure from a registered hook callback.
type HookError struct {
	Hook string
	Err  error
}

func (e *HookError) Error() string { return fmt.Sprintf("%s hook: %v", e.Hook, e.Err) }
func (e *HookError) Unwrap() error { return e.Err }
