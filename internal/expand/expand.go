// Package expand implements the expansion engine of spec.md §4.3: literal,
// left-to-right substitution of $?, $#, $0, $NAME, ${NAME}, and ~ in a
// single argument string.
//
// Ported directly from shrs::shell::envsubst (original_source/shrs/src/shell.rs),
// which drives the same substitutions with the Rust regex crate; this is the
// idiomatic Go translation using the standard library's regexp package. See
// DESIGN.md for why regexp (and not one of mvdan-sh's fuller parameter-
// expansion machinery) is the right fit here: this engine does not parse
// quoting, parameter modifiers, or array indexing, so there is nothing for a
// heavier expansion library to add.
package expand

import (
	"regexp"
	"strconv"
	"strings"
)

// Runtime is the minimal view of shell state the expander needs, satisfied
// by interp.Runtime.
type Runtime interface {
	ExitStatus() int
	ArgCount() int
	ShellName() string
	EnvGet(name string) (string, bool)
}

var (
	bareVarRe   = regexp.MustCompile(`\$([A-Za-z_]+)`)
	bracedVarRe = regexp.MustCompile(`\$\{([A-Za-z_]+)\}`)
	tildeRe     = regexp.MustCompile(`~`)
)

// Word applies every substitution in spec.md §4.3, in order, to arg.
func Word(rt Runtime, arg string) string {
	out := arg

	out = strings.ReplaceAll(out, "$?", strconv.Itoa(rt.ExitStatus()))
	out = strings.ReplaceAll(out, "$#", strconv.Itoa(rt.ArgCount()))
	out = strings.ReplaceAll(out, "$0", rt.ShellName())

	out = bareVarRe.ReplaceAllStringFunc(out, func(m string) string {
		name := bareVarRe.FindStringSubmatch(m)[1]
		val, _ := rt.EnvGet(name)
		return val
	})

	out = bracedVarRe.ReplaceAllStringFunc(out, func(m string) string {
		name := bracedVarRe.FindStringSubmatch(m)[1]
		val, _ := rt.EnvGet(name)
		return val
	})

	home, _ := rt.EnvGet("HOME")
	out = tildeRe.ReplaceAllString(out, home)

	return out
}

// Words applies Word to every element of args.
func Words(rt Runtime, args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = Word(rt, a)
	}
	return out
}
