// Package line implements the line-editor collaborator of spec.md §6:
// read_line(&prompt) -> String. The evaluator does not interpret prompt
// output; it passes the Prompt through untouched.
//
// Grounded on mvdan-sh/cmd/gosh/main.go's own split between an
// interactive TTY reader (detected with golang.org/x/term.IsTerminal) and
// a plain bufio reader for piped input.
package line

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/shev-sh/shev/internal/prompt"
)

// Editor reads one raw line per call, given a Prompt to render first.
type Editor interface {
	ReadLine(p prompt.Prompt) (string, error)
}

// Reader is the default Editor: it writes the prompt to out, then reads one
// newline-terminated line from in. IsTerminal additionally reports whether
// in is a terminal; cmd/shev does not consult it and stops at EOF either way.
type Reader struct {
	in     io.Reader
	out    io.Writer
	bufrd  *bufio.Reader
	isTerm bool
}

// New returns a Reader over in/out. isTerminalFd should be the fd backing
// in, used to decide whether to render the prompt at all (a piped script
// gets no prompt, matching the teacher's own behavior).
func New(in io.Reader, out io.Writer, isTerminalFd int) *Reader {
	return &Reader{
		in:     in,
		out:    out,
		bufrd:  bufio.NewReader(in),
		isTerm: term.IsTerminal(isTerminalFd),
	}
}

// IsTerminal reports whether the underlying input is an interactive TTY.
func (r *Reader) IsTerminal() bool { return r.isTerm }

// ReadLine renders p's left and right segments, then reads one line.
func (r *Reader) ReadLine(p prompt.Prompt) (string, error) {
	if r.isTerm && p != nil {
		fmt.Fprint(r.out, p.RenderLeft())
		if right := p.RenderRight(); right != "" {
			fmt.Fprint(r.out, right+" ")
		}
	}
	line, err := r.bufrd.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, nil
}

// StdReader returns a Reader over os.Stdin/os.Stdout.
func StdReader() *Reader {
	return New(os.Stdin, os.Stdout, int(os.Stdin.Fd()))
}
