// Package prompt implements the prompt-renderer collaborator of spec.md
// §6. The evaluator never interprets prompt output; the line reader
// (internal/line) calls RenderLeft and RenderRight and writes the result
// before reading a line.
//
// Grounded on shrs_line::DefaultPrompt (original_source) and the
// render_left/render_right capability split spec.md §9 calls out.
package prompt

import (
	"fmt"

	"github.com/shev-sh/shev/internal/theme"
)

// Prompt renders the left and right halves of the shell prompt.
type Prompt interface {
	RenderLeft() string
	RenderRight() string
}

// Default is the shell's built-in prompt: "<cwd> $ " on the left, the last
// exit status on the right when non-zero.
type Default struct {
	Theme      *theme.Theme
	ExitStatus func() int
	// WorkingDir reports the shell's own tracked cwd (interp.Runtime.WorkingDir),
	// not the process's OS-level cwd: cd (internal/interp/builtin.go) only
	// ever mutates Runtime.WorkingDir in memory and never calls os.Chdir
	// (DESIGN.md, Open Question 10), so os.Getwd would freeze at the
	// shell's start directory and never reflect an actual cd.
	WorkingDir func() string
}

// NewDefault returns the default Prompt, colored with th, reading the
// current directory from workingDir on every render.
func NewDefault(th *theme.Theme, exitStatus func() int, workingDir func() string) *Default {
	return &Default{Theme: th, ExitStatus: exitStatus, WorkingDir: workingDir}
}

func (p *Default) RenderLeft() string {
	cwd := "?"
	if p.WorkingDir != nil {
		cwd = p.WorkingDir()
	}
	return p.Theme.SprintPrompt(fmt.Sprintf("%s $ ", cwd))
}

func (p *Default) RenderRight() string {
	if p.ExitStatus == nil {
		return ""
	}
	if code := p.ExitStatus(); code != 0 {
		return p.Theme.SprintError(fmt.Sprintf("[%d]", code))
	}
	return ""
}
