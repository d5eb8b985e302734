// Package theme holds the shell's color palette, used by internal/prompt
// and for error output.
//
// Grounded on shrs::theme::Theme (original_source, named but left
// unspecified there) and brought to life with github.com/fatih/color, the
// one terminal-color library the retrieval pack actually imports from
// application code (kazz187-taskguild).
package theme

import "github.com/fatih/color"

// Theme is the shell's color palette.
type Theme struct {
	Prompt  *color.Color
	Error   *color.Color
	Success *color.Color
}

// Default returns the shell's default color theme: cyan prompts, red
// errors, green success indicators.
func Default() *Theme {
	return &Theme{
		Prompt:  color.New(color.FgCyan, color.Bold),
		Error:   color.New(color.FgRed),
		Success: color.New(color.FgGreen),
	}
}

// SprintPrompt renders text in the theme's prompt color.
func (t *Theme) SprintPrompt(text string) string {
	return t.Prompt.Sprint(text)
}

// SprintError renders text in the theme's error color.
func (t *Theme) SprintError(text string) string {
	return t.Error.Sprint(text)
}
