// Package config assembles the pieces a Shell needs at construction time —
// the Go analogue of shrs::shell::ShellConfig / ShellConfigBuilder
// (original_source) — and additionally loads a persisted YAML file of
// aliases the distilled spec never mentions but a complete shell would
// have. The file carries no theme settings; the theme comes only from
// WithTheme or the default.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/shev-sh/shev/internal/alias"
	"github.com/shev-sh/shev/internal/history"
	"github.com/shev-sh/shev/internal/hooks"
	"github.com/shev-sh/shev/internal/interp"
	"github.com/shev-sh/shev/internal/theme"
)

// Options holds every configurable piece of a Shell, assembled via
// functional options the way mvdan-sh/interp/api.go's interp.New(opts...)
// configures a Runner — the Go idiom replacing the Rust builder macro the
// original used.
type Options struct {
	Hooks    *hooks.Hooks
	Builtins *interp.Registry
	History  history.History
	Alias    *alias.Table
	Theme    *theme.Theme
}

// Option mutates Options during construction.
type Option func(*Options)

// WithHooks overrides the default (empty) hook registry.
func WithHooks(h *hooks.Hooks) Option { return func(o *Options) { o.Hooks = h } }

// WithBuiltins overrides the default builtin registry.
func WithBuiltins(b *interp.Registry) Option { return func(o *Options) { o.Builtins = b } }

// WithHistory overrides the default in-memory history store.
func WithHistory(h history.History) Option { return func(o *Options) { o.History = h } }

// WithAlias overrides the default (empty) alias table.
func WithAlias(a *alias.Table) Option { return func(o *Options) { o.Alias = a } }

// WithTheme overrides the default color theme.
func WithTheme(t *theme.Theme) Option { return func(o *Options) { o.Theme = t } }

// New builds Options from opts, filling in defaults for anything unset.
func New(opts ...Option) *Options {
	o := &Options{
		Hooks:    hooks.New(),
		Builtins: interp.Default(),
		History:  history.NewMemory(),
		Alias:    alias.New(),
		Theme:    theme.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// File is the on-disk shape of ~/.shevrc.yaml: persisted aliases only; no
// theme palette is read from it. It is entirely additive — nothing in the
// evaluator's own tests depends on it existing.
type File struct {
	Aliases map[string]string `yaml:"aliases"`
}

// DefaultPath returns ~/.shevrc.yaml, or "" if $HOME is unset.
func DefaultPath() string {
	home, ok := os.LookupEnv("HOME")
	if !ok || home == "" {
		return ""
	}
	return filepath.Join(home, ".shevrc.yaml")
}

// Load reads and decodes the YAML config file at path. A missing file is
// not an error; Load returns a zero-value File.
func Load(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ApplyAliases installs every alias from f into t.
func (f *File) ApplyAliases(t *alias.Table) {
	for name, expansion := range f.Aliases {
		t.Set(name, expansion)
	}
}
