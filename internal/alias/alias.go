// Package alias implements the alias table contract of spec.md §6: a
// pre-parse, whole-line text substitution keyed by the line's first word.
//
// Grounded on shrs::alias::Alias (original_source).
package alias

import "strings"

// Table is a whole-line alias rewrite table.
type Table struct {
	entries map[string]string
}

// New returns an empty Table.
func New() *Table {
	return &Table{entries: map[string]string{}}
}

// Set installs or replaces the alias for name.
func (t *Table) Set(name, expansion string) {
	t.entries[name] = expansion
}

// Unset removes the alias for name, if any.
func (t *Table) Unset(name string) {
	delete(t.entries, name)
}

// Get rewrites raw by substituting its first word if an alias is defined
// for it, per the convention noted in spec.md §2 step 2 ("first word
// only, by convention"). It returns the rewritten line and true if a
// substitution happened, or raw unchanged and false otherwise.
func (t *Table) Get(raw string) (string, bool) {
	trimmed := strings.TrimLeft(raw, " \t")
	if trimmed == "" {
		return raw, false
	}
	fields := strings.SplitN(trimmed, " ", 2)
	first := fields[0]
	expansion, ok := t.entries[first]
	if !ok {
		return raw, false
	}
	if len(fields) == 1 {
		return expansion, true
	}
	return expansion + " " + fields[1], true
}
