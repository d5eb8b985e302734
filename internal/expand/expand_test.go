package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRuntime struct {
	exitStatus int
	argCount   int
	shellName  string
	vars       map[string]string
}

func (f *fakeRuntime) ExitStatus() int { return f.exitStatus }
func (f *fakeRuntime) ArgCount() int   { return f.argCount }
func (f *fakeRuntime) ShellName() string { return f.shellName }
func (f *fakeRuntime) EnvGet(name string) (string, bool) {
	v, ok := f.vars[name]
	return v, ok
}

func TestWordSpecialParams(t *testing.T) {
	rt := &fakeRuntime{exitStatus: 7, argCount: 2, shellName: "shev"}
	assert.Equal(t, "status=7", Word(rt, "status=$?"))
	assert.Equal(t, "2 args", Word(rt, "$# args"))
	assert.Equal(t, "shev", Word(rt, "$0"))
}

func TestWordVariableSubstitution(t *testing.T) {
	rt := &fakeRuntime{vars: map[string]string{"MSG": "hi"}}
	assert.Equal(t, "hi there", Word(rt, "$MSG there"))
	assert.Equal(t, "hi there", Word(rt, "${MSG} there"))
}

func TestWordUnsetVariableBecomesEmpty(t *testing.T) {
	rt := &fakeRuntime{vars: map[string]string{}}
	assert.Equal(t, " end", Word(rt, "$MISSING end"))
}

func TestWordTilde(t *testing.T) {
	rt := &fakeRuntime{vars: map[string]string{"HOME": "/home/shev"}}
	assert.Equal(t, "/home/shev/docs", Word(rt, "~/docs"))
}

func TestWords(t *testing.T) {
	rt := &fakeRuntime{vars: map[string]string{"MSG": "hi"}}
	got := Words(rt, []string{"echo", "$MSG"})
	assert.Equal(t, []string{"echo", "hi"}, got)
}
