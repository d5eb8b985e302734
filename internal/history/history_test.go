package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPushItems(t *testing.T) {
	m := NewMemory()
	m.Push("echo a")
	m.Push("echo b")
	assert.Equal(t, []string{"echo a", "echo b"}, m.Items())
}

func TestFileLoadsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")
	require.NoError(t, os.WriteFile(path, []byte("echo a\necho b\n"), 0o644))

	f, err := NewFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo a", "echo b"}, f.Items())
}

func TestFileMissingIsNotError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist")

	f, err := NewFile(path)
	require.NoError(t, err)
	assert.Empty(t, f.Items())
}

func TestFilePushAppendsToDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	f, err := NewFile(path)
	require.NoError(t, err)
	f.Push("echo hi")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "echo hi\n", string(data))
	assert.Equal(t, []string{"echo hi"}, f.Items())
}
