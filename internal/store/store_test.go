package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMissing(t *testing.T) {
	st, err := Read(filepath.Join(t.TempDir(), "store.json"), "1.2.0")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", st.Version)
	assert.Empty(t, st.Figures)
}

func TestFreshness(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".momentsens", "store.json")
	figure := filepath.Join(dir, "sensitivity_plot1.png")
	contents := []byte("png bytes")
	input := HashBytes([]byte("input"))

	st, err := Read(path, "1.0.0")
	require.NoError(t, err)
	assert.False(t, st.IsFresh(figure, input))

	require.NoError(t, os.WriteFile(figure, contents, 0666))
	st.Record(figure, input, contents)
	require.NoError(t, st.Write())

	st, err = Read(path, "1.4.0")
	require.NoError(t, err)
	assert.True(t, st.IsFresh(figure, input))
	assert.False(t, st.IsFresh(figure, HashBytes([]byte("other input"))))

	// Editing the figure makes it stale.
	require.NoError(t, os.WriteFile(figure, []byte("edited"), 0666))
	assert.False(t, st.IsFresh(figure, input))

	// So does removing it.
	require.NoError(t, os.Remove(figure))
	assert.False(t, st.IsFresh(figure, input))
}

func TestIncompatibleVersionDiscardsFigures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")

	st, err := Read(path, "1.0.0")
	require.NoError(t, err)
	st.Record(filepath.Join(dir, "a.png"), "abc", []byte("a"))
	require.NoError(t, st.Write())

	st, err = Read(path, "2.0.0")
	require.NoError(t, err)
	assert.Empty(t, st.Figures)
}

func TestCompatible(t *testing.T) {
	assert.True(t, compatible("development version", "development version"))
	assert.False(t, compatible("development version", "1.0.0"))
	assert.True(t, compatible("v1.2.3", "1.9.0"))
	assert.False(t, compatible("1.2.3", "2.0.0"))
}

func TestHashValue(t *testing.T) {
	a, err := HashValue(map[string]int{"x": 1})
	require.NoError(t, err)
	b, err := HashValue(map[string]int{"x": 1})
	require.NoError(t, err)
	c, err := HashValue(map[string]int{"x": 2})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	h, err := hashFile(filepath.Join(dir, "missing.png"))
	require.NoError(t, err)
	assert.Empty(t, h)

	filename := filepath.Join(dir, "figure.png")
	require.NoError(t, os.WriteFile(filename, []byte("png bytes"), 0666))
	h, err = hashFile(filename)
	require.NoError(t, err)
	assert.Equal(t, HashBytes([]byte("png bytes")), h)
}
