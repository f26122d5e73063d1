package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "nested", "out.png")

	exists, err := FileExists(filename)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, WriteFileAtomic(filename, []byte("first")))
	require.NoError(t, WriteFileAtomic(filename, []byte("second")))

	contents, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "second", string(contents))

	exists, err = FileExists(filename)
	require.NoError(t, err)
	assert.True(t, exists)
}
