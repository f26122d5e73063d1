package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "momentsens.toml")
	contents := `
out_dir = "figures"
titles = ["intersection", "beta1", "beta2"]

[style]
height = 5
palette = "ch:s=2,r=.3"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0666))

	t.Setenv("MOMENTSENS_OUT_DIR", "elsewhere")
	t.Setenv("MOMENTSENS_STYLE_DPI", "72")
	t.Setenv("MOMENTSENS_MEASURES", "m1,m2")

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "elsewhere", s.OutDir)
	assert.Equal(t, "sensitivity_plot", s.FilePrefix)
	assert.Equal(t, []string{"intersection", "beta1", "beta2"}, s.Titles)
	assert.Equal(t, []string{"m1", "m2"}, s.Measures)
	assert.Equal(t, 5.0, s.Style.Height)
	assert.Equal(t, 72.0, s.Style.DPI)
	assert.Equal(t, "ch:s=2,r=.3", s.Style.Palette)
}
