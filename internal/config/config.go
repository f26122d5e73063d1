// Package config contains global variables that are set according to
// the command line, and the Settings read from momentsens.toml and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Quiet is true if --quiet was passed on the command line.
var Quiet bool

// Verbose is true if --verbose was passed on the command line or
// MOMENTSENS_VERBOSE is set.
var Verbose bool

// DefaultFile is the settings file read when --config is not given.
// It is optional.
const DefaultFile = "momentsens.toml"

// EnvPrefix prefixes every environment variable that overrides a
// setting, e.g. MOMENTSENS_OUT_DIR.
const EnvPrefix = "MOMENTSENS_"

// Settings are the persistent options of a momentsens run. Values
// come from defaults, then the settings file, then the environment;
// command-line flags are applied last by the cli package.
type Settings struct {
	// Directory the figures are written to.
	OutDir string `toml:"out_dir" env:"OUT_DIR"`

	// File name prefix; figure i is written to <prefix><i>.png.
	FilePrefix string `toml:"file_prefix" env:"FILE_PREFIX"`

	// Subplot titles, one per parameter. Empty means "use the
	// parameter names"; the single entry "regression" selects the
	// intersection/beta1/beta2 preset.
	Titles []string `toml:"titles" env:"TITLES" envSeparator:","`

	// Measure columns to plot. Empty means "the last N columns"
	// where N is the number of tables.
	Measures []string `toml:"measures" env:"MEASURES" envSeparator:","`

	// Location of the render cache.
	Store string `toml:"store" env:"STORE"`

	// Disable the render cache entirely.
	NoCache bool `toml:"no_cache" env:"NO_CACHE"`

	Verbose bool `toml:"verbose" env:"VERBOSE"`

	Style StyleSettings `toml:"style" envPrefix:"STYLE_"`
}

// StyleSettings override parts of the plot style. Zero values keep
// the default.
type StyleSettings struct {
	Height     float64 `toml:"height" env:"HEIGHT"`
	Aspect     float64 `toml:"aspect" env:"ASPECT"`
	DPI        float64 `toml:"dpi" env:"DPI"`
	MarkerSize float64 `toml:"marker_size" env:"MARKER_SIZE"`
	EdgeWidth  float64 `toml:"edge_width" env:"EDGE_WIDTH"`
	Palette    string  `toml:"palette" env:"PALETTE"`

	// Horizontal line per measure instead of vertical gridlines.
	MeasureLines bool `toml:"measure_lines" env:"MEASURE_LINES"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		OutDir:     ".",
		FilePrefix: "sensitivity_plot",
		Store:      ".momentsens/store.json",
	}
}

// Load reads the settings. If path is empty, DefaultFile is read if
// it exists; an explicitly given path must exist.
func Load(path string) (Settings, error) {
	s := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return s, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&s, env.Options{Prefix: EnvPrefix}); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
