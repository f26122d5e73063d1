// Package store implements the render cache: a small JSON file
// recording what each figure was last rendered from, so unchanged
// figures are not drawn again.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/estimagic/momentsens/internal/util"
	"go.uber.org/zap"
)

// Read loads the store at path. A missing file, or one written by an
// incompatible version, yields an empty store.
func Read(path string, currentVersion string) (*Store, error) {
	st := &Store{Version: currentVersion, path: path}

	bytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var stored Store
	if err := json.Unmarshal(bytes, &stored); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if !compatible(stored.Version, currentVersion) {
		util.Logger().Debug("discarding render cache",
			zap.String("stored", stored.Version),
			zap.String("current", currentVersion))
		return st, nil
	}
	st.Figures = stored.Figures
	return st, nil
}

// Write saves the store back to the path it was read from.
func (st *Store) Write() error {
	filename, err := filepath.Abs(st.path)
	if err != nil {
		return fmt.Errorf("%s: %w", st.path, err)
	}

	content, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		util.Panicf("store: json.MarshalIndent failed: %s", err)
	}
	content = append(content, '\n')

	return util.WriteFileAtomic(filename, content)
}

func key(filename string) string {
	if abs, err := filepath.Abs(filename); err == nil {
		return abs
	}
	return filename
}

// IsFresh reports whether filename was rendered from inputs hashing
// to input and has not been changed since.
func (st *Store) IsFresh(filename string, input Hash) bool {
	fig, ok := st.Figures[key(filename)]
	if !ok || fig.InputHash != input {
		return false
	}
	output, err := hashFile(filename)
	if err != nil || output == "" {
		return false
	}
	return output == fig.OutputHash
}

// Record remembers that contents were written to filename from
// inputs hashing to input.
func (st *Store) Record(filename string, input Hash, contents []byte) {
	if st.Figures == nil {
		st.Figures = map[string]*Figure{}
	}
	st.Figures[key(filename)] = &Figure{
		InputHash:  input,
		OutputHash: HashBytes(contents),
	}
}

// Reset forgets every figure, so that all of them are rendered again.
func (st *Store) Reset() {
	st.Figures = nil
}
