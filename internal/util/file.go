package util

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

// WriteFileAtomic replaces filename with contents, creating parent
// directories as needed. If the atomic rename is not possible (some
// filesystems refuse it) the file is written in place instead.
func WriteFileAtomic(filename string, contents []byte) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}
	}
	err1 := atomic.WriteFile(filename, bytes.NewReader(contents))
	if err1 == nil {
		return nil
	}
	Logger().Debug("atomic write failed, retrying in place",
		zap.String("file", filename), zap.Error(err1))
	if err2 := os.WriteFile(filename, contents, 0666); err2 != nil {
		return fmt.Errorf("%s: %s; on non-atomic retry: %w", filename, err1, err2)
	}
	return nil
}

// FileExists reports whether filename exists. Errors other than
// "not exist" are returned.
func FileExists(filename string) (bool, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("%s: %w", filename, err)
	}
	return true, nil
}
