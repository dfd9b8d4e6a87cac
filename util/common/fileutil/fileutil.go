package fileutil

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/proofai/proofai-cli/util/common/errors"
)

// checkPath rejects paths that cannot name a file: empty strings and paths
// with NUL bytes. Anything subtler surfaces from the filesystem calls.
func checkPath(path string) error {
	if path == "" {
		return errors.NewFileError(path, "validate", stderrors.New("path cannot be empty"))
	}
	if strings.ContainsRune(path, 0) {
		return errors.NewFileError(path, "validate", stderrors.New("path contains a NUL byte"))
	}
	return nil
}

// ReadFile returns the file's entire contents. Failures carry the FileError
// taxonomy so callers can name the operation that failed: stat for a
// missing file, read for an unreadable one.
func ReadFile(path string) ([]byte, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewFileError(path, "stat", err)
	}
	if info.IsDir() {
		return nil, errors.NewFileError(path, "read", stderrors.New("path is a directory, expected a file"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewFileError(path, "read", err)
	}
	return data, nil
}

// WriteFile writes data to path, creating any missing parent directories.
func WriteFile(path string, data []byte) error {
	if err := checkPath(path); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewFileError(path, "create_dir", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewFileError(path, "write", err)
	}
	return nil
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path names a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path names a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
