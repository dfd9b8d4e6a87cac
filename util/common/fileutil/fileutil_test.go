package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/proofai/proofai-cli/util/common/errors"
)

func TestReadFile(t *testing.T) {
	t.Run("reads existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "metadata.json")
		assert.Nil(t, os.WriteFile(path, []byte(`{"type":"AGENT"}`), 0644))

		data, err := ReadFile(path)
		assert.Nil(t, err)
		assert.Equal(t, `{"type":"AGENT"}`, string(data))
	})

	t.Run("missing file returns FileError", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))

		var ferr *errors.FileError
		assert.True(t, errors.As(err, &ferr))
		assert.Equal(t, "stat", ferr.Op)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("directory path is rejected", func(t *testing.T) {
		_, err := ReadFile(t.TempDir())
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "expected a file")
	})

	t.Run("empty path is rejected", func(t *testing.T) {
		_, err := ReadFile("")
		assert.NotNil(t, err)
	})
}

func TestWriteFile(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "deep", "out.txt")
		assert.Nil(t, WriteFile(path, []byte("hello")))
		assert.True(t, IsFile(path))
	})
}

func TestPathPredicates(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	assert.Nil(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, Exists(dir))
	assert.True(t, Exists(file))
	assert.False(t, Exists(filepath.Join(dir, "nope")))

	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(file))

	assert.True(t, IsFile(file))
	assert.False(t, IsFile(dir))
}
