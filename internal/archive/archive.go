// Package archive packages project directories into deterministic zip
// payloads for upload. Packaging the same directory twice yields
// byte-identical archives: entries are collected in sorted order and file
// headers carry no timestamps, so the archive digest only changes when the
// content does.
package archive

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/flate"

	"github.com/proofai/proofai-cli/util/common/errors"
)

// Name is the file name the archive is uploaded under and saved as when the
// caller keeps it on disk.
const Name = "resource.zip"

// Archive is a fully built in-memory zip payload. Nothing touches the
// filesystem until Save is called, so a failed build never leaves a partial
// archive behind.
type Archive struct {
	// Name is the upload file name, always "resource.zip".
	Name string

	// Data is the complete zip payload.
	Data []byte

	// Entries lists the archive paths in the order they were written,
	// which is lexicographic.
	Entries []string

	// Digest is the hex-encoded SHA-256 of Data.
	Digest string
}

// Size returns the compressed payload size in bytes.
func (a *Archive) Size() int64 {
	return int64(len(a.Data))
}

// Reader returns a fresh reader over the payload. Each call starts at the
// beginning, so the archive can be re-read after a consumed attempt.
func (a *Archive) Reader() *bytes.Reader {
	return bytes.NewReader(a.Data)
}

type zipEntry struct {
	sourcePath string
	zipPath    string
}

// Package walks dir and builds the archive in memory. Entries use
// forward-slash paths relative to dir. Default exclusions always apply;
// excludePatterns adds caller-supplied globs on top. A directory with no
// remaining files after exclusion fails with ErrEmptyDirectory.
func Package(dir string, excludePatterns []string) (*Archive, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.NewArchiveError(dir, "open", err)
	}
	if !info.IsDir() {
		return nil, errors.NewArchiveError(dir, "open", fmt.Errorf("%s is not a directory", dir))
	}

	matcher := newExcludeMatcher(excludePatterns)

	entries, err := collectZipEntries(dir, matcher)
	if err != nil {
		return nil, errors.NewArchiveError(dir, "collect", err)
	}
	if len(entries) == 0 {
		return nil, errors.NewArchiveError(dir, "collect", errors.ErrEmptyDirectory)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].zipPath < entries[j].zipPath
	})

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	for _, entry := range entries {
		if err := addFileToZip(zw, entry); err != nil {
			return nil, errors.NewArchiveError(dir, "write", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, errors.NewArchiveError(dir, "close", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.zipPath
	}

	return &Archive{
		Name:    Name,
		Data:    buf.Bytes(),
		Entries: names,
		Digest:  hex.EncodeToString(sum[:]),
	}, nil
}

// collectZipEntries walks the directory tree and returns the files to
// include. Excluded directories are pruned so their contents are never
// visited; non-regular files (sockets, symlinks) are skipped.
func collectZipEntries(dir string, matcher *excludeMatcher) ([]zipEntry, error) {
	var entries []zipEntry

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if matcher.Excluded(rel) {
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || matcher.Excluded(rel) {
			return nil
		}

		entries = append(entries, zipEntry{sourcePath: path, zipPath: rel})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// addFileToZip writes one file into the archive. The header carries only
// the entry name and compression method; leaving Modified zero keeps
// repeated builds byte-identical.
func addFileToZip(zw *zip.Writer, entry zipEntry) error {
	file, err := os.Open(entry.sourcePath)
	if err != nil {
		return err
	}
	defer file.Close()

	header := &zip.FileHeader{
		Name:   entry.zipPath,
		Method: zip.Deflate,
	}

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, file)
	return err
}

// Save writes the payload to path all-or-nothing: the bytes land in a
// temporary file in the destination directory first and are renamed into
// place only after a successful sync. A failure leaves no partial file.
func (a *Archive) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+a.Name+".*")
	if err != nil {
		return errors.NewFileError(path, "create", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(a.Data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.NewFileError(path, "write", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.NewFileError(path, "sync", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.NewFileError(path, "close", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.NewFileError(path, "rename", err)
	}

	return nil
}
