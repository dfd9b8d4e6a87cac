package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/zhyee/zipstream"
)

// EntryInfo describes a single archive entry for dry-run listings.
type EntryInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Inspect enumerates the entries of a zip stream without loading the whole
// payload into memory. Sizes are measured by draining each entry: local
// headers written by streaming zip writers carry zero sizes, so the header
// fields cannot be trusted.
func Inspect(r io.Reader) ([]EntryInfo, error) {
	zipReader := zipstream.NewReader(r)

	var infos []EntryInfo
	for {
		entry, err := zipReader.GetNextEntry()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read zip entry: %w", err)
		}

		entryReader, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open zip entry %s: %w", entry.Name, err)
		}

		size, err := io.Copy(io.Discard, entryReader)
		entryReader.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read zip entry %s: %w", entry.Name, err)
		}

		infos = append(infos, EntryInfo{Name: entry.Name, Size: size})
	}

	return infos, nil
}
