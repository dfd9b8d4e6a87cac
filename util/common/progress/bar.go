package progress

import (
	"fmt"
	"io"

	"github.com/inhies/go-bytesize"
	"github.com/pterm/pterm"
)

// barTee counts bytes into a pterm progress bar as they pass through.
type barTee struct {
	bar *pterm.ProgressbarPrinter
}

func (t *barTee) Write(p []byte) (int, error) {
	t.bar.Add(len(p))
	return len(p), nil
}

// Reader wraps body so that every byte read advances a progress bar titled
// with the payload name and its human-readable size. The returned func stops
// the bar; call it once the read side is done. The signature matches the
// upload client's progress hook, so commands can hand it over directly.
func Reader(contentLength int64, body io.Reader, name string) (io.Reader, func()) {
	bar := pterm.DefaultProgressbar.
		WithTitle(fmt.Sprintf("%s (%s)", name, bytesize.New(float64(contentLength)))).
		WithRemoveWhenDone(false)
	if contentLength > 0 {
		bar = bar.WithTotal(int(contentLength))
	}

	pb, err := bar.Start()
	if err != nil {
		return body, func() {}
	}
	return io.TeeReader(body, &barTee{bar: pb}), func() { pb.Stop() }
}
