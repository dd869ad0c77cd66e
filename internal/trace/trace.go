// Package trace writes mouse lifecycle events as CSV for offline analysis.
package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/catchase/internal/world"
)

// Record is one CSV row.
type Record struct {
	Run   int    `csv:"run"`
	Tick  int    `csv:"tick"`
	Event string `csv:"event"`
	Mouse int    `csv:"mouse"`
	X     int    `csv:"x"`
	Y     int    `csv:"y"`
}

// Writer appends events to a CSV stream. The header is written with the
// first batch. A nil *Writer discards everything.
type Writer struct {
	out           io.Writer
	closer        io.Closer
	run           int
	headerWritten bool
}

// NewWriter wraps out. The caller keeps ownership of out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Create opens path for writing, creating parent directories.
// An empty path returns a nil Writer.
func Create(path string) (*Writer, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("trace: creating directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("trace: creating %s: %w", path, err)
	}
	return &Writer{out: f, closer: f}, nil
}

// SetRun tags subsequent records with a run number.
func (w *Writer) SetRun(run int) {
	if w == nil {
		return
	}
	w.run = run
}

// Record writes one row per event.
func (w *Writer) Record(events []world.Event) error {
	if w == nil || len(events) == 0 {
		return nil
	}

	records := make([]Record, 0, len(events))
	for _, e := range events {
		records = append(records, Record{
			Run:   w.run,
			Tick:  e.Tick,
			Event: e.Kind.String(),
			Mouse: int(e.Mouse),
			X:     e.Pos.X,
			Y:     e.Pos.Y,
		})
	}

	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.out); err != nil {
			return fmt.Errorf("trace: writing events: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.out); err != nil {
		return fmt.Errorf("trace: writing events: %w", err)
	}
	return nil
}

// Close closes the underlying file if the Writer opened it.
func (w *Writer) Close() error {
	if w == nil || w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// Read parses a trace produced by Writer.
func Read(r io.Reader) ([]Record, error) {
	var records []Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("trace: parsing: %w", err)
	}
	return records, nil
}
