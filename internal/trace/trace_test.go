package trace

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/catchase/internal/core"
	"github.com/vovakirdan/catchase/internal/world"
)

func TestWriterHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.Record([]world.Event{{Tick: 1, Kind: world.EventSpawn, Mouse: 1, Pos: core.Pt(30, 1080)}}); err != nil {
		t.Fatalf("first Record: %v", err)
	}
	if err := w.Record(nil); err != nil {
		t.Fatalf("empty Record: %v", err)
	}
	if err := w.Record([]world.Event{
		{Tick: 5, Kind: world.EventKill, Mouse: 1, Pos: core.Pt(50, 1080)},
		{Tick: 5, Kind: world.EventRemove, Mouse: 2, Pos: core.Pt(900, 800)},
	}); err != nil {
		t.Fatalf("second Record: %v", err)
	}

	if n := strings.Count(buf.String(), "tick"); n != 1 {
		t.Errorf("header written %d times, expected once:\n%s", n, buf.String())
	}

	records, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	expected := Record{Tick: 5, Event: "kill", Mouse: 1, X: 50, Y: 1080}
	if records[1] != expected {
		t.Errorf("records[1] = %+v, expected %+v", records[1], expected)
	}
	if records[2].Event != "remove" {
		t.Errorf("records[2].Event = %q, expected remove", records[2].Event)
	}
}

func TestWriterRun(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.SetRun(3)
	if err := w.Record([]world.Event{{Tick: 2, Kind: world.EventSpawn, Mouse: 7}}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	records, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(records) != 1 || records[0].Run != 3 {
		t.Errorf("expected one record tagged run 3, got %+v", records)
	}
}

func TestNilWriter(t *testing.T) {
	var w *Writer
	w.SetRun(1)
	if err := w.Record([]world.Event{{Kind: world.EventKill}}); err != nil {
		t.Errorf("nil Writer Record returned %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("nil Writer Close returned %v", err)
	}
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "trace.csv")

	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.Record([]world.Event{{Tick: 1, Kind: world.EventSpawn, Mouse: 1}}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading trace: %v", err)
	}
	if !strings.HasPrefix(string(data), "run,tick,event,mouse,x,y") {
		t.Errorf("unexpected header:\n%s", data)
	}
}

func TestCreateEmptyPath(t *testing.T) {
	w, err := Create("")
	if err != nil || w != nil {
		t.Errorf("Create(\"\") = %v, %v; expected nil, nil", w, err)
	}
}
