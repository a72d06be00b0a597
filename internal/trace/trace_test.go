package trace

import (
	"fmt"
	"testing"
)

func TestX11EventRecorded(t *testing.T) {
	tr := New()
	tr.X11Event("MapRequest", 12345, "new window")

	entries := tr.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].EventType != "MapRequest" {
		t.Errorf("wrong event type %q", entries[0].EventType)
	}
	if entries[0].Window == nil || *entries[0].Window != 12345 {
		t.Errorf("wrong window")
	}
}

func TestZeroWindowOmitted(t *testing.T) {
	tr := New()
	tr.X11Event("KeyPress", 0, "")
	if tr.All()[0].Window != nil {
		t.Errorf("zero window should be recorded as absent")
	}
}

func TestRingBufferOverflow(t *testing.T) {
	tr := WithCapacity(3)
	for i := 1; i <= 4; i++ {
		tr.X11Event(fmt.Sprintf("event%d", i), 0, "")
	}
	entries := tr.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].EventType != "event2" || entries[2].EventType != "event4" {
		t.Errorf("oldest entry should be dropped: %v", entries)
	}
}

func TestLast(t *testing.T) {
	tr := New()
	for i := 0; i < 10; i++ {
		tr.X11Event(fmt.Sprintf("event%d", i), 0, "")
	}
	last := tr.Last(3)
	if len(last) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(last))
	}
	if last[0].EventType != "event7" || last[2].EventType != "event9" {
		t.Errorf("wrong tail: %v", last)
	}
	if got := tr.Last(100); len(got) != 10 {
		t.Errorf("asking for more than stored returns everything")
	}
}

func TestSequenceNumbers(t *testing.T) {
	tr := New()
	tr.X11Event("a", 0, "")
	tr.IPC("get_state", "ok")
	tr.WindowManaged(42, "node-0.1")

	entries := tr.All()
	for i, e := range entries {
		if e.Sequence != uint64(i+1) {
			t.Errorf("entry %d has sequence %d", i, e.Sequence)
		}
	}
	if entries[1].EventType != "ipc_command" {
		t.Errorf("IPC entries use the ipc_command type")
	}
	if entries[2].EventType != "window_managed" {
		t.Errorf("transition type wrong: %q", entries[2].EventType)
	}
}

func TestClear(t *testing.T) {
	tr := New()
	tr.X11Event("a", 0, "")
	tr.Clear()
	if tr.Len() != 0 {
		t.Errorf("clear should drop entries")
	}
	tr.X11Event("b", 0, "")
	if tr.All()[0].Sequence != 1 {
		t.Errorf("clear should reset the sequence")
	}
}
