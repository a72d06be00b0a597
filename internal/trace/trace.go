// Package trace keeps a bounded ring buffer of recent window-manager events
// so external tools can ask "what just happened" over IPC.
package trace

import (
	"fmt"
	"time"

	"github.com/adereth/ttwm/internal/ipc"
)

// DefaultCapacity is the number of entries kept before wraparound.
const DefaultCapacity = 1000

// Tracer records X11 events, IPC commands and state transitions in arrival
// order. The oldest entry is dropped once capacity is reached.
type Tracer struct {
	entries  []ipc.EventLogEntry
	capacity int
	sequence uint64
	start    time.Time
}

// New creates a tracer with the default capacity.
func New() *Tracer {
	return WithCapacity(DefaultCapacity)
}

// WithCapacity creates a tracer holding at most capacity entries.
func WithCapacity(capacity int) *Tracer {
	return &Tracer{
		entries:  make([]ipc.EventLogEntry, 0, capacity),
		capacity: capacity,
		start:    time.Now(),
	}
}

func (t *Tracer) add(eventType string, window uint32, details string) {
	if len(t.entries) >= t.capacity {
		t.entries = t.entries[1:]
	}
	t.sequence++
	entry := ipc.EventLogEntry{
		Sequence:    t.sequence,
		TimestampMs: uint64(time.Since(t.start).Milliseconds()),
		EventType:   eventType,
		Details:     details,
	}
	if window != 0 {
		w := window
		entry.Window = &w
	}
	t.entries = append(t.entries, entry)
}

// X11Event records a raw X11 event. A zero window means "no subject".
func (t *Tracer) X11Event(eventType string, window uint32, details string) {
	t.add(eventType, window, details)
}

// IPC records a handled IPC command and its result status.
func (t *Tracer) IPC(command, result string) {
	t.add("ipc_command", 0, fmt.Sprintf("cmd=%s result=%s", command, result))
}

// WindowManaged records a window entering management.
func (t *Tracer) WindowManaged(window uint32, frame string) {
	t.add("window_managed", window, fmt.Sprintf("frame=%s", frame))
}

// WindowUnmanaged records a window leaving management.
func (t *Tracer) WindowUnmanaged(window uint32, reason string) {
	t.add("window_unmanaged", window, reason)
}

// FocusChanged records a focus transition. Either side may be zero.
func (t *Tracer) FocusChanged(from, to uint32) {
	t.add("focus_changed", to, fmt.Sprintf("from=0x%x", from))
}

// TabSwitched records an active-tab change within a frame.
func (t *Tracer) TabSwitched(frame string, from, to int) {
	t.add("tab_switched", 0, fmt.Sprintf("frame=%s from=%d to=%d", frame, from, to))
}

// FrameSplit records a frame being split.
func (t *Tracer) FrameSplit(original, newFrame, direction string) {
	t.add("frame_split", 0, fmt.Sprintf("original=%s new=%s dir=%s", original, newFrame, direction))
}

// SplitResized records a ratio change on a split.
func (t *Tracer) SplitResized(split string, oldRatio, newRatio float32) {
	t.add("split_resized", 0, fmt.Sprintf("split=%s %.2f->%.2f", split, oldRatio, newRatio))
}

// WindowMoved records a window moving between frames.
func (t *Tracer) WindowMoved(window uint32, from, to string) {
	t.add("window_moved", window, fmt.Sprintf("from=%s to=%s", from, to))
}

// FrameRemoved records a frame being collapsed out of the tree.
func (t *Tracer) FrameRemoved(frame string) {
	t.add("frame_removed", 0, fmt.Sprintf("frame=%s", frame))
}

// Last returns the most recent n entries in order.
func (t *Tracer) Last(n int) []ipc.EventLogEntry {
	start := 0
	if len(t.entries) > n {
		start = len(t.entries) - n
	}
	out := make([]ipc.EventLogEntry, len(t.entries)-start)
	copy(out, t.entries[start:])
	return out
}

// All returns every buffered entry in order.
func (t *Tracer) All() []ipc.EventLogEntry {
	out := make([]ipc.EventLogEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of buffered entries.
func (t *Tracer) Len() int {
	return len(t.entries)
}

// Clear drops all entries and resets the sequence counter.
func (t *Tracer) Clear() {
	t.entries = t.entries[:0]
	t.sequence = 0
}
