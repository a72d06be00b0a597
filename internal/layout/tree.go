// Package layout implements the tiling layout tree.
//
// The layout is a binary tree where leaf nodes are frames (ordered tab lists
// of client windows) and internal nodes are splits dividing space along one
// axis. Nodes live in a generational arena: a NodeID stays stable while other
// nodes mutate and becomes invalid once its node is freed, so stale
// references surface as failed lookups rather than aliasing bugs.
package layout

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/adereth/ttwm/internal/geometry"
	"github.com/adereth/ttwm/internal/ipc"
)

const (
	// MinRatio and MaxRatio bound every split ratio.
	MinRatio float32 = 0.05
	MaxRatio float32 = 0.95
)

// NodeID identifies a node in the arena. The zero value is never valid
// (generations start at 1).
type NodeID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether the id is the invalid zero value.
func (id NodeID) IsZero() bool {
	return id.gen == 0
}

func (id NodeID) String() string {
	return fmt.Sprintf("node-%d.%d", id.index, id.gen)
}

// Frame is a leaf node holding an ordered list of windows shown as tabs.
// At most one tab is visible; Focused indexes it.
type Frame struct {
	Windows []xproto.Window
	Focused int
	// Name is the optional user-assigned name, unique across the process.
	Name string
	// VerticalTabs selects a side tab bar instead of the top tab bar.
	VerticalTabs bool
}

// FocusedWindow returns the active tab's window, or 0 if the frame is empty.
func (f *Frame) FocusedWindow() xproto.Window {
	if f.Focused < len(f.Windows) {
		return f.Windows[f.Focused]
	}
	return 0
}

// AddWindow appends a window and focuses it.
func (f *Frame) AddWindow(w xproto.Window) {
	f.Windows = append(f.Windows, w)
	f.Focused = len(f.Windows) - 1
}

// RemoveWindow removes a window if present, clamping the focused index.
func (f *Frame) RemoveWindow(w xproto.Window) bool {
	for i, win := range f.Windows {
		if win == w {
			f.Windows = append(f.Windows[:i], f.Windows[i+1:]...)
			if f.Focused >= len(f.Windows) && len(f.Windows) > 0 {
				f.Focused = len(f.Windows) - 1
			}
			if len(f.Windows) == 0 {
				f.Focused = 0
			}
			return true
		}
	}
	return false
}

// IsEmpty reports whether the frame has no windows.
func (f *Frame) IsEmpty() bool {
	return len(f.Windows) == 0
}

// Split divides space between two children along one axis. Ratio is the
// fraction given to First.
type Split struct {
	Direction geometry.SplitDirection
	First     NodeID
	Second    NodeID
	Ratio     float32
}

// Node is a tagged variant: exactly one of Frame or Split is non-nil.
type Node struct {
	Frame *Frame
	Split *Split
}

type slot struct {
	node     Node
	parent   NodeID
	gen      uint32
	occupied bool
}

// FrameGeometry pairs a frame id with its computed rectangle.
type FrameGeometry struct {
	ID   NodeID
	Rect geometry.Rect
}

// GapHit describes the split whose gutter contains a clicked point, with the
// axis bounds needed to derive a ratio from a pointer position.
type GapHit struct {
	Split     NodeID
	Direction geometry.SplitDirection
	// Start is the axis coordinate where the split's extent begins.
	Start int
	// Total is the split's extent along its axis.
	Total uint32
}

// Tree is the arena-backed layout tree of one workspace.
type Tree struct {
	slots []slot
	free  []uint32

	// Root is the single root node.
	Root NodeID
	// Focused is the currently focused frame.
	Focused NodeID
}

// New creates a tree holding a single empty root frame.
func New() *Tree {
	t := &Tree{}
	root := t.alloc(Node{Frame: &Frame{}}, NodeID{})
	t.Root = root
	t.Focused = root
	return t
}

func (t *Tree) alloc(n Node, parent NodeID) NodeID {
	if len(t.free) > 0 {
		idx := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		s := &t.slots[idx]
		s.gen++
		s.node = n
		s.parent = parent
		s.occupied = true
		return NodeID{index: idx, gen: s.gen}
	}
	t.slots = append(t.slots, slot{node: n, parent: parent, gen: 1, occupied: true})
	return NodeID{index: uint32(len(t.slots) - 1), gen: 1}
}

func (t *Tree) freeNode(id NodeID) {
	if s := t.slot(id); s != nil {
		s.occupied = false
		s.node = Node{}
		s.parent = NodeID{}
		t.free = append(t.free, id.index)
	}
}

func (t *Tree) slot(id NodeID) *slot {
	if id.IsZero() || int(id.index) >= len(t.slots) {
		return nil
	}
	s := &t.slots[id.index]
	if !s.occupied || s.gen != id.gen {
		return nil
	}
	return s
}

// Get returns the node for an id, or nil if the id is stale or unknown.
func (t *Tree) Get(id NodeID) *Node {
	if s := t.slot(id); s != nil {
		return &s.node
	}
	return nil
}

// Parent returns the parent id of a node; the zero NodeID for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	if s := t.slot(id); s != nil {
		return s.parent
	}
	return NodeID{}
}

func (t *Tree) setParent(id, parent NodeID) {
	if s := t.slot(id); s != nil {
		s.parent = parent
	}
}

// FocusedFrame returns the focused frame, or nil if the focus id is stale.
func (t *Tree) FocusedFrame() *Frame {
	if n := t.Get(t.Focused); n != nil {
		return n.Frame
	}
	return nil
}

// AddWindow appends a window to the focused frame and focuses its tab.
func (t *Tree) AddWindow(w xproto.Window) {
	if f := t.FocusedFrame(); f != nil {
		f.AddWindow(w)
	}
}

// RemoveWindow removes a window from whichever frame contains it. The frame
// is never collapsed here; callers decide when empty frames go away.
func (t *Tree) RemoveWindow(w xproto.Window) (NodeID, bool) {
	for _, id := range t.AllFrames() {
		if f := t.Get(id).Frame; f.RemoveWindow(w) {
			return id, true
		}
	}
	return NodeID{}, false
}

// FindWindow returns the frame containing a window.
func (t *Tree) FindWindow(w xproto.Window) (NodeID, bool) {
	for _, id := range t.AllFrames() {
		for _, win := range t.Get(id).Frame.Windows {
			if win == w {
				return id, true
			}
		}
	}
	return NodeID{}, false
}

// SplitFocused replaces the focused frame F with a split whose first child is
// F and whose second child is a fresh empty frame, which becomes focused.
func (t *Tree) SplitFocused(dir geometry.SplitDirection) NodeID {
	old := t.Focused
	oldParent := t.Parent(old)

	newFrame := t.alloc(Node{Frame: &Frame{}}, NodeID{})
	splitID := t.alloc(Node{Split: &Split{
		Direction: dir,
		First:     old,
		Second:    newFrame,
		Ratio:     0.5,
	}}, oldParent)

	if oldParent.IsZero() {
		t.Root = splitID
	} else if ps := t.Get(oldParent).Split; ps != nil {
		if ps.First == old {
			ps.First = splitID
		} else {
			ps.Second = splitID
		}
	}
	t.setParent(old, splitID)
	t.setParent(newFrame, splitID)

	t.Focused = newFrame
	return newFrame
}

// AllFrames returns every frame id in in-order traversal (first before
// second), which defines the next/previous frame ordering.
func (t *Tree) AllFrames() []NodeID {
	var frames []NodeID
	t.collectFrames(t.Root, &frames)
	return frames
}

func (t *Tree) collectFrames(id NodeID, out *[]NodeID) {
	n := t.Get(id)
	if n == nil {
		return
	}
	if n.Frame != nil {
		*out = append(*out, id)
		return
	}
	t.collectFrames(n.Split.First, out)
	t.collectFrames(n.Split.Second, out)
}

// AllWindows returns every tiled window in frame traversal order.
func (t *Tree) AllWindows() []xproto.Window {
	var windows []xproto.Window
	for _, id := range t.AllFrames() {
		windows = append(windows, t.Get(id).Frame.Windows...)
	}
	return windows
}

// FocusNextFrame moves focus to the next or previous frame in traversal
// order, wrapping around. Returns false in a single-frame tree.
func (t *Tree) FocusNextFrame(forward bool) bool {
	frames := t.AllFrames()
	if len(frames) <= 1 {
		return false
	}
	cur := 0
	for i, id := range frames {
		if id == t.Focused {
			cur = i
			break
		}
	}
	if forward {
		cur = (cur + 1) % len(frames)
	} else {
		cur = (cur - 1 + len(frames)) % len(frames)
	}
	t.Focused = frames[cur]
	return true
}

// FocusTab focuses tab i (clamped to range) in the focused frame and returns
// the newly focused window.
func (t *Tree) FocusTab(i int) (xproto.Window, bool) {
	f := t.FocusedFrame()
	if f == nil || len(f.Windows) == 0 {
		return 0, false
	}
	if i < 0 {
		i = 0
	}
	if i >= len(f.Windows) {
		i = len(f.Windows) - 1
	}
	f.Focused = i
	return f.Windows[i], true
}

// CycleTab advances the focused frame's active tab, wrapping around.
func (t *Tree) CycleTab(forward bool) (xproto.Window, bool) {
	f := t.FocusedFrame()
	if f == nil || len(f.Windows) == 0 {
		return 0, false
	}
	if forward {
		f.Focused = (f.Focused + 1) % len(f.Windows)
	} else {
		f.Focused = (f.Focused - 1 + len(f.Windows)) % len(f.Windows)
	}
	return f.Windows[f.Focused], true
}

// ReorderTab moves a tab within a frame; to is the final index after removal.
func (t *Tree) ReorderTab(frame NodeID, from, to int) bool {
	n := t.Get(frame)
	if n == nil || n.Frame == nil {
		return false
	}
	f := n.Frame
	if from < 0 || from >= len(f.Windows) || to < 0 || to >= len(f.Windows) {
		return false
	}
	w := f.Windows[from]
	f.Windows = append(f.Windows[:from], f.Windows[from+1:]...)
	f.Windows = append(f.Windows[:to], append([]xproto.Window{w}, f.Windows[to:]...)...)
	switch {
	case f.Focused == from:
		f.Focused = to
	case from < f.Focused && to >= f.Focused:
		f.Focused--
	case from > f.Focused && to <= f.Focused:
		f.Focused++
	}
	return true
}

// MoveWindowToFrame detaches a window from src and appends it to dst,
// focusing it there. src is left in place even when it becomes empty.
func (t *Tree) MoveWindowToFrame(w xproto.Window, src, dst NodeID) bool {
	sn, dn := t.Get(src), t.Get(dst)
	if sn == nil || dn == nil || sn.Frame == nil || dn.Frame == nil {
		return false
	}
	if !sn.Frame.RemoveWindow(w) {
		return false
	}
	dn.Frame.AddWindow(w)
	return true
}

// MoveWindowToAdjacent moves the focused window to the next or previous
// frame in traversal order (wrapping) and focuses that frame. Returns the
// moved window.
func (t *Tree) MoveWindowToAdjacent(forward bool) (xproto.Window, bool) {
	frames := t.AllFrames()
	if len(frames) <= 1 {
		return 0, false
	}
	f := t.FocusedFrame()
	if f == nil {
		return 0, false
	}
	w := f.FocusedWindow()
	if w == 0 {
		return 0, false
	}
	cur := 0
	for i, id := range frames {
		if id == t.Focused {
			cur = i
			break
		}
	}
	var next int
	if forward {
		next = (cur + 1) % len(frames)
	} else {
		next = (cur - 1 + len(frames)) % len(frames)
	}
	if !t.MoveWindowToFrame(w, frames[cur], frames[next]) {
		return 0, false
	}
	t.Focused = frames[next]
	return w, true
}

// SetSplitRatio sets a split's ratio, clamped to [MinRatio, MaxRatio].
func (t *Tree) SetSplitRatio(id NodeID, ratio float32) bool {
	n := t.Get(id)
	if n == nil || n.Split == nil {
		return false
	}
	n.Split.Ratio = clampRatio(ratio)
	return true
}

// ResizeFocusedSplit adjusts the nearest enclosing split of the focused
// frame by a signed delta.
func (t *Tree) ResizeFocusedSplit(delta float32) bool {
	id := t.Parent(t.Focused)
	for !id.IsZero() {
		if n := t.Get(id); n != nil && n.Split != nil {
			n.Split.Ratio = clampRatio(n.Split.Ratio + delta)
			return true
		}
		id = t.Parent(id)
	}
	return false
}

func clampRatio(r float32) float32 {
	if r < MinRatio {
		return MinRatio
	}
	if r > MaxRatio {
		return MaxRatio
	}
	return r
}

// CalculateGeometries renders a rectangle for every frame. For a horizontal
// split with ratio r the first child gets floor(W*r) - gap/2 and the second
// gets the remainder after the gap; vertical is analogous. Sizes saturate
// at zero.
func (t *Tree) CalculateGeometries(screen geometry.Rect, gap uint32) []FrameGeometry {
	var out []FrameGeometry
	t.calcNodeGeometry(t.Root, screen, gap, &out)
	return out
}

func (t *Tree) calcNodeGeometry(id NodeID, avail geometry.Rect, gap uint32, out *[]FrameGeometry) {
	n := t.Get(id)
	if n == nil {
		return
	}
	if n.Frame != nil {
		*out = append(*out, FrameGeometry{ID: id, Rect: avail})
		return
	}
	first, second := splitRect(avail, n.Split.Direction, n.Split.Ratio, gap)
	t.calcNodeGeometry(n.Split.First, first, gap, out)
	t.calcNodeGeometry(n.Split.Second, second, gap, out)
}

func splitRect(rect geometry.Rect, dir geometry.SplitDirection, ratio float32, gap uint32) (geometry.Rect, geometry.Rect) {
	switch dir {
	case geometry.Horizontal:
		firstW := geometry.SatSub(uint32(float32(rect.Width)*ratio), gap/2)
		secondW := geometry.SatSub(rect.Width, firstW+gap)
		first := geometry.Rect{X: rect.X, Y: rect.Y, Width: firstW, Height: rect.Height}
		second := geometry.Rect{X: rect.X + int(firstW) + int(gap), Y: rect.Y, Width: secondW, Height: rect.Height}
		return first, second
	default:
		firstH := geometry.SatSub(uint32(float32(rect.Height)*ratio), gap/2)
		secondH := geometry.SatSub(rect.Height, firstH+gap)
		first := geometry.Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: firstH}
		second := geometry.Rect{X: rect.X, Y: rect.Y + int(firstH) + int(gap), Width: rect.Width, Height: secondH}
		return first, second
	}
}

// FindSplitAtGap walks the geometry and returns the split whose gutter
// contains the point, along with the axis bounds used to derive a new ratio
// from a pointer position.
func (t *Tree) FindSplitAtGap(screen geometry.Rect, gap uint32, px, py int) (GapHit, bool) {
	return t.findGap(t.Root, screen, gap, px, py)
}

func (t *Tree) findGap(id NodeID, avail geometry.Rect, gap uint32, px, py int) (GapHit, bool) {
	n := t.Get(id)
	if n == nil || n.Split == nil {
		return GapHit{}, false
	}
	s := n.Split
	first, second := splitRect(avail, s.Direction, s.Ratio, gap)

	switch s.Direction {
	case geometry.Horizontal:
		gutterStart := first.X + int(first.Width)
		if px >= gutterStart && px < second.X && py >= avail.Y && py < avail.Y+int(avail.Height) {
			return GapHit{Split: id, Direction: s.Direction, Start: avail.X, Total: avail.Width}, true
		}
	default:
		gutterStart := first.Y + int(first.Height)
		if py >= gutterStart && py < second.Y && px >= avail.X && px < avail.X+int(avail.Width) {
			return GapHit{Split: id, Direction: s.Direction, Start: avail.Y, Total: avail.Height}, true
		}
	}

	if hit, ok := t.findGap(s.First, first, gap, px, py); ok {
		return hit, true
	}
	return t.findGap(s.Second, second, gap, px, py)
}

// RemoveFrameByID removes a frame from the tree. Removing the root frame
// resets it to a single empty frame. Removing an interior frame collapses
// its parent split: the sibling takes the parent's slot and both the split
// and the frame are freed.
func (t *Tree) RemoveFrameByID(id NodeID) bool {
	n := t.Get(id)
	if n == nil || n.Frame == nil {
		return false
	}
	if id == t.Root {
		if !n.Frame.IsEmpty() {
			return false
		}
		*n.Frame = Frame{}
		t.Focused = id
		return true
	}

	parent := t.Parent(id)
	ps := t.Get(parent)
	if ps == nil || ps.Split == nil {
		return false
	}
	sibling := ps.Split.First
	if sibling == id {
		sibling = ps.Split.Second
	}

	grandparent := t.Parent(parent)
	if grandparent.IsZero() {
		t.Root = sibling
		t.setParent(sibling, NodeID{})
	} else if gs := t.Get(grandparent).Split; gs != nil {
		if gs.First == parent {
			gs.First = sibling
		} else {
			gs.Second = sibling
		}
		t.setParent(sibling, grandparent)
	}

	focusedRemoved := t.Focused == id || t.Focused == parent
	t.freeNode(id)
	t.freeNode(parent)

	if focusedRemoved || t.Get(t.Focused) == nil {
		t.Focused = t.firstFrameUnder(sibling)
	}
	return true
}

func (t *Tree) firstFrameUnder(id NodeID) NodeID {
	n := t.Get(id)
	if n == nil {
		return t.Root
	}
	if n.Frame != nil {
		return id
	}
	return t.firstFrameUnder(n.Split.First)
}

// RemoveEmptyFrames collapses every empty non-root frame except the focused
// one. Returns true if anything was removed.
func (t *Tree) RemoveEmptyFrames() bool {
	removed := false
	for {
		var victim NodeID
		for _, id := range t.AllFrames() {
			if id == t.Root || id == t.Focused {
				continue
			}
			if t.Get(id).Frame.IsEmpty() {
				victim = id
				break
			}
		}
		if victim.IsZero() {
			return removed
		}
		if !t.RemoveFrameByID(victim) {
			return removed
		}
		removed = true
	}
}

// SetFrameName assigns or clears a frame's name. Global uniqueness is the
// caller's concern (names span monitors and workspaces).
func (t *Tree) SetFrameName(id NodeID, name string) bool {
	n := t.Get(id)
	if n == nil || n.Frame == nil {
		return false
	}
	n.Frame.Name = name
	return true
}

// FrameName returns a frame's name, or "".
func (t *Tree) FrameName(id NodeID) string {
	if n := t.Get(id); n != nil && n.Frame != nil {
		return n.Frame.Name
	}
	return ""
}

// FindFrameByName returns the frame with the given name in this tree.
func (t *Tree) FindFrameByName(name string) (NodeID, bool) {
	if name == "" {
		return NodeID{}, false
	}
	for _, id := range t.AllFrames() {
		if t.Get(id).Frame.Name == name {
			return id, true
		}
	}
	return NodeID{}, false
}

// CheckInvariants enumerates structural violations; empty means healthy.
func (t *Tree) CheckInvariants() []string {
	var violations []string

	if t.Get(t.Root) == nil {
		violations = append(violations, "root node does not exist")
		return violations
	}

	reachable := map[NodeID]bool{}
	var walk func(id, parent NodeID)
	walk = func(id, parent NodeID) {
		n := t.Get(id)
		if n == nil {
			violations = append(violations, fmt.Sprintf("child %v does not exist", id))
			return
		}
		reachable[id] = true
		if got := t.Parent(id); got != parent {
			violations = append(violations, fmt.Sprintf("node %v has parent %v, expected %v", id, got, parent))
		}
		if n.Split != nil {
			if n.Split.Ratio < MinRatio || n.Split.Ratio > MaxRatio {
				violations = append(violations, fmt.Sprintf("split %v ratio %.3f out of bounds", id, n.Split.Ratio))
			}
			walk(n.Split.First, id)
			walk(n.Split.Second, id)
		}
	}
	walk(t.Root, NodeID{})

	for i := range t.slots {
		if !t.slots[i].occupied {
			continue
		}
		id := NodeID{index: uint32(i), gen: t.slots[i].gen}
		if !reachable[id] {
			violations = append(violations, fmt.Sprintf("node %v is not reachable from root", id))
		}
	}

	fn := t.Get(t.Focused)
	if fn == nil {
		violations = append(violations, fmt.Sprintf("focused frame %v does not exist", t.Focused))
	} else if fn.Frame == nil {
		violations = append(violations, fmt.Sprintf("focused node %v is not a frame", t.Focused))
	}

	seen := map[xproto.Window]NodeID{}
	for _, id := range t.AllFrames() {
		f := t.Get(id).Frame
		if len(f.Windows) > 0 && (f.Focused < 0 || f.Focused >= len(f.Windows)) {
			violations = append(violations, fmt.Sprintf("frame %v focused tab %d out of range", id, f.Focused))
		}
		for _, w := range f.Windows {
			if prev, dup := seen[w]; dup {
				violations = append(violations, fmt.Sprintf("window 0x%x appears in frames %v and %v", w, prev, id))
			}
			seen[w] = id
		}
	}

	return violations
}

// Snapshot serialises the tree. geoms, when non-nil, attaches the computed
// rectangle to each frame node.
func (t *Tree) Snapshot(geoms []FrameGeometry) ipc.LayoutSnapshot {
	rects := map[NodeID]geometry.Rect{}
	for _, g := range geoms {
		rects[g.ID] = g.Rect
	}
	root := t.snapshotNode(t.Root, rects)
	if root == nil {
		root = &ipc.NodeSnapshot{Type: "frame", ID: t.Root.String()}
	}
	return ipc.LayoutSnapshot{Root: *root}
}

func (t *Tree) snapshotNode(id NodeID, rects map[NodeID]geometry.Rect) *ipc.NodeSnapshot {
	n := t.Get(id)
	if n == nil {
		return nil
	}
	if n.Frame != nil {
		snap := &ipc.NodeSnapshot{
			Type:       "frame",
			ID:         id.String(),
			Name:       n.Frame.Name,
			FocusedTab: n.Frame.Focused,
		}
		for _, w := range n.Frame.Windows {
			snap.Windows = append(snap.Windows, uint32(w))
		}
		if r, ok := rects[id]; ok {
			snap.Geometry = &ipc.RectSnapshot{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
		}
		return snap
	}
	return &ipc.NodeSnapshot{
		Type:      "split",
		ID:        id.String(),
		Direction: n.Split.Direction.String(),
		Ratio:     n.Split.Ratio,
		First:     t.snapshotNode(n.Split.First, rects),
		Second:    t.snapshotNode(n.Split.Second, rects),
	}
}

// FromSnapshot rebuilds a tree from a serialised snapshot. Node ids are
// freshly minted; structure, tab order, names and ratios are preserved.
func FromSnapshot(snap ipc.LayoutSnapshot) (*Tree, error) {
	t := &Tree{}
	root, err := t.buildFromSnapshot(&snap.Root, NodeID{})
	if err != nil {
		return nil, err
	}
	t.Root = root
	t.Focused = t.firstFrameUnder(root)
	return t, nil
}

func (t *Tree) buildFromSnapshot(snap *ipc.NodeSnapshot, parent NodeID) (NodeID, error) {
	switch snap.Type {
	case "frame":
		f := &Frame{Name: snap.Name, Focused: snap.FocusedTab}
		for _, w := range snap.Windows {
			f.Windows = append(f.Windows, xproto.Window(w))
		}
		if f.Focused >= len(f.Windows) {
			f.Focused = 0
		}
		return t.alloc(Node{Frame: f}, parent), nil
	case "split":
		if snap.First == nil || snap.Second == nil {
			return NodeID{}, fmt.Errorf("split node missing children")
		}
		dir, err := geometry.ParseSplitDirection(snap.Direction)
		if err != nil {
			return NodeID{}, err
		}
		id := t.alloc(Node{Split: &Split{Direction: dir, Ratio: clampRatio(snap.Ratio)}}, parent)
		first, err := t.buildFromSnapshot(snap.First, id)
		if err != nil {
			return NodeID{}, err
		}
		second, err := t.buildFromSnapshot(snap.Second, id)
		if err != nil {
			return NodeID{}, err
		}
		s := t.Get(id).Split
		s.First = first
		s.Second = second
		return id, nil
	default:
		return NodeID{}, fmt.Errorf("unknown node type %q", snap.Type)
	}
}

// StructurallyEqual compares two trees ignoring node ids.
func StructurallyEqual(a, b *Tree) bool {
	return equalNodes(a, a.Root, b, b.Root)
}

func equalNodes(ta *Tree, ia NodeID, tb *Tree, ib NodeID) bool {
	na, nb := ta.Get(ia), tb.Get(ib)
	if na == nil || nb == nil {
		return na == nb
	}
	if (na.Frame != nil) != (nb.Frame != nil) {
		return false
	}
	if na.Frame != nil {
		fa, fb := na.Frame, nb.Frame
		if fa.Name != fb.Name || fa.Focused != fb.Focused || len(fa.Windows) != len(fb.Windows) {
			return false
		}
		for i := range fa.Windows {
			if fa.Windows[i] != fb.Windows[i] {
				return false
			}
		}
		return true
	}
	sa, sb := na.Split, nb.Split
	if sa.Direction != sb.Direction || sa.Ratio != sb.Ratio {
		return false
	}
	return equalNodes(ta, sa.First, tb, sb.First) && equalNodes(ta, sa.Second, tb, sb.Second)
}
