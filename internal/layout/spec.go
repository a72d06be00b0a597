package layout

import (
	"github.com/adereth/ttwm/internal/geometry"
)

// NodeSpec is a declarative layout description used by the startup
// orchestrator to materialise an initial tree. Exactly one of Frame or
// Split is set.
type NodeSpec struct {
	Frame *FrameSpec
	Split *SplitSpec
}

// FrameSpec describes one frame of a startup layout.
type FrameSpec struct {
	Name         string
	VerticalTabs bool
	// Apps are commands to spawn into this frame once the tree exists.
	Apps []string
}

// SplitSpec describes one split of a startup layout.
type SplitSpec struct {
	Direction geometry.SplitDirection
	Ratio     float32
	First     *NodeSpec
	Second    *NodeSpec
}

// FrameApps pairs a materialised frame with the commands destined for it.
type FrameApps struct {
	ID   NodeID
	Apps []string
}

// ReplaceFromSpec discards the current tree and rebuilds it from a spec,
// returning the app commands per created frame. A nil spec resets the tree
// to a single empty frame.
func (t *Tree) ReplaceFromSpec(spec *NodeSpec) []FrameApps {
	t.slots = nil
	t.free = nil

	if spec == nil {
		root := t.alloc(Node{Frame: &Frame{}}, NodeID{})
		t.Root = root
		t.Focused = root
		return nil
	}

	var pending []FrameApps
	root := t.buildFromSpec(spec, NodeID{}, &pending)
	t.Root = root
	t.Focused = t.firstFrameUnder(root)
	return pending
}

func (t *Tree) buildFromSpec(spec *NodeSpec, parent NodeID, pending *[]FrameApps) NodeID {
	if spec.Split != nil && spec.Split.First != nil && spec.Split.Second != nil {
		s := spec.Split
		id := t.alloc(Node{Split: &Split{Direction: s.Direction, Ratio: clampRatio(s.Ratio)}}, parent)
		first := t.buildFromSpec(s.First, id, pending)
		second := t.buildFromSpec(s.Second, id, pending)
		sp := t.Get(id).Split
		sp.First = first
		sp.Second = second
		return id
	}

	f := &Frame{}
	var apps []string
	if spec.Frame != nil {
		f.Name = spec.Frame.Name
		f.VerticalTabs = spec.Frame.VerticalTabs
		apps = spec.Frame.Apps
	}
	id := t.alloc(Node{Frame: f}, parent)
	if len(apps) > 0 {
		*pending = append(*pending, FrameApps{ID: id, Apps: apps})
	}
	return id
}
