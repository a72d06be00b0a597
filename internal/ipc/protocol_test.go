package ipc

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSocketPathSanitisesDisplay(t *testing.T) {
	t.Setenv("DISPLAY", ":0.0")
	path := SocketPath()
	if !strings.HasSuffix(path, "ttwm_0_0.sock") {
		t.Errorf("display not sanitised: %s", path)
	}

	t.Setenv("DISPLAY", "")
	if !strings.HasSuffix(SocketPath(), "ttwm_0.sock") {
		t.Errorf("missing DISPLAY should default to :0, got %s", SocketPath())
	}
}

func TestRequestDecoding(t *testing.T) {
	var req Request
	if err := json.Unmarshal([]byte(`{"command": "get_state"}`), &req); err != nil {
		t.Fatal(err)
	}
	if req.Command != "get_state" {
		t.Errorf("wrong command %q", req.Command)
	}

	if err := json.Unmarshal([]byte(`{"command": "focus_window", "window": 42}`), &req); err != nil {
		t.Fatal(err)
	}
	if req.Window == nil || *req.Window != 42 {
		t.Errorf("window parameter lost")
	}

	if err := json.Unmarshal([]byte(`{"command": "split", "direction": "vertical"}`), &req); err != nil {
		t.Fatal(err)
	}
	if req.Direction != "vertical" {
		t.Errorf("direction parameter lost")
	}

	if err := json.Unmarshal([]byte(`{"command": "resize_split", "delta": -0.05}`), &req); err != nil {
		t.Fatal(err)
	}
	if req.Delta == nil || *req.Delta != -0.05 {
		t.Errorf("delta parameter lost")
	}
}

func TestResponseEncoding(t *testing.T) {
	data, err := json.Marshal(Ok())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"status":"ok"}` {
		t.Errorf("ok response wrong: %s", data)
	}

	data, _ = json.Marshal(Errorf("invalid_direction", "no such direction"))
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["status"] != "error" || decoded["code"] != "invalid_direction" {
		t.Errorf("error response wrong: %s", data)
	}
	if decoded["message"] == "" {
		t.Errorf("error message must be non-empty")
	}
}

func TestStateResponseFieldNames(t *testing.T) {
	resp := Response{
		Status: "state",
		State: &StateSnapshot{
			FocusedFrame: "node-0.1",
			FrameCount:   1,
			Layout: LayoutSnapshot{Root: NodeSnapshot{
				Type: "frame", ID: "node-0.1",
			}},
			Windows: []WindowInfo{},
		},
	}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"status":"state"`, `"frame_count":1`, `"focused_frame"`, `"window_count":0`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("state payload missing %s: %s", want, data)
		}
	}
}

func TestNodeSnapshotTagging(t *testing.T) {
	split := NodeSnapshot{
		Type:      "split",
		ID:        "node-2.1",
		Direction: "horizontal",
		Ratio:     0.5,
		First:     &NodeSnapshot{Type: "frame", ID: "node-0.1", Windows: []uint32{1}},
		Second:    &NodeSnapshot{Type: "frame", ID: "node-1.1"},
	}
	data, err := json.Marshal(split)
	if err != nil {
		t.Fatal(err)
	}
	var back NodeSnapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Type != "split" || back.First == nil || back.Second == nil {
		t.Errorf("split round trip lost children")
	}
	if back.First.Windows[0] != 1 {
		t.Errorf("frame windows lost")
	}
}
