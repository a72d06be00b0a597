package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/adereth/ttwm/internal/geometry"
	"github.com/adereth/ttwm/internal/logger"
)

// MonitorID identifies a monitor. Ids are never reused within a process, so
// a stale id after a RandR change fails lookups instead of aliasing.
type MonitorID uint32

// Monitor is one physical output with its own nine workspaces.
type Monitor struct {
	// Name is the RandR output name ("DP-1", "HDMI-0", ...).
	Name string
	// Primary marks the RandR primary output.
	Primary bool
	// Geometry is the position and size on the root window.
	Geometry geometry.Rect
	// Workspaces is this monitor's independent workspace set.
	Workspaces *WorkspaceManager
	// Outputs are the RandR outputs backing this monitor.
	Outputs []randr.Output
}

// MonitorSet tracks all monitors and which one is focused.
type MonitorSet struct {
	monitors map[MonitorID]*Monitor
	order    []MonitorID
	focused  MonitorID
	nextID   MonitorID
}

// NewMonitorSet creates an empty set.
func NewMonitorSet() *MonitorSet {
	return &MonitorSet{monitors: map[MonitorID]*Monitor{}}
}

func (s *MonitorSet) insert(m *Monitor) MonitorID {
	s.nextID++
	id := s.nextID
	s.monitors[id] = m
	s.order = append(s.order, id)
	return id
}

// Refresh queries RandR and rebuilds the monitor list. Workspace state is
// preserved for monitors whose output name was seen before. If the hardware
// reports no usable outputs, a single default monitor is synthesised from
// the screen dimensions.
func (s *MonitorSet) Refresh(conn *xgb.Conn, root xproto.Window, screen *xproto.ScreenInfo) error {
	log := logger.WithComponent("monitor")

	previous := map[string]*WorkspaceManager{}
	for _, m := range s.monitors {
		previous[m.Name] = m.Workspaces
	}
	s.monitors = map[MonitorID]*Monitor{}
	s.order = nil

	var primaryID MonitorID

	res, err := randr.GetScreenResourcesCurrent(conn, root).Reply()
	if err != nil {
		log.Warn().Err(err).Msg("RandR screen resources unavailable")
	} else {
		primaryOut := randr.Output(0)
		if p, err := randr.GetOutputPrimary(conn, root).Reply(); err == nil {
			primaryOut = p.Output
		}

		for _, output := range res.Outputs {
			info, err := randr.GetOutputInfo(conn, output, res.ConfigTimestamp).Reply()
			if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
				continue
			}
			crtc, err := randr.GetCrtcInfo(conn, info.Crtc, res.ConfigTimestamp).Reply()
			if err != nil || crtc.Width == 0 || crtc.Height == 0 {
				continue
			}

			name := string(info.Name)
			geom := geometry.NewRect(int(crtc.X), int(crtc.Y), uint32(crtc.Width), uint32(crtc.Height))
			isPrimary := output == primaryOut

			log.Info().
				Str("name", name).
				Int("x", geom.X).Int("y", geom.Y).
				Uint32("width", geom.Width).Uint32("height", geom.Height).
				Bool("primary", isPrimary).
				Msg("Detected monitor")

			workspaces := previous[name]
			if workspaces == nil {
				workspaces = NewWorkspaceManager()
			}
			id := s.insert(&Monitor{
				Name:       name,
				Primary:    isPrimary,
				Geometry:   geom,
				Workspaces: workspaces,
				Outputs:    []randr.Output{output},
			})
			if isPrimary {
				primaryID = id
			}
		}
	}

	if len(s.order) == 0 {
		log.Warn().Msg("No monitors detected, creating fallback from screen dimensions")
		workspaces := previous["default"]
		if workspaces == nil {
			workspaces = NewWorkspaceManager()
		}
		primaryID = s.insert(&Monitor{
			Name:       "default",
			Primary:    true,
			Geometry:   geometry.NewRect(0, 0, uint32(screen.WidthInPixels), uint32(screen.HeightInPixels)),
			Workspaces: workspaces,
		})
	}

	if primaryID == 0 {
		primaryID = s.order[0]
	}
	s.focused = primaryID
	return nil
}

// Get returns a monitor by id.
func (s *MonitorSet) Get(id MonitorID) *Monitor {
	return s.monitors[id]
}

// Focused returns the focused monitor.
func (s *MonitorSet) Focused() *Monitor {
	return s.monitors[s.focused]
}

// FocusedID returns the focused monitor's id.
func (s *MonitorSet) FocusedID() MonitorID {
	return s.focused
}

// SetFocused focuses a monitor by id.
func (s *MonitorSet) SetFocused(id MonitorID) bool {
	if _, ok := s.monitors[id]; !ok {
		return false
	}
	s.focused = id
	return true
}

// Count returns the number of monitors.
func (s *MonitorSet) Count() int {
	return len(s.order)
}

// All returns the monitor ids in detection order.
func (s *MonitorSet) All() []MonitorID {
	out := make([]MonitorID, len(s.order))
	copy(out, s.order)
	return out
}

// Primary returns the primary monitor's id, or 0.
func (s *MonitorSet) Primary() MonitorID {
	for _, id := range s.order {
		if s.monitors[id].Primary {
			return id
		}
	}
	return 0
}

// FindByName returns the monitor with the given output name.
func (s *MonitorSet) FindByName(name string) (MonitorID, bool) {
	for _, id := range s.order {
		if s.monitors[id].Name == name {
			return id, true
		}
	}
	return 0, false
}

// MonitorAt returns the monitor containing the point, or 0.
func (s *MonitorSet) MonitorAt(x, y int) (MonitorID, bool) {
	for _, id := range s.order {
		if s.monitors[id].Geometry.Contains(x, y) {
			return id, true
		}
	}
	return 0, false
}

// InDirection returns the nearest monitor in the given direction from the
// focused monitor's centre. Candidates are ranked by axis distance with the
// orthogonal distance as a half-weight tie-break.
func (s *MonitorSet) InDirection(dir geometry.Direction) (MonitorID, bool) {
	focused := s.Focused()
	if focused == nil {
		return 0, false
	}
	fcx, fcy := focused.Geometry.CenterX(), focused.Geometry.CenterY()

	var bestID MonitorID
	bestDist := 0
	found := false

	for _, id := range s.order {
		if id == s.focused {
			continue
		}
		m := s.monitors[id]
		cx, cy := m.Geometry.CenterX(), m.Geometry.CenterY()

		inDirection := false
		switch dir {
		case geometry.Left:
			inDirection = cx < fcx
		case geometry.Right:
			inDirection = cx > fcx
		case geometry.Up:
			inDirection = cy < fcy
		case geometry.Down:
			inDirection = cy > fcy
		}
		if !inDirection {
			continue
		}

		var primary, secondary int
		switch dir {
		case geometry.Left, geometry.Right:
			primary, secondary = abs(fcx-cx), abs(fcy-cy)
		default:
			primary, secondary = abs(fcy-cy), abs(fcx-cx)
		}
		dist := primary + secondary/2

		if !found || dist < bestDist {
			found = true
			bestID = id
			bestDist = dist
		}
	}
	return bestID, found
}

// AddMock adds a monitor without RandR, for tests. The first or primary
// monitor becomes focused.
func (s *MonitorSet) AddMock(name string, geom geometry.Rect, primary bool) MonitorID {
	id := s.insert(&Monitor{
		Name:       name,
		Primary:    primary,
		Geometry:   geom,
		Workspaces: NewWorkspaceManager(),
	})
	if len(s.order) == 1 || primary {
		s.focused = id
	}
	return id
}

// WithMockMonitors builds a set from (name, geometry, primary) specs.
func WithMockMonitors(specs []MockMonitor) *MonitorSet {
	s := NewMonitorSet()
	var primaryID MonitorID
	for _, spec := range specs {
		id := s.insert(&Monitor{
			Name:       spec.Name,
			Primary:    spec.Primary,
			Geometry:   spec.Geometry,
			Workspaces: NewWorkspaceManager(),
		})
		if spec.Primary {
			primaryID = id
		}
	}
	if primaryID == 0 && len(s.order) > 0 {
		primaryID = s.order[0]
	}
	s.focused = primaryID
	return s
}

// MockMonitor is a test monitor description.
type MockMonitor struct {
	Name     string
	Geometry geometry.Rect
	Primary  bool
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (s *MonitorSet) String() string {
	return fmt.Sprintf("MonitorSet(%d monitors, focused=%d)", len(s.order), s.focused)
}
