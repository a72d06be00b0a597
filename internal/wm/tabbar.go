package wm

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/adereth/ttwm/internal/layout"
)

// Tab bar metrics.
const (
	TabMinWidth  = 80
	TabMaxWidth  = 200
	TabPadding   = 24 // total horizontal padding, split evenly
	TabIconGap   = 6
	accentHeight = 3
	cornerRadius = 6
)

// tabBarKey identifies one frame's decoration window. Keys carry the monitor
// and workspace so bars from inactive workspaces are never confused with the
// visible ones.
type tabBarKey struct {
	Monitor   MonitorID
	Workspace int
	Frame     layout.NodeID
}

type pixmapBuffer struct {
	id     xproto.Pixmap
	width  uint16
	height uint16
}

// TabBarManager owns the per-frame decoration windows, their backing
// pixmaps, the empty-frame placeholder windows, and the icon cache.
type TabBarManager struct {
	windows     map[tabBarKey]xproto.Window
	emptyFrames map[tabBarKey]xproto.Window
	pixmaps     map[xproto.Window]pixmapBuffer
	icons       map[xproto.Window]*CachedIcon
	defaultIcon *CachedIcon
}

// NewTabBarManager creates an empty manager.
func NewTabBarManager() *TabBarManager {
	return &TabBarManager{
		windows:     map[tabBarKey]xproto.Window{},
		emptyFrames: map[tabBarKey]xproto.Window{},
		pixmaps:     map[xproto.Window]pixmapBuffer{},
		icons:       map[xproto.Window]*CachedIcon{},
		defaultIcon: DefaultIcon(),
	}
}

// Icon returns the cached icon for a window, fetching it on first use and
// falling back to the generated default.
func (m *TabBarManager) Icon(conn *xgb.Conn, atoms *Atoms, win xproto.Window) *CachedIcon {
	if icon, ok := m.icons[win]; ok {
		return icon
	}
	icon := FetchIcon(conn, atoms, win, IconSize)
	if icon == nil {
		icon = m.defaultIcon
	}
	m.icons[win] = icon
	return icon
}

// InvalidateIcon drops a window's cached icon (on _NET_WM_ICON changes).
func (m *TabBarManager) InvalidateIcon(win xproto.Window) {
	delete(m.icons, win)
}

// DropIcon removes a window from the icon cache entirely (on unmanage).
func (m *TabBarManager) DropIcon(win xproto.Window) {
	delete(m.icons, win)
}

// BarWindow returns the decoration window for a key, if one exists.
func (m *TabBarManager) BarWindow(key tabBarKey) (xproto.Window, bool) {
	w, ok := m.windows[key]
	return w, ok
}

// EnsurePixmap returns a backing pixmap matching the given size for a
// decoration window, recreating it when the size changed.
func (m *TabBarManager) EnsurePixmap(conn *xgb.Conn, depth byte, win xproto.Window, width, height uint16) (xproto.Pixmap, error) {
	if buf, ok := m.pixmaps[win]; ok {
		if buf.width == width && buf.height == height {
			return buf.id, nil
		}
		xproto.FreePixmap(conn, buf.id)
		delete(m.pixmaps, win)
	}
	id, err := xproto.NewPixmapId(conn)
	if err != nil {
		return 0, err
	}
	if err := xproto.CreatePixmapChecked(conn, depth, id, xproto.Drawable(win), width, height).Check(); err != nil {
		return 0, err
	}
	m.pixmaps[win] = pixmapBuffer{id: id, width: width, height: height}
	return id, nil
}

// destroyBar frees one decoration window and its pixmap.
func (m *TabBarManager) destroyBar(conn *xgb.Conn, key tabBarKey) {
	if win, ok := m.windows[key]; ok {
		if buf, ok := m.pixmaps[win]; ok {
			xproto.FreePixmap(conn, buf.id)
			delete(m.pixmaps, win)
		}
		xproto.DestroyWindow(conn, win)
		delete(m.windows, key)
	}
	if win, ok := m.emptyFrames[key]; ok {
		xproto.DestroyWindow(conn, win)
		delete(m.emptyFrames, key)
	}
}

// CleanupStale destroys decoration windows whose frame no longer exists in
// the given workspace.
func (m *TabBarManager) CleanupStale(conn *xgb.Conn, mon MonitorID, ws int, valid map[layout.NodeID]bool) {
	for key := range m.windows {
		if key.Monitor == mon && key.Workspace == ws && !valid[key.Frame] {
			m.destroyBar(conn, key)
		}
	}
	for key, win := range m.emptyFrames {
		if key.Monitor == mon && key.Workspace == ws && !valid[key.Frame] {
			xproto.DestroyWindow(conn, win)
			delete(m.emptyFrames, key)
		}
	}
}

// TabGeom is one tab's horizontal extent within its bar.
type TabGeom struct {
	X     int
	Width uint32
}

// ComputeTabLayout derives content-based tab widths from measured title
// widths: padding + icon cell + gap + title, clamped to the min/max tab
// width. Tabs are packed left to right.
func ComputeTabLayout(titleWidths []int) []TabGeom {
	out := make([]TabGeom, 0, len(titleWidths))
	x := 0
	for _, tw := range titleWidths {
		width := uint32(TabPadding + IconSize + TabIconGap + tw)
		if width < TabMinWidth {
			width = TabMinWidth
		}
		if width > TabMaxWidth {
			width = TabMaxWidth
		}
		out = append(out, TabGeom{X: x, Width: width})
		x += int(width)
	}
	return out
}

// HitTab returns the index of the tab containing local x, if any.
func HitTab(tabs []TabGeom, x int) (int, bool) {
	for i, t := range tabs {
		if x >= t.X && x < t.X+int(t.Width) {
			return i, true
		}
	}
	return 0, false
}

// HitVerticalTab returns the index at local y for fixed square cells.
func HitVerticalTab(cellSize uint32, numTabs int, y int) (int, bool) {
	if y < 0 || cellSize == 0 {
		return 0, false
	}
	idx := y / int(cellSize)
	if idx >= numTabs {
		return 0, false
	}
	return idx, true
}
