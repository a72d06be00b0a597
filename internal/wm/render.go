package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/adereth/ttwm/internal/geometry"
	"github.com/adereth/ttwm/internal/layout"
)

func (wm *WM) setForeground(color uint32) {
	xproto.ChangeGC(wm.conn, wm.gc, xproto.GcForeground, []uint32{color})
}

func (wm *WM) fillRect(d xproto.Drawable, x, y int16, w, h uint16) {
	xproto.PolyFillRectangle(wm.conn, d, wm.gc,
		[]xproto.Rectangle{{X: x, Y: y, Width: w, Height: h}})
}

// drawRoundedTopRect fills a rectangle whose top two corners are rounded.
// Arc angles are in 1/64 degree, counterclockwise from 3 o'clock.
func (wm *WM) drawRoundedTopRect(d xproto.Drawable, x, y int16, width, height, radius uint32) {
	r := radius
	if half := width / 2; r > half {
		r = half
	}
	if half := height / 2; r > half {
		r = half
	}
	ri := int16(r)
	w := int16(width)

	wm.fillRect(d, x, y+ri, uint16(width), uint16(height-r))
	if w > 2*ri {
		wm.fillRect(d, x+ri, y, uint16(w-2*ri), uint16(r))
	}
	arcs := []xproto.Arc{
		{X: x, Y: y, Width: uint16(2 * r), Height: uint16(2 * r), Angle1: 90 * 64, Angle2: 90 * 64},
		{X: x + w - 2*ri, Y: y, Width: uint16(2 * r), Height: uint16(2 * r), Angle1: 0, Angle2: 90 * 64},
	}
	xproto.PolyFillArc(wm.conn, d, wm.gc, arcs)
}

func (wm *WM) putImage(d xproto.Drawable, x, y int16, w, h uint16, data []byte) {
	if len(data) == 0 || w == 0 || h == 0 {
		return
	}
	xproto.PutImage(wm.conn, xproto.ImageFormatZPixmap, d, wm.gc,
		w, h, x, y, 0, wm.screen.RootDepth, data)
}

// calculateTabLayout computes per-tab extents for a frame's horizontal bar
// from measured title widths.
func (wm *WM) calculateTabLayout(ws *Workspace, frameID layout.NodeID) []TabGeom {
	n := ws.Layout.Get(frameID)
	if n == nil || n.Frame == nil {
		return nil
	}
	widths := make([]int, 0, len(n.Frame.Windows))
	for _, win := range n.Frame.Windows {
		title := WindowTitle(wm.conn, wm.atoms, win)
		w := wm.font.MeasureText(title)
		if w > TabMaxWidth {
			w = TabMaxWidth
		}
		widths = append(widths, w)
	}
	return ComputeTabLayout(widths)
}

// drawTabBar repaints a frame's decoration window through its backing
// pixmap.
func (wm *WM) drawTabBar(ws *Workspace, frameID layout.NodeID, bar xproto.Window, rect geometry.Rect, vertical bool) {
	if bar == 0 {
		return
	}
	n := ws.Layout.Get(frameID)
	if n == nil || n.Frame == nil {
		return
	}
	frame := n.Frame

	var barW, barH uint16
	if vertical {
		barW, barH = uint16(wm.cfg.Appearance.VerticalTabWidth), uint16(rect.Height)
	} else {
		barW, barH = uint16(rect.Width), uint16(wm.cfg.Appearance.TabBarHeight)
	}
	if barW == 0 || barH == 0 {
		return
	}

	pixmap, err := wm.tabBars.EnsurePixmap(wm.conn, wm.screen.RootDepth, bar, barW, barH)
	if err != nil {
		wm.log.Warn().Err(err).Msg("Failed to allocate tab bar pixmap")
		return
	}
	d := xproto.Drawable(pixmap)

	wm.setForeground(wm.colors.TabBarBg)
	wm.fillRect(d, 0, 0, barW, barH)

	if vertical {
		wm.drawVerticalTabs(ws, frame, d, barW, barH)
	} else {
		wm.drawHorizontalTabs(ws, frameID, frame, d, barW, barH)
	}

	xproto.CopyArea(wm.conn, d, xproto.Drawable(bar), wm.gc, 0, 0, 0, 0, barW, barH)
}

func (wm *WM) tabBackground(win xproto.Window, focused bool) uint32 {
	if focused {
		return wm.colors.TabFocusedBg
	}
	if wm.urgent.Contains(win) {
		return wm.colors.TabActiveAccent
	}
	return wm.colors.TabUnfocusedBg
}

func (wm *WM) drawHorizontalTabs(ws *Workspace, frameID layout.NodeID, frame *layout.Frame, d xproto.Drawable, barW, barH uint16) {
	if len(frame.Windows) == 0 {
		return
	}
	tabs := wm.calculateTabLayout(ws, frameID)
	height := uint32(barH)

	for i, win := range frame.Windows {
		tab := tabs[i]
		focused := i == frame.Focused
		bg := wm.tabBackground(win, focused)

		wm.setForeground(bg)
		wm.drawRoundedTopRect(d, int16(tab.X), accentHeight, tab.Width, height-accentHeight, cornerRadius)

		if focused {
			wm.setForeground(wm.colors.TabActiveAccent)
			wm.drawRoundedTopRect(d, int16(tab.X), 0, tab.Width, accentHeight+cornerRadius, cornerRadius)
		} else if i != len(frame.Windows)-1 {
			wm.setForeground(wm.colors.TabSeparator)
			wm.fillRect(d, int16(tab.X)+int16(tab.Width)-1, accentHeight+4, 1, uint16(height-accentHeight-8))
		}

		pad := int16(TabPadding / 2)
		iconY := int16((height - IconSize) / 2)
		icon := wm.tabBars.Icon(wm.conn, wm.atoms, win)
		wm.putImage(d, int16(tab.X)+pad, iconY, IconSize, IconSize,
			BlendIconWithBackground(icon.Pixels, bg, IconSize))

		textX := int16(tab.X) + pad + IconSize + TabIconGap
		maxText := int(tab.Width) - TabPadding - IconSize - TabIconGap
		if maxText <= 0 {
			continue
		}
		title := WindowTitle(wm.conn, wm.atoms, win)
		text := wm.font.TruncateToWidth(title, maxText)
		pixels, tw, th := wm.font.RenderText(text, wm.colors.TabText, bg)
		textY := (int(height) - th) / 2
		if textY < 0 {
			textY = 0
		}
		wm.putImage(d, textX, int16(textY), uint16(tw), uint16(th), pixels)
	}
}

// drawVerticalTabs paints fixed square cells down the left edge: icon
// centred per cell, accent bar on the focused cell's left side.
func (wm *WM) drawVerticalTabs(ws *Workspace, frame *layout.Frame, d xproto.Drawable, barW, barH uint16) {
	cell := wm.cfg.Appearance.VerticalTabWidth
	if cell == 0 {
		return
	}
	for i, win := range frame.Windows {
		y := int16(uint32(i) * cell)
		focused := i == frame.Focused
		bg := wm.tabBackground(win, focused)

		wm.setForeground(bg)
		wm.fillRect(d, 0, y, barW, uint16(cell))

		if focused {
			wm.setForeground(wm.colors.TabActiveAccent)
			wm.fillRect(d, 0, y, accentHeight, uint16(cell))
		} else {
			wm.setForeground(wm.colors.TabSeparator)
			wm.fillRect(d, 2, y+int16(cell)-1, barW-4, 1)
		}

		icon := wm.tabBars.Icon(wm.conn, wm.atoms, win)
		ix := int16((uint32(barW) - IconSize) / 2)
		iy := y + int16((cell-IconSize)/2)
		wm.putImage(d, ix, iy, IconSize, IconSize,
			BlendIconWithBackground(icon.Pixels, bg, IconSize))
	}
}

// redrawTabsForWindow repaints the visible tab bar showing a window, if any.
func (wm *WM) redrawTabsForWindow(win xproto.Window) {
	for _, monID := range wm.monitors.All() {
		mon := wm.monitors.Get(monID)
		wsIdx := mon.Workspaces.CurrentIndex()
		ws := mon.Workspaces.Current()
		frameID, ok := ws.Layout.FindWindow(win)
		if !ok {
			continue
		}
		wm.redrawFrameBar(monID, wsIdx, ws, frameID)
	}
}

func (wm *WM) redrawFrameBar(monID MonitorID, wsIdx int, ws *Workspace, frameID layout.NodeID) {
	key := tabBarKey{Monitor: monID, Workspace: wsIdx, Frame: frameID}
	bar, ok := wm.tabBars.BarWindow(key)
	if !ok {
		return
	}
	usable := wm.usableScreenFor(monID)
	for _, g := range ws.Layout.CalculateGeometries(usable, wm.cfg.Appearance.Gap) {
		if g.ID == frameID {
			vertical := ws.Layout.Get(frameID).Frame.VerticalTabs
			barRect, _ := wm.frameRegions(ws.Layout.Get(frameID).Frame, g.Rect)
			wm.drawTabBar(ws, frameID, bar, barRect, vertical)
			break
		}
	}
	wm.conn.Sync()
}
