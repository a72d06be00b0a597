// Package wm implements the window manager core: the X11 dispatcher, the
// command engine, monitors and workspaces, tab bar rendering, and the glue
// publishing EWMH state.
package wm

import (
	"fmt"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog"

	"github.com/adereth/ttwm/internal/config"
	"github.com/adereth/ttwm/internal/geometry"
	"github.com/adereth/ttwm/internal/ipc"
	"github.com/adereth/ttwm/internal/logger"
	"github.com/adereth/ttwm/internal/trace"
)

// Standard "cursor" font glyph indexes.
const (
	glyphLeftPtr          = 68
	glyphHorizDoubleArrow = 108
	glyphVertDoubleArrow  = 116
)

// idleSleep is the coarse poll interval when neither IPC nor X had work.
const idleSleep = 10 * time.Millisecond

// Palette holds the resolved pixel values of the colour scheme.
type Palette struct {
	TabBarBg        uint32
	TabFocusedBg    uint32
	TabUnfocusedBg  uint32
	TabText         uint32
	TabActiveAccent uint32
	TabSeparator    uint32
	BorderFocused   uint32
	BorderUnfocused uint32
}

// WM owns every piece of mutable window-manager state. All of it is touched
// only from the single main loop; no locking is needed.
type WM struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	root   xproto.Window
	atoms  *Atoms

	monitors *MonitorSet
	urgent   *UrgentManager
	tabBars  *TabBarManager
	font     *FontRenderer
	tracer   *trace.Tracer
	ipc      *ipc.Server
	startup  *StartupManager

	cfg         *config.Config
	colors      Palette
	keybindings map[string]config.ParsedBinding
	keymap      *keymap

	// hidden tracks tiled windows we unmapped as background tabs;
	// hiddenFloats tracks floating windows unmapped on workspace switch.
	// Both sets silence the resulting UnmapNotify.
	hidden       map[xproto.Window]bool
	hiddenFloats map[xproto.Window]bool
	tagged       map[xproto.Window]bool
	docks        map[xproto.Window]StrutPartial

	focusedWindow xproto.Window
	checkWindow   xproto.Window
	gc            xproto.Gcontext

	cursorDefault xproto.Cursor
	cursorResizeH xproto.Cursor
	cursorResizeV xproto.Cursor

	drag               dragState
	suppressEnterFocus bool
	running            bool

	log zerolog.Logger
}

// New connects to the X server and assembles the manager. The IPC server is
// optional: a bind failure is logged and the WM runs without it.
func New(cfg *config.Config) (*WM, error) {
	log := logger.WithComponent("wm")

	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	root := screen.Root

	log.Info().
		Uint32("root", uint32(root)).
		Uint16("width", screen.WidthInPixels).
		Uint16("height", screen.HeightInPixels).
		Msg("Connected to X server")

	if err := randr.Init(conn); err != nil {
		log.Warn().Err(err).Msg("RandR unavailable, multi-monitor support disabled")
	}

	atoms, err := NewAtoms(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	checkWindow, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, checkWindow, root,
		-1, -1, 1, 1, 0, xproto.WindowClassInputOnly, 0, 0, nil).Check(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create check window: %w", err)
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(root),
		xproto.GcForeground|xproto.GcBackground,
		[]uint32{screen.WhitePixel, screen.BlackPixel}).Check(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create graphics context: %w", err)
	}

	font, err := NewFontRenderer(cfg.Appearance.Font, cfg.Appearance.FontSize)
	if err != nil {
		conn.Close()
		return nil, err
	}

	var ipcServer *ipc.Server
	if server, err := ipc.Bind(); err != nil {
		log.Warn().Err(err).Msg("Failed to start IPC server, continuing without IPC")
	} else {
		ipcServer = server
		log.Info().Str("path", server.Path()).Msg("IPC server listening")
	}

	monitors := NewMonitorSet()
	if err := monitors.Refresh(conn, root, screen); err != nil {
		conn.Close()
		return nil, err
	}

	wm := &WM{
		conn:         conn,
		screen:       screen,
		root:         root,
		atoms:        atoms,
		monitors:     monitors,
		urgent:       NewUrgentManager(),
		tabBars:      NewTabBarManager(),
		font:         font,
		tracer:       trace.New(),
		ipc:          ipcServer,
		startup:      NewStartupManager(),
		cfg:          cfg,
		colors:       loadPalette(&cfg.Colors),
		hidden:       map[xproto.Window]bool{},
		hiddenFloats: map[xproto.Window]bool{},
		tagged:       map[xproto.Window]bool{},
		docks:        map[xproto.Window]StrutPartial{},
		checkWindow:  checkWindow,
		gc:           gc,
		running:      true,
		log:          log,
	}

	bindings, errs := cfg.ParseKeybindings()
	for _, err := range errs {
		log.Warn().Err(err).Msg("Ignoring invalid keybinding")
	}
	wm.keybindings = bindings

	wm.cursorDefault = wm.createCursor(glyphLeftPtr)
	wm.cursorResizeH = wm.createCursor(glyphHorizDoubleArrow)
	wm.cursorResizeV = wm.createCursor(glyphVertDoubleArrow)

	return wm, nil
}

func loadPalette(c *config.Colors) Palette {
	parse := func(s string, fallback uint32) uint32 {
		v, err := config.ParseColor(s)
		if err != nil {
			return fallback
		}
		return v
	}
	return Palette{
		TabBarBg:        parse(c.TabBarBg, 0x2e2e2e),
		TabFocusedBg:    parse(c.TabFocusedBg, 0x5294e2),
		TabUnfocusedBg:  parse(c.TabUnfocusedBg, 0x3a3a3a),
		TabText:         parse(c.TabText, 0xffffff),
		TabActiveAccent: parse(c.TabActiveAccent, 0x5294e2),
		TabSeparator:    parse(c.TabSeparator, 0x4a4a4a),
		BorderFocused:   parse(c.BorderFocused, 0x5294e2),
		BorderUnfocused: parse(c.BorderUnfocused, 0x3a3a3a),
	}
}

func (wm *WM) createCursor(glyph uint16) xproto.Cursor {
	fontID, err := xproto.NewFontId(wm.conn)
	if err != nil {
		return 0
	}
	name := "cursor"
	if err := xproto.OpenFontChecked(wm.conn, fontID, uint16(len(name)), name).Check(); err != nil {
		return 0
	}
	defer xproto.CloseFont(wm.conn, fontID)

	cursor, err := xproto.NewCursorId(wm.conn)
	if err != nil {
		return 0
	}
	if err := xproto.CreateGlyphCursorChecked(wm.conn, cursor, fontID, fontID,
		glyph, glyph+1, 0, 0, 0, 0xffff, 0xffff, 0xffff).Check(); err != nil {
		return 0
	}
	return cursor
}

// workspaces returns the focused monitor's workspace manager.
func (wm *WM) workspaces() *WorkspaceManager {
	return wm.monitors.Focused().Workspaces
}

// ws returns the active workspace on the focused monitor.
func (wm *WM) ws() *Workspace {
	return wm.workspaces().Current()
}

// becomeWM claims SubstructureRedirect on the root window. Failure means
// another window manager is running.
func (wm *WM) becomeWM() error {
	mask := uint32(xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskEnterWindow |
		xproto.EventMaskButtonPress |
		xproto.EventMaskStructureNotify)
	if err := xproto.ChangeWindowAttributesChecked(wm.conn, wm.root,
		xproto.CwEventMask, []uint32{mask}).Check(); err != nil {
		return fmt.Errorf("another window manager is already running: %w", err)
	}
	wm.log.Info().Msg("Successfully became the window manager")
	return nil
}

func (wm *WM) changeProp32(win xproto.Window, prop, typ xproto.Atom, values ...uint32) {
	data := make([]byte, len(values)*4)
	for i, v := range values {
		data[i*4] = byte(v)
		data[i*4+1] = byte(v >> 8)
		data[i*4+2] = byte(v >> 16)
		data[i*4+3] = byte(v >> 24)
	}
	xproto.ChangeProperty(wm.conn, xproto.PropModeReplace, win, prop, typ, 32, uint32(len(values)), data)
}

func (wm *WM) changeProp8(win xproto.Window, prop, typ xproto.Atom, value []byte) {
	xproto.ChangeProperty(wm.conn, xproto.PropModeReplace, win, prop, typ, 8, uint32(len(value)), value)
}

// setupEWMH publishes the root-window properties pagers and bars rely on.
func (wm *WM) setupEWMH() {
	supported := wm.atoms.Supported()
	vals := make([]uint32, len(supported))
	for i, a := range supported {
		vals[i] = uint32(a)
	}
	wm.changeProp32(wm.root, wm.atoms.NetSupported, xproto.AtomAtom, vals...)

	wm.changeProp32(wm.root, wm.atoms.NetSupportingWmCheck, xproto.AtomWindow, uint32(wm.checkWindow))
	wm.changeProp32(wm.checkWindow, wm.atoms.NetSupportingWmCheck, xproto.AtomWindow, uint32(wm.checkWindow))
	wm.changeProp8(wm.checkWindow, wm.atoms.NetWmName, wm.atoms.Utf8String, []byte("ttwm"))

	wm.changeProp32(wm.root, wm.atoms.NetClientList, xproto.AtomWindow)
	wm.changeProp32(wm.root, wm.atoms.NetNumberOfDesktops, xproto.AtomCardinal, NumWorkspaces)
	wm.changeProp32(wm.root, wm.atoms.NetCurrentDesktop, xproto.AtomCardinal, 0)

	var names []byte
	for i := 1; i <= NumWorkspaces; i++ {
		names = append(names, []byte(fmt.Sprintf("%d", i))...)
		names = append(names, 0)
	}
	wm.changeProp8(wm.root, wm.atoms.NetDesktopNames, wm.atoms.Utf8String, names)

	wm.conn.Sync()
	wm.log.Info().Msg("EWMH properties set up")
}

// allManagedWindows returns every tiled and floating window across all
// monitors and workspaces, tiled first.
func (wm *WM) allManagedWindows() []xproto.Window {
	var windows []xproto.Window
	for _, id := range wm.monitors.All() {
		for _, ws := range wm.monitors.Get(id).Workspaces.All() {
			windows = append(windows, ws.Layout.AllWindows()...)
			for _, f := range ws.Floating {
				windows = append(windows, f.Window)
			}
		}
	}
	return windows
}

// findWindowGlobal locates a window in any workspace of any monitor.
func (wm *WM) findWindowGlobal(win xproto.Window) (MonitorID, int, *Workspace, bool) {
	for _, id := range wm.monitors.All() {
		for idx, ws := range wm.monitors.Get(id).Workspaces.All() {
			if ws.ContainsWindow(win) {
				return id, idx, ws, true
			}
		}
	}
	return 0, 0, nil, false
}

func (wm *WM) updateClientList() {
	windows := wm.allManagedWindows()
	vals := make([]uint32, len(windows))
	for i, w := range windows {
		vals[i] = uint32(w)
	}
	wm.changeProp32(wm.root, wm.atoms.NetClientList, xproto.AtomWindow, vals...)
}

func (wm *WM) updateActiveWindow() {
	wm.changeProp32(wm.root, wm.atoms.NetActiveWindow, xproto.AtomWindow, uint32(wm.focusedWindow))
}

func (wm *WM) updateCurrentDesktop() {
	wm.changeProp32(wm.root, wm.atoms.NetCurrentDesktop, xproto.AtomCardinal, uint32(wm.workspaces().CurrentIndex()))
}

// usableScreen is the focused monitor's geometry minus the outer gap and any
// dock struts.
func (wm *WM) usableScreen() geometry.Rect {
	return wm.usableScreenFor(wm.monitors.FocusedID())
}

func (wm *WM) usableScreenFor(id MonitorID) geometry.Rect {
	mon := wm.monitors.Get(id)
	if mon == nil {
		return geometry.Rect{}
	}
	struts := make([]StrutPartial, 0, len(wm.docks))
	for _, s := range wm.docks {
		struts = append(struts, s)
	}
	return UsableScreen(mon.Geometry,
		uint32(wm.screen.WidthInPixels), uint32(wm.screen.HeightInPixels),
		struts, wm.cfg.Appearance.OuterGap)
}

// scanExistingWindows adopts viewable, non-override-redirect windows that
// were mapped before we started.
func (wm *WM) scanExistingWindows() {
	tree, err := xproto.QueryTree(wm.conn, wm.root).Reply()
	if err != nil {
		wm.log.Warn().Err(err).Msg("Failed to query existing windows")
		return
	}
	for _, win := range tree.Children {
		if win == wm.checkWindow {
			continue
		}
		attrs, err := xproto.GetWindowAttributes(wm.conn, win).Reply()
		if err != nil || attrs.OverrideRedirect || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		wm.log.Info().Uint32("window", uint32(win)).Msg("Found existing window")
		wm.manageWindow(win)
	}
}

// Run claims the WM role, applies the startup layout and enters the main
// loop. The loop drains pending IPC commands, then pending X11 events, and
// sleeps briefly when both sources were idle.
func (wm *WM) Run() error {
	if err := wm.becomeWM(); err != nil {
		return err
	}
	wm.setupEWMH()

	randr.SelectInput(wm.conn, wm.root, randr.NotifyMaskScreenChange)

	if err := wm.loadKeymap(); err != nil {
		wm.log.Warn().Err(err).Msg("Failed to load keyboard mapping")
	}
	wm.grabKeys()

	spawns := wm.startup.Apply(&wm.cfg.Startup, wm.monitors.Focused().Workspaces)
	wm.scanExistingWindows()
	wm.applyLayout()
	wm.startup.SpawnAll(spawns)

	wm.log.Info().Msg("Entering event loop")
	for wm.running {
		worked := false

		if wm.ipc != nil {
			for {
				req, client := wm.ipc.Poll()
				if req == nil {
					break
				}
				worked = true
				resp := wm.HandleCommand(req)
				if err := client.Respond(resp); err != nil {
					wm.log.Warn().Err(err).Msg("Failed to send IPC response")
				}
			}
		}

		for {
			ev, xerr := wm.conn.PollForEvent()
			if ev == nil && xerr == nil {
				break
			}
			worked = true
			if xerr != nil {
				wm.log.Error().Str("error", xerr.Error()).Msg("X11 error")
				continue
			}
			wm.handleEvent(ev)
		}

		if !worked {
			time.Sleep(idleSleep)
		}
	}

	wm.log.Info().Msg("Exiting window manager")
	wm.Close()
	return nil
}

// Close releases the IPC socket and the X connection.
func (wm *WM) Close() {
	if wm.ipc != nil {
		wm.ipc.Close()
		wm.ipc = nil
	}
	if wm.conn != nil {
		wm.conn.Close()
		wm.conn = nil
	}
}
