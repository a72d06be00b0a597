package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Atoms holds every interned EWMH/ICCCM atom the window manager uses.
type Atoms struct {
	// ICCCM
	WmProtocols    xproto.Atom
	WmDeleteWindow xproto.Atom

	// Core EWMH
	NetSupported         xproto.Atom
	NetClientList        xproto.Atom
	NetActiveWindow      xproto.Atom
	NetWmName            xproto.Atom
	NetSupportingWmCheck xproto.Atom
	Utf8String           xproto.Atom

	// Workspaces
	NetCurrentDesktop   xproto.Atom
	NetNumberOfDesktops xproto.Atom
	NetDesktopNames     xproto.Atom
	NetWmDesktop        xproto.Atom

	// Window state
	NetWmState                 xproto.Atom
	NetWmStateFullscreen       xproto.Atom
	NetWmStateDemandsAttention xproto.Atom
	NetCloseWindow             xproto.Atom

	// Window types
	NetWmWindowType             xproto.Atom
	NetWmWindowTypeDock         xproto.Atom
	NetWmWindowTypeDialog       xproto.Atom
	NetWmWindowTypeSplash       xproto.Atom
	NetWmWindowTypeToolbar      xproto.Atom
	NetWmWindowTypeUtility      xproto.Atom
	NetWmWindowTypeMenu         xproto.Atom
	NetWmWindowTypePopupMenu    xproto.Atom
	NetWmWindowTypeDropdownMenu xproto.Atom
	NetWmWindowTypeTooltip      xproto.Atom
	NetWmWindowTypeNotification xproto.Atom

	// Struts and icons
	NetWmStrut        xproto.Atom
	NetWmStrutPartial xproto.Atom
	NetWmIcon         xproto.Atom
}

// NewAtoms interns every atom in one pass.
func NewAtoms(conn *xgb.Conn) (*Atoms, error) {
	a := &Atoms{}
	for _, entry := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{"WM_PROTOCOLS", &a.WmProtocols},
		{"WM_DELETE_WINDOW", &a.WmDeleteWindow},
		{"_NET_SUPPORTED", &a.NetSupported},
		{"_NET_CLIENT_LIST", &a.NetClientList},
		{"_NET_ACTIVE_WINDOW", &a.NetActiveWindow},
		{"_NET_WM_NAME", &a.NetWmName},
		{"_NET_SUPPORTING_WM_CHECK", &a.NetSupportingWmCheck},
		{"UTF8_STRING", &a.Utf8String},
		{"_NET_CURRENT_DESKTOP", &a.NetCurrentDesktop},
		{"_NET_NUMBER_OF_DESKTOPS", &a.NetNumberOfDesktops},
		{"_NET_DESKTOP_NAMES", &a.NetDesktopNames},
		{"_NET_WM_DESKTOP", &a.NetWmDesktop},
		{"_NET_WM_STATE", &a.NetWmState},
		{"_NET_WM_STATE_FULLSCREEN", &a.NetWmStateFullscreen},
		{"_NET_WM_STATE_DEMANDS_ATTENTION", &a.NetWmStateDemandsAttention},
		{"_NET_CLOSE_WINDOW", &a.NetCloseWindow},
		{"_NET_WM_WINDOW_TYPE", &a.NetWmWindowType},
		{"_NET_WM_WINDOW_TYPE_DOCK", &a.NetWmWindowTypeDock},
		{"_NET_WM_WINDOW_TYPE_DIALOG", &a.NetWmWindowTypeDialog},
		{"_NET_WM_WINDOW_TYPE_SPLASH", &a.NetWmWindowTypeSplash},
		{"_NET_WM_WINDOW_TYPE_TOOLBAR", &a.NetWmWindowTypeToolbar},
		{"_NET_WM_WINDOW_TYPE_UTILITY", &a.NetWmWindowTypeUtility},
		{"_NET_WM_WINDOW_TYPE_MENU", &a.NetWmWindowTypeMenu},
		{"_NET_WM_WINDOW_TYPE_POPUP_MENU", &a.NetWmWindowTypePopupMenu},
		{"_NET_WM_WINDOW_TYPE_DROPDOWN_MENU", &a.NetWmWindowTypeDropdownMenu},
		{"_NET_WM_WINDOW_TYPE_TOOLTIP", &a.NetWmWindowTypeTooltip},
		{"_NET_WM_WINDOW_TYPE_NOTIFICATION", &a.NetWmWindowTypeNotification},
		{"_NET_WM_STRUT", &a.NetWmStrut},
		{"_NET_WM_STRUT_PARTIAL", &a.NetWmStrutPartial},
		{"_NET_WM_ICON", &a.NetWmIcon},
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(entry.name)), entry.name).Reply()
		if err != nil {
			return nil, fmt.Errorf("failed to intern atom %s: %w", entry.name, err)
		}
		*entry.dst = reply.Atom
	}
	return a, nil
}

// Supported lists the atoms published in _NET_SUPPORTED.
func (a *Atoms) Supported() []xproto.Atom {
	return []xproto.Atom{
		a.NetSupported,
		a.NetClientList,
		a.NetActiveWindow,
		a.NetWmName,
		a.NetSupportingWmCheck,
		a.NetCurrentDesktop,
		a.NetNumberOfDesktops,
		a.NetDesktopNames,
		a.NetWmDesktop,
		a.NetWmState,
		a.NetWmStateFullscreen,
		a.NetWmStateDemandsAttention,
		a.NetCloseWindow,
		a.NetWmWindowType,
		a.NetWmStrut,
		a.NetWmStrutPartial,
		a.NetWmIcon,
	}
}
