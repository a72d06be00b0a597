package wm

import "github.com/BurntSushi/xgb/xproto"

// UrgentManager tracks windows requesting attention, oldest first, so that
// focus-urgent always jumps to the window that has waited longest.
type UrgentManager struct {
	windows []xproto.Window
}

// NewUrgentManager creates an empty manager.
func NewUrgentManager() *UrgentManager {
	return &UrgentManager{}
}

// Add appends a window as the newest entry; already-tracked windows keep
// their position.
func (u *UrgentManager) Add(w xproto.Window) {
	if u.Contains(w) {
		return
	}
	u.windows = append(u.windows, w)
}

// Remove drops a window from the list.
func (u *UrgentManager) Remove(w xproto.Window) {
	for i, win := range u.windows {
		if win == w {
			u.windows = append(u.windows[:i], u.windows[i+1:]...)
			return
		}
	}
}

// Contains reports whether a window is tracked.
func (u *UrgentManager) Contains(w xproto.Window) bool {
	for _, win := range u.windows {
		if win == w {
			return true
		}
	}
	return false
}

// First returns the oldest urgent window, or 0 when the list is empty.
func (u *UrgentManager) First() xproto.Window {
	if len(u.windows) == 0 {
		return 0
	}
	return u.windows[0]
}

// IsEmpty reports whether no window is urgent.
func (u *UrgentManager) IsEmpty() bool {
	return len(u.windows) == 0
}

// Windows returns the tracked windows, oldest first.
func (u *UrgentManager) Windows() []xproto.Window {
	out := make([]xproto.Window, len(u.windows))
	copy(out, u.windows)
	return out
}
