// Package config loads the TOML configuration: keybindings, the colour
// palette, gaps, and the declarative startup layout.
//
// The file lives at ~/.config/ttwm/config.toml (resolved through XDG);
// missing files and missing keys fall back to the defaults below.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// Config is the user configuration tree.
type Config struct {
	General     General           `toml:"general"`
	Appearance  Appearance        `toml:"appearance"`
	Colors      Colors            `toml:"colors"`
	Keybindings map[string]string `toml:"keybindings"`
	Startup     Startup           `toml:"startup"`
}

// General holds miscellaneous settings.
type General struct {
	Terminal string `toml:"terminal"`
}

// Appearance holds layout metrics and the tab bar font.
type Appearance struct {
	Gap              uint32 `toml:"gap"`
	OuterGap         uint32 `toml:"outer_gap"`
	BorderWidth      uint32 `toml:"border_width"`
	TabBarHeight     uint32 `toml:"tab_bar_height"`
	VerticalTabWidth uint32 `toml:"vertical_tab_width"`
	Font             string `toml:"font"`
	FontSize         uint32 `toml:"font_size"`
}

// Colors holds the palette as "#rrggbb" strings.
type Colors struct {
	TabBarBg        string `toml:"tab_bar_bg"`
	TabFocusedBg    string `toml:"tab_focused_bg"`
	TabUnfocusedBg  string `toml:"tab_unfocused_bg"`
	TabText         string `toml:"tab_text"`
	TabActiveAccent string `toml:"tab_active_accent"`
	TabSeparator    string `toml:"tab_separator"`
	BorderFocused   string `toml:"border_focused"`
	BorderUnfocused string `toml:"border_unfocused"`
}

// Startup declares per-workspace initial layouts and the apps spawned into
// their frames. Workspace keys are 1-based strings ("1".."9").
type Startup struct {
	Workspace map[string]WorkspaceStartup `toml:"workspace"`
}

// WorkspaceStartup is the startup layout of one workspace.
type WorkspaceStartup struct {
	Layout *StartupNode `toml:"layout"`
}

// StartupNode is a recursive layout description. Type is "frame" or "split".
type StartupNode struct {
	Type         string       `toml:"type"`
	Name         string       `toml:"name,omitempty"`
	VerticalTabs bool         `toml:"vertical_tabs,omitempty"`
	Apps         []string     `toml:"apps,omitempty"`
	Direction    string       `toml:"direction,omitempty"`
	Ratio        float32      `toml:"ratio,omitempty"`
	First        *StartupNode `toml:"first,omitempty"`
	Second       *StartupNode `toml:"second,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		General: General{Terminal: "xterm"},
		Appearance: Appearance{
			Gap:              8,
			OuterGap:         8,
			BorderWidth:      2,
			TabBarHeight:     28,
			VerticalTabWidth: 28,
			Font:             "monospace",
			FontSize:         12,
		},
		Colors: Colors{
			TabBarBg:        "#2e2e2e",
			TabFocusedBg:    "#5294e2",
			TabUnfocusedBg:  "#3a3a3a",
			TabText:         "#ffffff",
			TabActiveAccent: "#5294e2",
			TabSeparator:    "#4a4a4a",
			BorderFocused:   "#5294e2",
			BorderUnfocused: "#3a3a3a",
		},
		Keybindings: defaultKeybindings(),
	}
}

func defaultKeybindings() map[string]string {
	bindings := map[string]string{
		"spawn_terminal":     "Mod4+Return",
		"close_window":       "Mod4+Shift+q",
		"quit":               "Mod4+Shift+e",
		"split_horizontal":   "Mod4+s",
		"split_vertical":     "Mod4+v",
		"cycle_tab_forward":  "Mod4+Tab",
		"cycle_tab_backward": "Mod4+Shift+Tab",
		"focus_next":         "Mod4+n",
		"focus_prev":         "Mod4+p",
		"focus_frame_left":   "Mod4+h",
		"focus_frame_down":   "Mod4+j",
		"focus_frame_up":     "Mod4+k",
		"focus_frame_right":  "Mod4+l",
		"move_window_left":   "Mod4+Shift+h",
		"move_window_right":  "Mod4+Shift+l",
		"resize_shrink":      "Mod4+minus",
		"resize_grow":        "Mod4+equal",
		"toggle_float":       "Mod4+f",
		"toggle_fullscreen":  "Mod4+Shift+f",
		"focus_urgent":       "Mod4+u",
		"toggle_tag":         "Mod4+t",
		"move_tagged":        "Mod4+Shift+t",
		"untag_all":          "Mod4+Control+t",
		"workspace_next":     "Mod4+period",
		"workspace_prev":     "Mod4+comma",
	}
	for i := 1; i <= 9; i++ {
		n := strconv.Itoa(i)
		bindings["workspace_"+n] = "Mod4+" + n
		bindings["move_to_workspace_"+n] = "Mod4+Shift+" + n
		bindings["focus_tab_"+n] = "Mod4+Control+" + n
	}
	return bindings
}

// DefaultPath returns the XDG config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "ttwm", "config.toml")
}

// Load reads the config file at path (or the default location when path is
// empty), merging it over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseColor parses "#rrggbb" (or "rrggbb") into a 24-bit pixel value.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("invalid color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}

// ParsedBinding is a keybinding resolved to a modifier mask and a keysym.
type ParsedBinding struct {
	Modifiers uint16
	Keysym    uint32
}

// ParseBinding parses strings like "Mod4+Shift+Return" into modifiers and a
// keysym. The final component names the key; everything before it must be a
// modifier.
func ParseBinding(s string) (ParsedBinding, error) {
	parts := strings.Split(s, "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return ParsedBinding{}, fmt.Errorf("empty binding %q", s)
	}
	var mods uint16
	for _, part := range parts[:len(parts)-1] {
		m, ok := modifierMask(part)
		if !ok {
			return ParsedBinding{}, fmt.Errorf("unknown modifier %q in binding %q", part, s)
		}
		mods |= m
	}
	key := parts[len(parts)-1]
	sym, ok := LookupKeysym(key)
	if !ok {
		return ParsedBinding{}, fmt.Errorf("unknown key %q in binding %q", key, s)
	}
	return ParsedBinding{Modifiers: mods, Keysym: sym}, nil
}

func modifierMask(name string) (uint16, bool) {
	switch strings.ToLower(name) {
	case "shift":
		return xproto.ModMaskShift, true
	case "control", "ctrl":
		return xproto.ModMaskControl, true
	case "mod1", "alt":
		return xproto.ModMask1, true
	case "mod2":
		return xproto.ModMask2, true
	case "mod3":
		return xproto.ModMask3, true
	case "mod4", "super":
		return xproto.ModMask4, true
	case "mod5":
		return xproto.ModMask5, true
	}
	return 0, false
}

// ParseKeybindings resolves every configured binding. Invalid bindings are
// skipped and reported so the caller can log them.
func (c *Config) ParseKeybindings() (map[string]ParsedBinding, []error) {
	bindings := make(map[string]ParsedBinding, len(c.Keybindings))
	var errs []error
	for action, spec := range c.Keybindings {
		b, err := ParseBinding(spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("keybinding %s: %w", action, err))
			continue
		}
		bindings[action] = b
	}
	return bindings, errs
}
