package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"#5294e2", 0x5294e2, true},
		{"ffffff", 0xffffff, true},
		{" #2e2e2e ", 0x2e2e2e, true},
		{"#fff", 0, false},
		{"#zzzzzz", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Errorf("ParseColor(%q) = %x, %v; want %x", c.in, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Errorf("ParseColor(%q) should fail", c.in)
		}
	}
}

func TestParseBinding(t *testing.T) {
	b, err := ParseBinding("Mod4+Shift+Return")
	if err != nil {
		t.Fatal(err)
	}
	if b.Modifiers != xproto.ModMask4|xproto.ModMaskShift {
		t.Errorf("wrong modifiers 0x%x", b.Modifiers)
	}
	if b.Keysym != 0xff0d {
		t.Errorf("wrong keysym 0x%x", b.Keysym)
	}

	b, err = ParseBinding("Mod4+h")
	if err != nil {
		t.Fatal(err)
	}
	if b.Keysym != uint32('h') {
		t.Errorf("letter keysym wrong: 0x%x", b.Keysym)
	}

	if _, err := ParseBinding("Hyper+x"); err == nil {
		t.Errorf("unknown modifier should fail")
	}
	if _, err := ParseBinding("Mod4+NoSuchKey"); err == nil {
		t.Errorf("unknown key should fail")
	}
}

func TestLookupKeysym(t *testing.T) {
	if sym, ok := LookupKeysym("a"); !ok || sym != 0x61 {
		t.Errorf("letter lookup wrong")
	}
	if sym, ok := LookupKeysym("Q"); !ok || sym != 0x71 {
		t.Errorf("uppercase letters map to the lowercase keysym")
	}
	if sym, ok := LookupKeysym("9"); !ok || sym != 0x39 {
		t.Errorf("digit lookup wrong")
	}
	if sym, ok := LookupKeysym("F11"); !ok || sym != 0xffc8 {
		t.Errorf("F-key lookup wrong: 0x%x", sym)
	}
	if _, ok := LookupKeysym("NoSuchKey"); ok {
		t.Errorf("unknown name should fail")
	}
}

func TestDefaultKeybindingsAllParse(t *testing.T) {
	cfg := Default()
	bindings, errs := cfg.ParseKeybindings()
	if len(errs) != 0 {
		t.Fatalf("default bindings must parse: %v", errs)
	}
	if len(bindings) != len(cfg.Keybindings) {
		t.Errorf("parsed %d of %d bindings", len(bindings), len(cfg.Keybindings))
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Appearance.TabBarHeight != 28 {
		t.Errorf("defaults not applied")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[general]
terminal = "alacritty"

[appearance]
gap = 4

[colors]
border_focused = "#ff0000"

[startup.workspace.1.layout]
type = "split"
direction = "horizontal"
ratio = 0.6

[startup.workspace.1.layout.first]
type = "frame"
name = "editor"
apps = ["code"]

[startup.workspace.1.layout.second]
type = "frame"
name = "web"
vertical_tabs = true
apps = ["firefox"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.Terminal != "alacritty" {
		t.Errorf("terminal not loaded")
	}
	if cfg.Appearance.Gap != 4 {
		t.Errorf("gap not loaded")
	}
	if cfg.Appearance.TabBarHeight != 28 {
		t.Errorf("unset keys keep defaults")
	}
	if cfg.Colors.BorderFocused != "#ff0000" {
		t.Errorf("colour not loaded")
	}

	ws, ok := cfg.Startup.Workspace["1"]
	if !ok || ws.Layout == nil {
		t.Fatal("startup workspace missing")
	}
	if ws.Layout.Type != "split" || ws.Layout.Ratio != 0.6 {
		t.Errorf("startup split wrong: %+v", ws.Layout)
	}
	if ws.Layout.First == nil || ws.Layout.First.Name != "editor" {
		t.Errorf("startup first frame wrong")
	}
	if ws.Layout.Second == nil || !ws.Layout.Second.VerticalTabs {
		t.Errorf("startup second frame wrong")
	}
}
