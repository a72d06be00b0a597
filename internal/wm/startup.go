package wm

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/adereth/ttwm/internal/config"
	"github.com/adereth/ttwm/internal/geometry"
	"github.com/adereth/ttwm/internal/layout"
	"github.com/adereth/ttwm/internal/logger"
)

// PendingSpawn is one program waiting to be launched into a startup frame.
type PendingSpawn struct {
	Command      string
	WorkspaceIdx int
	FrameID      layout.NodeID
	FrameName    string
}

// StartupManager materialises the declarative startup layout and spawns the
// configured programs, detached into their own sessions.
type StartupManager struct {
	complete bool
}

// NewStartupManager creates an idle manager.
func NewStartupManager() *StartupManager {
	return &StartupManager{}
}

// Apply builds each configured workspace's layout tree and collects the
// programs to spawn. Workspace keys outside 1..9 are warned and skipped.
func (m *StartupManager) Apply(cfg *config.Startup, workspaces *WorkspaceManager) []PendingSpawn {
	log := logger.WithComponent("startup")
	var spawns []PendingSpawn

	for key, wsCfg := range cfg.Workspace {
		num, err := strconv.Atoi(key)
		if err != nil || num < 1 || num > NumWorkspaces {
			log.Warn().Str("workspace", key).Msgf("Invalid workspace key in startup config (must be 1-%d)", NumWorkspaces)
			continue
		}
		if wsCfg.Layout == nil {
			continue
		}
		wsIdx := num - 1
		log.Info().Int("workspace", num).Msg("Applying startup layout")

		ws := workspaces.Get(wsIdx)
		pending := ws.Layout.ReplaceFromSpec(startupSpec(wsCfg.Layout))
		for _, fa := range pending {
			name := ws.Layout.FrameName(fa.ID)
			for _, command := range fa.Apps {
				spawns = append(spawns, PendingSpawn{
					Command:      command,
					WorkspaceIdx: wsIdx,
					FrameID:      fa.ID,
					FrameName:    name,
				})
			}
		}
	}
	return spawns
}

// startupSpec converts the TOML layout node into the layout package's spec.
// Splits missing a ratio get an even 0.5.
func startupSpec(n *config.StartupNode) *layout.NodeSpec {
	if n == nil {
		return nil
	}
	if n.Type == "split" && n.First != nil && n.Second != nil {
		dir, err := geometry.ParseSplitDirection(n.Direction)
		if err != nil {
			dir = geometry.Horizontal
		}
		ratio := n.Ratio
		if ratio == 0 {
			ratio = 0.5
		}
		return &layout.NodeSpec{Split: &layout.SplitSpec{
			Direction: dir,
			Ratio:     ratio,
			First:     startupSpec(n.First),
			Second:    startupSpec(n.Second),
		}}
	}
	return &layout.NodeSpec{Frame: &layout.FrameSpec{
		Name:         n.Name,
		VerticalTabs: n.VerticalTabs,
		Apps:         n.Apps,
	}}
}

// SpawnAll launches every pending program and marks startup complete.
func (m *StartupManager) SpawnAll(spawns []PendingSpawn) {
	log := logger.WithComponent("startup")
	for _, s := range spawns {
		if s.FrameName != "" {
			log.Info().Str("command", s.Command).Str("frame", s.FrameName).Msg("Spawning startup app")
		} else {
			log.Info().Str("command", s.Command).Msg("Spawning startup app")
		}
		if err := spawnCommand(s.Command); err != nil {
			log.Error().Err(err).Str("command", s.Command).Msg("Failed to spawn startup app")
		}
	}
	m.complete = true
}

// IsComplete reports whether the startup phase finished.
func (m *StartupManager) IsComplete() bool {
	return m.complete
}

// spawnCommand forks a command detached into its own session with a tilde
// expanded in path-like arguments. The WM keeps no descriptors to it and
// never blocks on it; a background goroutine reaps it.
func spawnCommand(command string) error {
	parts := strings.Fields(expandTilde(command))
	if len(parts) == 0 {
		return nil
	}
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child in the background so it never zombies.
	go cmd.Wait()
	return nil
}

func expandTilde(s string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return s
	}
	fields := strings.Fields(s)
	for i, f := range fields {
		if f == "~" {
			fields[i] = home
		} else if strings.HasPrefix(f, "~/") {
			fields[i] = home + f[1:]
		}
	}
	return strings.Join(fields, " ")
}
