package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/adereth/ttwm/internal/ipc"
)

func init() {
	workspace := &cobra.Command{
		Use:   "workspace <index>",
		Short: "Switch to a workspace (0-based)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			return send(ipc.Request{Command: "switch_workspace", Index: &n})
		},
	}

	moveToWorkspace := &cobra.Command{
		Use:   "move-to-workspace <index> [window]",
		Short: "Move a window to a workspace (default: focused window)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			win, err := windowArg(args[1:])
			if err != nil {
				return err
			}
			return send(ipc.Request{Command: "move_to_workspace", Workspace: &n, Window: win})
		},
	}

	moveToMonitor := &cobra.Command{
		Use:   "move-to-monitor <left|right|name> [window]",
		Short: "Move a window to a monitor (default: focused window)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			win, err := windowArg(args[1:])
			if err != nil {
				return err
			}
			return send(ipc.Request{Command: "move_to_monitor", Target: args[0], Window: win})
		},
	}

	focusMonitor := &cobra.Command{
		Use:   "focus-monitor <left|right|name>",
		Short: "Focus a monitor by direction or output name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return send(ipc.Request{Command: "focus_monitor", Target: args[0]})
		},
	}

	rootCmd.AddCommand(
		workspace,
		&cobra.Command{
			Use:   "workspace-next",
			Short: "Switch to the next workspace",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "workspace_next"})
			},
		},
		&cobra.Command{
			Use:   "workspace-prev",
			Short: "Switch to the previous workspace",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "workspace_prev"})
			},
		},
		moveToWorkspace,
		moveToMonitor,
		focusMonitor,
	)
}
