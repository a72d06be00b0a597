package commands

import (
	"github.com/spf13/cobra"

	"github.com/adereth/ttwm/internal/ipc"
)

func init() {
	var eventLogCount int

	queries := []*cobra.Command{
		{
			Use:   "state",
			Short: "Show the full WM state snapshot",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "get_state"})
			},
		},
		{
			Use:   "layout",
			Short: "Show the layout tree with geometries",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "get_layout"})
			},
		},
		{
			Use:   "windows",
			Short: "List all managed windows",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "get_windows"})
			},
		},
		{
			Use:   "focused",
			Short: "Show the focused window",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "get_focused"})
			},
		},
		{
			Use:   "validate",
			Short: "Check WM state invariants",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "validate_state"})
			},
		},
		{
			Use:   "tagged",
			Short: "List tagged windows",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "get_tagged"})
			},
		},
		{
			Use:   "floating",
			Short: "List floating windows on the current workspace",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "get_floating"})
			},
		},
		{
			Use:   "fullscreen",
			Short: "Show the fullscreen window, if any",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "get_fullscreen"})
			},
		},
		{
			Use:   "urgent",
			Short: "List urgent windows, oldest first",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "get_urgent"})
			},
		},
		{
			Use:   "monitors",
			Short: "List monitors",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "get_monitors"})
			},
		},
		{
			Use:   "current-monitor",
			Short: "Show the focused monitor",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "get_current_monitor"})
			},
		},
		{
			Use:   "current-workspace",
			Short: "Show the active workspace index",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "get_current_workspace"})
			},
		},
		{
			Use:   "frame <name>",
			Short: "Look up a frame by name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "get_frame_by_name", Name: &args[0]})
			},
		},
	}
	rootCmd.AddCommand(queries...)

	eventLog := &cobra.Command{
		Use:   "event-log",
		Short: "Show the recent event trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := ipc.Request{Command: "get_event_log"}
			if cmd.Flags().Changed("count") {
				req.Count = &eventLogCount
			}
			return send(req)
		},
	}
	eventLog.Flags().IntVar(&eventLogCount, "count", 0, "limit to the most recent N entries")
	rootCmd.AddCommand(eventLog)
}
