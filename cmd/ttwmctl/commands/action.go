package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/adereth/ttwm/internal/ipc"
)

func init() {
	var backward bool

	focusWindow := &cobra.Command{
		Use:   "focus-window <window>",
		Short: "Focus a window by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			win, err := windowArg(args)
			if err != nil {
				return err
			}
			return send(ipc.Request{Command: "focus_window", Window: win})
		},
	}

	focusTab := &cobra.Command{
		Use:   "focus-tab <index>",
		Short: "Focus a tab by 1-based index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			return send(ipc.Request{Command: "focus_tab", Index: &n})
		},
	}

	focusFrame := &cobra.Command{
		Use:   "focus-frame <left|right|up|down>",
		Short: "Focus the frame in a direction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return send(ipc.Request{Command: "focus_frame", Direction: args[0]})
		},
	}

	split := &cobra.Command{
		Use:   "split <horizontal|vertical>",
		Short: "Split the focused frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return send(ipc.Request{Command: "split", Direction: args[0]})
		},
	}

	moveWindow := &cobra.Command{
		Use:   "move-window",
		Short: "Move the focused window to the adjacent frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			forward := !backward
			return send(ipc.Request{Command: "move_window", Forward: &forward})
		},
	}
	moveWindow.Flags().BoolVar(&backward, "backward", false, "move to the previous frame instead")

	resize := &cobra.Command{
		Use:   "resize <delta>",
		Short: "Resize the focused split by a signed ratio delta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := strconv.ParseFloat(args[0], 32)
			if err != nil {
				return err
			}
			delta := float32(d)
			return send(ipc.Request{Command: "resize_split", Delta: &delta})
		},
	}

	var cycleBackward bool
	cycleTab := &cobra.Command{
		Use:   "cycle-tab",
		Short: "Cycle tabs in the focused frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			forward := !cycleBackward
			return send(ipc.Request{Command: "cycle_tab", Forward: &forward})
		},
	}
	cycleTab.Flags().BoolVar(&cycleBackward, "backward", false, "cycle to the previous tab instead")

	simpleWindowCmd := func(use, short, command string) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				win, err := windowArg(args)
				if err != nil {
					return err
				}
				return send(ipc.Request{Command: command, Window: win})
			},
		}
	}

	setFrameName := &cobra.Command{
		Use:   "set-frame-name [name]",
		Short: "Name the focused frame (no argument clears the name)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := ipc.Request{Command: "set_frame_name"}
			if len(args) > 0 {
				req.Name = &args[0]
			}
			return send(req)
		},
	}

	screenshot := &cobra.Command{
		Use:   "screenshot <path>",
		Short: "Capture the screen to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return send(ipc.Request{Command: "screenshot", Path: args[0]})
		},
	}

	rootCmd.AddCommand(
		focusWindow,
		focusTab,
		focusFrame,
		split,
		moveWindow,
		resize,
		cycleTab,
		&cobra.Command{
			Use:   "close",
			Short: "Close the focused window",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "close_window"})
			},
		},
		simpleWindowCmd("tag [window]", "Tag a window (default: focused)", "tag_window"),
		simpleWindowCmd("untag [window]", "Untag a window (default: focused)", "untag_window"),
		simpleWindowCmd("toggle-tag [window]", "Toggle a window's tag (default: focused)", "toggle_tag"),
		&cobra.Command{
			Use:   "move-tagged",
			Short: "Move all tagged windows into the focused frame",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "move_tagged"})
			},
		},
		&cobra.Command{
			Use:   "untag-all",
			Short: "Clear the tag set",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "untag_all"})
			},
		},
		simpleWindowCmd("toggle-float [window]", "Toggle floating (default: focused)", "toggle_float"),
		simpleWindowCmd("toggle-fullscreen [window]", "Toggle fullscreen (default: focused)", "toggle_fullscreen"),
		&cobra.Command{
			Use:   "focus-urgent",
			Short: "Focus the oldest urgent window",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "focus_urgent"})
			},
		},
		setFrameName,
		screenshot,
		&cobra.Command{
			Use:   "quit",
			Short: "Quit the window manager",
			RunE: func(cmd *cobra.Command, args []string) error {
				return send(ipc.Request{Command: "quit"})
			},
		},
	)
}
