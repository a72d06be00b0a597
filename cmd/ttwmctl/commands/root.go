// Package commands implements the ttwmctl CLI: each subcommand serialises
// its arguments into one IPC request and prints the WM's response.
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adereth/ttwm/internal/ipc"
)

var rootCmd = &cobra.Command{
	Use:   "ttwmctl",
	Short: "ttwmctl - Control a running ttwm instance",
	Long: `ttwmctl sends JSON commands to ttwm's Unix socket and prints the
response. The socket path is derived from DISPLAY.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// send performs one request/response round trip and pretty-prints the reply.
// Error responses exit non-zero with the WM's stable code.
func send(req ipc.Request) error {
	resp, raw, err := ipc.Do(req)
	if err != nil {
		return err
	}
	if resp.Status == "error" {
		fmt.Fprintf(os.Stderr, "error (%s): %s\n", resp.Code, resp.Message)
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, bytes.TrimSpace(raw), "", "  "); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}

func windowArg(args []string) (*uint32, error) {
	if len(args) == 0 {
		return nil, nil
	}
	var id uint32
	if _, err := fmt.Sscanf(args[0], "%v", &id); err != nil {
		return nil, fmt.Errorf("invalid window id %q", args[0])
	}
	return &id, nil
}
