// ttwm is a tabbed tiling window manager for X11.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adereth/ttwm/internal/config"
	"github.com/adereth/ttwm/internal/logger"
	"github.com/adereth/ttwm/internal/wm"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "ttwm",
		Short: "ttwm - Tabbed tiling window manager for X11",
		Long: `ttwm is a tiling window manager that groups windows as tabbed stacks
inside frames, splits screen space recursively, and exposes every
operation over a line-oriented IPC socket for scripting (see ttwmctl).

Features:
  • Binary split layout with tabbed frames
  • Nine workspaces per monitor, multi-monitor via RandR
  • Floating and fullscreen windows, window tagging
  • EWMH integration for bars and pagers
  • JSON IPC on a per-display Unix socket`,
		SilenceUsage: true,
		RunE:         run,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/ttwm/config.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("pretty", false, "human-readable log output")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("pretty", rootCmd.PersistentFlags().Lookup("pretty"))
}

func run(cmd *cobra.Command, args []string) error {
	logger.Init(viper.GetString("log_level"), viper.GetBool("pretty"))

	if os.Getenv("DISPLAY") == "" {
		return fmt.Errorf("DISPLAY is not set")
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	manager, err := wm.New(cfg)
	if err != nil {
		return err
	}
	return manager.Run()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
