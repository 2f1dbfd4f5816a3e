package main

import (
	"fmt"
	"os"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	docFile    string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "waypoint",
	Short: "Waypoint edits mission documents",
	Long: `Waypoint edits hierarchical mission documents (devices, collections, rails, segments and points)
stored as files or committed to a document store.

Nodes are addressed by row paths such as 0/1/2: the mission is 0, its second component is 0/1.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the waypoint config file")
	rootCmd.PersistentFlags().StringVarP(&docFile, "file", "f", "mission.wpt", "Mission document to edit")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// openWorkspace loads the configuration and wires the store and session.
func openWorkspace() (*cli.Workspace, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cli.NewWorkspace(cfg, cli.NewLogger(cfg.LogLevel, debug))
}

// run opens a workspace, hands it to fn and closes it. Any error ends the process.
func run(action string, fn func(w *cli.Workspace) error) {
	w, err := openWorkspace()
	if err != nil {
		fmt.Printf("Error initializing waypoint: %v\n", err)
		os.Exit(1)
	}
	err = fn(w)
	if cerr := w.Close(); cerr != nil {
		w.Logger.Warn("Failed to close store", "err", cerr)
	}
	if err != nil {
		fmt.Printf("Error %s: %v\n", action, err)
		os.Exit(1)
	}
}
