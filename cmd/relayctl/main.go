package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cuemby/relay/pkg/relayconfig"
	"github.com/cuemby/relay/pkg/relaylog"
)

var (
	// Version information (set via ldflags during build)
	Version = "dev"
	Commit  = "unknown"

	configPath string
	cfg        *relayconfig.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "relayctl",
	Short:   "relayctl runs and inspects relay plays",
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("relayctl version %s\nCommit: %s\n", Version, Commit))
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a relayctl YAML cohort description")

	cobra.OnInitialize(loadConfig)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
}

func loadConfig() {
	if configPath == "" {
		cfg = &relayconfig.Config{Play: "relayctl", Transport: relayconfig.TransportSpec{Kind: "memory"}, Log: relayconfig.LogSpec{Level: relaylog.InfoLevel}}
		relaylog.Init(relaylog.Config{Level: relaylog.InfoLevel, JSONOutput: false})
		return
	}
	loaded, err := relayconfig.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded
	relaylog.Init(relaylog.Config{Level: cfg.Log.Level, JSONOutput: cfg.Log.JSON})
}
