// Package main implements reasonctl, the operator CLI for the
// reasoning service: session inspection, direct assertion/query against
// a running configuration, and strategy/prompt introspection.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/automenta/mcr/internal/config"
)

var (
	verbose    bool
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "reasonctl",
	Short: "Operator CLI for the neurosymbolic reasoning service",
	Long: `reasonctl drives the reasoning service's public operations directly
against a local configuration: create and inspect sessions, assert and
query natural language, and introspect strategies and prompts without
standing up the service's own transport layer.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "reasonctl.yaml", "Path to the service configuration file")

	rootCmd.AddCommand(sessionCmd, assertCmd, queryCmd, strategyCmd, promptCmd)
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
