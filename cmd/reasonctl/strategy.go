package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/automenta/mcr/internal/boot"
)

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Inspect and set per-session strategy overrides",
}

var strategyGetCmd = &cobra.Command{
	Use:   "get <session-id>",
	Short: "Print a session's active strategy id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := boot.Build(context.Background(), cfg)
		if err != nil {
			return err
		}
		id, serr := svc.Coordinator.GetActiveStrategyId(args[0])
		if serr != nil {
			return serr
		}
		fmt.Println(id)
		return nil
	},
}

var strategySetCmd = &cobra.Command{
	Use:   "set <session-id> <strategy-id>",
	Short: "Set a session's active strategy override",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := boot.Build(context.Background(), cfg)
		if err != nil {
			return err
		}
		if serr := svc.Coordinator.SetActiveStrategyForSession(args[0], args[1]); serr != nil {
			return serr
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	strategyCmd.AddCommand(strategyGetCmd, strategySetCmd)
}
