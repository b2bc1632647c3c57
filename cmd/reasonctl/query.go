package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/automenta/mcr/internal/boot"
	"github.com/automenta/mcr/internal/coordinator"
)

var explain bool

var queryCmd = &cobra.Command{
	Use:   "query <session-id> <question...>",
	Short: "Ask a natural language question, or explain the derived query with --explain",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := boot.Build(context.Background(), cfg)
		if err != nil {
			return err
		}

		sessionID := args[0]
		question := strings.Join(args[1:], " ")

		if explain {
			result, serr := svc.Coordinator.ExplainQuery(context.Background(), sessionID, question)
			if serr != nil {
				return serr
			}
			fmt.Println(result.Explanation)
			return nil
		}

		result, serr := svc.Coordinator.QueryNL(context.Background(), sessionID, question, coordinator.QueryOptions{})
		if serr != nil {
			return serr
		}
		fmt.Println(result.Answer)
		if result.DebugInfo != nil {
			fmt.Printf("\n[strategy=%s query=%q cost=%+v]\n", result.DebugInfo.StrategyID, result.DebugInfo.QueryText, result.DebugInfo.Cost)
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().BoolVar(&explain, "explain", false, "Explain the derived query instead of executing it")
}
