package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/automenta/mcr/internal/boot"
)

var rawClauses bool

var assertCmd = &cobra.Command{
	Use:   "assert <session-id> <text...>",
	Short: "Assert a natural language statement, or raw clauses with --raw",
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
		text := strings.Join(args[1:], " ")

		if rawClauses {
			result, serr := svc.Coordinator.AssertRawClauses(sessionID, text)
			if serr != nil {
				return serr
			}
			printAddedClauses(result.AddedClauses)
			return nil
		}

		result, serr := svc.Coordinator.AssertNL(context.Background(), sessionID, text)
		if serr != nil {
			return serr
		}
		fmt.Printf("strategy: %s\n", result.StrategyID)
		printAddedClauses(result.AddedClauses)
		return nil
	},
}

func printAddedClauses(clauses []string) {
	fmt.Println("added clauses:")
	for _, c := range clauses {
		fmt.Println("  ", c)
	}
}

func init() {
	assertCmd.Flags().BoolVar(&rawClauses, "raw", false, "Treat text as literal clauses rather than natural language")
}
