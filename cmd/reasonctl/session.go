package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/automenta/mcr/internal/boot"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Create, inspect, and delete reasoning sessions",
}

var sessionCreateCmd = &cobra.Command{
	Use:   "create [id]",
	Short: "Create a new session, optionally with a suggested id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := boot.Build(context.Background(), cfg)
		if err != nil {
			return err
		}
		sess, serr := svc.Coordinator.CreateSession(id)
		if serr != nil {
			return serr
		}
		fmt.Println(sess.ID)
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a session's knowledge base and lexicon summary",
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
		kb, serr := svc.Coordinator.GetKnowledgeBase(args[0])
		if serr != nil {
			return serr
		}
		lexicon, serr := svc.Coordinator.GetLexiconSummary(args[0])
		if serr != nil {
			return serr
		}
		fmt.Println("Knowledge base:")
		fmt.Println(kb)
		fmt.Println("\nLexicon:", lexicon)
		return nil
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
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
		ok, serr := svc.Coordinator.DeleteSession(args[0])
		if serr != nil {
			return serr
		}
		if !ok {
			fmt.Println("no such session")
			return nil
		}
		fmt.Println("deleted")
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionCreateCmd, sessionShowCmd, sessionDeleteCmd)
}
