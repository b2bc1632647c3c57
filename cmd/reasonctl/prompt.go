package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/automenta/mcr/internal/boot"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "List and debug-format prompt templates",
}

var promptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every registered prompt template name",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := boot.Build(context.Background(), cfg)
		if err != nil {
			return err
		}
		prompts := svc.Coordinator.GetPrompts()
		names := make([]string, 0, len(prompts))
		for name := range prompts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var promptFormatCmd = &cobra.Command{
	Use:   "format <name>",
	Short: "Fill a template against empty bindings to inspect its raw text",
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
		tpl, _, serr := svc.Coordinator.DebugFormatPrompt(args[0], emptyBindings(args[0]))
		if serr != nil {
			return serr
		}
		fmt.Println("system:")
		fmt.Println(tpl.System)
		fmt.Println("\nuser:")
		fmt.Println(tpl.User)
		return nil
	},
}

// emptyBindings fills every variable with a placeholder marker so
// debugFormatPrompt can render a template's structure without a real
// pipeline run behind it.
func emptyBindings(name string) map[string]string {
	return map[string]string{
		"naturalLanguageText":     "<naturalLanguageText>",
		"naturalLanguageQuestion": "<naturalLanguageQuestion>",
		"existingFacts":           "<existingFacts>",
		"ontologyRules":           "<ontologyRules>",
		"lexiconSummary":          "<lexiconSummary>",
		"question":                "<question>",
		"solutionsJson":           "<solutionsJson>",
		"style":                   "<style>",
		"prologQuery":             "<prologQuery>",
		"clauses":                 "<clauses>",
	}
}

func init() {
	promptCmd.AddCommand(promptListCmd, promptFormatCmd)
}
