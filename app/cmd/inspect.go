package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"pagegen/internal/domain/planner"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <prompt>",
		Short: "Print the page intent detected for a prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intent := planner.Classify(strings.Join(args, " "))
			return printJSON(cmd, map[string]interface{}{
				"is_multi_section": intent.IsMultiSection,
				"page_type":        intent.PageType,
			})
		},
	}
}

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <prompt>",
		Short: "Print the section plan for a prompt without calling any provider",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, planner.Build(strings.Join(args, " ")))
		},
	}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
