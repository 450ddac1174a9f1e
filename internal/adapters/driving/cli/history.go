package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyClear  bool
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long:  `Show your most recent distinct searches, newest first. Use --clear to forget them.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all search history")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of entries")
	addFormatFlag(historyCmd, &historyFormat)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errNotConfigured("history")
	}

	if historyClear {
		if err := historyService.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		cmd.Println("Search history cleared.")
		return nil
	}

	if err := checkFormat(historyFormat); err != nil {
		return err
	}
	entries, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if ok, err := writeStructured(cmd.OutOrStdout(), historyFormat, entries); ok {
		return err
	}

	if len(entries) == 0 {
		cmd.Println("No searches yet.")
		return nil
	}
	for _, e := range entries {
		cmd.Printf("  %s  %-40s %d result(s)\n", e.SearchedAt.Local().Format("2006-01-02 15:04"), e.Query, e.ResultCount)
	}
	return nil
}
