package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

var (
	searchLimit  int
	searchFormat string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search questions",
	Long: `Search Rocket Fuel questions by title and body text.

Words written as [label] filter by tag, so "[go] [testing] table tests" finds
questions tagged go and testing that mention table tests.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default: search.page_limit)")
	addFormatFlag(searchCmd, &searchFormat)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if questionService == nil {
		return errNotConfigured("question")
	}
	if err := checkFormat(searchFormat); err != nil {
		return err
	}

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		cmd.Println("Type something!")
		return nil
	}

	limit := searchLimit
	if limit <= 0 {
		limit = pageLimit()
	}

	results, err := questionService.Search(domain.WithExplicitSearch(cmd.Context()), query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if ok, err := writeStructured(cmd.OutOrStdout(), searchFormat, results); ok {
		return err
	}

	if len(results) == 0 {
		cmd.Println("No questions found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		printQuestionRow(cmd, i+1, results[i])
		cmd.Println()
	}
	if len(results) >= limit {
		cmd.Printf("Showing the first %d results. Use --limit for more.\n", limit)
	}
	return nil
}

func pageLimit() int {
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings.Search.PageLimit > 0 {
			return settings.Search.PageLimit
		}
	}
	return domain.DefaultSearchPageLimit
}
