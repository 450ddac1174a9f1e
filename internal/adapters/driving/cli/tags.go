package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Look up question tags",
}

var tagsSearchCmd = &cobra.Command{
	Use:   "search [label]",
	Short: "Find tags by label",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsSearch,
}

var tagsPopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List the most used tags",
	Args:  cobra.NoArgs,
	RunE:  runTagsPopular,
}

var tagsFormat string

func init() {
	addFormatFlag(tagsSearchCmd, &tagsFormat)
	addFormatFlag(tagsPopularCmd, &tagsFormat)
	tagsCmd.AddCommand(tagsSearchCmd)
	tagsCmd.AddCommand(tagsPopularCmd)
	rootCmd.AddCommand(tagsCmd)
}

func runTagsSearch(cmd *cobra.Command, args []string) error {
	if tagService == nil {
		return errNotConfigured("tag")
	}
	if err := checkFormat(tagsFormat); err != nil {
		return err
	}

	tags, err := tagService.Search(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("tag search failed: %w", err)
	}
	return printTags(cmd, tags)
}

func runTagsPopular(cmd *cobra.Command, _ []string) error {
	if tagService == nil {
		return errNotConfigured("tag")
	}
	if err := checkFormat(tagsFormat); err != nil {
		return err
	}

	tags, err := tagService.Popular(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load popular tags: %w", err)
	}
	return printTags(cmd, tags)
}

func printTags(cmd *cobra.Command, tags []domain.Tag) error {
	if ok, err := writeStructured(cmd.OutOrStdout(), tagsFormat, tags); ok {
		return err
	}

	if len(tags) == 0 {
		cmd.Println("No tags found.")
		return nil
	}
	for _, t := range tags {
		cmd.Printf("  [%s]\n", t.Label)
	}
	return nil
}
