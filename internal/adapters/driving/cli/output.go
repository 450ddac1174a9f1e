package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func addFormatFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "format", "f", formatTable, "output format (table, json, yaml)")
}

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q (want table, json or yaml)", domain.ErrInvalidInput, format)
	}
}

// writeStructured writes v as JSON or YAML. It reports false for the table format,
// which each command renders itself.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to marshal output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return true, err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to marshal output: %w", err)
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

func printQuestionRow(cmd *cobra.Command, n int, q domain.Question) {
	marker := " "
	if q.AnswerAccepted {
		marker = "✓"
	}
	cmd.Printf("  [%d] %s %s\n", n, marker, q.Title)
	cmd.Printf("      #%d by %s (user %d) · %s\n", q.ID, nonEmpty(q.CreatedBy, "unknown"), q.UserID, votes(q.Votes))
	if len(q.Tags) > 0 {
		cmd.Printf("      tags: %s\n", strings.Join(q.TagLabels(), ", "))
	}
	if q.Bounty > 0 {
		cmd.Printf("      bounty: %d coins\n", q.Bounty)
	}
}

func printQuestion(cmd *cobra.Command, q domain.Question) {
	cmd.Println(q.Title)
	cmd.Println(strings.Repeat("=", len([]rune(q.Title))))
	cmd.Printf("#%d asked by %s on %s · %s\n", q.ID, nonEmpty(q.CreatedBy, "unknown"), q.CreatedAt, votes(q.Votes))
	if len(q.Tags) > 0 {
		cmd.Printf("Tags: %s\n", strings.Join(q.TagLabels(), ", "))
	}
	if q.Bounty > 0 {
		cmd.Printf("Bounty: %d coins\n", q.Bounty)
	}
	cmd.Println()
	cmd.Println(q.Question)
}

func printAnswer(cmd *cobra.Command, a domain.Answer) {
	header := fmt.Sprintf("Answer #%d by %s · %s", a.ID, nonEmpty(a.CreatedBy, "unknown"), votes(a.Votes))
	if a.Accepted {
		header += " · accepted"
	}
	cmd.Println(header)
	cmd.Println(indent(a.Answer, "  "))
}

func votes(n int) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d vote", n)
	}
	return fmt.Sprintf("%d votes", n)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// readBody returns flag when set, otherwise the whole of stdin.
func readBody(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
