package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
	"github.com/rocketfuel/rocketfuel-cli/internal/logger"
)

// TUIConfig holds the search fields for the TUI command.
type TUIConfig struct {
	QuickSearch    driving.IncrementalSearch
	QuestionSearch driving.IncrementalSearch
	TagSearch      driving.IncrementalSearch
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// runProgram runs the bubbletea program; replaced in tests.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

var (
	tuiQuery string
	tuiTags  []string
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Rocket Fuel.

Search questions as you type, browse tags, read threads, vote, accept
and reply to answers.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Search / Open
  Esc      - Back
  ?        - Help (from the menu)
  q        - Quit (from the menu)`,
	Example: `  rocketfuel tui
  rocketfuel tui --query "context cancel" --tags golang`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiQuery, "query", "q", "", "start with a search")
	tuiCmd.Flags().StringSliceVarP(&tuiTags, "tags", "t", nil, "filter the start search by tags")
	rootCmd.AddCommand(tuiCmd)
}

// initialQuery renders --tags and --query as search input, tags first.
func initialQuery(query string, tags []string) string {
	q := domain.ParseSearchQuery(query)
	for _, t := range tags {
		if label := domain.NormalizeTagLabel(t); label != "" {
			q.Tags = append(q.Tags, label)
		}
	}
	return strings.TrimSpace(q.String())
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// Logs written to stderr would corrupt the alt screen.
	if logger.IsVerbose() {
		path := filepath.Join(os.TempDir(), "rocketfuel-tui.log")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err == nil {
			cmd.PrintErrf("Verbose logs: %s\n", path)
			logger.SetOutput(f)
			defer func() {
				logger.SetOutput(os.Stderr)
				f.Close()
			}()
		}
	}

	ports := &tui.Ports{
		Session:   sessionService,
		Questions: questionService,
		Answers:   answerService,
		Tags:      tagService,
		History:   historyService,
		Settings:  settingsService,
	}
	if tuiConfig != nil {
		ports.QuickSearch = tuiConfig.QuickSearch
		ports.QuestionSearch = tuiConfig.QuestionSearch
		ports.TagSearch = tuiConfig.TagSearch
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	defer app.Close()

	app.WithContext(cmd.Context()).WithInitialQuery(initialQuery(tuiQuery, tuiTags))

	if err := runProgram(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
