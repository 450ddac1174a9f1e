// Package cli implements the rocketfuel command line.
//
// Commands are registered on a package-level root in init functions. The
// composition root injects the core services with SetServices before Execute.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
	"github.com/rocketfuel/rocketfuel-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rocketfuel",
	Short: "Ask, answer and search Rocket Fuel questions from the terminal",
	Long: `rocketfuel is a terminal client for the Rocket Fuel question and answer platform.

Search questions, read threads, post answers and vote without leaving the shell,
or launch the interactive search with 'rocketfuel tui'.

Get started:
  rocketfuel settings auth     # register your Google OAuth client
  rocketfuel login             # sign in with Google
  rocketfuel search "[go] channels"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// Services are the core services the commands drive.
type Services struct {
	Session   driving.SessionService
	Questions driving.QuestionService
	Answers   driving.AnswerService
	Tags      driving.TagService
	Users     driving.UserService
	History   driving.HistoryService
	Settings  driving.SettingsService
}

var (
	sessionService  driving.SessionService
	questionService driving.QuestionService
	answerService   driving.AnswerService
	tagService      driving.TagService
	userService     driving.UserService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
)

// SetServices injects the services used by every command.
func SetServices(s Services) {
	sessionService = s.Session
	questionService = s.Questions
	answerService = s.Answers
	tagService = s.Tags
	userService = s.Users
	historyService = s.History
	settingsService = s.Settings
}

// SetVersion sets the version reported by 'rocketfuel version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
