package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.rocketfuel/config.toml.

ROCKETFUEL_API_URL and ROCKETFUEL_CLIENT_SECRET override the stored values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a single setting",
	Long: `Change a single setting.

Keys:
  api.base_url             server origin, e.g. https://rocketfuel.example.com
  api.timeout              per-request timeout, e.g. 30s
  api.requests_per_second  client-side throttle, 0 for none
  auth.client_id           Google OAuth client ID
  auth.client_secret       Google OAuth client secret
  auth.callback_port       loopback port for the sign-in redirect, 0 for any
  search.debounce_ms       quiet period before searching as you type
  search.quick_limit       results shown by the quick search
  search.page_limit        results shown by a full search`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 || settingsService == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return settingsService.Keys(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runSettingsSet,
}

var settingsAuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Register the Google OAuth client used to sign in",
	Long: `Register the Google OAuth client used by 'rocketfuel login'.

Create a "Desktop app" OAuth client in the Google Cloud console and enter its
ID and secret. Without flags the values are prompted for; the secret is read
without echo.`,
	Args: cobra.NoArgs,
	RunE: runSettingsAuth,
}

var (
	settingsClientID     string
	settingsClientSecret string
)

func init() {
	settingsAuthCmd.Flags().StringVar(&settingsClientID, "client-id", "", "OAuth client ID")
	settingsAuthCmd.Flags().StringVar(&settingsClientSecret, "client-secret", "", "OAuth client secret")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsAuthCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout)
	if settings.API.RequestsPerSecond > 0 {
		cmd.Printf("  Requests per second: %g\n", settings.API.RequestsPerSecond)
	} else {
		cmd.Println("  Requests per second: unlimited")
	}
	cmd.Println()

	cmd.Println("[Auth]")
	cmd.Printf("  Client ID: %s\n", nonEmpty(settings.Auth.ClientID, "(not set)"))
	if settings.Auth.ClientSecret != "" {
		cmd.Printf("  Client Secret: %s\n", maskSecret(settings.Auth.ClientSecret))
	} else {
		cmd.Println("  Client Secret: (not set)")
	}
	cmd.Printf("  Callback Port: %d\n", settings.Auth.CallbackPort)
	status := "configured"
	if !settings.Auth.IsConfigured() {
		status = "not configured (run 'rocketfuel settings auth')"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Debounce: %s\n", settings.Search.Debounce)
	cmd.Printf("  Quick Search Limit: %d\n", settings.Search.QuickLimit)
	cmd.Printf("  Page Limit: %d\n", settings.Search.PageLimit)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if strings.HasSuffix(key, "secret") {
		value = maskSecret(value)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsAuth(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	clientID := strings.TrimSpace(settingsClientID)
	if clientID == "" {
		cmd.Print("Client ID: ")
		clientID = readLine(reader)
	}
	if clientID == "" {
		return fmt.Errorf("%w: client ID is required", domain.ErrInvalidInput)
	}

	clientSecret := strings.TrimSpace(settingsClientSecret)
	if clientSecret == "" {
		cmd.Print("Client Secret (input hidden): ")
		clientSecret = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
	}

	if err := settingsService.Set("auth.client_id", clientID); err != nil {
		return fmt.Errorf("failed to save client ID: %w", err)
	}
	if clientSecret != "" {
		if err := settingsService.Set("auth.client_secret", clientSecret); err != nil {
			return fmt.Errorf("failed to save client secret: %w", err)
		}
	}

	cmd.Println("Google sign-in configured. Run 'rocketfuel login' to sign in.")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads without echo when in is the terminal, falling back to a plain line.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
