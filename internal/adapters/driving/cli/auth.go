package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google",
	Long: `Sign in to Rocket Fuel with your Google account.

A browser window opens for the Google consent screen. The resulting identity
token is exchanged for a Rocket Fuel application token, and the session is
kept in ~/.rocketfuel so later commands stay signed in.

The OAuth client must be registered first with 'rocketfuel settings auth'.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the saved session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errNotConfigured("session")
	}

	cmd.Println("Opening browser for Google sign-in...")
	session, err := sessionService.SignIn(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrAuthCancelled) {
			cmd.Println("Sign-in cancelled.")
			return nil
		}
		return fmt.Errorf("sign-in failed: %w", err)
	}

	if session.User.Email == "" {
		cmd.Println("Signed in.")
		return nil
	}
	cmd.Printf("Signed in as %s <%s>\n", nonEmpty(session.User.Name, session.User.Email), session.User.Email)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errNotConfigured("session")
	}

	if !sessionService.Current().IsSignedIn() {
		cmd.Println("Not signed in.")
		return nil
	}
	if err := sessionService.SignOut(cmd.Context()); err != nil {
		return fmt.Errorf("sign-out failed: %w", err)
	}
	cmd.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errNotConfigured("session")
	}

	session := sessionService.Current()
	if !session.IsSignedIn() {
		cmd.Println("Not signed in. Run 'rocketfuel login'.")
		return nil
	}

	user := session.User
	if userService != nil {
		me, err := userService.Me(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to look up user: %w", err)
		}
		user = *me
	}

	cmd.Printf("Name:      %s\n", nonEmpty(user.Name, "(unknown)"))
	cmd.Printf("Email:     %s\n", nonEmpty(user.Email, "(unknown)"))
	cmd.Printf("User ID:   %d\n", user.ID)
	if !session.SignedInAt.IsZero() {
		cmd.Printf("Signed in: %s\n", session.SignedInAt.Local().Format(time.RFC1123))
	}
	return nil
}
