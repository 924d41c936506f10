package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/dyluth/pulse/internal/printer"
	"github.com/dyluth/pulse/internal/session"
)

var (
	loginName     string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print a session token",
	Long: `Log in as a facility employee and print a session token.

The token identifies you to every other pulse command. Export it once
and the CLI picks it up automatically:

  export PULSE_SESSION=$(pulse login --name "Jane Doe" --password secret)

Sessions expire on their own after the configured TTL (12 hours by
default); log in again to get a fresh token.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Long: `End the current session.

The token from --session (or $PULSE_SESSION) is removed from the board
and stops working immediately. Logging out an already-expired token is
not an error.`,
	RunE: runLogout,
}

func init() {
	loginCmd.Flags().StringVarP(&loginName, "name", "n", "", "Employee name (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (required)")
	loginCmd.MarkFlagRequired("name")
	loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	s, err := e.sessions().Login(ctx, loginName, loginPassword)
	if err != nil {
		if errors.Is(err, session.ErrInvalidLogin) {
			return printer.Error(
				"login failed",
				"The name or password is not right.",
				[]string{"Check the spelling of the employee name", "Ask a staff manager to reset the password"},
			)
		}
		return printer.Error("login failed", err.Error(), nil)
	}

	// Token on stdout only, so it can be captured by command substitution.
	printer.Println(s.Token)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	tok := token()
	if tok == "" {
		return printer.Error(
			"no session to end",
			"Neither --session nor $PULSE_SESSION is set.",
			nil,
		)
	}

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.sessions().Logout(ctx, tok); err != nil {
		return printer.Error("logout failed", err.Error(), nil)
	}

	printer.Success("Logged out\n")
	return nil
}
