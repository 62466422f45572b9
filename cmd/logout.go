package cmd

import (
	"github.com/spf13/cobra"
)

// logoutCmd ends the current session. The server call is best-effort; the
// local session is always cleared.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of Inkdex",
		Run: func(cmd *cobra.Command, args []string) {
			session.Logout(cmd.Context())
			cmd.Println("Logged out.")
		},
	}
}
