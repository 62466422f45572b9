package cmd

import (
	"github.com/inkdex/inkdex/auth"
	"github.com/spf13/cobra"
)

// whoamiCmd reports the current session state. It only reads the exposed
// auth state and never talks to the network.
func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Run: func(cmd *cobra.Command, args []string) {
			snap := session.Store.Snapshot()
			if snap.Status != auth.StatusAuthenticated {
				cmd.Println("Not logged in.")
				return
			}
			cmd.Printf("%s <%s>\n", snap.User.Name, snap.User.Email)
			cmd.Println("Role:", snap.User.Role)
			if !snap.User.EmailVerified {
				cmd.Println("Email not verified.")
			}
		},
	}
}
