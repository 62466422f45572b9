package cmd

import (
	"github.com/inkdex/inkdex/auth"
	"github.com/inkdex/inkdex/client"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}

	cmd.AddCommand(
		profileShowCmd(),
		profileUpdateCmd(),
	)

	return cmd
}

// profileShowCmd fetches the profile from the server and prints it.
func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Run: func(cmd *cobra.Command, args []string) {
			if requireUser(cmd) == nil {
				return
			}
			user, err := session.RefreshProfile(cmd.Context())
			if err != nil {
				cmd.PrintErrln("Error: Unable to fetch your profile. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to fetch profile")
				return
			}
			cmd.Printf("%s <%s>\n", user.Name, user.Email)
			cmd.Println("Role:", user.Role)
		},
	}
}

// profileUpdateCmd edits profile fields via the API and merges the result
// into the session state.
func profileUpdateCmd() *cobra.Command {
	var name, email, avatarURL string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your profile",
		Run: func(cmd *cobra.Command, args []string) {
			if requireUser(cmd) == nil {
				return
			}

			update := client.ProfileUpdate{}
			patch := auth.UserPatch{}
			if cmd.Flags().Changed("name") {
				update.Name, patch.Name = &name, &name
			}
			if cmd.Flags().Changed("email") {
				update.Email, patch.Email = &email, &email
			}
			if cmd.Flags().Changed("avatar") {
				update.AvatarURL, patch.AvatarURL = &avatarURL, &avatarURL
			}
			if update == (client.ProfileUpdate{}) {
				cmd.PrintErrln("Error: Nothing to update. Pass at least one of --name, --email, --avatar.")
				return
			}

			if _, err := api.UpdateProfile(cmd.Context(), update); err != nil {
				cmd.PrintErrln("Error: Failed to update your profile. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to update profile")
				return
			}
			session.Store.UpdateUser(patch)
			cmd.Println("Profile updated.")
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&email, "email", "", "New email address")
	cmd.Flags().StringVar(&avatarURL, "avatar", "", "New avatar URL")

	return cmd
}
