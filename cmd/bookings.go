package cmd

import (
	"time"

	"github.com/inkdex/inkdex/client"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func bookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Manage your bookings",
	}

	cmd.AddCommand(
		bookingsListCmd(),
		bookingsCreateCmd(),
		bookingsCancelCmd(),
	)

	return cmd
}

func bookingsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your bookings",
		Run: func(cmd *cobra.Command, args []string) {
			if requireUser(cmd) == nil {
				return
			}
			bookings, err := api.FetchBookings(cmd.Context())
			if err != nil {
				cmd.PrintErrln("Error: Unable to list bookings. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to fetch bookings")
				return
			}
			if len(bookings) == 0 {
				cmd.Println("No bookings.")
				return
			}

			table := newTable([]string{"ID", "Studio", "Artist", "Starts", "Status"})
			for _, b := range bookings {
				table.Append([]string{
					b.ID,
					b.StudioID,
					b.ArtistID,
					b.StartsAt.Local().Format("2006-01-02 15:04"),
					b.Status,
				})
			}
			table.Render()
		},
	}
}

func bookingsCreateCmd() *cobra.Command {
	var studioID, artistID, startsAt, notes string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Request a new booking",
		Run: func(cmd *cobra.Command, args []string) {
			if requireUser(cmd) == nil {
				return
			}
			start, err := time.Parse(time.RFC3339, startsAt)
			if err != nil {
				cmd.PrintErrln("Error: --starts must be an RFC 3339 timestamp, e.g. 2026-09-12T14:00:00Z.")
				return
			}

			booking, err := api.CreateBooking(cmd.Context(), client.BookingRequest{
				StudioID: studioID,
				ArtistID: artistID,
				StartsAt: start,
				Notes:    notes,
			})
			if err != nil {
				cmd.PrintErrln("Error: Failed to create the booking. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to create booking")
				return
			}
			cmd.Printf("Booking %s created (%s).\n", booking.ID, booking.Status)
		},
	}

	cmd.Flags().StringVar(&studioID, "studio", "", "ID of the studio")
	cmd.Flags().StringVar(&artistID, "artist", "", "ID of the artist")
	cmd.Flags().StringVar(&startsAt, "starts", "", "Appointment start time (RFC 3339)")
	cmd.Flags().StringVar(&notes, "notes", "", "Optional note for the artist")
	for _, flag := range []string{"studio", "artist", "starts"} {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			log.Error().Err(err).Msgf("Failed to mark '%s' flag as required", flag)
		}
	}

	return cmd
}

func bookingsCancelCmd() *cobra.Command {
	var bookingID string

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a booking",
		Run: func(cmd *cobra.Command, args []string) {
			if requireUser(cmd) == nil {
				return
			}
			if err := api.CancelBooking(cmd.Context(), bookingID); err != nil {
				cmd.PrintErrln("Error: Failed to cancel the booking. Please check the logs for details.")
				log.Error().Err(err).Str("id", bookingID).Msg("Failed to cancel booking")
				return
			}
			cmd.Println("Booking cancelled.")
		},
	}

	cmd.Flags().StringVarP(&bookingID, "id", "i", "", "ID of the booking to cancel")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}

	return cmd
}
