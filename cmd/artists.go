package cmd

import (
	"fmt"
	"strings"

	"github.com/inkdex/inkdex/db"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func artistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artists",
		Short: "Browse the artist directory",
	}

	cmd.AddCommand(
		artistsListCmd(),
		artistsSearchCmd(),
		artistsInfoCmd(),
		artistsSyncCmd(),
	)

	return cmd
}

// artistsListCmd shows the locally cached artist directory.
func artistsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List artists from the local cache",
		Run: func(cmd *cobra.Command, args []string) {
			repo := db.NewArtistRepository(db.Db)
			artists, err := repo.List(cmd.Context())
			if err != nil {
				cmd.PrintErrln("Error: Unable to list artists. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to list cached artists")
				return
			}
			if len(artists) == 0 {
				cmd.Println("No artists in the cache. Use `inkdex artists sync` to fetch the directory.")
				return
			}
			renderArtists(artists)
		},
	}
}

// artistsSearchCmd searches the local cache by name or style.
func artistsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search cached artists by name or style",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			repo := db.NewArtistRepository(db.Db)
			artists, err := repo.Search(cmd.Context(), args[0])
			if err != nil {
				cmd.PrintErrln("Error: Search failed. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to search cached artists")
				return
			}
			if len(artists) == 0 {
				cmd.Printf("No artists matching %q.\n", args[0])
				return
			}
			renderArtists(artists)
		},
	}
}

func renderArtists(artists []db.Artist) {
	table := newTable([]string{"ID", "Name", "Studio", "Styles", "Rating"})
	table.SetColMinWidth(1, 30)
	for _, a := range artists {
		table.Append([]string{
			a.ID,
			strings.ReplaceAll(a.Name, "\n", " "),
			a.StudioID,
			a.Styles,
			fmt.Sprintf("%.1f", a.Rating),
		})
	}
	table.Render()
}

// artistsInfoCmd fetches one artist live from the API.
func artistsInfoCmd() *cobra.Command {
	var artistID string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show information about a specific artist",
		Run: func(cmd *cobra.Command, args []string) {
			artist, err := api.FetchArtist(cmd.Context(), artistID)
			if err != nil {
				cmd.PrintErrln("Error: Unable to fetch the artist. Please check the logs for details.")
				log.Error().Err(err).Str("id", artistID).Msg("Failed to fetch artist")
				return
			}
			cmd.Println(artist.Name)
			if artist.StudioID != "" {
				cmd.Println("Studio:", artist.StudioID)
			}
			if len(artist.Styles) > 0 {
				cmd.Println("Styles:", strings.Join(artist.Styles, ", "))
			}
			cmd.Printf("Rating: %.1f\n", artist.Rating)
			if artist.Bio != "" {
				cmd.Println(artist.Bio)
			}
		},
	}

	cmd.Flags().StringVarP(&artistID, "id", "i", "", "ID of the artist to show")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}

	return cmd
}

// artistsSyncCmd refreshes the local artist cache from the API.
func artistsSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local artist cache from the API",
		Run: func(cmd *cobra.Command, args []string) {
			var bar *progressbar.ProgressBar
			artists, err := api.FetchAllArtists(cmd.Context(), func(page, totalPages int) {
				if bar == nil && totalPages > 1 {
					bar = progressbar.Default(int64(totalPages), "Fetching artist directory")
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			})
			if err != nil {
				cmd.PrintErrln("Error: Unable to sync the artist directory. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to fetch the artist directory")
				return
			}

			repo := db.NewArtistRepository(db.Db)
			if err := repo.Clear(cmd.Context()); err != nil {
				cmd.PrintErrln("Error: Unable to reset the local cache.")
				log.Error().Err(err).Msg("Failed to clear the artist cache")
				return
			}
			for _, a := range artists {
				record := db.Artist{
					ID:       a.ID,
					Name:     a.Name,
					StudioID: a.StudioID,
					Styles:   db.JoinStyles(a.Styles),
					Rating:   a.Rating,
				}
				if err := repo.Put(cmd.Context(), record); err != nil {
					log.Error().Err(err).Str("id", a.ID).Msg("Failed to cache artist")
				}
			}
			cmd.Printf("Cached %d artists.\n", len(artists))
		},
	}
}
