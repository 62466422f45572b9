package cmd

import (
	"fmt"
	"strings"

	"github.com/inkdex/inkdex/db"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// studiosCmd groups the studio directory commands.
func studiosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studios",
		Short: "Browse the studio directory",
	}

	cmd.AddCommand(
		studiosListCmd(),
		studiosSearchCmd(),
		studiosInfoCmd(),
		studiosSyncCmd(),
	)

	return cmd
}

// studiosListCmd shows the locally cached studio directory.
func studiosListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List studios from the local cache",
		Run: func(cmd *cobra.Command, args []string) {
			repo := db.NewStudioRepository(db.Db)
			studios, err := repo.List(cmd.Context())
			if err != nil {
				cmd.PrintErrln("Error: Unable to list studios. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to list cached studios")
				return
			}
			if len(studios) == 0 {
				cmd.Println("No studios in the cache. Use `inkdex studios sync` to fetch the directory.")
				return
			}
			renderStudios(studios)
		},
	}
}

// studiosSearchCmd searches the local cache by name or city.
func studiosSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search cached studios by name or city",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			repo := db.NewStudioRepository(db.Db)
			studios, err := repo.Search(cmd.Context(), args[0])
			if err != nil {
				cmd.PrintErrln("Error: Search failed. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to search cached studios")
				return
			}
			if len(studios) == 0 {
				cmd.Printf("No studios matching %q.\n", args[0])
				return
			}
			renderStudios(studios)
		},
	}
}

func renderStudios(studios []db.Studio) {
	table := newTable([]string{"ID", "Name", "City", "Styles", "Rating", "Verified"})
	table.SetColMinWidth(1, 30)
	for _, s := range studios {
		verified := ""
		if s.Verified {
			verified = "yes"
		}
		table.Append([]string{
			s.ID,
			strings.ReplaceAll(s.Name, "\n", " "),
			s.City,
			s.Styles,
			fmt.Sprintf("%.1f (%d)", s.Rating, s.ReviewCount),
			verified,
		})
	}
	table.Render()
}

// studiosInfoCmd fetches one studio and its reviews live from the API.
func studiosInfoCmd() *cobra.Command {
	var studioID string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show information about a specific studio",
		Run: func(cmd *cobra.Command, args []string) {
			studio, err := api.FetchStudio(cmd.Context(), studioID)
			if err != nil {
				cmd.PrintErrln("Error: Unable to fetch the studio. Please check the logs for details.")
				log.Error().Err(err).Str("id", studioID).Msg("Failed to fetch studio")
				return
			}

			cmd.Println(studio.Name)
			cmd.Println("City:", studio.City)
			if studio.Address != "" {
				cmd.Println("Address:", studio.Address)
			}
			if len(studio.Styles) > 0 {
				cmd.Println("Styles:", strings.Join(studio.Styles, ", "))
			}
			cmd.Printf("Rating: %.1f (%d reviews)\n", studio.Rating, studio.ReviewCount)

			reviews, err := api.FetchStudioReviews(cmd.Context(), studioID)
			if err != nil {
				log.Error().Err(err).Str("id", studioID).Msg("Failed to fetch reviews")
				return
			}
			for _, review := range reviews {
				cmd.Printf("  %d/5 %s: %s\n", review.Rating, review.AuthorName, review.Comment)
			}
		},
	}

	cmd.Flags().StringVarP(&studioID, "id", "i", "", "ID of the studio to show")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}

	return cmd
}

// studiosSyncCmd refreshes the local cache from the API.
func studiosSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local studio cache from the API",
		Run: func(cmd *cobra.Command, args []string) {
			var bar *progressbar.ProgressBar
			studios, err := api.FetchAllStudios(cmd.Context(), func(page, totalPages int) {
				if bar == nil && totalPages > 1 {
					bar = progressbar.Default(int64(totalPages), "Fetching studio directory")
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			})
			if err != nil {
				cmd.PrintErrln("Error: Unable to sync the studio directory. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to fetch the studio directory")
				return
			}

			repo := db.NewStudioRepository(db.Db)
			if err := repo.Clear(cmd.Context()); err != nil {
				cmd.PrintErrln("Error: Unable to reset the local cache.")
				log.Error().Err(err).Msg("Failed to clear the studio cache")
				return
			}
			for _, s := range studios {
				record := db.Studio{
					ID:          s.ID,
					Name:        s.Name,
					City:        s.City,
					Styles:      db.JoinStyles(s.Styles),
					Rating:      s.Rating,
					ReviewCount: s.ReviewCount,
					Verified:    s.Verified,
				}
				if err := repo.Put(cmd.Context(), record); err != nil {
					log.Error().Err(err).Str("id", s.ID).Msg("Failed to cache studio")
				}
			}
			cmd.Printf("Cached %d studios.\n", len(studios))
		},
	}
}
