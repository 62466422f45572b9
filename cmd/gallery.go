package cmd

import (
	"github.com/inkdex/inkdex/client"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func galleryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Work with studio portfolios",
	}

	cmd.AddCommand(galleryPullCmd())

	return cmd
}

// galleryPullCmd downloads a studio's portfolio images.
func galleryPullCmd() *cobra.Command {
	var studioID, dir string
	var numWorkers int
	var rateLimit int64

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Download a studio's portfolio images",
		Run: func(cmd *cobra.Command, args []string) {
			if rateLimit > 0 {
				client.SetGalleryRateLimit(rateLimit * 1024)
			}

			studio, err := api.FetchStudio(cmd.Context(), studioID)
			if err != nil {
				cmd.PrintErrln("Error: Unable to fetch the studio. Please check the logs for details.")
				log.Error().Err(err).Str("id", studioID).Msg("Failed to fetch studio for gallery pull")
				return
			}
			if len(studio.PortfolioURLs) == 0 {
				cmd.Println("This studio has no portfolio images.")
				return
			}

			if err := api.DownloadPortfolio(cmd.Context(), studio, dir, numWorkers); err != nil {
				cmd.PrintErrln("Error: Some images could not be downloaded. Please check the logs for details.")
				log.Error().Err(err).Str("id", studioID).Msg("Portfolio download finished with errors")
				return
			}
			cmd.Printf("Downloaded %d images.\n", len(studio.PortfolioURLs))
		},
	}

	cmd.Flags().StringVarP(&studioID, "id", "i", "", "ID of the studio")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to download into")
	cmd.Flags().IntVarP(&numWorkers, "workers", "w", 3, "Number of parallel downloads")
	cmd.Flags().Int64VarP(&rateLimit, "rate-limit", "r", 0, "Download speed cap in KiB/s (0 means unlimited)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}

	return cmd
}
