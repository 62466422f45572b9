package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/inkdex/inkdex/pkg/pool"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// DownloadPortfolio pulls every portfolio image of a studio into dir,
// fetching numWorkers images at a time. Image requests go through the gate
// like any other authenticated call.
func (c *Client) DownloadPortfolio(ctx context.Context, studio *Studio, dir string, numWorkers int) error {
	if len(studio.PortfolioURLs) == 0 {
		return nil
	}
	target := filepath.Join(dir, sanitizeName(studio.Name))
	if err := os.MkdirAll(target, 0o750); err != nil {
		log.Error().Err(err).Str("dir", target).Msg("Failed to create portfolio directory")
		return err
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	log.Info().Str("studio", studio.Name).Int("images", len(studio.PortfolioURLs)).Msg("Downloading portfolio")
	return pool.Run(ctx, studio.PortfolioURLs, numWorkers, func(ctx context.Context, rawURL string) error {
		return c.downloadImage(ctx, rawURL, target)
	})
}

// downloadImage fetches one image and writes it to dir with a progress bar.
func (c *Client) downloadImage(ctx context.Context, rawURL, dir string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create image request for %s: %w", rawURL, err)
	}
	resp, err := c.gate.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: HTTP %d", rawURL, resp.StatusCode)
	}

	fileName, err := imageFileName(rawURL)
	if err != nil {
		return err
	}
	filePath := filepath.Join(dir, fileName)
	file, err := os.Create(filePath)
	if err != nil {
		log.Error().Err(err).Str("path", filePath).Msg("Failed to create image file")
		return err
	}
	defer file.Close()

	bar := progressbar.NewOptions64(
		resp.ContentLength,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", fileName)),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(true),
	)
	reader := io.TeeReader(wrapWithGalleryRateLimit(resp.Body), bar)
	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to save %s: %w", filePath, err)
	}
	return nil
}

// imageFileName derives a local file name from an image URL.
func imageFileName(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid image URL %s: %w", rawURL, err)
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("cannot derive file name from %s", rawURL)
	}
	return name, nil
}

// sanitizeName turns a studio name into a safe directory name.
func sanitizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "studio"
	}
	return b.String()
}
