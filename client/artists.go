package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// FetchArtists retrieves one page of the artist directory, optionally
// filtered by a search term.
func (c *Client) FetchArtists(ctx context.Context, page int, search string) (*ArtistPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if search != "" {
		query.Set("q", search)
	}

	var result ArtistPage
	if err := c.get(ctx, "/artists", query, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch artists: %w", err)
	}
	return &result, nil
}

// FetchAllArtists walks every page of the artist directory. The onPage
// callback, if non-nil, is invoked after each page. Like FetchAllStudios, the
// walk advances on its own counter, not the server-echoed page number.
func (c *Client) FetchAllArtists(ctx context.Context, onPage func(page, totalPages int)) ([]Artist, error) {
	var artists []Artist
	page := 1
	for {
		result, err := c.FetchArtists(ctx, page, "")
		if err != nil {
			return nil, err
		}
		artists = append(artists, result.Items...)
		if onPage != nil {
			onPage(page, result.TotalPages)
		}
		if page >= result.TotalPages {
			break
		}
		page++
	}
	return artists, nil
}

// FetchArtist retrieves a single artist by ID.
func (c *Client) FetchArtist(ctx context.Context, id string) (*Artist, error) {
	var result struct {
		Artist Artist `json:"artist"`
	}
	if err := c.get(ctx, "/artists/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch artist %s: %w", id, err)
	}
	return &result.Artist, nil
}
