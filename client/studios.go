package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
)

// FetchStudios retrieves one page of the studio directory. An empty search
// string lists everything.
func (c *Client) FetchStudios(ctx context.Context, page int, search string) (*StudioPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if search != "" {
		query.Set("q", search)
	}

	var result StudioPage
	if err := c.get(ctx, "/studios", query, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch studios: %w", err)
	}
	log.Debug().Int("page", result.Page).Int("count", len(result.Items)).Msg("Fetched studio page")
	return &result, nil
}

// FetchStudio retrieves a single studio by ID.
func (c *Client) FetchStudio(ctx context.Context, id string) (*Studio, error) {
	var result struct {
		Studio Studio `json:"studio"`
	}
	if err := c.get(ctx, "/studios/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch studio %s: %w", id, err)
	}
	return &result.Studio, nil
}

// FetchStudioReviews retrieves the published reviews of a studio.
func (c *Client) FetchStudioReviews(ctx context.Context, id string) ([]Review, error) {
	var result struct {
		Reviews []Review `json:"reviews"`
	}
	if err := c.get(ctx, "/studios/"+url.PathEscape(id)+"/reviews", nil, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for studio %s: %w", id, err)
	}
	return result.Reviews, nil
}

// FetchAllStudios walks every page of the directory. The onPage callback, if
// non-nil, is invoked after each page so callers can show progress. The walk
// advances on its own counter so a server that echoes a stale or missing page
// number cannot loop it.
func (c *Client) FetchAllStudios(ctx context.Context, onPage func(page, totalPages int)) ([]Studio, error) {
	var studios []Studio
	page := 1
	for {
		result, err := c.FetchStudios(ctx, page, "")
		if err != nil {
			return nil, err
		}
		studios = append(studios, result.Items...)
		if onPage != nil {
			onPage(page, result.TotalPages)
		}
		if page >= result.TotalPages {
			break
		}
		page++
	}
	log.Debug().Int("count", len(studios)).Msg("Fetched full studio directory")
	return studios, nil
}
