package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/inkdex/inkdex/auth"
	"github.com/rs/zerolog/log"
)

// Client calls the Inkdex marketplace API. Every request goes through the
// auth gate, so the access credential is attached automatically and a
// rejected credential is renewed and the request replayed without the caller
// noticing.
type Client struct {
	BaseURL string
	gate    *auth.Gate
}

// New creates a Client for the API at baseURL.
func New(baseURL string, gate *auth.Gate) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), gate: gate}
}

// apiEnvelope is the JSON wrapper the API uses for every response.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

// get issues a GET request and decodes the envelope's data into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to create API request")
		return err
	}
	return c.do(req, out)
}

// post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to create API request")
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// put issues a PUT request with a JSON body and decodes the response into out.
func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// delete issues a DELETE request.
func (c *Client) delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// do sends the request through the gate and decodes the envelope.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.gate.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", req.URL.String()).Msg("API request failed")
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("url", req.URL.String()).Msg("Failed to read API response body")
		return err
	}

	var env apiEnvelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("unexpected response from %s (status %d)", req.URL.Path, resp.StatusCode)
		}
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, req.URL.Path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		log.Error().Int("status", resp.StatusCode).Str("url", req.URL.String()).Str("error", msg).Msg("API request returned an error")
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, msg)
	}
	if out == nil || env.Data == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to parse API response: %w", err)
	}
	return nil
}
