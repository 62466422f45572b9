package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Reason strings the renewal endpoint attaches to a 401. They are matched
// once here and never leave the transport.
const (
	reasonRefreshExpired  = "Refresh token expired"
	reasonRefreshNotFound = "Refresh token not found"
	reasonRefreshInvalid  = "Invalid refresh token"
	reasonUserInactive    = "User not found or inactive"
)

// envelope is the JSON wrapper every API response uses.
type envelope struct {
	Success                   bool            `json:"success"`
	Data                      json.RawMessage `json:"data"`
	Error                     string          `json:"error,omitempty"`
	RequiresEmailVerification bool            `json:"requiresEmailVerification,omitempty"`
}

// httpTransport implements Transport against the Inkdex API. The renewal
// cookie is held by the client's cookie jar; application code never reads it.
type httpTransport struct {
	base   string
	client *http.Client
}

// NewTransport creates a Transport for the API at baseURL.
func NewTransport(baseURL string) Transport {
	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create cookie jar")
	}
	return &httpTransport{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: 30 * time.Second, Jar: jar},
	}
}

// NewTransportWithClient creates a Transport using the given HTTP client.
// The client should carry a cookie jar so the renewal artifact survives
// between calls.
func NewTransportWithClient(baseURL string, client *http.Client) Transport {
	return &httpTransport{base: strings.TrimRight(baseURL, "/"), client: client}
}

func (t *httpTransport) CheckSession(ctx context.Context) (bool, *User, error) {
	resp, err := t.send(ctx, http.MethodGet, "/auth/session", "", nil)
	if err != nil {
		return false, nil, fmt.Errorf("session check failed: %w", err)
	}
	env, err := readEnvelope(resp)
	if err != nil {
		return false, nil, fmt.Errorf("session check failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return false, nil, nil
	}
	var data struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.User == nil {
		return false, nil, nil
	}
	return true, data.User, nil
}

func (t *httpTransport) Renew(ctx context.Context) (string, *User, error) {
	resp, err := t.send(ctx, http.MethodPost, "/auth/refresh", "", nil)
	if err != nil {
		return "", nil, &RenewError{Kind: RenewTransient, Err: err}
	}
	env, err := readEnvelope(resp)
	if err != nil {
		return "", nil, &RenewError{Kind: RenewTransient, Err: err}
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		rerr := &RenewError{Kind: classifyRenew(resp.StatusCode, env.Error), Reason: env.Error}
		log.Debug().Int("status", resp.StatusCode).Str("kind", rerr.Kind.String()).Msg("Credential renewal rejected")
		return "", nil, rerr
	}
	var data struct {
		AccessToken string `json:"accessToken"`
		User        *User  `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.AccessToken == "" {
		return "", nil, &RenewError{Kind: RenewTransient, Err: fmt.Errorf("malformed renewal response")}
	}
	user := data.User
	if user == nil {
		// The refresh endpoint only mints the credential; the user record
		// comes from the profile endpoint.
		user, err = t.FetchProfile(ctx, data.AccessToken)
		if err != nil {
			return "", nil, &RenewError{Kind: RenewTransient, Err: err}
		}
	}
	return data.AccessToken, user, nil
}

// classifyRenew maps a renewal response onto the closed failure taxonomy.
// Unknown statuses are transient; 429 means rate limited; a 401 is resolved
// through the server's reason string, defaulting to an invalid artifact.
func classifyRenew(status int, reason string) RenewFailureKind {
	switch status {
	case http.StatusTooManyRequests:
		return RenewRateLimited
	case http.StatusUnauthorized:
		switch reason {
		case reasonRefreshExpired:
			return RenewExpired
		case reasonRefreshNotFound:
			return RenewAbsent
		case reasonRefreshInvalid:
			return RenewInvalid
		case reasonUserInactive:
			return RenewAccountInvalid
		default:
			return RenewInvalid
		}
	default:
		return RenewTransient
	}
}

func (t *httpTransport) Login(ctx context.Context, email, password string) (string, *User, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", nil, err
	}
	resp, err := t.send(ctx, http.MethodPost, "/auth/login", "", body)
	if err != nil {
		return "", nil, fmt.Errorf("login request failed: %w", err)
	}
	env, err := readEnvelope(resp)
	if err != nil {
		return "", nil, fmt.Errorf("login request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return "", nil, &LoginError{
			Message:              env.Error,
			RequiresVerification: env.RequiresEmailVerification,
		}
	}
	var data struct {
		AccessToken string `json:"accessToken"`
		User        *User  `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", nil, fmt.Errorf("failed to parse login response: %w", err)
	}
	if data.AccessToken == "" || data.User == nil {
		return "", nil, fmt.Errorf("malformed login response")
	}
	return data.AccessToken, data.User, nil
}

func (t *httpTransport) Logout(ctx context.Context, credential string) error {
	resp, err := t.send(ctx, http.MethodPost, "/auth/logout", credential, nil)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	defer drainBody(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("logout rejected with status %d", resp.StatusCode)
	}
	return nil
}

func (t *httpTransport) FetchProfile(ctx context.Context, credential string) (*User, error) {
	resp, err := t.send(ctx, http.MethodGet, "/auth/profile", credential, nil)
	if err != nil {
		return nil, fmt.Errorf("profile fetch failed: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		drainBody(resp)
		return nil, ErrCredentialRejected
	}
	env, err := readEnvelope(resp)
	if err != nil {
		return nil, fmt.Errorf("profile fetch failed: %w", err)
	}
	// 429 and 5xx are transient: the session state must stay untouched.
	if resp.StatusCode != http.StatusOK || !env.Success {
		return nil, fmt.Errorf("profile fetch rejected with status %d", resp.StatusCode)
	}
	var data struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.User == nil {
		return nil, fmt.Errorf("malformed profile response")
	}
	return data.User, nil
}

// ResendVerification asks the server to resend the verification email.
// Shares the transport but bypasses the coordinator entirely.
func (t *httpTransport) ResendVerification(ctx context.Context, email string) error {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return err
	}
	resp, err := t.send(ctx, http.MethodPost, "/auth/resend-verification", "", body)
	if err != nil {
		return fmt.Errorf("resend verification failed: %w", err)
	}
	defer drainBody(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("resend verification rejected with status %d", resp.StatusCode)
	}
	return nil
}

// send issues a request against the API. An empty credential leaves the
// Authorization header unset; the cookie jar attaches the renewal artifact
// on its own.
func (t *httpTransport) send(ctx context.Context, method, path, credential string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, t.base+path, reader)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("Failed to create HTTP request object")
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	log.Debug().Str("method", method).Str("path", path).Msg("Sending auth request")
	return t.client.Do(req)
}

// readEnvelope reads, closes, and decodes a response body. Bodies that are
// not valid envelopes (proxies, HTML error pages) decode to a zero envelope.
func readEnvelope(resp *http.Response) (envelope, error) {
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope{}, err
	}
	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Debug().Int("status", resp.StatusCode).Msg("Response body is not a JSON envelope")
		}
	}
	return env, nil
}

// drainBody discards and closes a response body so the connection can be
// reused.
func drainBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
