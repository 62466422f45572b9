package auth

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Gate issues outgoing requests with the current access credential attached.
// When the server rejects the credential with a 401, the gate asks the
// coordinator for a renewal and replays the request exactly once; a second
// 401 is handed back to the caller untouched, so a misbehaving endpoint can
// never loop the gate.
type Gate struct {
	store       *Store
	coordinator *Coordinator
	client      *http.Client
}

// NewGate creates a Gate. A nil client gets a default one with a 30-second
// timeout.
func NewGate(store *Store, coordinator *Coordinator, client *http.Client) *Gate {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Gate{store: store, coordinator: coordinator, client: client}
}

// Do sends the request with the current credential. Requests with a body
// must be built so that GetBody is set (http.NewRequest does this for the
// common reader types), otherwise the replay is skipped.
func (g *Gate) Do(req *http.Request) (*http.Response, error) {
	if cred, ok := g.store.Credential(); ok {
		req.Header.Set("Authorization", "Bearer "+cred)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	log.Debug().Str("url", req.URL.String()).Msg("Request rejected with 401, attempting credential renewal")
	if err := g.coordinator.Renew(req.Context()); err != nil {
		// Renewal failed; the caller gets the original 401. The coordinator
		// already applied the session consequences.
		log.Debug().Err(err).Msg("Credential renewal after 401 failed")
		return resp, nil
	}

	retry, err := cloneRequest(req)
	if err != nil {
		log.Debug().Err(err).Msg("Cannot replay request after renewal")
		return resp, nil
	}
	cred, ok := g.store.Credential()
	if !ok {
		return resp, nil
	}
	retry.Header.Set("Authorization", "Bearer "+cred)

	// The original response is dead weight once we replay.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	return g.client.Do(retry)
}

// cloneRequest produces a replayable copy of req, rewinding the body via
// GetBody. A request with a body but no GetBody cannot be replayed faithfully
// and is refused.
func cloneRequest(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.Body == nil {
		clone.Body = nil
		return clone, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("request body cannot be rewound for replay")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	clone.Body = body
	return clone, nil
}
