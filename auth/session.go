package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

// Session wires the store, transport, coordinator, and gate together and is
// the handle the rest of the application holds. Feature code reads the
// exposed state through Store and sends requests through Gate; it never
// talks to the transport or the coordinator directly.
type Session struct {
	Store       *Store
	Transport   Transport
	Coordinator *Coordinator
	Gate        *Gate

	bootstrapOnce sync.Once
}

// NewSession builds a Session around the given transport. The notifier may
// be nil, in which case the session-expired and account-error notices are
// dropped.
func NewSession(transport Transport, notifier Notifier, client *http.Client) *Session {
	store := NewStore()
	coordinator := NewCoordinator(store, transport, notifier)
	return &Session{
		Store:       store,
		Transport:   transport,
		Coordinator: coordinator,
		Gate:        NewGate(store, coordinator, client),
	}
}

// Bootstrap checks for an existing server-side session. It runs its work at
// most once per process; later calls return immediately. Whatever goes
// wrong, the session ends up either authenticated or cleanly unauthenticated,
// never anything in between.
func (s *Session) Bootstrap(ctx context.Context) {
	s.bootstrapOnce.Do(func() { s.bootstrap(ctx) })
}

func (s *Session) bootstrap(ctx context.Context) {
	s.Store.SetChecking()

	authenticated, user, err := s.Transport.CheckSession(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("Session check failed, starting unauthenticated")
		s.Store.Clear()
		return
	}
	if !authenticated {
		s.Store.Clear()
		return
	}

	// The server vouches for the renewal artifact but the access credential
	// only ever lives in memory, so mint one now.
	log.Debug().Str("user", user.Email).Msg("Existing session found, minting access credential")
	if err := s.Coordinator.Renew(ctx); err != nil {
		log.Debug().Err(err).Msg("Could not mint access credential at startup")
		s.Store.Clear()
	}
}

// Login authenticates with the given credentials and populates the store.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	credential, user, err := s.Transport.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.Coordinator.ResetAttempts()
	s.Store.SetAuthenticated(credential, user)
	log.Debug().Str("user", user.Email).Msg("Login successful")
	return user, nil
}

// Logout ends the session. The server call is best-effort; local state is
// cleared no matter what.
func (s *Session) Logout(ctx context.Context) {
	if credential, ok := s.Store.Credential(); ok {
		if err := s.Transport.Logout(ctx, credential); err != nil {
			log.Debug().Err(err).Msg("Server-side logout failed, clearing local state anyway")
		}
	}
	s.Store.Clear()
}

// RefreshProfile fetches the current user record from the server and
// replaces the stored one. A rejected credential goes through one renewal
// and one retry, mirroring the gate's contract.
func (s *Session) RefreshProfile(ctx context.Context) (*User, error) {
	credential, ok := s.Store.Credential()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	user, err := s.Transport.FetchProfile(ctx, credential)
	if errors.Is(err, ErrCredentialRejected) {
		if rerr := s.Coordinator.Renew(ctx); rerr != nil {
			return nil, err
		}
		credential, ok = s.Store.Credential()
		if !ok {
			return nil, err
		}
		user, err = s.Transport.FetchProfile(ctx, credential)
	}
	if err != nil {
		// Transient by policy: the stored credential and user record are
		// left untouched.
		return nil, err
	}
	s.Store.ReplaceUser(user)
	return user, nil
}
