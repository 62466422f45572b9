package auth

import (
	"sync"
)

// Status describes the current session state.
type Status int

const (
	StatusUnauthenticated Status = iota
	StatusChecking
	StatusAuthenticated
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Role is the fixed set of account roles the API can assign to a user.
type Role string

const (
	RoleClient      Role = "CLIENT"
	RoleArtist      Role = "ARTIST"
	RoleAdmin       Role = "ADMIN"
	RoleArtistAdmin Role = "ARTIST_ADMIN"
)

// User is the authenticated principal as returned by the API.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          Role   `json:"role"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

// UserPatch carries the optional fields of a partial user update.
// Nil fields are left unchanged.
type UserPatch struct {
	Name      *string
	Email     *string
	AvatarURL *string
}

// Snapshot is a consistent view of the session state handed to subscribers.
type Snapshot struct {
	Status Status
	User   *User
}

// Store is the single source of truth for the session status, the in-memory
// access credential, and the authenticated user record. All other components
// read from it and mutate it only through its methods.
//
// The access credential lives only in process memory. It is never written to
// disk and never logged.
type Store struct {
	mu         sync.RWMutex
	status     Status
	credential string
	user       *User

	nextSubID int
	subs      map[int]func(Snapshot)
}

// NewStore creates an empty store in the unauthenticated state.
func NewStore() *Store {
	return &Store{subs: make(map[int]func(Snapshot))}
}

// SetAuthenticated stores the credential and user record and moves the
// session to the authenticated state. Idempotent.
func (s *Store) SetAuthenticated(credential string, user *User) {
	s.mu.Lock()
	s.status = StatusAuthenticated
	s.credential = credential
	u := *user
	s.user = &u
	s.mu.Unlock()
	s.notify()
}

// SetChecking marks the session as being checked during bootstrap.
func (s *Store) SetChecking() {
	s.mu.Lock()
	s.status = StatusChecking
	s.mu.Unlock()
	s.notify()
}

// Clear discards the credential and user record and moves the session to the
// unauthenticated state. Calling it on an already cleared store is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	if s.status == StatusUnauthenticated && s.credential == "" && s.user == nil {
		s.mu.Unlock()
		return
	}
	s.status = StatusUnauthenticated
	s.credential = ""
	s.user = nil
	s.mu.Unlock()
	s.notify()
}

// UpdateUser merges the given fields into the current user record without
// touching the credential or the status. It does nothing unless the session
// is authenticated.
func (s *Store) UpdateUser(patch UserPatch) {
	s.mu.Lock()
	if s.status != StatusAuthenticated || s.user == nil {
		s.mu.Unlock()
		return
	}
	if patch.Name != nil {
		s.user.Name = *patch.Name
	}
	if patch.Email != nil {
		s.user.Email = *patch.Email
	}
	if patch.AvatarURL != nil {
		s.user.AvatarURL = *patch.AvatarURL
	}
	s.mu.Unlock()
	s.notify()
}

// ReplaceUser swaps the whole user record, keeping credential and status.
// Used after a successful profile fetch. No-op unless authenticated.
func (s *Store) ReplaceUser(user *User) {
	s.mu.Lock()
	if s.status != StatusAuthenticated {
		s.mu.Unlock()
		return
	}
	u := *user
	s.user = &u
	s.mu.Unlock()
	s.notify()
}

// Credential returns the current access credential, if any.
func (s *Store) Credential() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential, s.credential != ""
}

// Status returns the current session status.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// User returns a copy of the current user record, or nil.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Snapshot returns a consistent view of status and user.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Status: s.status}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Subscribe registers a callback invoked after every mutation with a snapshot
// of the new state. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notify delivers the current snapshot to all subscribers. Callbacks run
// outside the lock so a subscriber may read the store.
func (s *Store) notify() {
	s.mu.RLock()
	snap := Snapshot{Status: s.status}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(snap)
	}
}
