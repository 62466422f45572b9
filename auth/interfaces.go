package auth

import "context"

// Transport defines the contract for the network operations the session
// coordinator needs. The renewal artifact (a server-managed cookie) is
// carried by the transport itself and never exposed to callers.
type Transport interface {
	// CheckSession asks the server whether the renewal artifact identifies a
	// live session. Callers must treat any error as "not authenticated".
	CheckSession(ctx context.Context) (authenticated bool, user *User, err error)

	// Renew exchanges the renewal artifact for a fresh access credential and
	// the current user record. On failure the returned error is a
	// *RenewError carrying the classified reason.
	Renew(ctx context.Context) (credential string, user *User, err error)

	// Login authenticates with an email and password and returns the access
	// credential and user record. On rejection the error is a *LoginError.
	Login(ctx context.Context, email, password string) (credential string, user *User, err error)

	// Logout invalidates the server-side session. Best-effort; callers clear
	// local state regardless of the outcome.
	Logout(ctx context.Context, credential string) error

	// FetchProfile returns the user record for the given credential.
	// A 401 surfaces as ErrCredentialRejected.
	FetchProfile(ctx context.Context, credential string) (*User, error)
}

// Notifier surfaces the two user-visible session notices. Implementations
// live at the UI edge; everything else stays silent.
type Notifier interface {
	SessionExpired()
	AccountInvalid(reason string)
}
