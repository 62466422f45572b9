package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the auth components.
var (
	// ErrNotAuthenticated is returned when an operation needs an access
	// credential but the session does not hold one.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrCredentialRejected is returned by the transport when the server
	// answered 401 to a request carrying the access credential.
	ErrCredentialRejected = errors.New("access credential rejected")

	// ErrRenewalBackoff is returned when a renewal is refused because too
	// many attempts were made within the backoff window. Treated as a
	// transient failure by callers.
	ErrRenewalBackoff = errors.New("credential renewal refused: too many recent attempts")
)

// RenewFailureKind classifies why a credential renewal failed. The taxonomy
// is closed: it is decoded once at the transport boundary and downstream
// logic never inspects server-provided text.
type RenewFailureKind int

const (
	// RenewTransient covers network errors, timeouts, and unclassified
	// server responses. Worth one automatic retry.
	RenewTransient RenewFailureKind = iota

	// RenewRateLimited means the renewal endpoint answered 429. The session
	// state is preserved; the caller should back off.
	RenewRateLimited

	// RenewExpired means the renewal artifact has expired. Terminal and
	// user-visible.
	RenewExpired

	// RenewAbsent means no renewal artifact was presented. Terminal and
	// silent; the normal state for a visitor who never logged in.
	RenewAbsent

	// RenewInvalid means the renewal artifact was rejected. Terminal and
	// silent.
	RenewInvalid

	// RenewAccountInvalid means the account behind the artifact no longer
	// exists or is inactive. Terminal and user-visible.
	RenewAccountInvalid
)

// String returns a short name for the failure kind.
func (k RenewFailureKind) String() string {
	switch k {
	case RenewRateLimited:
		return "rate_limited"
	case RenewExpired:
		return "renewal_expired"
	case RenewAbsent:
		return "renewal_absent"
	case RenewInvalid:
		return "renewal_invalid"
	case RenewAccountInvalid:
		return "account_invalid"
	default:
		return "transient"
	}
}

// Terminal reports whether the failure cannot be resolved by retrying and
// requires the user to log in again.
func (k RenewFailureKind) Terminal() bool {
	switch k {
	case RenewExpired, RenewAbsent, RenewInvalid, RenewAccountInvalid:
		return true
	default:
		return false
	}
}

// RenewError is the classified outcome of a failed credential renewal.
type RenewError struct {
	Kind   RenewFailureKind
	Reason string // server-provided reason, for logs only
	Err    error  // optional underlying error
}

func (e *RenewError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("credential renewal failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("credential renewal failed (%s)", e.Kind)
}

func (e *RenewError) Unwrap() error { return e.Err }

// LoginError is returned when the login endpoint rejects the credentials.
type LoginError struct {
	Message              string
	RequiresVerification bool
}

func (e *LoginError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "login failed"
}
