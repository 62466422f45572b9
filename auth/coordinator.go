package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Coordinator decides when a credential renewal may run and guarantees that
// at most one renewal is in flight at any time. Concurrent callers that want
// a renewal while one is running share its outcome instead of starting a
// second one; without this, two simultaneous 401s would double-consume the
// single-use renewal artifact and one of them would fail spuriously.
//
// A renewal always runs to completion; there is no cancellation. Timeouts
// belong to the transport and come back classified as transient.
type Coordinator struct {
	store     *Store
	transport Transport
	notifier  Notifier

	// Knobs for the admission policy. Set before first use.
	MaxAttempts int           // attempts allowed inside the backoff window
	Window      time.Duration // backoff window measured from the last attempt
	RetryDelay  time.Duration // delay before the single automatic retry

	group singleflight.Group

	mu           sync.Mutex
	attempts     int
	lastAttempt  time.Time
	retryPending bool
}

// NewCoordinator creates a Coordinator with the default admission policy:
// at most 3 attempts per 5-second window and a 5-second automatic retry
// delay for transient failures.
func NewCoordinator(store *Store, transport Transport, notifier Notifier) *Coordinator {
	return &Coordinator{
		store:       store,
		transport:   transport,
		notifier:    notifier,
		MaxAttempts: 3,
		Window:      5 * time.Second,
		RetryDelay:  5 * time.Second,
	}
}

// Renew requests a credential renewal. If a renewal is already in flight the
// call waits for its outcome rather than starting another one. A nil return
// means the store now holds a fresh credential.
func (c *Coordinator) Renew(ctx context.Context) error {
	_, err, shared := c.group.Do("renew", func() (interface{}, error) {
		return nil, c.renewOnce(ctx)
	})
	if shared {
		log.Debug().Msg("Joined an in-flight credential renewal")
	}
	return err
}

// Attempts returns the number of consecutive renewal attempts since the last
// success.
func (c *Coordinator) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// ResetAttempts clears the attempt counter. Called on a successful login so
// a fresh session starts with a clean slate.
func (c *Coordinator) ResetAttempts() {
	c.mu.Lock()
	c.attempts = 0
	c.mu.Unlock()
}

// renewOnce performs a single admission-checked renewal attempt. It is only
// ever entered by one goroutine at a time, via the singleflight group.
func (c *Coordinator) renewOnce(ctx context.Context) error {
	c.mu.Lock()
	if c.attempts >= c.MaxAttempts && time.Since(c.lastAttempt) < c.Window {
		c.mu.Unlock()
		log.Debug().Int("attempts", c.attempts).Msg("Credential renewal refused by backoff policy")
		return ErrRenewalBackoff
	}
	c.attempts++
	c.lastAttempt = time.Now()
	attempt := c.attempts
	c.mu.Unlock()

	log.Debug().Int("attempt", attempt).Msg("Renewing access credential")
	credential, user, err := c.transport.Renew(ctx)
	if err == nil {
		c.ResetAttempts()
		c.store.SetAuthenticated(credential, user)
		log.Debug().Msg("Access credential renewed")
		return nil
	}
	c.settleFailure(err)
	return err
}

// settleFailure applies the outcome policy for a failed renewal. The store
// is only ever mutated through its own methods so feature code never sees a
// partial update.
func (c *Coordinator) settleFailure(err error) {
	var rerr *RenewError
	if !errors.As(err, &rerr) {
		rerr = &RenewError{Kind: RenewTransient, Err: err}
	}

	switch rerr.Kind {
	case RenewRateLimited:
		// The artifact is still good; keep the session as it is and let the
		// caller back off.
		log.Debug().Msg("Credential renewal rate limited")

	case RenewExpired:
		if c.notifier != nil {
			c.notifier.SessionExpired()
		}
		c.store.Clear()

	case RenewAbsent, RenewInvalid:
		// Expected for a visitor who never logged in. No notice.
		c.store.Clear()

	case RenewAccountInvalid:
		if c.notifier != nil {
			c.notifier.AccountInvalid(rerr.Reason)
		}
		c.store.Clear()

	case RenewTransient:
		c.mu.Lock()
		if c.attempts >= c.MaxAttempts {
			c.mu.Unlock()
			log.Debug().Msg("Credential renewal gave up after transient failures")
			c.store.Clear()
			return
		}
		if c.retryPending {
			c.mu.Unlock()
			return
		}
		c.retryPending = true
		delay := c.RetryDelay
		c.mu.Unlock()
		time.AfterFunc(delay, c.retry)
	}
}

// retry is the single scheduled follow-up after a transient failure. It runs
// in the background; whoever triggered the failing attempt already got its
// error.
func (c *Coordinator) retry() {
	c.mu.Lock()
	c.retryPending = false
	c.mu.Unlock()
	if err := c.Renew(context.Background()); err != nil {
		log.Debug().Err(err).Msg("Scheduled credential renewal retry failed")
	}
}
