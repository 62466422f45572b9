package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/inkdex/inkdex/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTransport is a hand-rolled Transport for coordinator and session tests.
type mockTransport struct {
	mu sync.Mutex

	renewCalls int
	renewErr   error
	renewCred  string
	renewUser  *auth.User
	renewEnter chan struct{} // closed when Renew is entered, if non-nil
	renewBlock chan struct{} // Renew waits for this to close, if non-nil

	checkCalls int
	checkAuth  bool
	checkUser  *auth.User
	checkErr   error

	loginErr    error
	logoutErr   error
	logoutCalls int

	profileUser  *auth.User
	profileErr   error
	profileCalls int
}

func (m *mockTransport) CheckSession(ctx context.Context) (bool, *auth.User, error) {
	m.mu.Lock()
	m.checkCalls++
	m.mu.Unlock()
	return m.checkAuth, m.checkUser, m.checkErr
}

func (m *mockTransport) Renew(ctx context.Context) (string, *auth.User, error) {
	m.mu.Lock()
	m.renewCalls++
	enter, block := m.renewEnter, m.renewBlock
	err := m.renewErr
	cred, user := m.renewCred, m.renewUser
	m.mu.Unlock()
	if enter != nil {
		close(enter)
		m.mu.Lock()
		m.renewEnter = nil
		m.mu.Unlock()
	}
	if block != nil {
		<-block
	}
	if err != nil {
		return "", nil, err
	}
	return cred, user, nil
}

func (m *mockTransport) Login(ctx context.Context, email, password string) (string, *auth.User, error) {
	if m.loginErr != nil {
		return "", nil, m.loginErr
	}
	return "login-credential", &auth.User{ID: "u1", Email: email, Role: auth.RoleClient}, nil
}

func (m *mockTransport) Logout(ctx context.Context, credential string) error {
	m.mu.Lock()
	m.logoutCalls++
	m.mu.Unlock()
	return m.logoutErr
}

func (m *mockTransport) FetchProfile(ctx context.Context, credential string) (*auth.User, error) {
	m.mu.Lock()
	m.profileCalls++
	user, err := m.profileUser, m.profileErr
	m.mu.Unlock()
	return user, err
}

func (m *mockTransport) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renewCalls
}

func (m *mockTransport) setRenewOutcome(cred string, user *auth.User, err error) {
	m.mu.Lock()
	m.renewCred, m.renewUser, m.renewErr = cred, user, err
	m.mu.Unlock()
}

// mockNotifier counts the user-visible notices.
type mockNotifier struct {
	mu      sync.Mutex
	expired int
	invalid int
	lastWhy string
}

func (n *mockNotifier) SessionExpired() {
	n.mu.Lock()
	n.expired++
	n.mu.Unlock()
}

func (n *mockNotifier) AccountInvalid(reason string) {
	n.mu.Lock()
	n.invalid++
	n.lastWhy = reason
	n.mu.Unlock()
}

func testUser() *auth.User {
	return &auth.User{ID: "u1", Email: "nina@example.com", Name: "Nina", Role: auth.RoleArtist}
}

func newCoordinator(transport *mockTransport, notifier auth.Notifier) (*auth.Coordinator, *auth.Store) {
	store := auth.NewStore()
	c := auth.NewCoordinator(store, transport, notifier)
	// Keep the automatic retry out of the way unless a test wants it.
	c.RetryDelay = time.Hour
	return c, store
}

func TestRenew_Success(t *testing.T) {
	transport := &mockTransport{renewCred: "fresh", renewUser: testUser()}
	c, store := newCoordinator(transport, nil)

	require.NoError(t, c.Renew(context.Background()))

	assert.Equal(t, auth.StatusAuthenticated, store.Status())
	cred, ok := store.Credential()
	require.True(t, ok)
	assert.Equal(t, "fresh", cred)
	assert.Equal(t, 0, c.Attempts(), "a successful renewal must reset the counter")
}

func TestRenew_SingleFlight(t *testing.T) {
	entered := make(chan struct{})
	block := make(chan struct{})
	transport := &mockTransport{
		renewCred:  "fresh",
		renewUser:  testUser(),
		renewEnter: entered,
		renewBlock: block,
	}
	c, store := newCoordinator(transport, nil)

	const concurrent = 5
	var wg sync.WaitGroup
	errs := make([]error, concurrent)

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = c.Renew(context.Background())
	}()
	<-entered // the first renewal is now in flight

	for i := 1; i < concurrent; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Renew(context.Background())
		}(i)
	}
	// Give the joiners a moment to reach the coordinator before settling.
	time.Sleep(20 * time.Millisecond)
	close(block)
	wg.Wait()

	assert.Equal(t, 1, transport.calls(), "concurrent callers must share one renewal")
	for i, err := range errs {
		assert.NoError(t, err, "caller %d", i)
	}
	assert.Equal(t, auth.StatusAuthenticated, store.Status())
}

func TestRenew_BackoffBound(t *testing.T) {
	transport := &mockTransport{renewErr: &auth.RenewError{Kind: auth.RenewTransient, Err: errors.New("timeout")}}
	c, _ := newCoordinator(transport, nil)

	for i := 0; i < 3; i++ {
		require.Error(t, c.Renew(context.Background()))
	}
	require.Equal(t, 3, transport.calls())

	// A fourth attempt inside the window is refused without touching the
	// transport.
	err := c.Renew(context.Background())
	require.ErrorIs(t, err, auth.ErrRenewalBackoff)
	assert.Equal(t, 3, transport.calls())
}

func TestRenew_BackoffWindowExpires(t *testing.T) {
	transport := &mockTransport{renewErr: &auth.RenewError{Kind: auth.RenewTransient}}
	c, _ := newCoordinator(transport, nil)
	c.Window = 30 * time.Millisecond

	for i := 0; i < 3; i++ {
		require.Error(t, c.Renew(context.Background()))
	}
	require.Equal(t, 3, transport.calls())

	time.Sleep(50 * time.Millisecond)
	transport.setRenewOutcome("fresh", testUser(), nil)
	require.NoError(t, c.Renew(context.Background()))
	assert.Equal(t, 4, transport.calls(), "an attempt outside the window is admitted")
	assert.Equal(t, 0, c.Attempts())
}

func TestRenew_CounterResetOnSuccess(t *testing.T) {
	transport := &mockTransport{renewErr: &auth.RenewError{Kind: auth.RenewTransient}}
	c, _ := newCoordinator(transport, nil)

	require.Error(t, c.Renew(context.Background()))
	assert.Equal(t, 1, c.Attempts())

	transport.setRenewOutcome("fresh", testUser(), nil)
	require.NoError(t, c.Renew(context.Background()))
	assert.Equal(t, 0, c.Attempts())
}

func TestRenew_RenewalAbsentClearsSilently(t *testing.T) {
	transport := &mockTransport{renewErr: &auth.RenewError{Kind: auth.RenewAbsent}}
	notifier := &mockNotifier{}
	c, store := newCoordinator(transport, notifier)
	store.SetAuthenticated("stale", testUser())

	require.Error(t, c.Renew(context.Background()))

	assert.Equal(t, auth.StatusUnauthenticated, store.Status())
	assert.Nil(t, store.User())
	assert.Equal(t, 0, notifier.expired, "no notice for an absent artifact")
	assert.Equal(t, 0, notifier.invalid)
}

func TestRenew_RenewalExpiredNotifiesOnce(t *testing.T) {
	transport := &mockTransport{renewErr: &auth.RenewError{Kind: auth.RenewExpired}}
	notifier := &mockNotifier{}
	c, store := newCoordinator(transport, notifier)
	store.SetAuthenticated("stale", testUser())

	require.Error(t, c.Renew(context.Background()))

	assert.Equal(t, auth.StatusUnauthenticated, store.Status())
	assert.Equal(t, 1, notifier.expired)
	assert.Equal(t, 0, notifier.invalid)
}

func TestRenew_AccountInvalidNotifies(t *testing.T) {
	transport := &mockTransport{renewErr: &auth.RenewError{Kind: auth.RenewAccountInvalid, Reason: "User not found or inactive"}}
	notifier := &mockNotifier{}
	c, store := newCoordinator(transport, notifier)
	store.SetAuthenticated("stale", testUser())

	require.Error(t, c.Renew(context.Background()))

	assert.Equal(t, auth.StatusUnauthenticated, store.Status())
	assert.Equal(t, 1, notifier.invalid)
	assert.Equal(t, "User not found or inactive", notifier.lastWhy)
}

func TestRenew_RateLimitedPreservesState(t *testing.T) {
	transport := &mockTransport{renewErr: &auth.RenewError{Kind: auth.RenewRateLimited}}
	notifier := &mockNotifier{}
	c, store := newCoordinator(transport, notifier)
	store.SetAuthenticated("still-good", testUser())

	require.Error(t, c.Renew(context.Background()))

	assert.Equal(t, auth.StatusAuthenticated, store.Status(), "rate limiting must not end the session")
	cred, ok := store.Credential()
	require.True(t, ok)
	assert.Equal(t, "still-good", cred)
	assert.Equal(t, 1, c.Attempts(), "the attempt still counts")
	assert.Equal(t, 0, notifier.expired)
	assert.Equal(t, 0, notifier.invalid)
}

func TestRenew_TransientSchedulesOneRetry(t *testing.T) {
	transport := &mockTransport{renewErr: &auth.RenewError{Kind: auth.RenewTransient}}
	c, store := newCoordinator(transport, nil)
	c.RetryDelay = 10 * time.Millisecond
	store.SetAuthenticated("stale", testUser())

	require.Error(t, c.Renew(context.Background()))
	assert.Equal(t, auth.StatusAuthenticated, store.Status(), "a first transient failure must not clear the session")

	// The retry fires in the background and succeeds.
	transport.setRenewOutcome("fresh", testUser(), nil)
	require.Eventually(t, func() bool { return transport.calls() == 2 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		cred, _ := store.Credential()
		return cred == "fresh"
	}, time.Second, 5*time.Millisecond)
}

func TestRenew_TransientAtLimitClears(t *testing.T) {
	transport := &mockTransport{renewErr: &auth.RenewError{Kind: auth.RenewTransient}}
	c, store := newCoordinator(transport, nil)
	c.MaxAttempts = 1
	store.SetAuthenticated("stale", testUser())

	require.Error(t, c.Renew(context.Background()))

	assert.Equal(t, auth.StatusUnauthenticated, store.Status())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, transport.calls(), "no retry after the attempt budget is spent")
}

func TestRenew_UnclassifiedErrorIsTransient(t *testing.T) {
	transport := &mockTransport{renewErr: errors.New("something odd")}
	c, store := newCoordinator(transport, nil)
	store.SetAuthenticated("stale", testUser())

	require.Error(t, c.Renew(context.Background()))
	assert.Equal(t, auth.StatusAuthenticated, store.Status())
	assert.Equal(t, 1, c.Attempts())
}
