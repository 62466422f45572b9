package auth_test

import (
	"testing"

	"github.com/inkdex/inkdex/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_StartsUnauthenticated(t *testing.T) {
	store := auth.NewStore()

	assert.Equal(t, auth.StatusUnauthenticated, store.Status())
	assert.Nil(t, store.User())
	_, ok := store.Credential()
	assert.False(t, ok)
}

func TestStore_SetAuthenticated(t *testing.T) {
	store := auth.NewStore()
	store.SetAuthenticated("secret", testUser())

	assert.Equal(t, auth.StatusAuthenticated, store.Status())
	cred, ok := store.Credential()
	require.True(t, ok)
	assert.Equal(t, "secret", cred)
	require.NotNil(t, store.User())
	assert.Equal(t, "nina@example.com", store.User().Email)
}

// The user record must be non-nil exactly when the session is authenticated.
func TestStore_UserStatusInvariant(t *testing.T) {
	store := auth.NewStore()
	check := func() {
		snap := store.Snapshot()
		if snap.Status == auth.StatusAuthenticated {
			assert.NotNil(t, snap.User)
		} else {
			assert.Nil(t, snap.User)
		}
	}

	check()
	store.SetChecking()
	check()
	store.SetAuthenticated("secret", testUser())
	check()
	store.Clear()
	check()
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	store := auth.NewStore()
	notifications := 0
	store.Subscribe(func(auth.Snapshot) { notifications++ })

	store.SetAuthenticated("secret", testUser())
	store.Clear()
	cleared := notifications

	// Clearing an already cleared store must not notify or panic.
	store.Clear()
	store.Clear()
	assert.Equal(t, cleared, notifications)
	assert.Equal(t, auth.StatusUnauthenticated, store.Status())
}

func TestStore_UpdateUserMergesFields(t *testing.T) {
	store := auth.NewStore()
	store.SetAuthenticated("secret", testUser())

	name := "Nina K."
	store.UpdateUser(auth.UserPatch{Name: &name})

	user := store.User()
	require.NotNil(t, user)
	assert.Equal(t, "Nina K.", user.Name)
	assert.Equal(t, "nina@example.com", user.Email, "untouched fields keep their values")
	cred, _ := store.Credential()
	assert.Equal(t, "secret", cred, "updating the user must not touch the credential")
}

func TestStore_UpdateUserNoOpWhenUnauthenticated(t *testing.T) {
	store := auth.NewStore()
	name := "Ghost"
	store.UpdateUser(auth.UserPatch{Name: &name})

	assert.Nil(t, store.User())
	assert.Equal(t, auth.StatusUnauthenticated, store.Status())
}

func TestStore_UserReturnsCopy(t *testing.T) {
	store := auth.NewStore()
	store.SetAuthenticated("secret", testUser())

	u := store.User()
	u.Name = "Mangled"

	assert.Equal(t, "Nina", store.User().Name, "callers must not be able to mutate the stored record")
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	store := auth.NewStore()
	var seen []auth.Status
	unsubscribe := store.Subscribe(func(snap auth.Snapshot) { seen = append(seen, snap.Status) })

	store.SetChecking()
	store.SetAuthenticated("secret", testUser())
	unsubscribe()
	store.Clear()

	require.Len(t, seen, 2)
	assert.Equal(t, auth.StatusChecking, seen[0])
	assert.Equal(t, auth.StatusAuthenticated, seen[1])
}

func TestStore_ReplaceUserKeepsCredential(t *testing.T) {
	store := auth.NewStore()
	store.SetAuthenticated("secret", testUser())

	store.ReplaceUser(&auth.User{ID: "u1", Email: "nina@example.com", Name: "Renamed", Role: auth.RoleArtistAdmin})

	user := store.User()
	require.NotNil(t, user)
	assert.Equal(t, "Renamed", user.Name)
	assert.Equal(t, auth.RoleArtistAdmin, user.Role)
	cred, _ := store.Credential()
	assert.Equal(t, "secret", cred)
}
