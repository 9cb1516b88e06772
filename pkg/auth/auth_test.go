package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	s, err := Login(RoleAdmin, "admin@app.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, s.Role)
	assert.Equal(t, "Admin", s.Name)
	assert.False(t, s.At.IsZero())

	s, err = Login(RoleUser, "user@app.com", "user123")
	require.NoError(t, err)
	assert.Equal(t, "User", s.Name)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	cases := []struct {
		name  string
		role  Role
		email string
		pass  string
	}{
		{"wrong password", RoleAdmin, "admin@app.com", "nope"},
		{"wrong email", RoleAdmin, "boss@app.com", "admin123"},
		{"role mismatch", RoleUser, "admin@app.com", "admin123"},
		{"unknown role", Role("root"), "admin@app.com", "admin123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Login(tc.role, tc.email, tc.pass)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	id := NewSessionID()

	session := Session{Role: RoleAdmin, Email: "admin@app.com", Name: "Admin", At: time.Now()}
	require.NoError(t, store.Put(ctx, id, session, time.Minute))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, session.Email, got.Email)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	id := NewSessionID()

	require.NoError(t, store.Put(ctx, id, Session{Role: RoleUser}, -time.Second))

	_, err := store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionIDsAreUnique(t *testing.T) {
	assert.NotEqual(t, NewSessionID(), NewSessionID())
}
