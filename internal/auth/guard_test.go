package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Srujan0798/CareerMirror/internal/store"
)

func newGuardWithSession(t *testing.T) (*Guard, *store.Local, uuid.UUID, string) {
	t.Helper()
	l, err := store.OpenLocal(":memory:", time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	user, err := l.CreateUser(context.Background(), "Jane", "jane@x.com", "hash")
	require.NoError(t, err)
	session, err := l.CreateSession(context.Background(), user.ID)
	require.NoError(t, err)

	return NewGuard(l), l, user.ID, session.Token
}

func TestAuthorizeValidSession(t *testing.T) {
	guard, _, userID, token := newGuardWithSession(t)

	got, err := guard.Authorize(context.Background(), token, nil)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestAuthorizeEmptyToken(t *testing.T) {
	guard, _, _, _ := newGuardWithSession(t)

	_, err := guard.Authorize(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorizeUnknownToken(t *testing.T) {
	guard, _, _, _ := newGuardWithSession(t)

	_, err := guard.Authorize(context.Background(), "deadbeef", nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorizeExpiredSessionIsDistinct(t *testing.T) {
	l, err := store.OpenLocal(":memory:", time.Nanosecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	user, err := l.CreateUser(context.Background(), "Jane", "jane@x.com", "hash")
	require.NoError(t, err)
	session, err := l.CreateSession(context.Background(), user.ID)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	guard := NewGuard(l)
	_, err = guard.Authorize(context.Background(), session.Token, nil)
	assert.ErrorIs(t, err, store.ErrSessionExpired)

	// The expired session was destroyed, so the same token now reads
	// as plain unauthenticated.
	_, err = guard.Authorize(context.Background(), session.Token, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorizeOwnershipMismatch(t *testing.T) {
	guard, _, userID, token := newGuardWithSession(t)

	other := uuid.New()
	_, err := guard.Authorize(context.Background(), token, &other)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := guard.Authorize(context.Background(), token, &userID)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}
