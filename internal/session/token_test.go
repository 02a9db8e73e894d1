package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	want := Session{SID: "abc123", Actor: ActorUser, ID: 7, Name: "Ann", Email: "a@x.com"}

	signed, exp, err := IssueToken(testSecret, want, 30)
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	got, err := ParseToken(testSecret, signed)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTokenAnonymousRoundTrip(t *testing.T) {
	sid, err := NewSID()
	require.NoError(t, err)
	require.Len(t, sid, 32)

	signed, _, err := IssueToken(testSecret, Session{SID: sid}, 30)
	require.NoError(t, err)

	got, err := ParseToken(testSecret, signed)
	require.NoError(t, err)
	assert.Equal(t, sid, got.SID)
	assert.False(t, got.IsUser())
	assert.False(t, got.IsVendor())
}

func TestTokenWrongSecretRejected(t *testing.T) {
	signed, _, err := IssueToken(testSecret, Session{SID: "abc"}, 30)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbageRejected(t *testing.T) {
	_, err := ParseToken(testSecret, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiredRejected(t *testing.T) {
	signed, _, err := IssueToken(testSecret, Session{SID: "abc"}, -1)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewSIDUnique(t *testing.T) {
	a, err := NewSID()
	require.NoError(t, err)
	b, err := NewSID()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
