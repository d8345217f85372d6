package identity

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndVerify(t *testing.T) {
	v := NewVerifier(secret)

	tok, err := v.GenerateToken("alice", time.Hour)
	require.NoError(t, err)
	assert.True(t, LooksLikeToken(tok))

	id, err := v.UserID(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", id)
}

func TestUserID_FromUserIDClaim(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "bob"}).SignedString(secret)
	require.NoError(t, err)

	id, err := NewVerifier(secret).UserID(tok)
	require.NoError(t, err)
	assert.Equal(t, "bob", id)
}

func TestUserID_Rejects(t *testing.T) {
	v := NewVerifier(secret)
	good, err := v.GenerateToken("alice", time.Hour)
	require.NoError(t, err)

	expired, err := NewVerifier(secret, WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	})).GenerateToken("alice", time.Hour)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString(secret)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "eve"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"wrong secret": good,
		"expired":      expired,
		"no user":      noUser,
		"alg none":     none,
		"garbage":      "not-a-token",
	}
	other := NewVerifier([]byte("other"))

	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			verifier := v
			if name == "wrong secret" {
				verifier = other
			}
			_, err := verifier.UserID(tok)
			require.ErrorIs(t, err, common.ErrInvalidToken)
		})
	}
}

func TestLooksLikeToken(t *testing.T) {
	tok, err := NewVerifier(secret).GenerateToken("alice", time.Hour)
	require.NoError(t, err)
	// {"alg":"none"}
	header := "eyJhbGciOiJub25lIn0"

	tests := []struct {
		in   string
		want bool
	}{
		{tok, true},
		{header + ".e30.sig", true},
		{"alice", false},
		{"a.b", false},
		{"j.r.smith", false},
		{"john.rob.smith", false},
		{header + "..sig", false},
		{"e30.e30.sig", false}, // header without alg
		{"a b.c.d", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LooksLikeToken(tt.in), tt.in)
	}
}
