package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func TestIssue_RoundTrip(t *testing.T) {
	t.Parallel()

	token, exp, err := Issue("ann@bistro.io", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ClaimsFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "ann@bistro.io", claims.Email)
	assert.Equal(t, "ann@bistro.io", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestIssue_EmptyEmail(t *testing.T) {
	t.Parallel()

	_, _, err := Issue("", secret, time.Hour)
	assert.ErrorIs(t, err, ErrNoEmail)
}

func TestClaimsFromToken_Rejects(t *testing.T) {
	t.Parallel()

	expired, _, err := Issue("ann@bistro.io", secret, -time.Minute)
	require.NoError(t, err)

	wrongKey, _, err := Issue("ann@bistro.io", []byte("other"), time.Hour)
	require.NoError(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(secret)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{Email: "ann@bistro.io"}).SignedString(secret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "expired", token: expired},
		{name: "wrong key", token: wrongKey},
		{name: "no email", token: noEmail},
		{name: "other alg", token: hs512},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := ClaimsFromToken(tt.token, secret)
			require.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
