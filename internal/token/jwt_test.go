package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenLabsEx/API/internal/authfail"
)

func TestNewJWT_UnknownAlgorithm(t *testing.T) {
	_, err := NewJWT("secret", "bogus", 30)
	require.Error(t, err)
}

func TestNewJWT_AsymmetricAlgorithmRejected(t *testing.T) {
	_, err := NewJWT("secret", "RS256", 30)
	require.Error(t, err)
}

func TestJWT_IssueParse_Roundtrip(t *testing.T) {
	j, err := NewJWT("secret", "HS256", 30)
	require.NoError(t, err)
	u := uuid.New()

	raw, err := j.Issue(u)
	require.NoError(t, err)

	claims, err := j.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, u, claims.UserID)
	assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), claims.ExpiresAt, 5*time.Second)
}

func TestJWT_Parse_WrongSecret(t *testing.T) {
	issuer, err := NewJWT("secret-one", "HS256", 30)
	require.NoError(t, err)
	verifier, err := NewJWT("secret-two", "HS256", 30)
	require.NoError(t, err)

	raw, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Parse(raw)
	requireKind(t, err, authfail.KindInvalidToken)
}

func TestJWT_Parse_Garbage(t *testing.T) {
	j, err := NewJWT("secret", "HS256", 30)
	require.NoError(t, err)

	_, err = j.Parse("not.a.token")
	requireKind(t, err, authfail.KindInvalidToken)
}

func TestJWT_Parse_MissingSubject(t *testing.T) {
	j, err := NewJWT("secret", "HS256", 30)
	require.NoError(t, err)

	raw := sign(t, "secret", jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	_, err = j.Parse(raw)
	requireKind(t, err, authfail.KindInvalidCredentials)
}

func TestJWT_Parse_SubjectNotAUUID(t *testing.T) {
	j, err := NewJWT("secret", "HS256", 30)
	require.NoError(t, err)

	raw := sign(t, "secret", jwt.MapClaims{"user": "alice", "exp": time.Now().Add(time.Hour).Unix()})
	_, err = j.Parse(raw)
	requireKind(t, err, authfail.KindInvalidCredentials)
}

func TestJWT_Parse_MissingExpiration(t *testing.T) {
	j, err := NewJWT("secret", "HS256", 30)
	require.NoError(t, err)

	raw := sign(t, "secret", jwt.MapClaims{"user": uuid.NewString()})
	_, err = j.Parse(raw)
	requireKind(t, err, authfail.KindNoExpiration)
}

func TestJWT_Parse_ExpiredTokenStillDecodes(t *testing.T) {
	// Expiry enforcement belongs to the authenticator; Parse only decodes.
	j, err := NewJWT("secret", "HS256", 30)
	require.NoError(t, err)

	u := uuid.New()
	past := time.Now().Add(-time.Hour)
	raw := sign(t, "secret", jwt.MapClaims{"user": u.String(), "exp": past.Unix()})

	claims, err := j.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, u, claims.UserID)
	assert.True(t, claims.ExpiresAt.Before(time.Now().UTC()))
}

func TestJWT_Parse_DifferentSigningMethod(t *testing.T) {
	j, err := NewJWT("secret", "HS256", 30)
	require.NoError(t, err)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"user": uuid.NewString(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = j.Parse(raw)
	requireKind(t, err, authfail.KindInvalidToken)
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func requireKind(t *testing.T, err error, kind authfail.Kind) {
	t.Helper()
	require.Error(t, err)
	var af *authfail.Error
	require.ErrorAs(t, err, &af)
	assert.Equal(t, kind, af.Kind)
}
