package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/OpenLabsEx/API/internal/authfail"
	"github.com/OpenLabsEx/API/internal/model"
)

// userClaim is the name of the subject claim. Kept as "user" for
// compatibility with tokens issued by earlier deployments.
const userClaim = "user"

// JWT implements TokenManager backed by a symmetric signing secret.
type JWT struct {
	secret []byte
	method jwt.SigningMethod
	expiry time.Duration
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a token manager for the given secret, signing algorithm
// name (e.g. "HS256") and expiry in minutes.
func NewJWT(secret, algorithm string, expireMinutes int) (*JWT, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not symmetric", algorithm)
	}

	return &JWT{
		secret: []byte(secret),
		method: method,
		expiry: time.Duration(expireMinutes) * time.Minute,
	}, nil
}

// Issue builds and signs a token for the user with claims
// {user: <id>, exp: now+expiry}.
func (j *JWT) Issue(userID uuid.UUID) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		userClaim: userID.String(),
		"exp":     now.Add(j.expiry).Unix(),
	}

	signed, err := jwt.NewWithClaims(j.method, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Parse decodes and verifies a token, returning its claims. Expiry is NOT
// enforced here: the authenticator compares it against the wall clock so
// that a missing claim and an elapsed one classify differently. Failures
// are classified authfail errors.
func (j *JWT) Parse(raw string) (model.TokenClaims, error) {
	parsed, err := jwt.Parse(raw, j.keyFunc,
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !parsed.Valid {
		return model.TokenClaims{}, authfail.InvalidToken()
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaims{}, authfail.InvalidToken()
	}

	// Both claims are mandatory regardless of signature validity.
	subject, ok := claims[userClaim].(string)
	if !ok || subject == "" {
		return model.TokenClaims{}, authfail.InvalidCredentials()
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return model.TokenClaims{}, authfail.InvalidCredentials()
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return model.TokenClaims{}, authfail.NoExpiration()
	}

	return model.TokenClaims{
		UserID:    userID,
		ExpiresAt: expiry.Time.UTC(),
	}, nil
}

func (j *JWT) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
	}
	return j.secret, nil
}
