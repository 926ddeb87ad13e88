package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager issues and decodes identity tokens.
type TokenManager interface {
	Issue(userID uuid.UUID) (string, error)
	Parse(token string) (TokenClaims, error)
}

// TokenClaims is the decoded claims set of an identity token. Expiry is
// carried through unchecked; enforcing it is the authenticator's job.
type TokenClaims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}
