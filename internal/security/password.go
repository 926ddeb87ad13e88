package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/OpenLabsEx/API/internal/model"
)

var _ model.PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher implements PasswordHasher with bcrypt digests.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher at the default bcrypt cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
