package model

// PasswordHasher hashes and verifies password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}
