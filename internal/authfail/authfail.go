// Package authfail defines the classified authentication failures produced
// by the token authenticator and credential issuer. Each failure carries a
// machine-readable kind, used by the HTTP error translator to pick a status
// code, and a human-readable detail that becomes the response body.
package authfail

// Kind is the fixed vocabulary of authentication failure classifications.
type Kind string

const (
	KindMissingCredentials Kind = "missing_credentials"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindNoExpiration       Kind = "no_expiration"
	KindExpired            Kind = "expired"
	KindUserNotFound       Kind = "user_not_found"
	KindInvalidToken       Kind = "invalid_token"
	KindForbidden          Kind = "forbidden"
)

// Error is a classified authentication failure. It propagates unchanged
// from the point of detection to the error translator.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Detail
}

// MissingCredentials reports that no token was supplied in either
// transport location.
func MissingCredentials() *Error {
	return &Error{Kind: KindMissingCredentials, Detail: "Authentication credentials missing"}
}

// InvalidToken reports a token that fails decoding or signature checks.
func InvalidToken() *Error {
	return &Error{Kind: KindInvalidToken, Detail: "Invalid authentication credentials"}
}

// InvalidCredentials reports a decoded token with no subject claim.
func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Detail: "Invalid authentication credentials"}
}

// NoExpiration reports a decoded token with no expiration claim.
func NoExpiration() *Error {
	return &Error{Kind: KindNoExpiration, Detail: "Token has no expiration"}
}

// Expired reports a token past its expiration time.
func Expired() *Error {
	return &Error{Kind: KindExpired, Detail: "Token has expired"}
}

// UserNotFound reports a valid token whose subject no longer resolves to a
// stored user.
func UserNotFound() *Error {
	return &Error{Kind: KindUserNotFound, Detail: "User not found"}
}

// Forbidden reports an authenticated user lacking admin rights.
func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Detail: "Not enough permissions"}
}

// LoginRejected is the undifferentiated login failure: the same message is
// returned whether the user does not exist or the password does not match,
// so responses cannot be used to enumerate accounts.
func LoginRejected() *Error {
	return &Error{Kind: KindInvalidCredentials, Detail: "Invalid credentials or user does not exist"}
}
