package authfail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        *Error
		wantKind   Kind
		wantDetail string
	}{
		{"missing credentials", MissingCredentials(), KindMissingCredentials, "Authentication credentials missing"},
		{"invalid token", InvalidToken(), KindInvalidToken, "Invalid authentication credentials"},
		{"invalid credentials", InvalidCredentials(), KindInvalidCredentials, "Invalid authentication credentials"},
		{"no expiration", NoExpiration(), KindNoExpiration, "Token has no expiration"},
		{"expired", Expired(), KindExpired, "Token has expired"},
		{"user not found", UserNotFound(), KindUserNotFound, "User not found"},
		{"forbidden", Forbidden(), KindForbidden, "Not enough permissions"},
		{"login rejected", LoginRejected(), KindInvalidCredentials, "Invalid credentials or user does not exist"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantKind, tt.err.Kind)
			assert.Equal(t, tt.wantDetail, tt.err.Detail)
		})
	}
}

func TestError_Message(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "expired: Token has expired", Expired().Error())
}
