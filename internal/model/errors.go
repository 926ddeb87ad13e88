package model

import "errors"

var (
	// ErrNotFound signals the requested record does not exist or is not
	// visible to the requester.
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals a uniqueness violation, e.g. a duplicate email.
	ErrConflict = errors.New("record already exists")
)
