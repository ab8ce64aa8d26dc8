package sigs

import "github.com/iov-one/royalty/errors"

// x/sigs reserves 20 ~ 29.
var (
	// ErrInvalidSequence is returned when a signature was created for a
	// different sequence than the one expected for its signer.
	ErrInvalidSequence = errors.Register(20, "invalid sequence number")
)
