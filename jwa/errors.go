package jwa

import "errors"

var (
	// ErrInvalidKey is returned when key material is invalid (nil, wrong
	// curve, insufficient size, etc.).
	ErrInvalidKey = errors.New("jwa: invalid key material")

	// ErrUnsupportedAlgorithm is returned for an algorithm identifier that
	// is not registered or does not fit the supplied key.
	ErrUnsupportedAlgorithm = errors.New("jwa: unsupported algorithm")

	// ErrSignatureInvalid is returned when a signature does not verify.
	ErrSignatureInvalid = errors.New("jwa: signature verification failed")
)
