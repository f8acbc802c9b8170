package jws

import (
	"errors"
	"fmt"

	"github.com/vitalvas/jwsjcs/canonical"
)

// Signing errors.
var (
	// ErrNoSigner is returned when SignConfig has no Signer configured.
	ErrNoSigner = errors.New("jws: signer must not be nil")

	// ErrNotObject is returned when the payload to sign is not a JSON
	// object. It also matches canonical.ErrInvalidInput.
	ErrNotObject = fmt.Errorf("%w: only JSON objects can be signed", canonical.ErrInvalidInput)

	// ErrInvalidHeader is returned when the header is not an object with a
	// non-empty string "alg" member. It also matches
	// canonical.ErrInvalidInput.
	ErrInvalidHeader = fmt.Errorf("%w: header must be an object with a string alg member", canonical.ErrInvalidInput)

	// ErrAlreadySigned is returned when the payload already carries the
	// signature property.
	ErrAlreadySigned = errors.New("jws: object is already signed")

	// ErrSigningFailed is returned when the signing primitive reports an
	// error, returns no signature, or does not complete before the context
	// is done.
	ErrSigningFailed = errors.New("jws: signing failed")
)

// Verification errors.
var (
	// ErrNoVerifier is returned when VerifyConfig has no Verifier configured.
	ErrNoVerifier = errors.New("jws: verifier must not be nil")

	// ErrMalformedEnvelope is returned when the signature property does not
	// hold a well-formed "<header>..<signature>" compact string.
	ErrMalformedEnvelope = errors.New("jws: malformed envelope")

	// ErrSignatureNotFound is returned when the signed object has no
	// signature property. It also matches ErrMalformedEnvelope.
	ErrSignatureNotFound = fmt.Errorf("%w: signature property not found", ErrMalformedEnvelope)

	// ErrAlgorithmNotAllowed is returned when the header algorithm is not
	// in VerifyConfig.Algorithms.
	ErrAlgorithmNotAllowed = errors.New("jws: algorithm not allowed")

	// ErrVerificationFailed is returned when the verification primitive
	// reports an error or does not complete before the context is done.
	// A signature that simply does not match is reported as Invalid, not
	// as an error.
	ErrVerificationFailed = errors.New("jws: verification failed")
)
