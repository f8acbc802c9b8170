package jws

import (
	"context"
	"fmt"
	"slices"

	"github.com/vitalvas/jwsjcs/canonical"
	"github.com/vitalvas/jwsjcs/jsonvalue"
)

// Result is the outcome of a structurally valid verification.
type Result int

const (
	// Invalid means the signature does not match the object.
	Invalid Result = iota

	// Valid means the signature matches the object.
	Valid
)

// String returns "valid" or "invalid".
func (r Result) String() string {
	if r == Valid {
		return "valid"
	}

	return "invalid"
}

// VerifyConfig configures JWS-JCS verification.
type VerifyConfig struct {
	// Verifier checks the raw signature. Required.
	Verifier Verifier

	// SignatureProperty names the member holding the compact envelope.
	// Defaults to DefaultSignatureProperty.
	SignatureProperty string

	// MaxDepth limits nesting of the payload. Zero means no limit.
	MaxDepth int

	// Algorithms restricts the accepted header "alg" values. When empty,
	// any algorithm is passed on to the Verifier.
	Algorithms []string
}

// Verification is the result of Verify.
type Verification struct {
	// Result reports whether the signature matched.
	Result Result

	// Envelope is the reconstructed envelope, including the canonical
	// payload that was checked.
	Envelope *Envelope
}

// Valid reports whether the signature matched.
func (v *Verification) Valid() bool { return v.Result == Valid }

// Verify checks the compact envelope stored in the signature property of
// signed against the canonical form of the remaining members.
//
// Structural problems are returned as errors (ErrMalformedEnvelope and
// friends). A signature that does not match yields Result Invalid with a
// nil error.
func Verify(ctx context.Context, signed jsonvalue.Value, cfg VerifyConfig) (*Verification, error) {
	if cfg.Verifier == nil {
		return nil, ErrNoVerifier
	}

	property := cfg.SignatureProperty
	if property == "" {
		property = DefaultSignatureProperty
	}

	if !signed.IsObject() {
		return nil, ErrNotObject
	}

	// Extract the compact envelope.
	prop, ok := signed.Lookup(property)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSignatureNotFound, property)
	}

	if prop.Kind() != jsonvalue.KindString {
		return nil, fmt.Errorf("%w: property %q is a %s, not a string", ErrMalformedEnvelope, property, prop.Kind())
	}

	env, err := ParseCompact(prop.Text())
	if err != nil {
		return nil, err
	}

	// Check the algorithm allow-list.
	if len(cfg.Algorithms) > 0 && !slices.Contains(cfg.Algorithms, env.Algorithm()) {
		return nil, fmt.Errorf("%w: %s", ErrAlgorithmNotAllowed, env.Algorithm())
	}

	// Reconstruct the canonical payload.
	payload, err := canonical.CanonicalizeConfig(signed.Without(property), canonical.Config{MaxDepth: cfg.MaxDepth})
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	env.payload = payload
	input := env.SigningInput()
	sig := env.Signature()

	ok, err = runWithContext(ctx, func() (bool, error) {
		return cfg.Verifier.Verify(input, sig, env.header)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	res := &Verification{Result: Invalid, Envelope: env}
	if ok {
		res.Result = Valid
	}

	return res, nil
}
