package jws

import (
	"context"
	"fmt"

	"github.com/vitalvas/jwsjcs/canonical"
	"github.com/vitalvas/jwsjcs/codec"
	"github.com/vitalvas/jwsjcs/jsonvalue"
)

// SignConfig configures JWS-JCS signing.
type SignConfig struct {
	// Header is the JWS header object. It must contain a non-empty string
	// "alg" member and may embed a public key ("jwk") or key id ("kid").
	// Required.
	Header jsonvalue.Value

	// Signer produces the raw signature. Required.
	Signer Signer

	// SignatureProperty names the member that receives the compact
	// envelope. Defaults to DefaultSignatureProperty.
	SignatureProperty string

	// MaxDepth limits nesting of the header and payload. Zero means no
	// limit.
	MaxDepth int
}

// Signed is the result of Sign.
type Signed struct {
	// Envelope holds the header, canonical payload and signature.
	Envelope *Envelope

	// Value is the payload with the signature property appended.
	Value jsonvalue.Value
}

// Sign canonicalizes payload and header, signs the resulting JWS signing
// input and returns the payload with the compact envelope injected under
// the signature property.
func Sign(ctx context.Context, payload jsonvalue.Value, cfg SignConfig) (*Signed, error) {
	if cfg.Signer == nil {
		return nil, ErrNoSigner
	}

	property := cfg.SignatureProperty
	if property == "" {
		property = DefaultSignatureProperty
	}

	if !payload.IsObject() {
		return nil, ErrNotObject
	}

	if payload.Has(property) {
		return nil, fmt.Errorf("%w: property %q present", ErrAlreadySigned, property)
	}

	if err := checkHeader(cfg.Header); err != nil {
		return nil, err
	}

	canonCfg := canonical.Config{MaxDepth: cfg.MaxDepth}

	rawHeader, err := canonical.CanonicalizeConfig(cfg.Header, canonCfg)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	rawPayload, err := canonical.CanonicalizeConfig(payload, canonCfg)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	env := &Envelope{
		header:        cfg.Header,
		encodedHeader: codec.EncodeBase64URL(rawHeader),
		payload:       rawPayload,
	}

	input := env.SigningInput()

	sig, err := runWithContext(ctx, func() ([]byte, error) {
		return cfg.Signer.Sign(input)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	if len(sig) == 0 {
		return nil, fmt.Errorf("%w: empty signature", ErrSigningFailed)
	}

	env.signature = clone(sig)

	return &Signed{
		Envelope: env,
		Value:    payload.With(property, jsonvalue.String(env.Compact())),
	}, nil
}
