package jws

import (
	"context"
	"fmt"
	"strings"

	"github.com/vitalvas/jwsjcs/codec"
	"github.com/vitalvas/jwsjcs/jsonvalue"
)

// DefaultSignatureProperty is the object member that carries the compact
// envelope string.
const DefaultSignatureProperty = "signature"

// Signer produces a raw signature over the JWS signing input.
type Signer interface {
	Sign(signingInput []byte) ([]byte, error)
}

// SignerFunc adapts a function to the Signer interface.
type SignerFunc func(signingInput []byte) ([]byte, error)

// Sign calls f(signingInput).
func (f SignerFunc) Sign(signingInput []byte) ([]byte, error) { return f(signingInput) }

// Verifier checks a raw signature over the JWS signing input. The decoded
// header is provided so implementations can select a key from the algorithm
// identifier or an embedded public key.
//
// Verify returns false with a nil error for a signature that does not
// match. A non-nil error means the check itself could not be performed.
type Verifier interface {
	Verify(signingInput, signature []byte, header jsonvalue.Value) (bool, error)
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(signingInput, signature []byte, header jsonvalue.Value) (bool, error)

// Verify calls f(signingInput, signature, header).
func (f VerifierFunc) Verify(signingInput, signature []byte, header jsonvalue.Value) (bool, error) {
	return f(signingInput, signature, header)
}

// Envelope is an assembled signature: header, canonical payload and raw
// signature bytes. It is immutable; accessors return copies.
type Envelope struct {
	header        jsonvalue.Value
	encodedHeader string
	payload       []byte
	signature     []byte
}

// Header returns the decoded header object.
func (e *Envelope) Header() jsonvalue.Value { return e.header }

// EncodedHeader returns the base64url header segment exactly as it appears
// in the compact serialization.
func (e *Envelope) EncodedHeader() string { return e.encodedHeader }

// Algorithm returns the "alg" member of the header.
func (e *Envelope) Algorithm() string {
	alg, _ := e.header.Lookup("alg")
	return alg.Text()
}

// Payload returns the canonical payload bytes. It is nil for envelopes
// obtained from ParseCompact.
func (e *Envelope) Payload() []byte { return clone(e.payload) }

// Signature returns the raw signature bytes.
func (e *Envelope) Signature() []byte { return clone(e.signature) }

// SigningInput returns the bytes covered by the signature.
func (e *Envelope) SigningInput() []byte {
	return signingInput(e.encodedHeader, e.payload)
}

// Compact returns the detached compact serialization "<header>..<signature>".
func (e *Envelope) Compact() string {
	return e.encodedHeader + ".." + codec.EncodeBase64URL(e.signature)
}

// ParseCompact parses a detached compact serialization. The returned
// envelope carries no payload.
func ParseCompact(compact string) (*Envelope, error) {
	segments := strings.Split(compact, ".")
	if len(segments) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedEnvelope, len(segments))
	}

	encHeader, encPayload, encSig := segments[0], segments[1], segments[2]

	if encPayload != "" {
		return nil, fmt.Errorf("%w: payload segment must be empty", ErrMalformedEnvelope)
	}

	if encHeader == "" {
		return nil, fmt.Errorf("%w: empty header segment", ErrMalformedEnvelope)
	}

	if encSig == "" {
		return nil, fmt.Errorf("%w: empty signature segment", ErrMalformedEnvelope)
	}

	rawHeader, err := codec.DecodeBase64URL(encHeader)
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedEnvelope, err)
	}

	header, err := jsonvalue.Parse(rawHeader)
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedEnvelope, err)
	}

	if checkHeader(header) != nil {
		return nil, fmt.Errorf("%w: header must be an object with a string alg member", ErrMalformedEnvelope)
	}

	sig, err := codec.DecodeBase64URL(encSig)
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %w", ErrMalformedEnvelope, err)
	}

	return &Envelope{
		header:        header,
		encodedHeader: encHeader,
		signature:     sig,
	}, nil
}

// checkHeader enforces the minimum header shape.
func checkHeader(header jsonvalue.Value) error {
	if !header.IsObject() {
		return ErrInvalidHeader
	}

	alg, ok := header.Lookup("alg")
	if !ok || alg.Kind() != jsonvalue.KindString || alg.Text() == "" {
		return ErrInvalidHeader
	}

	return nil
}

func signingInput(encodedHeader string, payload []byte) []byte {
	encPayload := codec.EncodeBase64URL(payload)

	out := make([]byte, 0, len(encodedHeader)+1+len(encPayload))
	out = append(out, encodedHeader...)
	out = append(out, '.')
	out = append(out, encPayload...)

	return out
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}

	out := make([]byte, len(b))
	copy(out, b)

	return out
}

// callResult carries the outcome of a callback run under a context.
type callResult[T any] struct {
	value T
	err   error
}

// runWithContext runs fn and waits for it or for ctx to be done, whichever
// comes first. A callback that outlives ctx finishes in the background and
// its result is discarded.
func runWithContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	done := make(chan callResult[T], 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- callResult[T]{err: fmt.Errorf("callback panic: %v", r)}
			}
		}()

		v, err := fn()
		done <- callResult[T]{value: v, err: err}
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
