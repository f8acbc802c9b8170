package jwa

import (
	"crypto/ed25519"
	"fmt"

	"github.com/cloudflare/circl/sign/ed448"
)

// --- Ed25519 ---

type ed25519Signer struct {
	key   ed25519.PrivateKey
	keyID string
}

// NewEd25519Signer creates an EdDSA Signer using Ed25519.
func NewEd25519Signer(keyID string, key ed25519.PrivateKey) (Signer, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: ed25519 private key must be %d bytes", ErrInvalidKey, ed25519.PrivateKeySize)
	}

	return &ed25519Signer{key: key, keyID: keyID}, nil
}

func (s *ed25519Signer) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(s.key, message), nil
}

func (s *ed25519Signer) Algorithm() Algorithm { return EdDSA }
func (s *ed25519Signer) KeyID() string        { return s.keyID }

type ed25519Verifier struct {
	key   ed25519.PublicKey
	keyID string
}

// NewEd25519Verifier creates an EdDSA Verifier using Ed25519.
func NewEd25519Verifier(keyID string, key ed25519.PublicKey) (Verifier, error) {
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: ed25519 public key must be %d bytes", ErrInvalidKey, ed25519.PublicKeySize)
	}

	return &ed25519Verifier{key: key, keyID: keyID}, nil
}

func (v *ed25519Verifier) Verify(message, signature []byte) error {
	if !ed25519.Verify(v.key, message, signature) {
		return ErrSignatureInvalid
	}

	return nil
}

func (v *ed25519Verifier) Algorithm() Algorithm { return EdDSA }
func (v *ed25519Verifier) KeyID() string        { return v.keyID }

// --- Ed448 ---

// JWS uses pure Ed448 with an empty context string (RFC 8037).
const ed448Context = ""

type ed448Signer struct {
	key   ed448.PrivateKey
	keyID string
}

// NewEd448Signer creates an EdDSA Signer using Ed448.
func NewEd448Signer(keyID string, key ed448.PrivateKey) (Signer, error) {
	if len(key) != ed448.PrivateKeySize {
		return nil, fmt.Errorf("%w: ed448 private key must be %d bytes", ErrInvalidKey, ed448.PrivateKeySize)
	}

	return &ed448Signer{key: key, keyID: keyID}, nil
}

func (s *ed448Signer) Sign(message []byte) ([]byte, error) {
	return ed448.Sign(s.key, message, ed448Context), nil
}

func (s *ed448Signer) Algorithm() Algorithm { return EdDSA }
func (s *ed448Signer) KeyID() string        { return s.keyID }

type ed448Verifier struct {
	key   ed448.PublicKey
	keyID string
}

// NewEd448Verifier creates an EdDSA Verifier using Ed448.
func NewEd448Verifier(keyID string, key ed448.PublicKey) (Verifier, error) {
	if len(key) != ed448.PublicKeySize {
		return nil, fmt.Errorf("%w: ed448 public key must be %d bytes", ErrInvalidKey, ed448.PublicKeySize)
	}

	return &ed448Verifier{key: key, keyID: keyID}, nil
}

func (v *ed448Verifier) Verify(message, signature []byte) error {
	if len(signature) != ed448.SignatureSize || !ed448.Verify(v.key, message, signature, ed448Context) {
		return ErrSignatureInvalid
	}

	return nil
}

func (v *ed448Verifier) Algorithm() Algorithm { return EdDSA }
func (v *ed448Verifier) KeyID() string        { return v.keyID }
