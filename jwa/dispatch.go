package jwa

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"fmt"

	"github.com/cloudflare/circl/sign/ed448"
)

// NewSigner creates a Signer for alg from private key material.
//
// Supported key types are *rsa.PrivateKey, *ecdsa.PrivateKey,
// ed25519.PrivateKey, ed448.PrivateKey and []byte (HMAC secret). For ECDSA
// and EdDSA keys alg may be empty, in which case it is derived from the key.
func NewSigner(alg Algorithm, keyID string, key any) (Signer, error) {
	var (
		s   Signer
		err error
	)

	switch k := key.(type) {
	case *rsa.PrivateKey:
		return NewRSASigner(alg, keyID, k)
	case []byte:
		return NewHMACSigner(alg, keyID, k)
	case *ecdsa.PrivateKey:
		s, err = NewECDSASigner(keyID, k)
	case ed25519.PrivateKey:
		s, err = NewEd25519Signer(keyID, k)
	case ed448.PrivateKey:
		s, err = NewEd448Signer(keyID, k)
	default:
		return nil, fmt.Errorf("%w: unsupported private key type %T", ErrInvalidKey, key)
	}

	if err != nil {
		return nil, err
	}

	if err := matchAlgorithm(alg, s.Algorithm()); err != nil {
		return nil, err
	}

	return s, nil
}

// NewVerifier creates a Verifier for alg from public key material.
//
// Supported key types are *rsa.PublicKey, *ecdsa.PublicKey,
// ed25519.PublicKey, ed448.PublicKey and []byte (HMAC secret). For ECDSA and
// EdDSA keys alg may be empty, in which case it is derived from the key.
func NewVerifier(alg Algorithm, keyID string, key any) (Verifier, error) {
	var (
		v   Verifier
		err error
	)

	switch k := key.(type) {
	case *rsa.PublicKey:
		return NewRSAVerifier(alg, keyID, k)
	case []byte:
		return NewHMACVerifier(alg, keyID, k)
	case *ecdsa.PublicKey:
		v, err = NewECDSAVerifier(keyID, k)
	case ed25519.PublicKey:
		v, err = NewEd25519Verifier(keyID, k)
	case ed448.PublicKey:
		v, err = NewEd448Verifier(keyID, k)
	default:
		return nil, fmt.Errorf("%w: unsupported public key type %T", ErrInvalidKey, key)
	}

	if err != nil {
		return nil, err
	}

	if err := matchAlgorithm(alg, v.Algorithm()); err != nil {
		return nil, err
	}

	return v, nil
}

func matchAlgorithm(requested, actual Algorithm) error {
	if requested != "" && requested != actual {
		return fmt.Errorf("%w: key requires %s, got %s", ErrUnsupportedAlgorithm, actual, requested)
	}

	return nil
}
