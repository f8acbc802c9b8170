package jwa

import (
	"crypto/hmac"
	"fmt"
)

func isHMAC(alg Algorithm) bool {
	return alg == HS256 || alg == HS384 || alg == HS512
}

type hmacKey struct {
	alg   Algorithm
	key   []byte
	keyID string
}

// newHMACKey validates the secret. RFC 7518 Section 3.2 requires a key at
// least as long as the hash output.
func newHMACKey(alg Algorithm, keyID string, secret []byte) (*hmacKey, error) {
	if !isHMAC(alg) {
		return nil, fmt.Errorf("%w: %q is not an HMAC algorithm", ErrUnsupportedAlgorithm, alg)
	}

	if minLen := alg.hash().Size(); len(secret) < minLen {
		return nil, fmt.Errorf("%w: %s key must be at least %d bytes", ErrInvalidKey, alg, minLen)
	}

	keyCopy := make([]byte, len(secret))
	copy(keyCopy, secret)

	return &hmacKey{alg: alg, key: keyCopy, keyID: keyID}, nil
}

func (k *hmacKey) mac(message []byte) []byte {
	h := hmac.New(k.alg.hash().New, k.key)
	h.Write(message)

	return h.Sum(nil)
}

func (k *hmacKey) Algorithm() Algorithm { return k.alg }
func (k *hmacKey) KeyID() string        { return k.keyID }

type hmacSigner struct{ *hmacKey }

// NewHMACSigner creates a Signer for HS256, HS384 or HS512.
func NewHMACSigner(alg Algorithm, keyID string, secret []byte) (Signer, error) {
	k, err := newHMACKey(alg, keyID, secret)
	if err != nil {
		return nil, err
	}

	return hmacSigner{k}, nil
}

func (s hmacSigner) Sign(message []byte) ([]byte, error) {
	return s.mac(message), nil
}

type hmacVerifier struct{ *hmacKey }

// NewHMACVerifier creates a Verifier for HS256, HS384 or HS512.
func NewHMACVerifier(alg Algorithm, keyID string, secret []byte) (Verifier, error) {
	k, err := newHMACKey(alg, keyID, secret)
	if err != nil {
		return nil, err
	}

	return hmacVerifier{k}, nil
}

func (v hmacVerifier) Verify(message, signature []byte) error {
	if !hmac.Equal(v.mac(message), signature) {
		return ErrSignatureInvalid
	}

	return nil
}
