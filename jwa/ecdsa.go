package jwa

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"
)

// ecdsaAlgorithm maps a curve to its JWS algorithm.
func ecdsaAlgorithm(curve elliptic.Curve) (Algorithm, error) {
	switch curve {
	case elliptic.P256():
		return ES256, nil
	case elliptic.P384():
		return ES384, nil
	case elliptic.P521():
		return ES512, nil
	}

	return "", fmt.Errorf("%w: unsupported ecdsa curve", ErrInvalidKey)
}

// coordinateSize is the byte length of one of r or s for the curve.
func coordinateSize(curve elliptic.Curve) int {
	return (curve.Params().BitSize + 7) / 8
}

type ecdsaSigner struct {
	alg   Algorithm
	key   *ecdsa.PrivateKey
	keyID string
}

// NewECDSASigner creates a Signer using ECDSA. The algorithm follows from the
// key curve: P-256 is ES256, P-384 is ES384 and P-521 is ES512.
func NewECDSASigner(keyID string, key *ecdsa.PrivateKey) (Signer, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: ecdsa private key must not be nil", ErrInvalidKey)
	}

	alg, err := ecdsaAlgorithm(key.Curve)
	if err != nil {
		return nil, err
	}

	return &ecdsaSigner{alg: alg, key: key, keyID: keyID}, nil
}

func (s *ecdsaSigner) Sign(message []byte) ([]byte, error) {
	r, sv, err := ecdsa.Sign(rand.Reader, s.key, s.alg.digest(message))
	if err != nil {
		return nil, err
	}

	size := coordinateSize(s.key.Curve)
	out := make([]byte, 2*size)
	r.FillBytes(out[:size])
	sv.FillBytes(out[size:])

	return out, nil
}

func (s *ecdsaSigner) Algorithm() Algorithm { return s.alg }
func (s *ecdsaSigner) KeyID() string        { return s.keyID }

type ecdsaVerifier struct {
	alg   Algorithm
	key   *ecdsa.PublicKey
	keyID string
}

// NewECDSAVerifier creates a Verifier using ECDSA with the algorithm implied
// by the key curve.
func NewECDSAVerifier(keyID string, key *ecdsa.PublicKey) (Verifier, error) {
	if key == nil || key.Curve == nil {
		return nil, fmt.Errorf("%w: ecdsa public key must not be nil", ErrInvalidKey)
	}

	alg, err := ecdsaAlgorithm(key.Curve)
	if err != nil {
		return nil, err
	}

	return &ecdsaVerifier{alg: alg, key: key, keyID: keyID}, nil
}

func (v *ecdsaVerifier) Verify(message, signature []byte) error {
	size := coordinateSize(v.key.Curve)
	if len(signature) != 2*size {
		return ErrSignatureInvalid
	}

	r := new(big.Int).SetBytes(signature[:size])
	s := new(big.Int).SetBytes(signature[size:])

	if !ecdsa.Verify(v.key, v.alg.digest(message), r, s) {
		return ErrSignatureInvalid
	}

	return nil
}

func (v *ecdsaVerifier) Algorithm() Algorithm { return v.alg }
func (v *ecdsaVerifier) KeyID() string        { return v.keyID }
