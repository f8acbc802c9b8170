package jwa

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

// Minimum RSA key size in bits.
const minRSAKeyBits = 2048

func isRSA(alg Algorithm) bool {
	switch alg {
	case RS256, RS384, RS512, PS256, PS384, PS512:
		return true
	}

	return false
}

func isPSS(alg Algorithm) bool {
	return alg == PS256 || alg == PS384 || alg == PS512
}

var pssOptions = &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash}

type rsaSigner struct {
	alg   Algorithm
	key   *rsa.PrivateKey
	keyID string
}

// NewRSASigner creates a Signer for one of the RS* or PS* algorithms.
func NewRSASigner(alg Algorithm, keyID string, key *rsa.PrivateKey) (Signer, error) {
	if !isRSA(alg) {
		return nil, fmt.Errorf("%w: %q is not an RSA algorithm", ErrUnsupportedAlgorithm, alg)
	}

	if key == nil {
		return nil, fmt.Errorf("%w: rsa private key must not be nil", ErrInvalidKey)
	}

	if key.N.BitLen() < minRSAKeyBits {
		return nil, fmt.Errorf("%w: rsa key must be at least %d bits", ErrInvalidKey, minRSAKeyBits)
	}

	return &rsaSigner{alg: alg, key: key, keyID: keyID}, nil
}

func (s *rsaSigner) Sign(message []byte) ([]byte, error) {
	digest := s.alg.digest(message)

	if isPSS(s.alg) {
		return rsa.SignPSS(rand.Reader, s.key, s.alg.hash(), digest, pssOptions)
	}

	return rsa.SignPKCS1v15(rand.Reader, s.key, s.alg.hash(), digest)
}

func (s *rsaSigner) Algorithm() Algorithm { return s.alg }
func (s *rsaSigner) KeyID() string        { return s.keyID }

type rsaVerifier struct {
	alg   Algorithm
	key   *rsa.PublicKey
	keyID string
}

// NewRSAVerifier creates a Verifier for one of the RS* or PS* algorithms.
func NewRSAVerifier(alg Algorithm, keyID string, key *rsa.PublicKey) (Verifier, error) {
	if !isRSA(alg) {
		return nil, fmt.Errorf("%w: %q is not an RSA algorithm", ErrUnsupportedAlgorithm, alg)
	}

	if key == nil || key.N == nil {
		return nil, fmt.Errorf("%w: rsa public key must not be nil", ErrInvalidKey)
	}

	if key.N.BitLen() < minRSAKeyBits {
		return nil, fmt.Errorf("%w: rsa key must be at least %d bits", ErrInvalidKey, minRSAKeyBits)
	}

	return &rsaVerifier{alg: alg, key: key, keyID: keyID}, nil
}

func (v *rsaVerifier) Verify(message, signature []byte) error {
	digest := v.alg.digest(message)

	var err error
	if isPSS(v.alg) {
		err = rsa.VerifyPSS(v.key, v.alg.hash(), digest, signature, pssOptions)
	} else {
		err = rsa.VerifyPKCS1v15(v.key, v.alg.hash(), digest, signature)
	}

	if err != nil {
		return ErrSignatureInvalid
	}

	return nil
}

func (v *rsaVerifier) Algorithm() Algorithm { return v.alg }
func (v *rsaVerifier) KeyID() string        { return v.keyID }
