package jwa

import (
	"crypto"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"slices"
)

// Algorithm is a JWS "alg" header value.
type Algorithm string

const (
	// RS256 is RSASSA-PKCS1-v1_5 using SHA-256.
	RS256 Algorithm = "RS256"
	// RS384 is RSASSA-PKCS1-v1_5 using SHA-384.
	RS384 Algorithm = "RS384"
	// RS512 is RSASSA-PKCS1-v1_5 using SHA-512.
	RS512 Algorithm = "RS512"

	// PS256 is RSASSA-PSS using SHA-256 and MGF1 with SHA-256.
	PS256 Algorithm = "PS256"
	// PS384 is RSASSA-PSS using SHA-384 and MGF1 with SHA-384.
	PS384 Algorithm = "PS384"
	// PS512 is RSASSA-PSS using SHA-512 and MGF1 with SHA-512.
	PS512 Algorithm = "PS512"

	// ES256 is ECDSA using P-256 and SHA-256.
	ES256 Algorithm = "ES256"
	// ES384 is ECDSA using P-384 and SHA-384.
	ES384 Algorithm = "ES384"
	// ES512 is ECDSA using P-521 and SHA-512.
	ES512 Algorithm = "ES512"

	// EdDSA is the Edwards-curve signature algorithm; the curve (Ed25519 or
	// Ed448) is implied by the key.
	EdDSA Algorithm = "EdDSA"

	// HS256 is HMAC using SHA-256.
	HS256 Algorithm = "HS256"
	// HS384 is HMAC using SHA-384.
	HS384 Algorithm = "HS384"
	// HS512 is HMAC using SHA-512.
	HS512 Algorithm = "HS512"
)

var algorithms = []Algorithm{
	RS256, RS384, RS512,
	PS256, PS384, PS512,
	ES256, ES384, ES512,
	EdDSA,
	HS256, HS384, HS512,
}

// Algorithms returns every supported algorithm.
func Algorithms() []Algorithm {
	return slices.Clone(algorithms)
}

// String returns the registered "alg" identifier.
func (a Algorithm) String() string {
	return string(a)
}

// Valid reports whether a is a supported algorithm.
func (a Algorithm) Valid() bool {
	return slices.Contains(algorithms, a)
}

// hash returns the digest used by a. EdDSA has none.
func (a Algorithm) hash() crypto.Hash {
	switch a {
	case RS256, PS256, ES256, HS256:
		return crypto.SHA256
	case RS384, PS384, ES384, HS384:
		return crypto.SHA384
	case RS512, PS512, ES512, HS512:
		return crypto.SHA512
	}

	return 0
}

func (a Algorithm) digest(message []byte) []byte {
	h := a.hash().New()
	h.Write(message)

	return h.Sum(nil)
}

// Signer creates signatures over JWS signing input.
type Signer interface {
	// Sign produces a signature over the given message bytes.
	Sign(message []byte) ([]byte, error)

	// Algorithm returns the algorithm identifier for this signer.
	Algorithm() Algorithm

	// KeyID returns the key identifier, if any.
	KeyID() string
}

// Verifier validates signatures over JWS signing input.
type Verifier interface {
	// Verify checks that signature is valid for the given message bytes.
	// Returns nil on success and ErrSignatureInvalid on mismatch.
	Verify(message, signature []byte) error

	// Algorithm returns the algorithm identifier for this verifier.
	Algorithm() Algorithm

	// KeyID returns the key identifier, if any.
	KeyID() string
}
