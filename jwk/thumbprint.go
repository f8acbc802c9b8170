package jwk

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"github.com/vitalvas/jwsjcs/canonical"
	"github.com/vitalvas/jwsjcs/codec"
	"github.com/vitalvas/jwsjcs/jsonvalue"
)

// DigestAlgorithm identifies the hash used for a JWK thumbprint.
type DigestAlgorithm string

const (
	// DigestSHA256 uses SHA-256.
	DigestSHA256 DigestAlgorithm = "sha-256"

	// DigestSHA512 uses SHA-512.
	DigestSHA512 DigestAlgorithm = "sha-512"
)

// requiredMembers lists the members hashed for each key type (RFC 7638
// Section 3.2, RFC 8037 Section 2).
var requiredMembers = map[string][]string{
	KeyTypeRSA: {"e", "kty", "n"},
	KeyTypeEC:  {"crv", "kty", "x", "y"},
	KeyTypeOKP: {"crv", "kty", "x"},
	KeyTypeOct: {"k", "kty"},
}

// Thumbprint computes the RFC 7638 thumbprint of a JWK object and returns it
// base64url encoded. Only the required members of the key type are hashed,
// in canonical form, so private members and metadata do not affect the
// result.
func Thumbprint(v jsonvalue.Value, alg DigestAlgorithm) (string, error) {
	kty, err := stringMember(v, "kty")
	if err != nil {
		return "", err
	}

	names, ok := requiredMembers[kty]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKey, kty)
	}

	members := make([]jsonvalue.Member, 0, len(names))
	for _, name := range names {
		s, err := stringMember(v, name)
		if err != nil {
			return "", err
		}

		members = append(members, jsonvalue.Member{Key: name, Value: jsonvalue.String(s)})
	}

	data, err := canonical.Canonicalize(jsonvalue.Object(members...))
	if err != nil {
		return "", err
	}

	digest, err := computeDigest(data, alg)
	if err != nil {
		return "", err
	}

	return codec.EncodeBase64URL(digest), nil
}

// Thumbprint returns the RFC 7638 thumbprint of the key's public form, or
// of the secret for symmetric keys.
func (k *Key) Thumbprint(alg DigestAlgorithm) (string, error) {
	src := k
	if _, ok := k.Key.([]byte); !ok {
		pub, err := k.Public()
		if err != nil {
			return "", err
		}

		src = pub
	}

	v, err := src.Value()
	if err != nil {
		return "", err
	}

	return Thumbprint(v, alg)
}

func computeDigest(data []byte, alg DigestAlgorithm) ([]byte, error) {
	switch alg {
	case DigestSHA256:
		h := sha256.Sum256(data)
		return h[:], nil
	case DigestSHA512:
		h := sha512.Sum512(data)
		return h[:], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDigest, alg)
	}
}
