package jwk

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/cloudflare/circl/sign/ed448"
	"github.com/go-jose/go-jose/v4"

	"github.com/vitalvas/jwsjcs/jsonvalue"
	"github.com/vitalvas/jwsjcs/jwa"
)

// Key types as they appear in the "kty" member.
const (
	KeyTypeRSA = "RSA"
	KeyTypeEC  = "EC"
	KeyTypeOKP = "OKP"
	KeyTypeOct = "oct"
)

// OKP curve names.
const (
	CurveEd25519 = "Ed25519"
	CurveEd448   = "Ed448"
)

// Key is a JSON Web Key.
//
// Key holds one of *rsa.PrivateKey, *rsa.PublicKey, *ecdsa.PrivateKey,
// *ecdsa.PublicKey, ed25519.PrivateKey, ed25519.PublicKey, ed448.PrivateKey,
// ed448.PublicKey or []byte for symmetric keys.
type Key struct {
	KeyID     string
	Algorithm jwa.Algorithm
	Key       any
}

// Parse decodes a JSON Web Key.
func Parse(data []byte) (*Key, error) {
	v, err := jsonvalue.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	return FromValue(v)
}

// FromValue decodes a JSON Web Key from a parsed object.
func FromValue(v jsonvalue.Value) (*Key, error) {
	if !v.IsObject() {
		return nil, fmt.Errorf("%w: not an object", ErrInvalidKey)
	}

	kty, err := stringMember(v, "kty")
	if err != nil {
		return nil, err
	}

	switch kty {
	case KeyTypeRSA, KeyTypeEC, KeyTypeOct:
	case KeyTypeOKP:
		crv, err := stringMember(v, "crv")
		if err != nil {
			return nil, err
		}

		switch crv {
		case CurveEd448:
			return okpFromValue(v)
		case CurveEd25519:
		default:
			return nil, fmt.Errorf("%w: OKP curve %q", ErrUnsupportedKey, crv)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKey, kty)
	}

	data, err := v.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	var jk jose.JSONWebKey
	if err := jk.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	if secret, ok := jk.Key.([]byte); ok {
		if len(secret) == 0 {
			return nil, fmt.Errorf("%w: empty symmetric key", ErrInvalidKey)
		}
	} else if !jk.Valid() {
		return nil, fmt.Errorf("%w: key failed validation", ErrInvalidKey)
	}

	return &Key{
		KeyID:     jk.KeyID,
		Algorithm: jwa.Algorithm(jk.Algorithm),
		Key:       jk.Key,
	}, nil
}

// MarshalJSON encodes the key as a JSON Web Key, including private members
// when the key is private.
func (k *Key) MarshalJSON() ([]byte, error) {
	switch k.Key.(type) {
	case ed448.PrivateKey, ed448.PublicKey:
		v, err := k.okpValue()
		if err != nil {
			return nil, err
		}

		return v.MarshalJSON()
	}

	jk := jose.JSONWebKey{
		Key:       k.Key,
		KeyID:     k.KeyID,
		Algorithm: string(k.Algorithm),
	}

	data, err := jk.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedKey, err)
	}

	return data, nil
}

// Value returns the key as a JSON object.
func (k *Key) Value() (jsonvalue.Value, error) {
	data, err := k.MarshalJSON()
	if err != nil {
		return jsonvalue.Null(), err
	}

	return jsonvalue.Parse(data)
}

// IsPublic reports whether k holds public key material only.
func (k *Key) IsPublic() bool {
	switch k.Key.(type) {
	case *rsa.PublicKey, *ecdsa.PublicKey, ed25519.PublicKey, ed448.PublicKey:
		return true
	}

	return false
}

// Public returns the public half of k. Symmetric keys have no public form.
func (k *Key) Public() (*Key, error) {
	var pub any

	switch key := k.Key.(type) {
	case *rsa.PrivateKey:
		pub = &key.PublicKey
	case *ecdsa.PrivateKey:
		pub = &key.PublicKey
	case ed25519.PrivateKey:
		pub = key.Public().(ed25519.PublicKey)
	case ed448.PrivateKey:
		pub = key.Public().(ed448.PublicKey)
	case *rsa.PublicKey, *ecdsa.PublicKey, ed25519.PublicKey, ed448.PublicKey:
		pub = key
	case []byte:
		return nil, fmt.Errorf("%w: symmetric key has no public form", ErrPrivateKeyMaterial)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKey, k.Key)
	}

	return &Key{KeyID: k.KeyID, Algorithm: k.Algorithm, Key: pub}, nil
}

// Signer returns a jwa.Signer for the key. The key must be private or
// symmetric.
func (k *Key) Signer() (jwa.Signer, error) {
	if k.IsPublic() {
		return nil, fmt.Errorf("%w: cannot sign with a public key", ErrInvalidKey)
	}

	s, err := jwa.NewSigner(k.Algorithm, k.KeyID, k.Key)
	if err != nil {
		return nil, mismatch(err)
	}

	return s, nil
}

// Verifier returns a jwa.Verifier for the key. Private keys are reduced to
// their public half.
func (k *Key) Verifier() (jwa.Verifier, error) {
	return k.verifierFor(k.Algorithm)
}

func (k *Key) verifierFor(alg jwa.Algorithm) (jwa.Verifier, error) {
	material := k.Key

	if _, ok := material.([]byte); !ok {
		pub, err := k.Public()
		if err != nil {
			return nil, err
		}

		material = pub.Key
	}

	v, err := jwa.NewVerifier(alg, k.KeyID, material)
	if err != nil {
		return nil, mismatch(err)
	}

	return v, nil
}

// mismatch tags algorithm errors from jwa with ErrAlgorithmMismatch.
func mismatch(err error) error {
	if errors.Is(err, jwa.ErrUnsupportedAlgorithm) {
		return fmt.Errorf("%w: %w", ErrAlgorithmMismatch, err)
	}

	return err
}

func stringMember(v jsonvalue.Value, name string) (string, error) {
	m, ok := v.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrInvalidKey, name)
	}

	if m.Kind() != jsonvalue.KindString || m.Text() == "" {
		return "", fmt.Errorf("%w: %q must be a non-empty string", ErrInvalidKey, name)
	}

	return m.Text(), nil
}
