package jwk

import (
	"errors"
	"fmt"

	"github.com/vitalvas/jwsjcs/jsonvalue"
	"github.com/vitalvas/jwsjcs/jwa"
	"github.com/vitalvas/jwsjcs/jws"
)

// KeyResolver returns a verifier for the key described by a JWS header.
type KeyResolver func(header jsonvalue.Value, alg jwa.Algorithm) (jwa.Verifier, error)

// EmbeddedKeyResolver uses the public key in the header "jwk" member.
// Embedded keys carrying private or symmetric material are rejected.
func EmbeddedKeyResolver(header jsonvalue.Value, alg jwa.Algorithm) (jwa.Verifier, error) {
	embedded, ok := header.Lookup("jwk")
	if !ok || !embedded.IsObject() {
		return nil, fmt.Errorf("%w: header has no jwk object", ErrMissingKey)
	}

	if err := checkPublic(embedded); err != nil {
		return nil, err
	}

	key, err := FromValue(embedded)
	if err != nil {
		return nil, err
	}

	if key.Algorithm != "" && key.Algorithm != alg {
		return nil, fmt.Errorf("%w: key is for %s, header says %s", ErrAlgorithmMismatch, key.Algorithm, alg)
	}

	if kid, ok := header.Lookup("kid"); ok && key.KeyID == "" {
		key.KeyID = kid.Text()
	}

	return key.verifierFor(alg)
}

// StaticResolver always resolves to v, provided the header algorithm
// matches v.Algorithm().
func StaticResolver(v jwa.Verifier) KeyResolver {
	return func(_ jsonvalue.Value, alg jwa.Algorithm) (jwa.Verifier, error) {
		if v == nil {
			return nil, ErrMissingKey
		}

		if alg != v.Algorithm() {
			return nil, fmt.Errorf("%w: key is for %s, header says %s", ErrAlgorithmMismatch, v.Algorithm(), alg)
		}

		return v, nil
	}
}

// FixedKeyResolver always resolves to k. The header algorithm must fit the
// key type and, when k.Algorithm is set, equal it.
func FixedKeyResolver(k *Key) KeyResolver {
	return func(_ jsonvalue.Value, alg jwa.Algorithm) (jwa.Verifier, error) {
		if k == nil || k.Key == nil {
			return nil, ErrMissingKey
		}

		if k.Algorithm != "" && k.Algorithm != alg {
			return nil, fmt.Errorf("%w: key is for %s, header says %s", ErrAlgorithmMismatch, k.Algorithm, alg)
		}

		return k.verifierFor(alg)
	}
}

// KeySetResolver selects a key by the header "kid" member. Nil keys are
// ignored.
func KeySetResolver(keys ...*Key) KeyResolver {
	byID := make(map[string]*Key, len(keys))
	for _, k := range keys {
		if k == nil {
			continue
		}

		byID[k.KeyID] = k
	}

	return func(header jsonvalue.Value, alg jwa.Algorithm) (jwa.Verifier, error) {
		kid, ok := header.Lookup("kid")
		if !ok || kid.Kind() != jsonvalue.KindString {
			return nil, fmt.Errorf("%w: header has no kid", ErrMissingKey)
		}

		key, ok := byID[kid.Text()]
		if !ok {
			return nil, fmt.Errorf("%w: kid %q", ErrMissingKey, kid.Text())
		}

		if key.Algorithm != "" && key.Algorithm != alg {
			return nil, fmt.Errorf("%w: key is for %s, header says %s", ErrAlgorithmMismatch, key.Algorithm, alg)
		}

		return key.verifierFor(alg)
	}
}

// NewVerifier adapts resolver to the jws.Verifier capability. A signature
// that does not match yields false with a nil error; resolution problems are
// returned as errors.
func NewVerifier(resolver KeyResolver) jws.Verifier {
	return jws.VerifierFunc(func(signingInput, signature []byte, header jsonvalue.Value) (bool, error) {
		algValue, _ := header.Lookup("alg")

		alg := jwa.Algorithm(algValue.Text())
		if !alg.Valid() {
			return false, fmt.Errorf("%w: %q", jwa.ErrUnsupportedAlgorithm, alg)
		}

		v, err := resolver(header, alg)
		if err != nil {
			return false, err
		}

		err = v.Verify(signingInput, signature)
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, jwa.ErrSignatureInvalid):
			return false, nil
		default:
			return false, err
		}
	})
}
