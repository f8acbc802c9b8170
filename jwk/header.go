package jwk

import (
	"fmt"

	"github.com/vitalvas/jwsjcs/jsonvalue"
	"github.com/vitalvas/jwsjcs/jwa"
)

// privateMembers are JWK members that carry secret key material.
var privateMembers = []string{"d", "p", "q", "dp", "dq", "qi", "oth", "k"}

// metadataMembers are dropped from an embedded key; the header carries
// "alg" and "kid" itself.
var metadataMembers = []string{"kid", "alg", "use", "key_ops"}

// Header builds a JWS header for signer: {"alg": ..., "jwk": {...}} with
// "kid" added when the signer has a key id. The embedded key is the public
// half of pub. If pub is nil no key is embedded.
func Header(signer jwa.Signer, pub *Key) (jsonvalue.Value, error) {
	if signer == nil {
		return jsonvalue.Null(), fmt.Errorf("%w: signer must not be nil", ErrMissingKey)
	}

	members := []jsonvalue.Member{
		{Key: "alg", Value: jsonvalue.String(signer.Algorithm().String())},
	}

	if pub != nil {
		jwk, err := embeddedKey(pub)
		if err != nil {
			return jsonvalue.Null(), err
		}

		members = append(members, jsonvalue.Member{Key: "jwk", Value: jwk})
	}

	if kid := signer.KeyID(); kid != "" {
		members = append(members, jsonvalue.Member{Key: "kid", Value: jsonvalue.String(kid)})
	}

	return jsonvalue.Object(members...), nil
}

func embeddedKey(k *Key) (jsonvalue.Value, error) {
	pub, err := k.Public()
	if err != nil {
		return jsonvalue.Null(), err
	}

	v, err := pub.Value()
	if err != nil {
		return jsonvalue.Null(), err
	}

	for _, name := range metadataMembers {
		v = v.Without(name)
	}

	if err := checkPublic(v); err != nil {
		return jsonvalue.Null(), err
	}

	return v, nil
}

func checkPublic(v jsonvalue.Value) error {
	for _, name := range privateMembers {
		if v.Has(name) {
			return fmt.Errorf("%w: member %q", ErrPrivateKeyMaterial, name)
		}
	}

	return nil
}
