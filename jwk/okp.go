package jwk

import (
	"bytes"
	"fmt"

	"github.com/cloudflare/circl/sign/ed448"

	"github.com/vitalvas/jwsjcs/codec"
	"github.com/vitalvas/jwsjcs/jsonvalue"
	"github.com/vitalvas/jwsjcs/jwa"
)

// okpFromValue decodes an Ed448 OKP key (RFC 8037). "d" holds the 57-byte
// private seed.
func okpFromValue(v jsonvalue.Value) (*Key, error) {
	x, err := octetMember(v, "x", ed448.PublicKeySize)
	if err != nil {
		return nil, err
	}

	k := &Key{Key: ed448.PublicKey(x)}

	if kid, ok := v.Lookup("kid"); ok && kid.Kind() == jsonvalue.KindString {
		k.KeyID = kid.Text()
	}

	if alg, ok := v.Lookup("alg"); ok && alg.Kind() == jsonvalue.KindString {
		k.Algorithm = jwa.Algorithm(alg.Text())
	}

	if !v.Has("d") {
		return k, nil
	}

	seed, err := octetMember(v, "d", ed448.SeedSize)
	if err != nil {
		return nil, err
	}

	priv := ed448.NewKeyFromSeed(seed)
	if !bytes.Equal(priv.Public().(ed448.PublicKey), x) {
		return nil, fmt.Errorf("%w: \"x\" does not match \"d\"", ErrInvalidKey)
	}

	k.Key = priv

	return k, nil
}

func (k *Key) okpValue() (jsonvalue.Value, error) {
	var (
		pub  ed448.PublicKey
		seed []byte
	)

	switch key := k.Key.(type) {
	case ed448.PrivateKey:
		pub = key.Public().(ed448.PublicKey)
		seed = key.Seed()
	case ed448.PublicKey:
		pub = key
	default:
		return jsonvalue.Null(), fmt.Errorf("%w: %T", ErrUnsupportedKey, k.Key)
	}

	members := []jsonvalue.Member{
		{Key: "kty", Value: jsonvalue.String(KeyTypeOKP)},
	}

	if k.KeyID != "" {
		members = append(members, jsonvalue.Member{Key: "kid", Value: jsonvalue.String(k.KeyID)})
	}

	if k.Algorithm != "" {
		members = append(members, jsonvalue.Member{Key: "alg", Value: jsonvalue.String(k.Algorithm.String())})
	}

	members = append(members,
		jsonvalue.Member{Key: "crv", Value: jsonvalue.String(CurveEd448)},
		jsonvalue.Member{Key: "x", Value: jsonvalue.String(codec.EncodeBase64URL(pub))},
	)

	if seed != nil {
		members = append(members, jsonvalue.Member{Key: "d", Value: jsonvalue.String(codec.EncodeBase64URL(seed))})
	}

	return jsonvalue.Object(members...), nil
}

func octetMember(v jsonvalue.Value, name string, size int) ([]byte, error) {
	s, err := stringMember(v, name)
	if err != nil {
		return nil, err
	}

	b, err := codec.DecodeBase64URL(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidKey, name, err)
	}

	if len(b) != size {
		return nil, fmt.Errorf("%w: %q must be %d bytes, got %d", ErrInvalidKey, name, size, len(b))
	}

	return b, nil
}
