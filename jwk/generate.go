package jwk

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	"github.com/cloudflare/circl/sign/ed448"

	"github.com/vitalvas/jwsjcs/jwa"
)

// DefaultRSABits is the modulus size used when GenerateConfig.RSABits is zero.
const DefaultRSABits = 2048

// GenerateConfig configures key generation.
type GenerateConfig struct {
	// Algorithm selects the key type. Required.
	Algorithm jwa.Algorithm

	// KeyID is stored on the generated key. Optional.
	KeyID string

	// Curve selects the EdDSA curve: CurveEd25519 (default) or CurveEd448.
	// Ignored for other algorithms.
	Curve string

	// RSABits is the modulus size for RS* and PS* keys. Defaults to
	// DefaultRSABits.
	RSABits int
}

// Generate creates a new private key suitable for cfg.Algorithm.
func Generate(cfg GenerateConfig) (*Key, error) {
	var (
		key any
		err error
	)

	switch cfg.Algorithm {
	case jwa.RS256, jwa.RS384, jwa.RS512, jwa.PS256, jwa.PS384, jwa.PS512:
		bits := cfg.RSABits
		if bits == 0 {
			bits = DefaultRSABits
		}

		key, err = rsa.GenerateKey(rand.Reader, bits)

	case jwa.ES256:
		key, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	case jwa.ES384:
		key, err = ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	case jwa.ES512:
		key, err = ecdsa.GenerateKey(elliptic.P521(), rand.Reader)

	case jwa.EdDSA:
		switch cfg.Curve {
		case "", CurveEd25519:
			_, key, err = ed25519.GenerateKey(rand.Reader)
		case CurveEd448:
			_, key, err = ed448.GenerateKey(rand.Reader)
		default:
			return nil, fmt.Errorf("%w: EdDSA curve %q", ErrUnsupportedKey, cfg.Curve)
		}

	case jwa.HS256, jwa.HS384, jwa.HS512:
		secret := make([]byte, hmacSecretSize(cfg.Algorithm))
		_, err = rand.Read(secret)
		key = secret

	default:
		return nil, fmt.Errorf("%w: %q", jwa.ErrUnsupportedAlgorithm, cfg.Algorithm)
	}

	if err != nil {
		return nil, fmt.Errorf("generate %s key: %w", cfg.Algorithm, err)
	}

	return &Key{KeyID: cfg.KeyID, Algorithm: cfg.Algorithm, Key: key}, nil
}

func hmacSecretSize(alg jwa.Algorithm) int {
	switch alg {
	case jwa.HS384:
		return 48
	case jwa.HS512:
		return 64
	}

	return 32
}
