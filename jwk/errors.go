package jwk

import "errors"

var (
	// ErrMissingKey is returned when a header carries no usable "jwk"
	// member, or a key set has no key for the requested id.
	ErrMissingKey = errors.New("jwk: key not found")

	// ErrInvalidKey is returned when a key description is malformed or
	// lacks required members.
	ErrInvalidKey = errors.New("jwk: invalid key description")

	// ErrPrivateKeyMaterial is returned when private or symmetric key
	// material appears where only a public key is allowed.
	ErrPrivateKeyMaterial = errors.New("jwk: private key material not allowed")

	// ErrUnsupportedKey is returned for key types or curves that are not
	// supported.
	ErrUnsupportedKey = errors.New("jwk: unsupported key type")

	// ErrAlgorithmMismatch is returned when the header algorithm does not
	// fit the resolved key.
	ErrAlgorithmMismatch = errors.New("jwk: algorithm does not match key")

	// ErrUnsupportedDigest is returned for an unknown thumbprint digest.
	ErrUnsupportedDigest = errors.New("jwk: unsupported digest algorithm")
)
