package jwk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/jwsjcs/jsonvalue"
	"github.com/vitalvas/jwsjcs/jwa"
	"github.com/vitalvas/jwsjcs/jws"
)

func testPayload(t *testing.T) jsonvalue.Value {
	t.Helper()

	v, err := jsonvalue.Parse([]byte(`{"statement":"Hello signed world!","otherProperties":[2000,true]}`))
	require.NoError(t, err)

	return v
}

func TestHeader(t *testing.T) {
	t.Run("demo shape", func(t *testing.T) {
		key, err := Generate(GenerateConfig{Algorithm: jwa.RS256})
		require.NoError(t, err)

		signer, err := key.Signer()
		require.NoError(t, err)

		header, err := Header(signer, key)
		require.NoError(t, err)

		assert.Equal(t, []string{"alg", "jwk"}, header.Keys())

		alg, _ := header.Lookup("alg")
		assert.Equal(t, "RS256", alg.Text())

		embedded, _ := header.Lookup("jwk")
		assert.ElementsMatch(t, []string{"kty", "n", "e"}, embedded.Keys())
	})

	t.Run("kid is carried in the header", func(t *testing.T) {
		key, err := Generate(GenerateConfig{Algorithm: jwa.ES256, KeyID: "key-7"})
		require.NoError(t, err)

		signer, err := key.Signer()
		require.NoError(t, err)

		header, err := Header(signer, key)
		require.NoError(t, err)

		kid, ok := header.Lookup("kid")
		require.True(t, ok)
		assert.Equal(t, "key-7", kid.Text())

		embedded, _ := header.Lookup("jwk")
		assert.False(t, embedded.Has("kid"))
		assert.False(t, embedded.Has("d"))
	})

	t.Run("without embedded key", func(t *testing.T) {
		key, err := Generate(GenerateConfig{Algorithm: jwa.HS256})
		require.NoError(t, err)

		signer, err := key.Signer()
		require.NoError(t, err)

		header, err := Header(signer, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"alg"}, header.Keys())
	})

	t.Run("symmetric key cannot be embedded", func(t *testing.T) {
		key, err := Generate(GenerateConfig{Algorithm: jwa.HS256})
		require.NoError(t, err)

		signer, err := key.Signer()
		require.NoError(t, err)

		_, err = Header(signer, key)
		assert.ErrorIs(t, err, ErrPrivateKeyMaterial)
	})

	t.Run("nil signer", func(t *testing.T) {
		_, err := Header(nil, nil)
		assert.Error(t, err)
	})
}

func TestEmbeddedKeyRoundTrip(t *testing.T) {
	ctx := context.Background()

	configs := []GenerateConfig{
		{Algorithm: jwa.RS256},
		{Algorithm: jwa.RS384},
		{Algorithm: jwa.RS512},
		{Algorithm: jwa.PS256},
		{Algorithm: jwa.PS384},
		{Algorithm: jwa.PS512},
		{Algorithm: jwa.ES256},
		{Algorithm: jwa.ES384},
		{Algorithm: jwa.ES512},
		{Algorithm: jwa.EdDSA, Curve: CurveEd25519},
		{Algorithm: jwa.EdDSA, Curve: CurveEd448},
	}

	for _, cfg := range configs {
		t.Run(cfg.Algorithm.String()+cfg.Curve, func(t *testing.T) {
			key, err := Generate(cfg)
			require.NoError(t, err)

			signer, err := key.Signer()
			require.NoError(t, err)

			header, err := Header(signer, key)
			require.NoError(t, err)

			signed, err := jws.Sign(ctx, testPayload(t), jws.SignConfig{Header: header, Signer: signer})
			require.NoError(t, err)

			verifier := NewVerifier(EmbeddedKeyResolver)

			res, err := jws.Verify(ctx, signed.Value, jws.VerifyConfig{Verifier: verifier})
			require.NoError(t, err)
			assert.Equal(t, jws.Valid, res.Result)

			tampered := signed.Value.With("statement", jsonvalue.String("Hello signed world?"))
			res, err = jws.Verify(ctx, tampered, jws.VerifyConfig{Verifier: verifier})
			require.NoError(t, err)
			assert.Equal(t, jws.Invalid, res.Result)
		})
	}
}

func signedWithHeader(t *testing.T, header jsonvalue.Value, signer jws.Signer) jsonvalue.Value {
	t.Helper()

	signed, err := jws.Sign(context.Background(), testPayload(t), jws.SignConfig{Header: header, Signer: signer})
	require.NoError(t, err)

	return signed.Value
}

func TestEmbeddedKeyResolver(t *testing.T) {
	ctx := context.Background()

	key, err := Generate(GenerateConfig{Algorithm: jwa.ES256})
	require.NoError(t, err)

	signer, err := key.Signer()
	require.NoError(t, err)

	t.Run("missing jwk", func(t *testing.T) {
		header := jsonvalue.Object(jsonvalue.Member{Key: "alg", Value: jsonvalue.String("ES256")})
		signed := signedWithHeader(t, header, signer)

		_, err := jws.Verify(ctx, signed, jws.VerifyConfig{Verifier: NewVerifier(EmbeddedKeyResolver)})
		assert.ErrorIs(t, err, jws.ErrVerificationFailed)
		assert.ErrorIs(t, err, ErrMissingKey)
	})

	t.Run("private key material rejected", func(t *testing.T) {
		priv, err := key.Value()
		require.NoError(t, err)

		header := jsonvalue.Object(
			jsonvalue.Member{Key: "alg", Value: jsonvalue.String("ES256")},
			jsonvalue.Member{Key: "jwk", Value: priv},
		)
		signed := signedWithHeader(t, header, signer)

		_, err = jws.Verify(ctx, signed, jws.VerifyConfig{Verifier: NewVerifier(EmbeddedKeyResolver)})
		assert.ErrorIs(t, err, ErrPrivateKeyMaterial)
	})

	t.Run("algorithm does not fit key", func(t *testing.T) {
		header, err := Header(signer, key)
		require.NoError(t, err)

		header = header.With("alg", jsonvalue.String("ES384"))
		signed := signedWithHeader(t, header, signer)

		_, err = jws.Verify(ctx, signed, jws.VerifyConfig{Verifier: NewVerifier(EmbeddedKeyResolver)})
		assert.ErrorIs(t, err, ErrAlgorithmMismatch)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		header, err := Header(signer, key)
		require.NoError(t, err)

		header = header.With("alg", jsonvalue.String("none"))
		signed := signedWithHeader(t, header, signer)

		_, err = jws.Verify(ctx, signed, jws.VerifyConfig{Verifier: NewVerifier(EmbeddedKeyResolver)})
		assert.ErrorIs(t, err, jwa.ErrUnsupportedAlgorithm)
	})

	t.Run("substituted key is invalid", func(t *testing.T) {
		other, err := Generate(GenerateConfig{Algorithm: jwa.ES256})
		require.NoError(t, err)

		header, err := Header(signer, other)
		require.NoError(t, err)

		signed := signedWithHeader(t, header, signer)

		res, err := jws.Verify(ctx, signed, jws.VerifyConfig{Verifier: NewVerifier(EmbeddedKeyResolver)})
		require.NoError(t, err)
		assert.Equal(t, jws.Invalid, res.Result)
	})
}

func TestStaticResolver(t *testing.T) {
	ctx := context.Background()

	key, err := Generate(GenerateConfig{Algorithm: jwa.HS512, KeyID: "shared"})
	require.NoError(t, err)

	signer, err := key.Signer()
	require.NoError(t, err)

	header, err := Header(signer, nil)
	require.NoError(t, err)

	signed := signedWithHeader(t, header, signer)

	t.Run("valid", func(t *testing.T) {
		v, err := key.Verifier()
		require.NoError(t, err)

		res, err := jws.Verify(ctx, signed, jws.VerifyConfig{Verifier: NewVerifier(StaticResolver(v))})
		require.NoError(t, err)
		assert.Equal(t, jws.Valid, res.Result)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := Generate(GenerateConfig{Algorithm: jwa.HS512})
		require.NoError(t, err)

		v, err := other.Verifier()
		require.NoError(t, err)

		res, err := jws.Verify(ctx, signed, jws.VerifyConfig{Verifier: NewVerifier(StaticResolver(v))})
		require.NoError(t, err)
		assert.Equal(t, jws.Invalid, res.Result)
	})

	t.Run("algorithm mismatch", func(t *testing.T) {
		other, err := Generate(GenerateConfig{Algorithm: jwa.HS256})
		require.NoError(t, err)

		v, err := other.Verifier()
		require.NoError(t, err)

		_, err = jws.Verify(ctx, signed, jws.VerifyConfig{Verifier: NewVerifier(StaticResolver(v))})
		assert.ErrorIs(t, err, ErrAlgorithmMismatch)
	})

	t.Run("nil verifier", func(t *testing.T) {
		_, err := jws.Verify(ctx, signed, jws.VerifyConfig{Verifier: NewVerifier(StaticResolver(nil))})
		assert.ErrorIs(t, err, ErrMissingKey)
	})
}

func TestKeySetResolver(t *testing.T) {
	ctx := context.Background()

	a, err := Generate(GenerateConfig{Algorithm: jwa.EdDSA, KeyID: "a"})
	require.NoError(t, err)

	b, err := Generate(GenerateConfig{Algorithm: jwa.ES256, KeyID: "b"})
	require.NoError(t, err)

	pubA, err := a.Public()
	require.NoError(t, err)

	pubB, err := b.Public()
	require.NoError(t, err)

	resolver := NewVerifier(KeySetResolver(pubA, pubB))

	for _, key := range []*Key{a, b} {
		signer, err := key.Signer()
		require.NoError(t, err)

		header, err := Header(signer, nil)
		require.NoError(t, err)

		res, err := jws.Verify(ctx, signedWithHeader(t, header, signer), jws.VerifyConfig{Verifier: resolver})
		require.NoError(t, err)
		assert.Equal(t, jws.Valid, res.Result, key.KeyID)
	}

	t.Run("unknown kid", func(t *testing.T) {
		c, err := Generate(GenerateConfig{Algorithm: jwa.ES256, KeyID: "c"})
		require.NoError(t, err)

		signer, err := c.Signer()
		require.NoError(t, err)

		header, err := Header(signer, nil)
		require.NoError(t, err)

		_, err = jws.Verify(ctx, signedWithHeader(t, header, signer), jws.VerifyConfig{Verifier: resolver})
		assert.ErrorIs(t, err, ErrMissingKey)
	})

	t.Run("no kid", func(t *testing.T) {
		signer, err := jwa.NewSigner(jwa.EdDSA, "", a.Key)
		require.NoError(t, err)

		header, err := Header(signer, nil)
		require.NoError(t, err)

		_, err = jws.Verify(ctx, signedWithHeader(t, header, signer), jws.VerifyConfig{Verifier: resolver})
		assert.ErrorIs(t, err, ErrMissingKey)
	})

	t.Run("nil keys ignored", func(t *testing.T) {
		var withNil KeyResolver
		require.NotPanics(t, func() { withNil = KeySetResolver(nil, pubA, nil) })

		signer, err := a.Signer()
		require.NoError(t, err)

		header, err := Header(signer, nil)
		require.NoError(t, err)

		res, err := jws.Verify(ctx, signedWithHeader(t, header, signer), jws.VerifyConfig{Verifier: NewVerifier(withNil)})
		require.NoError(t, err)
		assert.Equal(t, jws.Valid, res.Result)

		_, err = KeySetResolver(nil)(header, jwa.EdDSA)
		assert.ErrorIs(t, err, ErrMissingKey)
	})
}

func TestFixedKeyResolver(t *testing.T) {
	ctx := context.Background()

	key, err := Generate(GenerateConfig{Algorithm: jwa.PS256})
	require.NoError(t, err)

	signer, err := key.Signer()
	require.NoError(t, err)

	header, err := Header(signer, nil)
	require.NoError(t, err)

	signed := signedWithHeader(t, header, signer)

	t.Run("public key without alg", func(t *testing.T) {
		pub, err := key.Public()
		require.NoError(t, err)

		pub.Algorithm = ""

		res, err := jws.Verify(ctx, signed, jws.VerifyConfig{Verifier: NewVerifier(FixedKeyResolver(pub))})
		require.NoError(t, err)
		assert.Equal(t, jws.Valid, res.Result)
	})

	t.Run("key pinned to another algorithm", func(t *testing.T) {
		pub, err := key.Public()
		require.NoError(t, err)

		pub.Algorithm = jwa.RS256

		_, err = jws.Verify(ctx, signed, jws.VerifyConfig{Verifier: NewVerifier(FixedKeyResolver(pub))})
		assert.ErrorIs(t, err, ErrAlgorithmMismatch)
	})

	t.Run("nil key", func(t *testing.T) {
		_, err := jws.Verify(ctx, signed, jws.VerifyConfig{Verifier: NewVerifier(FixedKeyResolver(nil))})
		assert.ErrorIs(t, err, ErrMissingKey)
	})
}
