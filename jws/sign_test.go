package jws

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/jwsjcs/canonical"
	"github.com/vitalvas/jwsjcs/codec"
	"github.com/vitalvas/jwsjcs/jsonvalue"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func hmacSigner() Signer {
	return SignerFunc(func(input []byte) ([]byte, error) {
		mac := hmac.New(sha256.New, testSecret)
		mac.Write(input)
		return mac.Sum(nil), nil
	})
}

func hmacVerifier() Verifier {
	return VerifierFunc(func(input, sig []byte, _ jsonvalue.Value) (bool, error) {
		mac := hmac.New(sha256.New, testSecret)
		mac.Write(input)
		return hmac.Equal(mac.Sum(nil), sig), nil
	})
}

func hsHeader() jsonvalue.Value {
	return jsonvalue.Object(jsonvalue.Member{Key: "alg", Value: jsonvalue.String("HS256")})
}

func mustParse(t *testing.T, s string) jsonvalue.Value {
	t.Helper()

	v, err := jsonvalue.Parse([]byte(s))
	require.NoError(t, err)

	return v
}

func TestSign(t *testing.T) {
	ctx := context.Background()

	t.Run("nil signer returns error", func(t *testing.T) {
		_, err := Sign(ctx, mustParse(t, `{}`), SignConfig{Header: hsHeader()})
		assert.ErrorIs(t, err, ErrNoSigner)
	})

	t.Run("appends signature property", func(t *testing.T) {
		payload := mustParse(t, `{"statement":"Hello signed world!","otherProperties":[2000,true]}`)

		signed, err := Sign(ctx, payload, SignConfig{Header: hsHeader(), Signer: hmacSigner()})
		require.NoError(t, err)

		assert.Equal(t, []string{"statement", "otherProperties", "signature"}, signed.Value.Keys())
		assert.False(t, payload.Has("signature"), "input must not be modified")

		prop, ok := signed.Value.Lookup("signature")
		require.True(t, ok)

		parts := strings.Split(prop.Text(), ".")
		require.Len(t, parts, 3)
		assert.Empty(t, parts[1])
		assert.Equal(t, codec.EncodeBase64URL([]byte(`{"alg":"HS256"}`)), parts[0])

		assert.Equal(t,
			`{"otherProperties":[2000,true],"statement":"Hello signed world!"}`,
			string(signed.Envelope.Payload()))
		assert.Equal(t, prop.Text(), signed.Envelope.Compact())
	})

	t.Run("signing input is header dot payload", func(t *testing.T) {
		var got []byte

		signer := SignerFunc(func(input []byte) ([]byte, error) {
			got = append([]byte(nil), input...)
			return []byte{1}, nil
		})

		_, err := Sign(ctx, mustParse(t, `{"b":1,"a":2}`), SignConfig{Header: hsHeader(), Signer: signer})
		require.NoError(t, err)

		want := codec.EncodeBase64URL([]byte(`{"alg":"HS256"}`)) + "." + codec.EncodeBase64URL([]byte(`{"a":2,"b":1}`))
		assert.Equal(t, want, string(got))
	})

	t.Run("header is canonicalized", func(t *testing.T) {
		header := mustParse(t, `{"kid":"k1","alg":"HS256"}`)

		signed, err := Sign(ctx, mustParse(t, `{}`), SignConfig{Header: header, Signer: hmacSigner()})
		require.NoError(t, err)

		assert.Equal(t, codec.EncodeBase64URL([]byte(`{"alg":"HS256","kid":"k1"}`)), signed.Envelope.EncodedHeader())
	})

	t.Run("custom signature property", func(t *testing.T) {
		signed, err := Sign(ctx, mustParse(t, `{"a":1}`), SignConfig{
			Header:            hsHeader(),
			Signer:            hmacSigner(),
			SignatureProperty: "proof",
		})
		require.NoError(t, err)

		assert.True(t, signed.Value.Has("proof"))
		assert.False(t, signed.Value.Has("signature"))
	})

	t.Run("already signed", func(t *testing.T) {
		payload := mustParse(t, `{"a":1,"signature":"x"}`)

		_, err := Sign(ctx, payload, SignConfig{Header: hsHeader(), Signer: hmacSigner()})
		assert.ErrorIs(t, err, ErrAlreadySigned)
	})

	t.Run("payload not object", func(t *testing.T) {
		for _, doc := range []string{`[1,2]`, `"s"`, `1`, `null`, `true`} {
			_, err := Sign(ctx, mustParse(t, doc), SignConfig{Header: hsHeader(), Signer: hmacSigner()})
			assert.ErrorIs(t, err, ErrNotObject, doc)
			assert.ErrorIs(t, err, canonical.ErrInvalidInput, doc)
		}
	})

	t.Run("invalid header", func(t *testing.T) {
		headers := []jsonvalue.Value{
			jsonvalue.Null(),
			mustParse(t, `{}`),
			mustParse(t, `{"alg":""}`),
			mustParse(t, `{"alg":256}`),
			mustParse(t, `["alg"]`),
		}

		for _, h := range headers {
			_, err := Sign(ctx, mustParse(t, `{}`), SignConfig{Header: h, Signer: hmacSigner()})
			assert.ErrorIs(t, err, ErrInvalidHeader)
			assert.ErrorIs(t, err, canonical.ErrInvalidInput)
		}
	})

	t.Run("max depth", func(t *testing.T) {
		payload := mustParse(t, `{"a":{"b":{"c":1}}}`)

		_, err := Sign(ctx, payload, SignConfig{Header: hsHeader(), Signer: hmacSigner(), MaxDepth: 2})
		assert.ErrorIs(t, err, canonical.ErrDepthExceeded)

		_, err = Sign(ctx, payload, SignConfig{Header: hsHeader(), Signer: hmacSigner(), MaxDepth: 3})
		assert.NoError(t, err)
	})

	t.Run("signer error", func(t *testing.T) {
		boom := errors.New("hsm offline")
		signer := SignerFunc(func([]byte) ([]byte, error) { return nil, boom })

		_, err := Sign(ctx, mustParse(t, `{}`), SignConfig{Header: hsHeader(), Signer: signer})
		assert.ErrorIs(t, err, ErrSigningFailed)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("empty signature", func(t *testing.T) {
		signer := SignerFunc(func([]byte) ([]byte, error) { return nil, nil })

		_, err := Sign(ctx, mustParse(t, `{}`), SignConfig{Header: hsHeader(), Signer: signer})
		assert.ErrorIs(t, err, ErrSigningFailed)
	})

	t.Run("cancelled while signing", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		release := make(chan struct{})
		defer close(release)

		signer := SignerFunc(func([]byte) ([]byte, error) {
			<-release
			return []byte{1}, nil
		})

		_, err := Sign(ctx, mustParse(t, `{}`), SignConfig{Header: hsHeader(), Signer: signer})
		assert.ErrorIs(t, err, ErrSigningFailed)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("deterministic for same input", func(t *testing.T) {
		a, err := Sign(ctx, mustParse(t, `{"x":1,"y":[1,2]}`), SignConfig{Header: hsHeader(), Signer: hmacSigner()})
		require.NoError(t, err)

		b, err := Sign(ctx, mustParse(t, `{"y":[1,2],"x":1}`), SignConfig{Header: hsHeader(), Signer: hmacSigner()})
		require.NoError(t, err)

		assert.Equal(t, a.Envelope.Compact(), b.Envelope.Compact())
	})
}
