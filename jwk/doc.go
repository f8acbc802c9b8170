// Package jwk maps JSON Web Keys (RFC 7517, RFC 8037) to Go key material and
// connects them to the jws envelope.
//
// RSA, EC, Ed25519 and symmetric keys are converted with
// github.com/go-jose/go-jose/v4. Ed448 keys, which go-jose does not handle,
// are converted locally using github.com/cloudflare/circl.
//
// A typical signer embeds its public key in the header so that receivers can
// verify without out-of-band key distribution:
//
//	key, _ := jwk.Generate(jwk.GenerateConfig{Algorithm: jwa.RS256})
//	signer, _ := key.Signer()
//	header, _ := jwk.Header(signer, key)
//
//	signed, err := jws.Sign(ctx, payload, jws.SignConfig{Header: header, Signer: signer})
//
//	res, err := jws.Verify(ctx, signed.Value, jws.VerifyConfig{
//	    Verifier: jwk.NewVerifier(jwk.EmbeddedKeyResolver),
//	})
package jwk
