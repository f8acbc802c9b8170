// Package jws implements a compact JSON Web Signature envelope over
// canonicalized JSON objects (JWS-JCS).
//
// The payload is the canonical form of the object being signed. Because the
// payload travels inside the signed object itself, the compact serialization
// carries an empty payload segment:
//
//	<base64url(header)>..<base64url(signature)>
//
// That string is stored in a property of the signed object ("signature" by
// default). Verification removes the property, canonicalizes the remainder
// and checks the signature over
//
//	ASCII(base64url(header)) || '.' || ASCII(base64url(canonical payload))
//
// which is exactly the JWS signing input of RFC 7515 with a detached payload.
//
// # Signing
//
// The package performs no cryptography. Signing and verification are
// delegated to small capabilities supplied by the caller:
//
//	header := jsonvalue.Object(jsonvalue.Member{Key: "alg", Value: jsonvalue.String("RS256")})
//
//	signed, err := jws.Sign(ctx, payload, jws.SignConfig{
//	    Header: header,
//	    Signer: jws.SignerFunc(func(input []byte) ([]byte, error) {
//	        digest := sha256.Sum256(input)
//	        return rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
//	    }),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// signed.Value is payload plus the "signature" property.
//
// # Verifying
//
//	res, err := jws.Verify(ctx, signed.Value, jws.VerifyConfig{
//	    Verifier: verifier,
//	})
//	if err != nil {
//	    // structurally malformed envelope or failing primitive
//	}
//
//	if res.Result == jws.Valid {
//	    // signature matches
//	}
//
// The jwk package provides a Verifier that uses the public key embedded in
// the header, and the jwa package provides signers for the JOSE algorithms.
//
// # Cancellation
//
// Callbacks run under the caller's context. If the context is done before a
// callback returns, Sign and Verify return ErrSigningFailed or
// ErrVerificationFailed wrapping the context error instead of waiting.
package jws
