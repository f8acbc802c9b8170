// Package jwa implements the JOSE signature algorithms of RFC 7518 and
// RFC 8037 on top of the Go standard crypto packages and
// github.com/cloudflare/circl for Ed448.
//
// Signers and verifiers operate on raw JWS signing input. ECDSA signatures
// use the fixed-width r||s encoding required by JWS rather than ASN.1.
//
//	signer, err := jwa.NewSigner(jwa.ES256, "key-1", ecKey)
//	if err != nil {
//	    return err
//	}
//
//	sig, err := signer.Sign(signingInput)
package jwa
