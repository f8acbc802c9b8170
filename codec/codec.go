// Package codec implements the byte-level encodings used by JWS envelopes:
// UTF-8 for text and unpadded base64url (RFC 4648 Section 5) for binary data.
//
// Decoding is strict. The decoder rejects padding, whitespace and line
// breaks, any character outside the base64url alphabet, impossible lengths
// and non-canonical trailing bits, so every byte sequence has exactly one
// accepted textual form.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrEncoding is returned when text cannot be encoded as UTF-8, such as
	// a lone surrogate or an out-of-range code point.
	ErrEncoding = errors.New("codec: invalid unicode text")

	// ErrDecoding is returned when base64url input is malformed.
	ErrDecoding = errors.New("codec: invalid base64url data")
)

var strictRawURL = base64.RawURLEncoding.Strict()

// EncodeUTF8 encodes a sequence of Unicode code points as UTF-8. Surrogate
// code points (U+D800..U+DFFF) and values above U+10FFFF are rejected.
func EncodeUTF8(runes []rune) ([]byte, error) {
	buf := make([]byte, 0, len(runes))

	for i, r := range runes {
		if !utf8.ValidRune(r) {
			return nil, fmt.Errorf("%w: code point U+%04X at index %d", ErrEncoding, r, i)
		}

		buf = utf8.AppendRune(buf, r)
	}

	return buf, nil
}

// ValidateUTF8 reports an error when s is not well-formed UTF-8.
func ValidateUTF8(s string) error {
	if utf8.ValidString(s) {
		return nil
	}

	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return fmt.Errorf("%w: malformed sequence at byte %d", ErrEncoding, i)
			}
		}
	}

	return ErrEncoding
}

// EncodeBase64URL encodes b with the base64url alphabet and no padding.
func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeBase64URL decodes unpadded base64url text.
func DecodeBase64URL(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if !isAlphabet(s[i]) {
			return nil, fmt.Errorf("%w: illegal character %q at offset %d", ErrDecoding, s[i], i)
		}
	}

	if len(s)%4 == 1 {
		return nil, fmt.Errorf("%w: impossible length %d", ErrDecoding, len(s))
	}

	out, err := strictRawURL.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
	}

	return out, nil
}

func isAlphabet(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_':
		return true
	default:
		return false
	}
}
