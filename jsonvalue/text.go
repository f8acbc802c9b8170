package jsonvalue

import (
	"fmt"
	"unicode/utf16"

	"github.com/vitalvas/jwsjcs/codec"
)

// checkText rejects JSON text that encoding/json would silently repair:
// malformed UTF-8 and \u escapes naming a lone surrogate. Both would
// otherwise decode to U+FFFD.
func checkText(data []byte) error {
	if err := codec.ValidateUTF8(string(data)); err != nil {
		return err
	}

	inString := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		if !inString {
			if c == '"' {
				inString = true
			}

			continue
		}

		switch c {
		case '"':
			inString = false
		case '\\':
			if i+1 >= len(data) || data[i+1] != 'u' {
				// Other escapes are one character; the decoder reports bad ones.
				i++
				continue
			}

			r, ok := hexRune(data, i+2)
			if !ok {
				i++
				continue
			}

			pos := i
			i += 5

			if !utf16.IsSurrogate(r) {
				continue
			}

			if r >= 0xDC00 {
				return fmt.Errorf("%w: unpaired low surrogate \\u%04x at byte %d", codec.ErrEncoding, r, pos)
			}

			if i+6 < len(data) && data[i+1] == '\\' && data[i+2] == 'u' {
				if lo, ok := hexRune(data, i+3); ok && lo >= 0xDC00 && lo <= 0xDFFF {
					i += 6
					continue
				}
			}

			return fmt.Errorf("%w: unpaired high surrogate \\u%04x at byte %d", codec.ErrEncoding, r, pos)
		}
	}

	return nil
}

// hexRune decodes the four hex digits starting at data[start].
func hexRune(data []byte, start int) (rune, bool) {
	if start+4 > len(data) {
		return 0, false
	}

	var r rune

	for _, c := range data[start : start+4] {
		r <<= 4

		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			r |= rune(c - 'A' + 10)
		default:
			return 0, false
		}
	}

	return r, true
}
