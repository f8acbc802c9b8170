package codec

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeUTF8(t *testing.T) {
	tests := []struct {
		name  string
		runes []rune
		want  []byte
	}{
		{name: "empty", runes: nil, want: []byte{}},
		{name: "ascii", runes: []rune("abc"), want: []byte("abc")},
		{name: "two bytes", runes: []rune{'é'}, want: []byte{0xC3, 0xA9}},
		{name: "three bytes", runes: []rune{'€'}, want: []byte{0xE2, 0x82, 0xAC}},
		{name: "four bytes", runes: []rune{0x1F600}, want: []byte{0xF0, 0x9F, 0x98, 0x80}},
		{name: "max code point", runes: []rune{0x10FFFF}, want: []byte{0xF4, 0x8F, 0xBF, 0xBF}},
		{name: "nul", runes: []rune{0}, want: []byte{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeUTF8(tt.runes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("lone surrogate rejected", func(t *testing.T) {
		_, err := EncodeUTF8([]rune{'a', 0xD800})
		assert.ErrorIs(t, err, ErrEncoding)
	})

	t.Run("out of range rejected", func(t *testing.T) {
		_, err := EncodeUTF8([]rune{0x110000})
		assert.ErrorIs(t, err, ErrEncoding)
	})
}

func TestValidateUTF8(t *testing.T) {
	assert.NoError(t, ValidateUTF8("Hello signed world! é 😀"))
	assert.ErrorIs(t, ValidateUTF8("a\xffb"), ErrEncoding)
	// CESU-8 style encoded surrogate.
	assert.ErrorIs(t, ValidateUTF8("\xed\xa0\x80"), ErrEncoding)
}

func TestBase64URL(t *testing.T) {
	t.Run("known vectors", func(t *testing.T) {
		tests := []struct {
			in   string
			want string
		}{
			{"", ""},
			{"f", "Zg"},
			{"fo", "Zm8"},
			{"foo", "Zm9v"},
			{"foob", "Zm9vYg"},
			{"fooba", "Zm9vYmE"},
			{"foobar", "Zm9vYmFy"},
			{"\xfb\xff", "-_8"},
			{`{"alg":"RS256"}`, "eyJhbGciOiJSUzI1NiJ9"},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.want, EncodeBase64URL([]byte(tt.in)))

			got, err := DecodeBase64URL(tt.want)
			require.NoError(t, err)
			assert.Equal(t, []byte(tt.in), append([]byte{}, got...))
		}
	})

	t.Run("round trip all lengths", func(t *testing.T) {
		for n := 0; n < 64; n++ {
			b := make([]byte, n)
			_, err := rand.Read(b)
			require.NoError(t, err)

			enc := EncodeBase64URL(b)
			assert.NotContains(t, enc, "=")
			assert.NotContains(t, enc, "+")
			assert.NotContains(t, enc, "/")

			dec, err := DecodeBase64URL(enc)
			require.NoError(t, err)
			assert.Equal(t, b, append([]byte{}, dec...))
		}
	})

	t.Run("malformed input rejected", func(t *testing.T) {
		inputs := []string{
			"Zg==",     // padding
			"Zm9v+g",   // standard alphabet
			"Zm9v/g",   // standard alphabet
			"Zm9\nvYg", // line break
			"Zm9 vYg",  // space
			"Zm9vY",    // length mod 4 == 1
			"Zh",       // non-canonical trailing bits
			"é",
		}

		for _, input := range inputs {
			_, err := DecodeBase64URL(input)
			assert.ErrorIs(t, err, ErrDecoding, "input %q", input)
		}
	})
}
