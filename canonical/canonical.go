package canonical

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/gowebpki/jcs"
	"github.com/vitalvas/jwsjcs/codec"
	"github.com/vitalvas/jwsjcs/jsonvalue"
)

// Config controls canonical serialization.
type Config struct {
	// MaxDepth limits the nesting of arrays and objects. A top-level array
	// or object has depth 1. Zero means no limit.
	MaxDepth int
}

// Canonicalize returns the canonical UTF-8 encoding of v.
func Canonicalize(v jsonvalue.Value) ([]byte, error) {
	return CanonicalizeConfig(v, Config{})
}

// CanonicalizeConfig returns the canonical UTF-8 encoding of v using cfg.
func CanonicalizeConfig(v jsonvalue.Value, cfg Config) ([]byte, error) {
	e := encoder{maxDepth: cfg.MaxDepth}
	if err := e.value(v, 0); err != nil {
		return nil, err
	}

	return e.buf.Bytes(), nil
}

// Transform parses JSON text and returns its canonical form.
func Transform(data []byte) ([]byte, error) {
	v, err := jsonvalue.Parse(data)
	if err != nil {
		return nil, err
	}

	return Canonicalize(v)
}

type encoder struct {
	buf      bytes.Buffer
	maxDepth int
}

func (e *encoder) value(v jsonvalue.Value, depth int) error {
	switch v.Kind() {
	case jsonvalue.KindNull:
		e.buf.WriteString("null")
	case jsonvalue.KindBool:
		if v.Boolean() {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case jsonvalue.KindNumber:
		return e.number(v.Float64())
	case jsonvalue.KindString:
		return e.quote(v.Text())
	case jsonvalue.KindArray:
		if err := e.enter(depth); err != nil {
			return err
		}

		e.buf.WriteByte('[')
		for i, elem := range v.Elements() {
			if i > 0 {
				e.buf.WriteByte(',')
			}

			if err := e.value(elem, depth+1); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
	case jsonvalue.KindObject:
		if err := e.enter(depth); err != nil {
			return err
		}

		return e.object(v, depth)
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrInvalidInput, v.Kind())
	}

	return nil
}

func (e *encoder) enter(depth int) error {
	if e.maxDepth > 0 && depth >= e.maxDepth {
		return fmt.Errorf("%w: limit %d", ErrDepthExceeded, e.maxDepth)
	}

	return nil
}

func (e *encoder) object(v jsonvalue.Value, depth int) error {
	members := v.Members()

	// Byte order of well-formed UTF-8 equals code point order; malformed
	// keys are rejected by quote below.
	slices.SortFunc(members, func(a, b jsonvalue.Member) int {
		return cmp.Compare(a.Key, b.Key)
	})

	e.buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			if members[i-1].Key == m.Key {
				return fmt.Errorf("%w: duplicate object key %q", ErrInvalidInput, m.Key)
			}

			e.buf.WriteByte(',')
		}

		if err := e.quote(m.Key); err != nil {
			return err
		}

		e.buf.WriteByte(':')

		if err := e.value(m.Value, depth+1); err != nil {
			return err
		}
	}
	e.buf.WriteByte('}')

	return nil
}

func (e *encoder) number(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: non-finite number %v", ErrInvalidInput, f)
	}

	s, err := jcs.NumberToJSON(f)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	e.buf.WriteString(s)

	return nil
}

const hexDigits = "0123456789abcdef"

func (e *encoder) quote(s string) error {
	if err := codec.ValidateUTF8(s); err != nil {
		return err
	}

	e.buf.WriteByte('"')

	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}

		e.buf.WriteString(s[start:i])

		switch c {
		case '"':
			e.buf.WriteString(`\"`)
		case '\\':
			e.buf.WriteString(`\\`)
		case '\b':
			e.buf.WriteString(`\b`)
		case '\f':
			e.buf.WriteString(`\f`)
		case '\n':
			e.buf.WriteString(`\n`)
		case '\r':
			e.buf.WriteString(`\r`)
		case '\t':
			e.buf.WriteString(`\t`)
		default:
			e.buf.WriteString(`\u00`)
			e.buf.WriteByte(hexDigits[c>>4])
			e.buf.WriteByte(hexDigits[c&0xF])
		}

		start = i + 1
	}

	e.buf.WriteString(s[start:])
	e.buf.WriteByte('"')

	return nil
}
