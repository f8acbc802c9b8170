package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Parse parses a single JSON text into a Value. Duplicate object keys,
// numbers outside the float64 range and trailing data are errors. Text that
// is not valid UTF-8, or that escapes an unpaired surrogate, fails with
// codec.ErrEncoding.
func Parse(data []byte) (Value, error) {
	if err := checkText(data); err != nil {
		return Value{}, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Value{}, syntaxError(err)
	}

	v, err := parseToken(dec, tok)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("%w: unexpected trailing data after JSON value", ErrSyntax)
	}

	return v, nil
}

// ParseReader reads r to the end and parses it with Parse.
func ParseReader(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	return Parse(data)
}

func parseToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return parseNumber(string(t))
	case json.Delim:
		switch t {
		case '[':
			return parseArray(dec)
		case '{':
			return parseObject(dec)
		}
	}

	return Value{}, fmt.Errorf("%w: unexpected token %v", ErrSyntax, tok)
}

func parseArray(dec *json.Decoder) (Value, error) {
	elems := make([]Value, 0)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, syntaxError(err)
		}

		v, err := parseToken(dec, tok)
		if err != nil {
			return Value{}, err
		}

		elems = append(elems, v)
	}

	// Closing ']'.
	if _, err := dec.Token(); err != nil {
		return Value{}, syntaxError(err)
	}

	return Value{kind: KindArray, elems: elems}, nil
}

func parseObject(dec *json.Decoder) (Value, error) {
	members := make([]Member, 0)
	seen := make(map[string]struct{})

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, syntaxError(err)
		}

		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: object key must be a string", ErrSyntax)
		}

		if _, dup := seen[key]; dup {
			return Value{}, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}
		seen[key] = struct{}{}

		tok, err = dec.Token()
		if err != nil {
			return Value{}, syntaxError(err)
		}

		v, err := parseToken(dec, tok)
		if err != nil {
			return Value{}, err
		}

		members = append(members, Member{Key: key, Value: v})
	}

	// Closing '}'.
	if _, err := dec.Token(); err != nil {
		return Value{}, syntaxError(err)
	}

	return Value{kind: KindObject, members: members}, nil
}

func parseNumber(lit string) (Value, error) {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("%w: %s", ErrInvalidNumber, lit)
	}

	return Number(f), nil
}

func syntaxError(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}

	return fmt.Errorf("%w: %w", ErrSyntax, err)
}
