package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/gowebpki/jcs"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindNull is the JSON null literal. The zero Value is null.
	KindNull Kind = iota

	// KindBool is the JSON true or false literal.
	KindBool

	// KindNumber is a JSON number held as an IEEE-754 double.
	KindNumber

	// KindString is a JSON string.
	KindString

	// KindArray is an ordered sequence of Values.
	KindArray

	// KindObject is a set of uniquely named members.
	KindObject
)

// String returns the lowercase JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Member is a single name/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value. The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	text    string
	elems   []Value
	members []Member
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number returns a JSON number. Non-finite values can be constructed but
// are rejected by serializers.
func Number(f float64) Value { return Value{kind: KindNumber, number: f} }

// String returns a JSON string.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Array returns a JSON array holding a copy of elems.
func Array(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)

	return Value{kind: KindArray, elems: cp}
}

// Object returns a JSON object holding a copy of members. Member order is
// kept for display only. Uniqueness of keys is not checked here; the
// canonical serializer rejects objects with duplicate keys.
func Object(members ...Member) Value {
	cp := make([]Member, len(members))
	copy(cp, members)

	return Value{kind: KindObject, members: cp}
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsObject() bool { return v.kind == KindObject }
func (v Value) IsArray() bool  { return v.kind == KindArray }

// Boolean returns the boolean held by v, or false for other kinds.
func (v Value) Boolean() bool { return v.boolean }

// Float64 returns the number held by v, or 0 for other kinds.
func (v Value) Float64() float64 { return v.number }

// Text returns the string held by v, or "" for other kinds.
func (v Value) Text() string { return v.text }

// Len returns the number of array elements or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.elems)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns the i-th array element. It panics if v is not an array or i
// is out of range, like a slice index.
func (v Value) Index(i int) Value {
	if v.kind != KindArray {
		panic("jsonvalue: Index called on " + v.kind.String())
	}

	return v.elems[i]
}

// Elements returns a copy of the array elements, or nil for other kinds.
func (v Value) Elements() []Value {
	if v.kind != KindArray {
		return nil
	}

	cp := make([]Value, len(v.elems))
	copy(cp, v.elems)

	return cp
}

// Members returns a copy of the object members in insertion order, or nil
// for other kinds.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}

	cp := make([]Member, len(v.members))
	copy(cp, v.members)

	return cp
}

// Keys returns the object member names in insertion order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}

	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}

	return keys
}

// Lookup returns the value of the named object member.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}

	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}

	return Value{}, false
}

// Has reports whether v is an object with a member named key.
func (v Value) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// With returns a copy of object v where the member named key holds val.
// An existing member keeps its position; a new member is appended.
// Non-object values are returned unchanged.
func (v Value) With(key string, val Value) Value {
	if v.kind != KindObject {
		return v
	}

	members := make([]Member, 0, len(v.members)+1)
	replaced := false

	for _, m := range v.members {
		if m.Key == key {
			m.Value = val
			replaced = true
		}

		members = append(members, m)
	}

	if !replaced {
		members = append(members, Member{Key: key, Value: val})
	}

	return Value{kind: KindObject, members: members}
}

// Without returns a copy of object v with every member named key removed.
// Non-object values are returned unchanged.
func (v Value) Without(key string) Value {
	if v.kind != KindObject {
		return v
	}

	members := make([]Member, 0, len(v.members))
	for _, m := range v.members {
		if m.Key != key {
			members = append(members, m)
		}
	}

	return Value{kind: KindObject, members: members}
}

// Equal reports whether a and b are structurally equal. Object member order
// is ignored and numbers compare by float64 equality, so 0 equals -0.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolean == b.boolean
	case KindNumber:
		return a.number == b.number
	case KindString:
		return a.text == b.text
	case KindArray:
		if len(a.elems) != len(b.elems) {
			return false
		}

		for i := range a.elems {
			if !Equal(a.elems[i], b.elems[i]) {
				return false
			}
		}

		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}

		for _, m := range a.members {
			other, ok := b.Lookup(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// MarshalJSON renders v as compact JSON keeping object members in insertion
// order. The output is meant for display; use the canonical package for
// signing.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		if math.IsNaN(v.number) || math.IsInf(v.number, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidNumber, v.number)
		}

		num, err := jcs.NumberToJSON(v.number)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidNumber, err)
		}

		buf.WriteString(num)
	case KindString:
		return writeString(buf, v.text)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := e.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := writeString(buf, m.Key); err != nil {
				return err
			}

			buf.WriteByte(':')

			if err := m.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, v.kind)
	}

	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return err
	}

	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)

	return nil
}
