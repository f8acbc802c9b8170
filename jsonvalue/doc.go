// Package jsonvalue implements an immutable in-memory model of a parsed JSON
// document.
//
// A Value is a tagged union of the six JSON kinds: null, boolean, number,
// string, array and object. Values are constructed once (by Parse, ParseYAML,
// FromAny or the constructor functions) and never mutated afterwards;
// operations such as With and Without return new Values.
//
// # Parsing
//
// Parse reads a single JSON text. Duplicate object keys are rejected rather
// than silently resolved, and trailing data after the value is an error:
//
//	v, err := jsonvalue.Parse([]byte(`{"statement":"Hello signed world!"}`))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// ParseYAML accepts the JSON-compatible subset of YAML, so configuration-style
// documents can be canonicalized and signed the same way:
//
//	v, err := jsonvalue.ParseYAML([]byte("statement: Hello signed world!\n"))
//
// # Numbers
//
// Numbers are stored as IEEE-754 double-precision values. Literals that do not
// fit a float64 are rejected with ErrInvalidNumber. Negative zero is preserved
// in the model; it is up to the serializer to decide how to render it.
//
// # Object Members
//
// Objects keep their members in insertion order for display purposes
// (MarshalJSON, Members). That order carries no meaning: Equal ignores it and
// canonical serialization always recomputes it.
package jsonvalue
