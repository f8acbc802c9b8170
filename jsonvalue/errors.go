package jsonvalue

import "errors"

// Parse errors.
var (
	// ErrSyntax is returned when the input is not well-formed JSON (or YAML
	// for ParseYAML), including trailing data after the top-level value.
	ErrSyntax = errors.New("jsonvalue: syntax error")

	// ErrDuplicateKey is returned when an object contains the same member
	// name more than once.
	ErrDuplicateKey = errors.New("jsonvalue: duplicate object key")

	// ErrInvalidNumber is returned when a numeric literal cannot be
	// represented as a finite IEEE-754 double.
	ErrInvalidNumber = errors.New("jsonvalue: number out of range")
)

// Conversion errors.
var (
	// ErrUnsupported is returned when a Go value or YAML node has no JSON
	// equivalent.
	ErrUnsupported = errors.New("jsonvalue: unsupported value")
)
