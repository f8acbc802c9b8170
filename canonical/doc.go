// Package canonical implements the JSON Canonicalization Scheme: a
// deterministic serializer that maps every JSON value to exactly one byte
// sequence.
//
// Two structurally equal values always canonicalize to identical bytes,
// regardless of the member order, whitespace or numeric spelling of their
// source text. That property makes the output suitable as a signature
// payload: a signature computed over the canonical form survives any
// re-serialization by an intermediary.
//
// # Rules
//
//   - null, true and false are written as literals.
//   - Numbers use the ECMAScript shortest round-trip form (RFC 8785 Section
//     3.2.2.3): 2e3 becomes 2000, 2.0 becomes 2, 1e21 becomes 1e+21. Negative
//     zero is written as 0. NaN and infinities are rejected.
//   - Strings escape only the quotation mark, the reverse solidus and C0
//     control characters; everything else is written as literal UTF-8.
//   - Arrays keep their element order.
//   - Object members are sorted by key in ascending Unicode code point order.
//     This equals byte order of the UTF-8 keys. It differs from the UTF-16
//     code unit order of RFC 8785 only for keys that mix supplementary plane
//     characters with characters in U+E000..U+FFFF.
//   - No insignificant whitespace is emitted.
//
// # Usage
//
//	v, err := jsonvalue.Parse([]byte(`{"b":1,"a":2}`))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := canonical.Canonicalize(v)
//	// out == []byte(`{"a":2,"b":1}`)
//
// Transform combines both steps for raw JSON text.
package canonical
