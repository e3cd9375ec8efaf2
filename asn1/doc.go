// Package asn1 implements a DER codec for the subset of ASN.1 used by X.509,
// PKCS, COSE key and JOSE key structures.
//
// Unlike encoding/asn1, which maps DER onto Go structs through reflection,
// this package decodes bytes into an immutable tree of elements that can be
// inspected, rebuilt and re-encoded:
//
//	e, err := asn1.Parse(der)
//	seq, err := asn1.AsSequence(e)
//	p, err := asn1.AsPrimitive(seq.At(0))
//	version, err := p.Int64()
//
// Parse(e.DER()) is equal to e for every element e, and Parse(b).DER() equals
// b for every DER encoding b. SET children are kept sorted by their encoded
// tag, so sets built in any order encode identically.
//
// Trees are built with the New* constructors or with a Builder. Decoding
// functions come in pairs: one returning an error, which is a
// *TagMismatchError when the element carries an unexpected tag, and one
// returning a default or nil, for callers that probe several
// interpretations of the same input.
//
// Indefinite lengths, CER and ASN.1 module definitions are not supported.
package asn1
