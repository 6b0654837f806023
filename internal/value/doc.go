// Package value models a parsed structured document and the two pure transforms docview runs over it before display or comparison.
//
// A Value is one of null, bool, number, string, array, or object. Objects are ordered: members keep the order the parser produced them in, and keys are unique (a later
// duplicate replaces the earlier value but keeps the earlier position, like JSON.parse). Values are immutable once constructed; accessors that expose children return
// copies.
//
// Numbers keep a canonical decimal text rather than a float64 so that integers wider than 53 bits survive a round trip. The canonical text follows JavaScript's
// Number#toString: integral values have no fraction, very large and very small magnitudes use exponent notation, and non-finite values print as NaN/Infinity.
//
// Transforms:
//   - Normalize sorts object keys (ordinal, byte-wise) recursively; arrays keep their order. It exists only to produce a comparison-stable serialization.
//   - Stringify serializes to JSON text equivalent to JSON.stringify(v, null, indent). It is deterministic for a given Value and key order.
//
// Paths into a Value are JSON Pointers (RFC 6901). Pointer builds them; Lookup resolves them.
package value
