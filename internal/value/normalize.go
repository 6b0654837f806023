package value

import "sort"

// maxDepth bounds recursion in Normalize and Stringify. A conforming parser never gets close; values assembled by hand with aliased slices can.
const maxDepth = 10000

// Normalize returns v with every object's keys sorted by ordinal string comparison. Arrays keep their order and primitives are returned unchanged. Normalize is
// idempotent, and permuting an object's keys does not change its result.
//
// Subtrees nested deeper than an internal limit are returned as-is.
func Normalize(v Value) Value {
	return normalize(v, 0)
}

func normalize(v Value, depth int) Value {
	if depth >= maxDepth {
		return v
	}
	switch v.kind {
	case Array:
		items := make([]Value, len(v.items))
		for i, it := range v.items {
			items[i] = normalize(it, depth+1)
		}
		return Value{kind: Array, items: items}
	case Object:
		members := make([]Member, len(v.members))
		for i, m := range v.members {
			members[i] = Member{Key: m.Key, Value: normalize(m.Value, depth+1)}
		}
		sort.SliceStable(members, func(i, j int) bool { return members[i].Key < members[j].Key })
		return Value{kind: Object, members: members}
	}
	return v
}
