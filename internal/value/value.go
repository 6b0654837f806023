package value

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the type of a Value.
type Kind uint8

// Kinds of Value. The zero Value is Null.
const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a node of a parsed document. The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	s       string // string contents, or canonical number text
	items   []Value
	members []Member
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// NullValue returns null.
func NullValue() Value { return Value{} }

// BoolValue returns a bool Value.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// IntValue returns an exact integer number.
func IntValue(i int64) Value { return Value{kind: Number, s: strconv.FormatInt(i, 10)} }

// FloatValue returns a number whose text is f formatted like JavaScript's Number#toString.
func FloatValue(f float64) Value { return Value{kind: Number, s: formatFloat(f)} }

// NumberLiteral returns a number from a decimal literal (ex: "12", "-0.5e3"). Integer literals that fit in an int64 are kept exact; everything else is parsed as a
// float64. It returns false if lit is not a number.
func NumberLiteral(lit string) (Value, bool) {
	lit = strings.TrimPrefix(lit, "+")
	if isIntegerLiteral(lit) {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return IntValue(i), true
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// ParseFloat reports range errors with ±Inf; JavaScript does the same.
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return Value{}, false
		}
	}
	return FloatValue(f), true
}

// ArrayValue returns an array of items. items is copied.
func ArrayValue(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: Array, items: cp}
}

// ObjectValue returns an object of members in order. If a key repeats, the later value replaces the earlier one in the earlier position.
func ObjectValue(members ...Member) Value {
	out := make([]Member, 0, len(members))
	index := make(map[string]int, len(members))
	for _, m := range members {
		if i, ok := index[m.Key]; ok {
			out[i].Value = m.Value
			continue
		}
		index[m.Key] = len(out)
		out = append(out, m)
	}
	return Value{kind: Object, members: out}
}

// Kind returns v's kind.
func (v Value) Kind() Kind { return v.kind }

// IsContainer reports whether v is an array or object.
func (v Value) IsContainer() bool { return v.kind == Array || v.kind == Object }

// Bool returns v's bool (false unless v is a Bool).
func (v Value) Bool() bool { return v.b }

// Str returns v's string contents (empty unless v is a String).
func (v Value) Str() string {
	if v.kind != String {
		return ""
	}
	return v.s
}

// NumberText returns the canonical text of a number (empty unless v is a Number).
func (v Value) NumberText() string {
	if v.kind != Number {
		return ""
	}
	return v.s
}

// Float returns v as a float64. ok is false unless v is a Number.
func (v Value) Float() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	switch v.s {
	case "NaN":
		return math.NaN(), true
	case "Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	f, err := strconv.ParseFloat(v.s, 64)
	return f, err == nil
}

// Finite reports whether v is a number other than NaN/±Infinity.
func (v Value) Finite() bool {
	return v.kind == Number && v.s != "NaN" && v.s != "Infinity" && v.s != "-Infinity"
}

// Len returns the number of items (array) or members (object), and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	}
	return 0
}

// Index returns the i-th array item. It panics if v is not an array or i is out of range.
func (v Value) Index(i int) Value {
	if v.kind != Array {
		panic("value: Index called on " + v.kind.String())
	}
	return v.items[i]
}

// Items returns a copy of v's array items (nil unless v is an Array).
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	cp := make([]Value, len(v.items))
	copy(cp, v.items)
	return cp
}

// Members returns a copy of v's object members in order (nil unless v is an Object).
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	cp := make([]Member, len(v.members))
	copy(cp, v.members)
	return cp
}

// Keys returns v's object keys in order.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Get returns the member value for key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Text returns the display text of a primitive, matching JavaScript's String(v): "null", "true"/"false", the number text, or the raw string. For containers it
// returns compact JSON.
func (v Value) Text() string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case Number, String:
		return v.s
	}
	s, err := Stringify(v, 0)
	if err != nil {
		return ""
	}
	return s
}

// String implements fmt.Stringer. It returns compact JSON.
func (v Value) String() string {
	s, err := Stringify(v, 0)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return s
}

// Equal reports whether a and b are structurally equal, including object key order.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case Number, String:
		return a.s == b.s
	case Array:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.members) != len(b.members) {
			return false
		}
		for i := range a.members {
			if a.members[i].Key != b.members[i].Key || !Equal(a.members[i].Value, b.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

func isIntegerLiteral(lit string) bool {
	if lit == "" {
		return false
	}
	i := 0
	if lit[0] == '-' {
		i = 1
	}
	if i == len(lit) {
		return false
	}
	for ; i < len(lit); i++ {
		if lit[i] < '0' || lit[i] > '9' {
			return false
		}
	}
	return true
}

// formatFloat formats f the way JavaScript's Number#toString does.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// Go writes "1e-07"; JavaScript writes "1e-7".
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}
