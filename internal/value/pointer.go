package value

import (
	"strconv"
	"strings"
)

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Pointer returns the JSON Pointer (RFC 6901) for tokens. Pointer() is the root, "".
func Pointer(tokens ...string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(t))
	}
	return b.String()
}

// AppendPointer returns ptr extended by one token.
func AppendPointer(ptr string, token string) string {
	return ptr + "/" + pointerEscaper.Replace(token)
}

// SplitPointer returns the unescaped tokens of ptr. The root pointer has no tokens.
func SplitPointer(ptr string) []string {
	if ptr == "" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	for i, p := range parts {
		parts[i] = pointerUnescaper.Replace(p)
	}
	return parts
}

// IsDescendant reports whether ptr is strictly below ancestor.
func IsDescendant(ptr, ancestor string) bool {
	return len(ptr) > len(ancestor) && strings.HasPrefix(ptr, ancestor) && ptr[len(ancestor)] == '/'
}

// Lookup resolves ptr against v.
func Lookup(v Value, ptr string) (Value, bool) {
	cur := v
	for _, tok := range SplitPointer(ptr) {
		switch cur.kind {
		case Array:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(cur.items) {
				return Value{}, false
			}
			cur = cur.items[i]
		case Object:
			next, ok := cur.Get(tok)
			if !ok {
				return Value{}, false
			}
			cur = next
		default:
			return Value{}, false
		}
	}
	return cur, true
}
