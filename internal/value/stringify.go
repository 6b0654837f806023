package value

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrTooDeep is returned by Stringify when v nests deeper than the serializer allows (typically because v was assembled with a reference cycle).
var ErrTooDeep = errors.New("value nests too deeply to serialize")

// Stringify serializes v as JSON text equivalent to JSON.stringify(v, null, indent):
//   - indent <= 0 produces compact output. Otherwise each nested item goes on its own line, indented by indent spaces per level, and keys are followed by ": ".
//   - Empty arrays and objects are "[]" and "{}".
//   - Strings escape only '"', '\\', and control characters.
//   - NaN and ±Infinity serialize as null.
//   - There is no trailing newline.
func Stringify(v Value, indent int) (string, error) {
	var b strings.Builder
	s := stringifier{b: &b}
	if indent > 0 {
		s.indent = strings.Repeat(" ", indent)
	}
	if err := s.write(v, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

type stringifier struct {
	b      *strings.Builder
	indent string
}

func (s stringifier) newline(depth int) {
	if s.indent == "" {
		return
	}
	s.b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		s.b.WriteString(s.indent)
	}
}

func (s stringifier) write(v Value, depth int) error {
	if depth >= maxDepth {
		return ErrTooDeep
	}
	switch v.kind {
	case Null:
		s.b.WriteString("null")
	case Bool:
		if v.b {
			s.b.WriteString("true")
		} else {
			s.b.WriteString("false")
		}
	case Number:
		if !v.Finite() {
			s.b.WriteString("null")
		} else {
			s.b.WriteString(v.s)
		}
	case String:
		writeQuoted(s.b, v.s)
	case Array:
		if len(v.items) == 0 {
			s.b.WriteString("[]")
			return nil
		}
		s.b.WriteByte('[')
		for i, it := range v.items {
			if i > 0 {
				s.b.WriteByte(',')
			}
			s.newline(depth + 1)
			if err := s.write(it, depth+1); err != nil {
				return err
			}
		}
		s.newline(depth)
		s.b.WriteByte(']')
	case Object:
		if len(v.members) == 0 {
			s.b.WriteString("{}")
			return nil
		}
		s.b.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				s.b.WriteByte(',')
			}
			s.newline(depth + 1)
			writeQuoted(s.b, m.Key)
			s.b.WriteByte(':')
			if s.indent != "" {
				s.b.WriteByte(' ')
			}
			if err := s.write(m.Value, depth+1); err != nil {
				return err
			}
		}
		s.newline(depth)
		s.b.WriteByte('}')
	}
	return nil
}

const hexDigits = "0123456789abcdef"

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				b.WriteString(`�`)
			} else {
				b.WriteString(s[i : i+size])
			}
			i += size
			continue
		}
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0xF])
			} else {
				b.WriteByte(c)
			}
		}
		i++
	}
	b.WriteByte('"')
}
