package parse

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// json5Doc is JSON5 text rewritten as JSON that hujson accepts: comments and trailing commas are left in place; everything else JSON5 adds (unquoted keys,
// single-quoted strings, extra escapes, hex and signed numbers, leading or trailing decimal points, Infinity, NaN, and the words True, False, and None) is
// rewritten.
type json5Doc struct {
	data []byte

	// src[i] is the offset in the original text that produced data[i]. src has one extra entry, the text length, for end of input.
	src []int

	// special maps the end offset in data of a null that stands for a non-finite number to that number.
	special map[int64]float64
}

// source returns the offset in the original text for offset off in data.
func (d *json5Doc) source(off int) int {
	if off < 0 {
		return 0
	}
	if off >= len(d.src) {
		return d.src[len(d.src)-1]
	}
	return d.src[off]
}

func (d *json5Doc) copyText(text string, from, to int) {
	for i := from; i < to; i++ {
		d.data = append(d.data, text[i])
		d.src = append(d.src, i)
	}
}

// write appends s, attributing every byte to offset at.
func (d *json5Doc) write(s string, at int) {
	for i := 0; i < len(s); i++ {
		d.data = append(d.data, s[i])
		d.src = append(d.src, at)
	}
}

func (d *json5Doc) writeNonFinite(f float64, at int) {
	d.write("null", at)
	d.special[int64(len(d.data))] = f
}

var json5Words = []string{"true", "false", "null", "True", "False", "None", "Infinity", "NaN"}

// rewriteJSON5 converts text. Lexical errors (bad literals, bad escapes, unterminated strings, malformed numbers) are reported here with the position JSON5
// parsers use: the first character that cannot continue the token. Structural errors are left for hujson and encoding/json.
func rewriteJSON5(text string) (*json5Doc, *Error) {
	d := &json5Doc{special: make(map[int64]float64)}
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '"' || c == '\'':
			s, end, err := scanJSON5String(text, i)
			if err != nil {
				return nil, err
			}
			d.write(quoteJSON(s), i)
			i = end
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			end := strings.IndexByte(text[i:], '\n')
			if end < 0 {
				end = len(text)
			} else {
				end += i
			}
			d.copyText(text, i, end)
			i = end
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				end = len(text)
			} else {
				end += i + 4
			}
			d.copyText(text, i, end)
			i = end
		case c == '-' || c == '+' || c == '.' || isDigit(c):
			end, err := d.number(text, i)
			if err != nil {
				return nil, err
			}
			i = end
		case c == '\v' || c == '\f':
			d.write(" ", i)
			i++
		case c < utf8.RuneSelf && !isIdentStart(rune(c)):
			d.copyText(text, i, i+1)
			i++
		default:
			r, size := utf8.DecodeRuneInString(text[i:])
			switch {
			case isJSON5Space(r):
				d.write(" ", i)
				i += size
			case isIdentStart(r):
				end, err := d.word(text, i)
				if err != nil {
					return nil, err
				}
				i = end
			default:
				d.copyText(text, i, i+size)
				i += size
			}
		}
	}
	d.src = append(d.src, len(text))
	return d, nil
}

// word rewrites the identifier at i: a member name when a colon follows, otherwise a literal.
func (d *json5Doc) word(text string, i int) (int, *Error) {
	end := scanIdent(text, i)
	w := text[i:end]
	if isMemberName(text, end) {
		d.write(quoteJSON(w), i)
		return end, nil
	}
	switch w {
	case "true", "false", "null":
		d.copyText(text, i, end)
	case "True":
		d.write("true", i)
	case "False":
		d.write("false", i)
	case "None":
		d.write("null", i)
	case "Infinity":
		d.writeNonFinite(math.Inf(1), i)
	case "NaN":
		d.writeNonFinite(math.NaN(), i)
	default:
		return 0, literalError(text, i, w, json5Words)
	}
	return end, nil
}

// number rewrites the JSON5 number at i as a JSON number.
func (d *json5Doc) number(text string, i int) (int, *Error) {
	start := i
	sign := ""
	if text[i] == '+' || text[i] == '-' {
		if text[i] == '-' {
			sign = "-"
		}
		i++
	}

	if i < len(text) && (text[i] == 'I' || text[i] == 'N') {
		end := scanIdent(text, i)
		switch text[i:end] {
		case "Infinity":
			if sign == "-" {
				d.writeNonFinite(math.Inf(-1), start)
			} else {
				d.writeNonFinite(math.Inf(1), start)
			}
			return end, nil
		case "NaN":
			d.writeNonFinite(math.NaN(), start)
			return end, nil
		}
		return 0, literalError(text, i, text[i:end], []string{"Infinity", "NaN"})
	}

	if i+1 < len(text) && text[i] == '0' && (text[i+1] == 'x' || text[i+1] == 'X') {
		j := i + 2
		for j < len(text) && isHexDigit(text[j]) {
			j++
		}
		if j == i+2 {
			return 0, charError(text, j)
		}
		n, _ := new(big.Int).SetString(text[i+2:j], 16)
		d.write(sign+n.String(), start)
		return j, nil
	}

	j := skipDigits(text, i)
	intPart := text[i:j]
	frac := ""
	if j < len(text) && text[j] == '.' {
		k := j + 1
		j = skipDigits(text, k)
		frac = text[k:j]
	}
	if intPart == "" && frac == "" {
		return 0, charError(text, j)
	}
	exp := ""
	if j < len(text) && (text[j] == 'e' || text[j] == 'E') {
		k := j
		j++
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		digits := j
		j = skipDigits(text, j)
		if j == digits {
			return 0, charError(text, j)
		}
		exp = text[k:j]
	}

	if intPart == "" {
		intPart = "0"
	}
	lit := sign + intPart
	if frac != "" {
		lit += "." + frac
	}
	lit += exp
	if lit == text[start:j] {
		d.copyText(text, start, j)
	} else {
		d.write(lit, start)
	}
	return j, nil
}

// scanJSON5String decodes the single- or double-quoted string starting at i. It returns the string and the offset after the closing quote.
func scanJSON5String(text string, i int) (string, int, *Error) {
	quote := text[i]
	var b strings.Builder
	for j := i + 1; j < len(text); {
		c := text[j]
		switch {
		case c == quote:
			return b.String(), j + 1, nil
		case c == '\n' || c == '\r':
			return "", 0, charError(text, j)
		case c == '\\':
			n, err := unescapeJSON5(text, j+1, &b)
			if err != nil {
				return "", 0, err
			}
			j = n
		default:
			_, size := utf8.DecodeRuneInString(text[j:])
			b.WriteString(text[j : j+size])
			j += size
		}
	}
	return "", 0, charError(text, len(text))
}

// unescapeJSON5 decodes the escape sequence whose first character (after the backslash) is at i, and returns the offset after it.
func unescapeJSON5(text string, i int, b *strings.Builder) (int, *Error) {
	if i >= len(text) {
		return 0, charError(text, i)
	}
	r, size := utf8.DecodeRuneInString(text[i:])
	switch r {
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'v':
		b.WriteByte('\v')
	case '0':
		if i+1 < len(text) && isDigit(text[i+1]) {
			return 0, charError(text, i+1)
		}
		b.WriteByte(0)
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return 0, charError(text, i)
	case 'x':
		n, err := hexValue(text, i+1, 2)
		if err != nil {
			return 0, err
		}
		b.WriteRune(rune(n))
		return i + 3, nil
	case 'u':
		n, err := hexValue(text, i+1, 4)
		if err != nil {
			return 0, err
		}
		end := i + 5
		r := rune(n)
		if utf16.IsSurrogate(r) && end+1 < len(text) && text[end] == '\\' && text[end+1] == 'u' {
			if lo, err := hexValue(text, end+2, 4); err == nil {
				if pair := utf16.DecodeRune(r, rune(lo)); pair != unicode.ReplacementChar {
					b.WriteRune(pair)
					return end + 6, nil
				}
			}
		}
		b.WriteRune(r)
		return end, nil
	case '\r':
		if i+1 < len(text) && text[i+1] == '\n' {
			size = 2
		}
	case '\n', '\u2028', '\u2029':
		// Line continuation.
	default:
		b.WriteString(text[i : i+size])
	}
	return i + size, nil
}

func hexValue(text string, i, digits int) (uint64, *Error) {
	for j := i; j < i+digits; j++ {
		if j >= len(text) || !isHexDigit(text[j]) {
			return 0, charError(text, j)
		}
	}
	n, _ := strconv.ParseUint(text[i:i+digits], 16, 32)
	return n, nil
}

// literalError reports the first character of word (at offset i) that no candidate literal allows, or the character after word if word is a prefix of one.
func literalError(text string, i int, word string, candidates []string) *Error {
	best := 0
	for _, c := range candidates {
		n := 0
		for n < len(word) && n < len(c) && word[n] == c[n] {
			n++
		}
		best = max(best, n)
	}
	return charError(text, i+best)
}

// charError reports an invalid character at offset off, or unexpected end of input.
func charError(text string, off int) *Error {
	line, col := position(text, off)
	if off >= len(text) {
		return newError(JSON, fmt.Sprintf("unexpected end of input at %d:%d", line, col))
	}
	r, _ := utf8.DecodeRuneInString(text[off:])
	return newError(JSON, fmt.Sprintf("invalid character %s at %d:%d", strconv.QuoteRune(r), line, col))
}

// isMemberName reports whether a colon follows offset i, skipping whitespace and comments.
func isMemberName(text string, i int) bool {
	for i < len(text) {
		switch {
		case strings.HasPrefix(text[i:], "//"):
			end := strings.IndexByte(text[i:], '\n')
			if end < 0 {
				return false
			}
			i += end
		case strings.HasPrefix(text[i:], "/*"):
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return false
			}
			i += end + 4
		default:
			r, size := utf8.DecodeRuneInString(text[i:])
			if r == ':' {
				return true
			}
			if !isJSON5Space(r) {
				return false
			}
			i += size
		}
	}
	return false
}

func scanIdent(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isIdentPart(r) {
			break
		}
		i += size
	}
	return i
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc) || r == '\u200c' || r == '\u200d'
}

func isJSON5Space(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', '\u00a0', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func skipDigits(text string, i int) int {
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	return i
}

// quoteJSON returns s as a JSON string literal.
func quoteJSON(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}
