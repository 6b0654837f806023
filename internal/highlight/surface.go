package highlight

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes & < > " and '.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// HTML renders to HTML: text is entity-escaped, matches become <span class="hl-search">, and the error becomes <span class="hl-error">.
var HTML = Surface{
	Escape:      EscapeHTML,
	Placeholder: "&nbsp;",
	Wrap: func(tag Tag, text string) string {
		return `<span class="hl-` + tag.String() + `">` + text + `</span>`
	},
}

// Plain renders without escaping, marking matches as [[text]] and the error as {{text}}. It is meant for logs and tests.
var Plain = Surface{
	Placeholder: " ",
	Wrap: func(tag Tag, text string) string {
		if tag == TagError {
			return "{{" + text + "}}"
		}
		return "[[" + text + "]]"
	},
}

// Terminal returns a surface that sanitizes control characters and styles matches and the error with lipgloss.
func Terminal(search, errStyle lipgloss.Style) Surface {
	return Surface{
		Escape:      func(s string) string { return Sanitize(s, 0) },
		Placeholder: " ",
		Wrap: func(tag Tag, text string) string {
			style := search
			if tag == TagError {
				style = errStyle
				if text == "\n" || text == "\r" {
					return style.Render(" ") + text
				}
			}
			// lipgloss pads multi-line blocks to a rectangle; style each line on its own instead.
			lines := strings.Split(text, "\n")
			for i, ln := range lines {
				if ln != "" {
					lines[i] = style.Render(ln)
				}
			}
			return strings.Join(lines, "\n")
		},
	}
}

const upperHex = "0123456789ABCDEF"

// Sanitize makes s safe to write to a terminal. Newlines and carriage returns are kept. Tabs become tabWidth spaces if tabWidth > 0. Other ASCII control characters
// (including ESC and DEL) become a visible "\xXX", and invalid UTF-8 becomes U+FFFD.
func Sanitize(s string, tabWidth int) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size == 1:
			b.WriteRune(utf8.RuneError)
		case r == '\t' && tabWidth > 0:
			b.WriteString(strings.Repeat(" ", tabWidth))
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7F:
			b.WriteString(`\x`)
			b.WriteByte(upperHex[r>>4])
			b.WriteByte(upperHex[r&0x0F])
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
