package render

import (
	"fmt"
	"strings"

	"github.com/codalotl/docview/internal/document"
	"github.com/codalotl/docview/internal/highlight"
)

// ErrorMessage describes doc's parse failure, or returns "" if doc did not fail. With a known position it reads "Parse error at line L, column C".
func ErrorMessage(doc *document.Document) string {
	if doc.Status() != document.StatusInvalid {
		return ""
	}
	if loc, ok := doc.ErrorLocation(); ok {
		return fmt.Sprintf("Parse error at line %d, column %d", loc.Line, loc.Column)
	}
	return "Parse error"
}

// Overlay renders doc's source text with search matches and the parse error position highlighted. A failed document is followed by the error message and the
// parser's own description.
func (t *Terminal) Overlay(doc *document.Document, search string) string {
	var b strings.Builder
	b.WriteString(doc.Overlay(t.source, search))
	if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
		b.WriteByte('\n')
	}
	if msg := ErrorMessage(doc); msg != "" {
		b.WriteString(t.errText.Render(msg))
		b.WriteByte('\n')
		b.WriteString(t.muted.Render(inlineEscaper.Replace(highlight.Sanitize(doc.Err().Error(), 0))))
		b.WriteByte('\n')
	}
	return b.String()
}
