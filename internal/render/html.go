package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/codalotl/docview/internal/diff"
	"github.com/codalotl/docview/internal/document"
	"github.com/codalotl/docview/internal/highlight"
	"github.com/codalotl/docview/internal/tree"
	"github.com/codalotl/docview/internal/value"
)

var htmlTemplates = template.Must(template.New("docview").Parse(`
{{- define "tree" -}}
<div class="docview-tree">
{{range .}}<div class="row {{.Class}}" style="padding-left: {{.Indent}}ch">{{if .Marker}}<span class="marker">{{.Marker}}</span> {{end}}{{if .Label}}<span class="token-key">{{.Label}}</span>: {{end}}{{.Body}}</div>
{{end}}</div>
{{- end -}}

{{- define "cell" -}}
{{if .}}<td class="num">{{.Number}}</td><td class="text{{if .Changed}} {{.Class}}{{end}}">{{.Text}}</td>{{else}}<td class="num"></td><td class="text"></td>{{end}}
{{- end -}}

{{- define "diff" -}}
<div class="docview-diff">
{{if .Err}}<p class="error">Comparison failed: {{.Err}}</p>
{{else}}<table>
{{if or .LeftTitle .RightTitle}}<tr><th colspan="2">{{.LeftTitle}}</th><th colspan="2">{{.RightTitle}}</th></tr>
{{end}}{{range .Rows}}<tr>{{template "cell" .Left}}{{template "cell" .Right}}</tr>
{{end}}</table>
{{if .Identical}}<p class="no-diff">No differences</p>
{{end}}{{end}}</div>
{{- end -}}

{{- define "overlay" -}}
<div class="docview-overlay">
<pre class="source">{{.Source}}</pre>
{{if .Message}}<p class="error">{{.Message}}</p>
<p class="detail">{{.Detail}}</p>
{{end}}</div>
{{- end -}}

{{- define "page" -}}
<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: ui-monospace, monospace; background: #1e1e1e; color: #d4d4d4; }
.hl-search { background: #ffd700; color: #000; }
.hl-error { background: #d70000; color: #fff; font-weight: bold; }
.token-key { color: #0087ff; }
.token-string { color: #5faf00; }
.token-number { color: #d78700; }
.token-literal { color: #af5fff; }
.summary { opacity: 0.6; }
.marker { cursor: pointer; }
.docview-diff table { border-collapse: collapse; width: 100%; }
.docview-diff td { white-space: pre-wrap; vertical-align: top; }
.docview-diff td.num { text-align: right; opacity: 0.6; padding-right: 1ch; }
.docview-diff td.removed { background: #3f1d1d; }
.docview-diff td.added { background: #1d3f1d; }
.no-diff, .detail { opacity: 0.6; }
.error { color: #ff5f5f; }
pre.source { white-space: pre-wrap; word-break: break-word; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
{{end -}}
`))

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

type htmlTreeRow struct {
	Class  string
	Indent int // In ch units.
	Marker string
	Label  template.HTML
	Body   template.HTML
}

// HTMLTree renders lines as an HTML fragment, one <div class="row"> per line. Search matches are wrapped in <span class="hl-search">.
func HTMLTree(lines []tree.Line, search string) (template.HTML, error) {
	rows := make([]htmlTreeRow, 0, len(lines))
	for _, ln := range lines {
		row := htmlTreeRow{Indent: 2 * ln.Depth}
		if ln.HasLabel && ln.Kind != tree.LineClose {
			row.Label = htmlHighlight(ln.Label, search)
		}
		open, close := ln.Brackets()
		switch ln.Kind {
		case tree.LineOpen:
			row.Class, row.Marker = "open", MarkerOpen
			row.Body = template.HTML(open)
		case tree.LineClose:
			row.Class = "close"
			row.Indent += 2
			row.Body = template.HTML(close)
		case tree.LineCollapsed:
			row.Class, row.Marker = "collapsed", MarkerClosed
			row.Body = template.HTML(open + `<span class="summary">` + highlight.EscapeHTML(ln.Summary) + `</span>` + close)
		default:
			row.Class = "leaf"
			row.Indent += 2
			row.Body = htmlLeaf(ln.Value, search)
		}
		rows = append(rows, row)
	}
	return execute("tree", rows)
}

// htmlHighlight escapes text and marks search matches. The result is safe HTML.
func htmlHighlight(text, search string) template.HTML {
	return template.HTML(highlight.Render(highlight.HTML, text, search, nil))
}

func htmlLeaf(v value.Value, search string) template.HTML {
	switch v.Kind() {
	case value.String:
		return `<span class="token-string">&quot;` + htmlHighlight(v.Str(), search) + `&quot;</span>`
	case value.Number:
		return `<span class="token-number">` + htmlHighlight(v.NumberText(), search) + `</span>`
	}
	return `<span class="token-literal">` + htmlHighlight(v.Text(), search) + `</span>`
}

type htmlDiffCell struct {
	Number  int
	Text    string
	Changed bool
	Class   string
}

type htmlDiffRow struct {
	Left  *htmlDiffCell
	Right *htmlDiffCell
}

type htmlDiff struct {
	LeftTitle  string
	RightTitle string
	Rows       []htmlDiffRow
	Identical  bool
	Err        string
}

// HTMLDiff renders c as an HTML table with line numbers and text for each side. Changed cells get class "removed" (left) or "added" (right).
func HTMLDiff(c diff.Comparison, leftTitle, rightTitle string) (template.HTML, error) {
	data := htmlDiff{LeftTitle: leftTitle, RightTitle: rightTitle, Identical: c.Identical && c.Err == nil}
	if c.Err != nil {
		data.Err = c.Err.Error()
		return execute("diff", data)
	}
	cell := func(lines []diff.Line, i int, class string) *htmlDiffCell {
		if i >= len(lines) {
			return nil
		}
		return &htmlDiffCell{Number: lines[i].Number, Text: lines[i].Text, Changed: lines[i].Changed, Class: class}
	}
	left, right := c.Columns.Left, c.Columns.Right
	for i := 0; i < max(len(left), len(right)); i++ {
		data.Rows = append(data.Rows, htmlDiffRow{Left: cell(left, i, "removed"), Right: cell(right, i, "added")})
	}
	return execute("diff", data)
}

// HTMLOverlay renders doc's source with search matches in <span class="hl-search"> and the parse error position in <span class="hl-error">, followed by the
// error message if doc failed to parse.
func HTMLOverlay(doc *document.Document, search string) (template.HTML, error) {
	data := struct {
		Source  template.HTML
		Message string
		Detail  string
	}{
		Source:  template.HTML(doc.Overlay(highlight.HTML, search)),
		Message: ErrorMessage(doc),
	}
	if data.Message != "" {
		data.Detail = doc.Err().Error()
	}
	return execute("overlay", data)
}

// HTMLPage wraps body in a standalone HTML document with docview's stylesheet.
func HTMLPage(title string, body template.HTML) (string, error) {
	var b strings.Builder
	data := struct {
		Title string
		Body  template.HTML
	}{title, body}
	if err := htmlTemplates.ExecuteTemplate(&b, "page", data); err != nil {
		return "", err
	}
	return b.String(), nil
}
