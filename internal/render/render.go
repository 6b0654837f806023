// Package render draws docview's three views (the collapsible tree, the side-by-side diff, and the source overlay) for terminals and for HTML.
//
// Terminal output is styled with lipgloss through a private renderer, so output depends only on Options and never on the process's own terminal. With color off,
// every style is the identity and output is plain text.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/codalotl/docview/internal/config"
	"github.com/codalotl/docview/internal/highlight"
	"github.com/muesli/termenv"
)

// DefaultWidth is the side-by-side diff width used when Options.Width is not positive.
const DefaultWidth = 120

// Options configure a Terminal.
type Options struct {
	Color bool
	Theme config.Theme
	Width int // Total columns for the side-by-side diff.
}

// Terminal renders views as text for a terminal.
type Terminal struct {
	color bool
	width int

	key     lipgloss.Style
	str     lipgloss.Style
	num     lipgloss.Style
	lit     lipgloss.Style
	muted   lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
	errText lipgloss.Style

	// source sanitizes multi-line text; inline also makes newlines and tabs visible so a value stays on one row.
	source highlight.Surface
	inline highlight.Surface
}

// NewTerminal returns a Terminal for opts.
func NewTerminal(opts Options) *Terminal {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetHasDarkBackground(true)
	if opts.Color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}

	th := opts.Theme
	searchStyle := r.NewStyle().Background(lipgloss.Color(th.Search)).Foreground(lipgloss.Color("0"))
	errStyle := r.NewStyle().Background(lipgloss.Color(th.Error)).Foreground(lipgloss.Color("15")).Bold(true)

	t := &Terminal{
		color:   opts.Color,
		width:   width,
		key:     fg(th.Key),
		str:     fg(th.String),
		num:     fg(th.Number),
		lit:     fg(th.Literal),
		muted:   r.NewStyle().Faint(true),
		added:   fg(th.Added),
		removed: fg(th.Removed),
		errText: fg(th.Error).Bold(true),
		source:  highlight.Terminal(searchStyle, errStyle),
	}
	t.inline = t.source
	t.inline.Escape = func(s string) string {
		return inlineEscaper.Replace(highlight.Sanitize(s, 0))
	}
	return t
}

var inlineEscaper = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

// styled composes text with search highlights, drawing the unmatched parts in base.
func (t *Terminal) styled(base lipgloss.Style, text string, search string) string {
	var b strings.Builder
	for _, seg := range highlight.Compose(t.inline, text, search, nil) {
		if seg.Tag == highlight.TagNone {
			b.WriteString(base.Render(seg.Text))
			continue
		}
		b.WriteString(t.inline.Wrap(seg.Tag, seg.Text))
	}
	return b.String()
}
