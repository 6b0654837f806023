// Package browse is an interactive, keyboard-driven tree browser built on bubbletea.
//
// Keys: j/k or arrows move, enter/space toggle the container under the cursor, / edits the search term (enter applies, esc cancels), r resets every node to
// its default state for the current search, E/C expand or collapse everything, y copies the formatted document, g/G jump to the top or bottom, and q or ctrl+c
// quits.
package browse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/codalotl/docview/internal/clipboard"
	"github.com/codalotl/docview/internal/logging"
	"github.com/codalotl/docview/internal/render"
	"github.com/codalotl/docview/internal/tree"
	"github.com/codalotl/docview/internal/value"
)

var log = logging.Get("docview.browse")

// Options configure a Model.
type Options struct {
	Title  string                  // Shown in the status bar, typically the file name.
	Indent int                     // Indent of the copied document.
	Copy   func(text string) error // Clipboard sink; clipboard.Write if nil.
}

// DocumentMsg replaces the browsed document, for example after the source file changed. If HasValue is false, the current document stays and Err is reported.
type DocumentMsg struct {
	Value    value.Value
	HasValue bool
	Err      error
}

// Model is the bubbletea model of the browser. It must only be mutated through Update.
type Model struct {
	session *tree.Session
	term    *render.Terminal
	opts    Options

	lines  []tree.Line
	cursor int
	offset int
	width  int
	height int // 0 shows every line.

	searching bool
	input     textinput.Model
	status    string
}

// New returns a browser over s. term draws the rows.
func New(s *tree.Session, term *render.Terminal, opts Options) *Model {
	if opts.Copy == nil {
		opts.Copy = clipboard.Write
	}
	in := textinput.New()
	in.Prompt = "/"
	in.Placeholder = "search"
	m := &Model{session: s, term: term, opts: opts, input: in}
	m.refresh("")
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Cursor returns the line under the cursor.
func (m *Model) Cursor() (tree.Line, bool) {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return tree.Line{}, false
	}
	return m.lines[m.cursor], true
}

// Status returns the current status bar message.
func (m *Model) Status() string {
	return m.status
}

// Searching reports whether the search input has focus.
func (m *Model) Searching() bool {
	return m.searching
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-2, 0)
		m.scroll()
		return m, nil
	case DocumentMsg:
		m.setDocument(msg)
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	if m.searching {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		m.session.SetSearch(m.input.Value())
		m.refresh(m.currentPath())
		m.status = m.matchStatus()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		m.input.SetValue(m.session.Options().Search)
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		m.move(1)
	case "k", "up":
		m.move(-1)
	case "g", "home":
		m.move(-len(m.lines))
	case "G", "end":
		m.move(len(m.lines))
	case "enter", " ":
		if ln, ok := m.Cursor(); ok && ln.Kind != tree.LineLeaf {
			m.session.Toggle(ln.Path)
			m.refresh(ln.Path)
		}
	case "/":
		m.searching = true
		m.input.SetValue(m.session.Options().Search)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "r":
		m.session.Reset()
		m.refresh(m.currentPath())
		m.status = m.matchStatus()
	case "E":
		m.session.ExpandAll()
		m.refresh(m.currentPath())
	case "C":
		m.session.CollapseAll()
		m.refresh(m.currentPath())
	case "y":
		m.copyDocument()
	}
	return m, nil
}

func (m *Model) move(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), max(len(m.lines)-1, 0))
	m.scroll()
}

func (m *Model) currentPath() string {
	if ln, ok := m.Cursor(); ok {
		return ln.Path
	}
	return ""
}

// refresh re-flattens the tree and puts the cursor on the header (or leaf) row of path, or keeps it in range if that row is gone.
func (m *Model) refresh(path string) {
	m.lines = m.session.Lines()
	for i, ln := range m.lines {
		if ln.Path == path && ln.Kind != tree.LineClose {
			m.cursor = i
			m.scroll()
			return
		}
	}
	m.move(0)
}

func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return len(m.lines)
	}
	return max(m.height-1, 1)
}

func (m *Model) scroll() {
	h := m.bodyHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.lines)-h, 0))
}

func (m *Model) setDocument(msg DocumentMsg) {
	if !msg.HasValue {
		if msg.Err != nil {
			m.status = msg.Err.Error()
		}
		return
	}
	path := m.currentPath()
	m.session.SetDocument(msg.Value)
	m.refresh(path)
	if msg.Err != nil {
		m.status = msg.Err.Error()
	} else {
		m.status = "Reloaded"
	}
}

func (m *Model) copyDocument() {
	text, err := value.Stringify(m.session.Document(), m.opts.Indent)
	if err != nil {
		m.status = "Copy failed: " + err.Error()
		return
	}
	if err := m.opts.Copy(text); err != nil {
		log.Warningf("copy: %v", err)
		if errors.Is(err, clipboard.ErrUnavailable) {
			m.status = "Clipboard unavailable"
		} else {
			m.status = "Copy failed: " + err.Error()
		}
		return
	}
	m.status = "Copied formatted document"
}

func (m *Model) matchStatus() string {
	term := strings.TrimSpace(m.session.Options().Search)
	if term == "" {
		return "Search cleared"
	}
	n := m.session.MatchCount()
	if n == 1 {
		return fmt.Sprintf("1 match for %q", term)
	}
	return fmt.Sprintf("%d matches for %q", n, term)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	search := m.session.Options().Search
	end := min(m.offset+m.bodyHeight(), len(m.lines))
	for i := m.offset; i < end; i++ {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		row := prefix + m.term.TreeLine(m.lines[i], search)
		if m.width > 0 {
			row = render.Truncate(row, m.width)
		}
		b.WriteString(row)
		b.WriteByte('\n')
	}
	b.WriteString(m.statusBar())
	return b.String()
}

func (m *Model) statusBar() string {
	if m.searching {
		return m.input.View()
	}
	var parts []string
	if m.opts.Title != "" {
		parts = append(parts, m.opts.Title)
	}
	if term := strings.TrimSpace(m.session.Options().Search); term != "" {
		parts = append(parts, fmt.Sprintf("/%s (%d)", term, m.session.MatchCount()))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if len(parts) == 0 {
		return "j/k move · enter toggle · / search · y copy · q quit"
	}
	return strings.Join(parts, " · ")
}

// Run runs m until the user quits or ctx is done. Each message received on updates is delivered to the model.
func Run(ctx context.Context, m *Model, updates <-chan DocumentMsg, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(m, opts...)

	done := make(chan struct{})
	defer close(done)
	if updates != nil {
		go func() {
			for {
				select {
				case msg, ok := <-updates:
					if !ok {
						return
					}
					p.Send(msg)
				case <-done:
					return
				}
			}
		}()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
