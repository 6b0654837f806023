package browse

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/codalotl/docview/internal/clipboard"
	"github.com/codalotl/docview/internal/config"
	"github.com/codalotl/docview/internal/render"
	"github.com/codalotl/docview/internal/tree"
	"github.com/codalotl/docview/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obj(kv ...any) value.Value {
	var members []value.Member
	for i := 0; i+1 < len(kv); i += 2 {
		members = append(members, value.Member{Key: kv[i].(string), Value: kv[i+1].(value.Value)})
	}
	return value.ObjectValue(members...)
}

func sample() value.Value {
	return obj(
		"name", value.StringValue("docview"),
		"tags", value.ArrayValue(value.StringValue("x"), value.StringValue("y")),
		"meta", obj("owner", obj("id", value.IntValue(7))),
	)
}

func newModel(t *testing.T, opts Options) *Model {
	t.Helper()
	s := tree.New(sample(), tree.Options{CollapseDepth: 1})
	if opts.Copy == nil {
		opts.Copy = func(string) error { return nil }
	}
	return New(s, render.NewTerminal(render.Options{Theme: config.Default().Theme}), opts)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func rows(m *Model) []string {
	lines := strings.Split(m.View(), "\n")
	return lines[:len(lines)-1]
}

func TestView_InitialRows(t *testing.T) {
	m := newModel(t, Options{})
	assert.Equal(t, []string{
		"> ▾ {",
		`      name: "docview"`,
		"    ▸ tags: [2 items]",
		"    ▸ meta: {1 keys}",
		"    }",
	}, rows(m))
}

func TestToggleAndMove(t *testing.T) {
	m := newModel(t, Options{})
	press(m, "j", "down")
	ln, ok := m.Cursor()
	require.True(t, ok)
	assert.Equal(t, "/tags", ln.Path)

	press(m, "enter")
	assert.Len(t, m.lines, 8)
	ln, _ = m.Cursor()
	assert.Equal(t, "/tags", ln.Path)
	assert.Equal(t, tree.LineOpen, ln.Kind)

	// Toggling from the closing bracket collapses the container and moves to its row.
	press(m, "j", "j", "j")
	ln, _ = m.Cursor()
	require.Equal(t, tree.LineClose, ln.Kind)
	press(m, "space")
	ln, _ = m.Cursor()
	assert.Equal(t, "/tags", ln.Path)
	assert.Equal(t, tree.LineCollapsed, ln.Kind)

	press(m, "G")
	ln, _ = m.Cursor()
	assert.Equal(t, tree.LineClose, ln.Kind)
	assert.Equal(t, "", ln.Path)
	press(m, "j")
	assert.Equal(t, len(m.lines)-1, m.cursor)
	press(m, "g", "k")
	assert.Equal(t, 0, m.cursor)

	// Leaves do not toggle.
	press(m, "j", "enter")
	assert.Len(t, m.lines, 5)
}

func TestExpandCollapseReset(t *testing.T) {
	m := newModel(t, Options{})
	press(m, "E")
	assert.Len(t, m.lines, 12)
	press(m, "C")
	assert.Len(t, m.lines, 1)
	press(m, "r")
	assert.Len(t, m.lines, 5)
}

func TestSearch(t *testing.T) {
	m := newModel(t, Options{})
	press(m, "/")
	require.True(t, m.Searching())
	typeText(m, "id")
	assert.True(t, strings.HasPrefix(m.statusBar(), "/"))

	press(m, "enter")
	assert.False(t, m.Searching())
	assert.Equal(t, "id", m.session.Options().Search)
	assert.Equal(t, `1 match for "id"`, m.Status())
	// Existing nodes keep their state until reset.
	assert.Len(t, m.lines, 5)

	press(m, "r")
	assert.Len(t, m.lines, 9, "reset opens the path to the match")
	assert.Contains(t, m.statusBar(), "/id (1)")

	press(m, "/")
	typeText(m, "zzz")
	press(m, "esc")
	assert.Equal(t, "id", m.session.Options().Search, "esc cancels the edit")
}

func TestCopy(t *testing.T) {
	var copied string
	m := newModel(t, Options{Indent: 0, Copy: func(s string) error {
		copied = s
		return nil
	}})
	press(m, "y")
	assert.Equal(t, `{"name":"docview","tags":["x","y"],"meta":{"owner":{"id":7}}}`, copied)
	assert.Equal(t, "Copied formatted document", m.Status())

	m = newModel(t, Options{Copy: func(string) error { return clipboard.ErrUnavailable }})
	press(m, "y")
	assert.Equal(t, "Clipboard unavailable", m.Status())

	m = newModel(t, Options{Copy: func(string) error { return errors.New("denied") }})
	press(m, "y")
	assert.Equal(t, "Copy failed: denied", m.Status())
	press(m, "j")
	assert.Equal(t, "", m.Status(), "any key clears the message")
}

func TestScrolling(t *testing.T) {
	m := newModel(t, Options{})
	press(m, "E")
	m.Update(tea.WindowSizeMsg{Width: 12, Height: 4})
	assert.Len(t, rows(m), 3)

	press(m, "G")
	r := rows(m)
	assert.Equal(t, ">   }", strings.TrimRight(r[len(r)-1], " "))
	for _, row := range r {
		assert.LessOrEqual(t, render.TextWidth(row), 12)
	}
}

func TestDocumentMsg(t *testing.T) {
	m := newModel(t, Options{})
	m.Update(DocumentMsg{Err: errors.New("json: bad")})
	assert.Equal(t, "json: bad", m.Status())
	assert.Len(t, m.lines, 5)

	m.Update(DocumentMsg{Value: value.ArrayValue(value.IntValue(1)), HasValue: true})
	assert.Equal(t, "Reloaded", m.Status())
	assert.Len(t, m.lines, 3)
}

func TestQuit(t *testing.T) {
	m := newModel(t, Options{})
	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	cmd = press(m, "ctrl+c")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
