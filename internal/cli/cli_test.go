package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codalotl/docview/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code int
	err  error
	out  string
	errs string
}

// run runs the CLI with an isolated configuration (defaults, plus a project file in dir if dir is non-empty).
func run(t *testing.T, dir string, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	loader := &config.Loader{ProjectDir: dir, Getenv: func(string) string { return "" }}
	code, err := Run(append([]string{"docview"}, args...), &RunOptions{
		In:     strings.NewReader(stdin),
		Out:    &out,
		Err:    &errOut,
		Config: loader,
	})
	return result{code: code, err: err, out: out.String(), errs: errOut.String()}
}

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Help(t *testing.T) {
	r := run(t, "", "", "-h")
	require.NoError(t, r.err)
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "view")
	assert.Empty(t, r.errs)
}

func TestRun_UsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"nope"},
		{"view", "--bogus"},
		{"diff", "one.json"},
		{"view", "--color", "sometimes"},
		{"view", "--depth", "-1", "x.json"},
		{"fmt", "--indent", "11"},
		{"diff", "-", "-"},
		{"view", "--watch"},
	} {
		r := run(t, "", "{}", args...)
		assert.Equal(t, 2, r.code, "%v: %v", args, r.err)
		assert.Error(t, r.err, "%v", args)
		assert.NotEmpty(t, r.errs, "%v", args)
	}
}

func TestView(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "doc.json", `{"a": {"b": 1}, "c": [1, 2]}`)

	r := run(t, "", "", "view", path)
	require.NoError(t, r.err)
	assert.Equal(t, "▾ {\n  ▾ a: {\n      b: 1\n    }\n  ▾ c: [\n      0: 1\n      1: 2\n    ]\n  }\n", r.out)

	r = run(t, "", "", "view", "-d", "0", path)
	require.NoError(t, r.err)
	assert.Equal(t, "▸ {2 keys}\n", r.out)

	r = run(t, "", "", "view", "--path", "c", path)
	require.NoError(t, r.err)
	assert.Equal(t, "▾ [\n    0: 1\n    1: 2\n  ]\n", r.out)

	r = run(t, "", "", "view", "-d", "0", "-s", "B", path)
	require.NoError(t, r.err)
	assert.Equal(t, "▾ {\n  ▾ a: {\n      b: 1\n    }\n  ▸ c: [2 items]\n  }\n", r.out)
	assert.Equal(t, "1 match\n", r.errs)

	r = run(t, "", "", "view", "--path", "zzz", path)
	assert.Equal(t, 1, r.code)
}

func TestView_StdinAndDialects(t *testing.T) {
	r := run(t, "", "a: 1\n", "view", "--dialect", "yaml")
	require.NoError(t, r.err)
	assert.Equal(t, "▾ {\n    a: 1\n  }\n", r.out)

	dir := t.TempDir()
	path := writeTemp(t, dir, "conf.toml", "[server]\nport = 80\n")
	r = run(t, "", "", "view", path)
	require.NoError(t, r.err)
	assert.Equal(t, "▾ {\n  ▾ server: {\n      port: 80\n    }\n  }\n", r.out)

	r = run(t, "", "", "view", "-")
	require.NoError(t, r.err, "empty input shows nothing")
	assert.Empty(t, r.out)
}

func TestView_ParseErrorAndMissingFile(t *testing.T) {
	r := run(t, "", "{\"a\": tru\n}", "view")
	assert.Equal(t, 1, r.code)
	require.Error(t, r.err)
	assert.Contains(t, r.errs, "<stdin>: Parse error at line 1, column 10")
	assert.Empty(t, r.out)

	r = run(t, "", "", "view", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errs, "error:")
}

func TestView_HTML(t *testing.T) {
	r := run(t, "", `{"k": "<v>"}`, "view", "--html")
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.out, "<!DOCTYPE html>"))
	assert.Contains(t, r.out, "&lt;v&gt;")
}

func TestView_Strict(t *testing.T) {
	text := "{\n  // note\n  \"a\": True,\n}"
	r := run(t, "", text, "view")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "a: true")

	r = run(t, "", text, "--strict", "view")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errs, "Parse error at line 2")
}

func TestCheck(t *testing.T) {
	r := run(t, "", "{\"a\": x}", "check")
	assert.Equal(t, 1, r.code)
	assert.Equal(t, "{\"a\": x}", strings.Split(r.out, "\n")[0])
	assert.Contains(t, r.out, "Parse error at line 1, column 7")
	assert.Empty(t, r.errs, "the overlay already reports the error")

	r = run(t, "", "{\"a\": 1}\n", "check", "-s", "a")
	require.NoError(t, r.err)
	assert.Equal(t, "{\"a\": 1}\n", r.out)

	r = run(t, "", "{\"a\": <}", "check", "--html")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.out, `<span class="hl-error">&lt;</span>`)
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	left := writeTemp(t, dir, "left.json", `{"x": 1, "y": 2}`)
	right := writeTemp(t, dir, "right.yaml", "y: 3\nx: 1\n")

	r := run(t, "", "", "diff", "--width", "40", left, right)
	require.NoError(t, r.err)
	lines := strings.Split(r.out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.True(t, strings.HasPrefix(lines[0], "left.json"))
	assert.Contains(t, lines[0], "│ right.yaml")
	assert.Contains(t, lines[3], `3 -   "y": 2`)
	assert.Contains(t, lines[3], `3 +   "y": 3`)

	r = run(t, "", "", "diff", "-u", left, right)
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "--- left.json\n+++ right.yaml\n@@ ")
	assert.Contains(t, r.out, "\n-  \"y\": 2\n+  \"y\": 3\n")

	r = run(t, "", `{"y": 2, "x": 1}`, "diff", left, "-")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "No differences")

	r = run(t, "", "", "diff", "--html", left, right)
	require.NoError(t, r.err)
	assert.Contains(t, r.out, `class="text added"`)

	bad := writeTemp(t, dir, "bad.json", "[1,")
	r = run(t, "", "", "diff", left, bad)
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errs, "bad.json: Parse error")
}

func TestFmt(t *testing.T) {
	r := run(t, "", "b = 1\na = [true]\n", "fmt", "--dialect", "toml")
	require.NoError(t, r.err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    true\n  ]\n}\n", r.out)

	r = run(t, "", `{"a": 1}`, "fmt", "--indent", "0")
	require.NoError(t, r.err)
	assert.Equal(t, "{\"a\":1}\n", r.out)

	r = run(t, "", `{"a": 1}`, "--color", "always", "fmt")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "\x1b[")

	r = run(t, "", "  ", "fmt")
	assert.Equal(t, 1, r.code, "nothing to format")
}

func TestFmt_Write(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "doc.json", "// c\n{\"z\": 1, \"a\": [1,],}")
	r := run(t, "", "", "fmt", "-w", path)
	require.NoError(t, r.err)
	assert.Empty(t, r.out)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"z\": 1,\n  \"a\": [\n    1\n  ]\n}\n", string(b))

	tomlPath := writeTemp(t, dir, "doc.toml", "a = 1\n")
	r = run(t, "", "", "fmt", "-w", tomlPath)
	assert.Equal(t, 2, r.code)
	b, err = os.ReadFile(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, "a = 1\n", string(b))
}

func TestConfig_ProjectFileApplies(t *testing.T) {
	dir := t.TempDir()
	projectFile := writeTemp(t, dir, config.ProjectFileName, "indent = 4\ncollapse_depth = 0\n")

	r := run(t, dir, "", "config")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "# from "+projectFile)
	assert.Contains(t, r.out, "indent = 4")

	r = run(t, dir, `{"a": 1}`, "fmt")
	require.NoError(t, r.err)
	assert.Equal(t, "{\n    \"a\": 1\n}\n", r.out)

	r = run(t, dir, `{"a": 1}`, "view")
	require.NoError(t, r.err)
	assert.Equal(t, "▸ {1 keys}\n", r.out)

	writeTemp(t, dir, config.ProjectFileName, "indentt = 4\n")
	r = run(t, dir, "", "config")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errs, "indentt")
}

func TestBrowse_Errors(t *testing.T) {
	r := run(t, "", "", "browse")
	assert.Equal(t, 1, r.code, "empty document")

	r = run(t, "", "[1,", "browse")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.errs, "Parse error")

	r = run(t, "", "[1]", "browse", "--watch")
	assert.Equal(t, 2, r.code)
}
