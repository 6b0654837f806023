package cli

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/codalotl/docview/internal/config"
	"github.com/codalotl/docview/internal/document"
	"github.com/codalotl/docview/internal/parse"
	"github.com/codalotl/docview/internal/render"
	"golang.org/x/term"
)

// env is the state shared by every command of one Run.
type env struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	loader config.Loader

	cfg config.Config

	// Root flags.
	colorFlag string
	strict    bool
	logFile   string
	logLevel  string
}

func newEnv(opts *RunOptions) *env {
	e := &env{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	if opts != nil {
		if opts.In != nil {
			e.in = opts.In
		}
		if opts.Out != nil {
			e.out = opts.Out
		}
		if opts.Err != nil {
			e.errOut = opts.Err
		}
	}
	if opts != nil && opts.Config != nil {
		e.loader = *opts.Config
	} else {
		e.loader = config.DefaultLoader()
	}
	e.cfg = config.Default()
	return e
}

func (e *env) getenv(key string) string {
	if e.loader.Getenv == nil {
		return ""
	}
	return e.loader.Getenv(key)
}

// stdinName is the display name of standard input.
const stdinName = "<stdin>"

// source is an input document's text and where it came from.
type source struct {
	Name string // Display name.
	Path string // File path, or "" for stdin.
	Text string
}

// read returns the contents of the file named by arg, or of standard input if arg is "" or "-".
func (e *env) read(arg string) (source, error) {
	if arg == "" || arg == "-" {
		b, err := io.ReadAll(e.in)
		if err != nil {
			return source{}, fmt.Errorf("read stdin: %w", err)
		}
		return source{Name: stdinName, Text: string(b)}, nil
	}
	b, err := os.ReadFile(arg)
	if err != nil {
		return source{}, err
	}
	return source{Name: filepath.Base(arg), Path: arg, Text: string(b)}, nil
}

// dialect returns the dialect named by flag, or the one implied by path's extension.
func dialect(flag, path string) (parse.Dialect, error) {
	if strings.TrimSpace(flag) != "" {
		return parse.ParseDialect(flag)
	}
	return parse.DialectFromPath(path), nil
}

func (e *env) parseOptions() parse.Options {
	return parse.Options{Lenient: e.cfg.Lenient, ExpandStrings: e.cfg.ExpandJSONStrings}
}

// load reads and parses the document named by arg.
func (e *env) load(arg, dialectFlag string) (source, *document.Document, error) {
	src, err := e.read(arg)
	if err != nil {
		return source{}, nil, err
	}
	d, err := dialect(dialectFlag, src.Path)
	if err != nil {
		return source{}, nil, err
	}
	doc := document.New(d, e.parseOptions())
	doc.KeepLastGood = e.cfg.KeepLastGood
	doc.SetText(src.Text)
	return src, doc, nil
}

// parseFailure reports doc's parse error on stderr and returns a silent exit-1 error, or nil if doc did not fail.
func (e *env) parseFailure(src source, doc *document.Document) error {
	msg := render.ErrorMessage(doc)
	if msg == "" {
		return nil
	}
	fmt.Fprintf(e.errOut, "%s: %s\n%s\n", src.Name, msg, doc.Err())
	return &exitError{code: 1, err: fmt.Errorf("%s: %w", src.Name, doc.Err()), silent: true}
}

// fd returns the file descriptor behind w if w is an *os.File.
func fd(w any) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	return int(f.Fd()), true
}

func (e *env) outIsTerminal() bool {
	n, ok := fd(e.out)
	return ok && term.IsTerminal(n)
}

// color reports whether output should be colored: the --color flag, then the configured mode. In auto mode, color is used when stdout is a terminal and NO_COLOR
// is unset.
func (e *env) color() bool {
	mode := e.cfg.Color
	if e.colorFlag != "" {
		mode = e.colorFlag
	}
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return e.outIsTerminal() && e.getenv("NO_COLOR") == ""
}

// width returns flagWidth if positive, else the terminal width of stdout, else render.DefaultWidth.
func (e *env) width(flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if n, ok := fd(e.out); ok {
		if w, _, err := term.GetSize(n); err == nil && w > 0 {
			return w
		}
	}
	return render.DefaultWidth
}

func (e *env) terminal(width int) *render.Terminal {
	return render.NewTerminal(render.Options{Color: e.color(), Theme: e.cfg.Theme, Width: e.width(width)})
}

// writeHTML writes body as a standalone page titled title.
func (e *env) writeHTML(title string, body template.HTML) error {
	page, err := render.HTMLPage("docview: "+title, body)
	if err != nil {
		return err
	}
	_, err = io.WriteString(e.out, page)
	return err
}
