package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/codalotl/docview/internal/document"
	"github.com/codalotl/docview/internal/parse"
	"github.com/codalotl/docview/internal/render"
	"github.com/codalotl/docview/internal/tree"
	"github.com/codalotl/docview/internal/value"
	"github.com/codalotl/docview/internal/watch"
	"github.com/spf13/cobra"
)

type viewOptions struct {
	dialect string
	search  string
	path    string
	depth   int
	expand  bool
	html    bool
	watch   bool
}

func newViewCommand(e *env) *cobra.Command {
	var o viewOptions
	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Print a document as a tree",
		Long: `Print a document as a tree. Containers shallower than the collapse depth are expanded, as is any container holding a match for --search
(keys, array indices, and primitive values are searched, case-insensitively). Collapsed containers show their size.

With --watch, the tree is printed again whenever the file changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.depthFlag(cmd, o.depth); err != nil {
				return err
			}
			if o.expand {
				e.cfg.ExpandJSONStrings = true
			}
			arg := argOrStdin(args)
			if o.watch && arg == "-" {
				return usage(errors.New("--watch needs a file argument"))
			}
			if o.watch && o.html {
				return usage(errors.New("--watch and --html cannot be combined"))
			}

			src, doc, err := e.load(arg, o.dialect)
			if err != nil {
				return failed(err)
			}
			if o.watch {
				return failed(e.watchTree(cmd.Context(), src, doc, o))
			}
			if err := e.parseFailure(src, doc); err != nil {
				return err
			}
			return failed(e.printTree(src, doc, o))
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.dialect, "dialect", "", "input dialect: json, toml, or yaml (default from the file extension)")
	f.StringVarP(&o.search, "search", "s", "", "highlight matches and expand the containers holding them")
	f.IntVarP(&o.depth, "depth", "d", 0, "expand containers shallower than this depth (default from config)")
	f.StringVar(&o.path, "path", "", `show only the part selected by a gjson path (ex: "servers.0", "items.#.id")`)
	f.BoolVar(&o.expand, "expand-strings", false, "show strings holding JSON objects or arrays as parsed values")
	f.BoolVar(&o.html, "html", false, "write a standalone HTML page")
	f.BoolVar(&o.watch, "watch", false, "print the tree again whenever the file changes")
	return cmd
}

// printTree writes doc's value as a tree. Nothing is written for an empty document.
func (e *env) printTree(src source, doc *document.Document, o viewOptions) error {
	v, ok := doc.Value()
	if !ok {
		return nil
	}
	v, err := parse.Query(v, o.path)
	if err != nil {
		return err
	}
	s := tree.New(v, tree.Options{CollapseDepth: e.cfg.CollapseDepth, Search: o.search})
	if o.html {
		body, err := render.HTMLTree(s.Lines(), o.search)
		if err != nil {
			return err
		}
		return e.writeHTML(src.Name, body)
	}
	if _, err := io.WriteString(e.out, e.terminal(0).Tree(s.Lines(), o.search)); err != nil {
		return err
	}
	if strings.TrimSpace(o.search) != "" {
		fmt.Fprintf(e.errOut, "%s\n", matchSummary(s.MatchCount()))
	}
	return nil
}

func matchSummary(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}

const clearScreen = "\x1b[H\x1b[2J"

// watchTree prints the tree, then prints it again after each change to the file until ctx is done.
func (e *env) watchTree(ctx context.Context, src source, doc *document.Document, o viewOptions) error {
	show := func() {
		if e.outIsTerminal() {
			io.WriteString(e.out, clearScreen)
		}
		if msg := render.ErrorMessage(doc); msg != "" {
			fmt.Fprintf(e.errOut, "%s: %s\n%s\n", src.Name, msg, doc.Err())
		}
		if err := e.printTree(src, doc, o); err != nil {
			fmt.Fprintf(e.errOut, "error: %v\n", err)
		}
	}
	show()
	return watch.File(ctx, src.Path, func(text string) {
		log.Debugf("view: %s changed (%d bytes)", src.Path, len(text))
		doc.SetText(text)
		show()
	})
}

// valueOf returns doc's value for commands that need one. An empty document is an error.
func valueOf(src source, doc *document.Document) (value.Value, error) {
	v, ok := doc.Value()
	if !ok {
		return value.Value{}, fmt.Errorf("%s: %w", src.Name, parse.ErrEmpty)
	}
	return v, nil
}
