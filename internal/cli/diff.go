package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/codalotl/docview/internal/document"
	"github.com/codalotl/docview/internal/render"
	"github.com/spf13/cobra"
)

func newDiffCommand(e *env) *cobra.Command {
	var (
		dialectFlag string
		indent      int
		unified     bool
		contextSize int
		html        bool
		width       int
	)
	cmd := &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Compare two documents side by side",
		Long: `Compare two documents. Both are normalized (object keys sorted, so key order never shows as a change), serialized as JSON, and compared line
by line. The documents may be in different dialects. One of them may be "-" for standard input. An empty document compares as no text.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.indentFlag(cmd, indent); err != nil {
				return err
			}
			if args[0] == "-" && args[1] == "-" {
				return usage(errors.New("only one side can read standard input"))
			}

			lsrc, left, err := e.load(args[0], dialectFlag)
			if err != nil {
				return failed(err)
			}
			rsrc, right, err := e.load(args[1], dialectFlag)
			if err != nil {
				return failed(err)
			}
			if err := e.parseFailure(lsrc, left); err != nil {
				return err
			}
			if err := e.parseFailure(rsrc, right); err != nil {
				return err
			}

			c := document.Compare(left, right, e.cfg.Indent)
			if c.Err != nil {
				return failed(fmt.Errorf("compare: %w", c.Err))
			}
			switch {
			case html:
				body, err := render.HTMLDiff(c, lsrc.Name, rsrc.Name)
				if err != nil {
					return failed(err)
				}
				return failed(e.writeHTML(lsrc.Name+" vs "+rsrc.Name, body))
			case unified:
				_, err := io.WriteString(e.out, c.Unified(e.color(), lsrc.Name, rsrc.Name, contextSize)+"\n")
				return failed(err)
			}
			_, err = io.WriteString(e.out, e.terminal(width).Diff(c, lsrc.Name, rsrc.Name))
			return failed(err)
		},
	}

	f := cmd.Flags()
	f.StringVar(&dialectFlag, "dialect", "", "dialect of both inputs (default from each file's extension)")
	f.IntVar(&indent, "indent", 0, "spaces per level in the compared text (default from config)")
	f.BoolVarP(&unified, "unified", "u", false, "print a unified diff instead of two columns")
	f.IntVarP(&contextSize, "context", "U", 3, "unchanged lines around each change in a unified diff")
	f.BoolVar(&html, "html", false, "write a standalone HTML page")
	f.IntVar(&width, "width", 0, "total width of the two columns (default: terminal width)")
	return cmd
}
