package cli

import (
	"fmt"
	"io"

	"github.com/codalotl/docview/internal/document"
	"github.com/codalotl/docview/internal/render"
	"github.com/spf13/cobra"
)

func newCheckCommand(e *env) *cobra.Command {
	var (
		dialectFlag string
		search      string
		html        bool
	)
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Print a document's source with its parse error and search matches highlighted",
		Long: `Print a document's source text with search matches highlighted and, if it does not parse, the character at the error position marked and the
error described. The exit code is 1 if the document does not parse.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, doc, err := e.load(argOrStdin(args), dialectFlag)
			if err != nil {
				return failed(err)
			}

			if html {
				body, err := render.HTMLOverlay(doc, search)
				if err != nil {
					return failed(err)
				}
				if err := e.writeHTML(src.Name, body); err != nil {
					return failed(err)
				}
			} else if _, err := io.WriteString(e.out, e.terminal(0).Overlay(doc, search)); err != nil {
				return failed(err)
			}

			if doc.Status() == document.StatusInvalid {
				return &exitError{code: 1, err: fmt.Errorf("%s: %w", src.Name, doc.Err()), silent: true}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&dialectFlag, "dialect", "", "input dialect: json, toml, or yaml (default from the file extension)")
	f.StringVarP(&search, "search", "s", "", "highlight matches of this term")
	f.BoolVar(&html, "html", false, "write a standalone HTML page")
	return cmd
}
