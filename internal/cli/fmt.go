package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/codalotl/docview/internal/clipboard"
	"github.com/codalotl/docview/internal/parse"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

func newFmtCommand(e *env) *cobra.Command {
	var (
		dialectFlag string
		indent      int
		write       bool
		copyOut     bool
	)
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print a document as formatted JSON",
		Long: `Print a document as JSON indented by --indent spaces per level, keeping its key order.

Use -w to overwrite a JSON file in place (requires a file argument). Use --copy to also put the result on the clipboard (the system clipboard, or the
terminal's via OSC 52). Output is colored when color is on.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.indentFlag(cmd, indent); err != nil {
				return err
			}
			arg := argOrStdin(args)
			if write && arg == "-" {
				return usage(errors.New("-w needs a file argument"))
			}

			src, doc, err := e.load(arg, dialectFlag)
			if err != nil {
				return failed(err)
			}
			if write && doc.Dialect != parse.JSON {
				return usage(fmt.Errorf("-w only rewrites JSON files; %s is %s", src.Name, doc.Dialect))
			}
			if err := e.parseFailure(src, doc); err != nil {
				return err
			}
			if _, err := valueOf(src, doc); err != nil {
				return failed(err)
			}

			text, err := doc.Formatted(e.cfg.Indent)
			if err != nil {
				return failed(err)
			}

			if copyOut {
				if err := clipboard.Write(text); err != nil {
					log.Warningf("fmt: copy: %v", err)
					fmt.Fprintf(e.errOut, "warning: not copied: %v\n", err)
				} else {
					fmt.Fprintf(e.errOut, "copied to clipboard (%s)\n", clipboard.Backend())
				}
			}

			if write {
				return failed(writeFile(src.Path, text+"\n"))
			}
			out := []byte(text + "\n")
			if e.color() {
				out = pretty.Color(out, nil)
			}
			_, err = e.out.Write(out)
			return failed(err)
		},
	}

	f := cmd.Flags()
	f.StringVar(&dialectFlag, "dialect", "", "input dialect: json, toml, or yaml (default from the file extension)")
	f.IntVar(&indent, "indent", 0, "spaces per level (default from config)")
	f.BoolVarP(&write, "write", "w", false, "overwrite the JSON file in place")
	f.BoolVar(&copyOut, "copy", false, "also copy the result to the clipboard")
	return cmd
}

// writeFile replaces path's contents, keeping its permissions.
func writeFile(path, text string) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(path, []byte(text), perm)
}

