package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/codalotl/docview/internal/browse"
	"github.com/codalotl/docview/internal/tree"
	"github.com/codalotl/docview/internal/watch"
	"github.com/spf13/cobra"
)

func newBrowseCommand(e *env) *cobra.Command {
	var (
		dialectFlag string
		search      string
		depth       int
		watchFlag   bool
	)
	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Explore a document interactively",
		Long: `Explore a document as an interactive tree.

Keys: j/k or arrows move, enter/space expand or collapse, / search, r reset expansion for the search, E/C expand or collapse everything, y copy the
formatted document, q quit. With --watch, the tree reloads whenever the file changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.depthFlag(cmd, depth); err != nil {
				return err
			}
			arg := argOrStdin(args)
			if watchFlag && arg == "-" {
				return usage(errors.New("--watch needs a file argument"))
			}

			src, doc, err := e.load(arg, dialectFlag)
			if err != nil {
				return failed(err)
			}
			if err := e.parseFailure(src, doc); err != nil {
				return err
			}
			v, err := valueOf(src, doc)
			if err != nil {
				return failed(err)
			}

			s := tree.New(v, tree.Options{CollapseDepth: e.cfg.CollapseDepth, Search: search})
			m := browse.New(s, e.terminal(0), browse.Options{Title: src.Name, Indent: e.cfg.Indent})

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var updates chan browse.DocumentMsg
			if watchFlag {
				updates = make(chan browse.DocumentMsg)
				go func() {
					err := watch.File(ctx, src.Path, func(text string) {
						doc.SetText(text)
						v, ok := doc.Value()
						select {
						case updates <- browse.DocumentMsg{Value: v, HasValue: ok, Err: doc.Err()}:
						case <-ctx.Done():
						}
					})
					if err != nil {
						log.Warningf("browse: watch %s: %v", src.Path, err)
					}
				}()
			}

			opts := []tea.ProgramOption{tea.WithOutput(e.out)}
			if src.Path == "" {
				// Standard input held the document; read keys from the terminal.
				opts = append(opts, tea.WithInputTTY())
			} else {
				opts = append(opts, tea.WithInput(e.in))
			}
			return failed(browse.Run(ctx, m, updates, opts...))
		},
	}

	f := cmd.Flags()
	f.StringVar(&dialectFlag, "dialect", "", "input dialect: json, toml, or yaml (default from the file extension)")
	f.StringVarP(&search, "search", "s", "", "initial search term")
	f.IntVarP(&depth, "depth", "d", 0, "expand containers shallower than this depth (default from config)")
	f.BoolVar(&watchFlag, "watch", false, "reload whenever the file changes")
	return cmd
}
