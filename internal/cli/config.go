package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newConfigCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := e.cfg.TOML()
			if err != nil {
				return failed(err)
			}
			for _, f := range e.cfg.Files {
				fmt.Fprintf(e.out, "# from %s\n", f)
			}
			_, err = io.WriteString(e.out, text)
			return failed(err)
		},
	}
}
