package cli

import (
	"fmt"

	"github.com/codalotl/docview/internal/config"
	"github.com/codalotl/docview/internal/logging"
	"github.com/spf13/cobra"
)

func newRootCommand(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "docview",
		Short: "View, search, check, and compare JSON, TOML, and YAML documents",
		Long: `docview reads JSON (with comments, trailing commas, and Python-style True/False/None when lenient), TOML, and YAML documents.

Files are read whole. A file argument of "-", or no argument, reads standard input. The dialect comes from --dialect, then the file extension
(.json/.json5 JSON, .toml TOML, .yaml/.yml YAML), falling back to JSON.

Settings come from built-in defaults, the user config file, the nearest ` + config.ProjectFileName + `, DOCVIEW_* environment variables, and flags, each
overriding the last. Run "docview config" to see the result.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&e.colorFlag, "color", "", "color output: auto, always, or never (default from config)")
	pf.BoolVar(&e.strict, "strict", false, "parse JSON strictly: no comments, trailing commas, or True/False/None")
	pf.StringVar(&e.logFile, "log-file", "", "append diagnostic logs to this file (overrides "+logging.EnvFile+")")
	pf.StringVar(&e.logLevel, "log-level", "", "log verbosity with --log-file: error, warning, notice, info, or debug")

	root.AddCommand(
		newViewCommand(e),
		newBrowseCommand(e),
		newCheckCommand(e),
		newDiffCommand(e),
		newFmtCommand(e),
		newConfigCommand(e),
	)
	return root
}

// setup validates the root flags, configures logging, and loads the configuration.
func (e *env) setup() error {
	switch e.colorFlag {
	case "", config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		return usage(fmt.Errorf("invalid --color %q: want auto, always, or never", e.colorFlag))
	}

	if e.logFile != "" {
		if err := logging.Configure(e.logFile, e.logLevel); err != nil {
			return usage(err)
		}
	}

	cfg, err := e.loader.Load()
	if err != nil {
		return failed(err)
	}
	if e.strict {
		cfg.Lenient = false
	}
	e.cfg = cfg
	log.Debugf("config files: %v", cfg.Files)
	return nil
}

// usage wraps err as an exit-2 misuse of the command line.
func usage(err error) error {
	return &exitError{code: 2, err: err}
}

// argOrStdin returns the single optional file argument, or "-".
func argOrStdin(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// depthFlag applies a --depth flag over the configured collapse depth.
func (e *env) depthFlag(cmd *cobra.Command, depth int) error {
	if !cmd.Flags().Changed("depth") {
		return nil
	}
	if depth < 0 {
		return usage(fmt.Errorf("--depth must be >= 0, got %d", depth))
	}
	e.cfg.CollapseDepth = depth
	return nil
}

// indentFlag applies an --indent flag over the configured indent.
func (e *env) indentFlag(cmd *cobra.Command, indent int) error {
	if !cmd.Flags().Changed("indent") {
		return nil
	}
	if indent < 0 || indent > 10 {
		return usage(fmt.Errorf("--indent must be between 0 and 10, got %d", indent))
	}
	e.cfg.Indent = indent
	return nil
}
