// Package cli is docview's command line: a cobra command tree over the document pipeline, renderers, browser, and watcher.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/codalotl/docview/internal/config"
	"github.com/codalotl/docview/internal/logging"
)

// Version is the docview version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.1.0"

var log = logging.Get("docview.cli")

// In/Out/Err override standard I/O, and Config overrides where configuration is loaded from. If nil, defaults are used. Overriding is useful for testing.
//
// Note that browse reads keys from a TTY instead of In when the document itself came from In.
type RunOptions struct {
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Config *config.Loader // Sources of configuration; config.DefaultLoader() if nil.
}

// Run runs the CLI with args (typically os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (a file could not be read, a document failed to parse, etc).
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// Note that in cases of errors, Run has already displayed an error message to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	e := newEnv(opts)
	root := newRootCommand(e)
	root.SetArgs(argv)
	root.SetIn(e.in)
	root.SetOut(e.out)
	root.SetErr(e.errOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0, nil
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.silent {
			fmt.Fprintf(e.errOut, "error: %v\n", ee.err)
		}
		log.Debugf("%s: exit %d: %v", cmd.CommandPath(), ee.code, ee.err)
		return ee.code, ee.err
	}

	fmt.Fprintf(e.errOut, "error: %v\nRun '%s --help' for usage.\n", err, cmd.CommandPath())
	return 2, err
}

// exitError is a failure of a well-formed command. Errors that are not exitErrors come from cobra itself (bad flags, wrong argument counts, unknown commands) and
// are usage errors.
type exitError struct {
	code   int
	err    error
	silent bool // The command already reported the failure.
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// failed wraps err as an exit-1 failure. It returns nil for nil.
func failed(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	return &exitError{code: 1, err: err}
}
