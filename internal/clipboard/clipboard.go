// Package clipboard copies text to the system clipboard. The system clipboard (via atotto/clipboard) is preferred; when it is unsupported and stderr is a terminal,
// text is sent with an OSC 52 escape sequence instead, which most terminal emulators (including over SSH and inside tmux) forward to the local clipboard.
package clipboard

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	atotto "github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

// ErrUnavailable indicates that there is no way to reach a clipboard (no clipboard utility and no terminal to send OSC 52 to).
var ErrUnavailable = errors.New("clipboard unavailable")

type backend interface {
	name() string
	write(string) error
}

var (
	backendOnce sync.Once
	backendImpl backend
	backendErr  error

	systemUnsupported = func() bool { return atotto.Unsupported }
	systemWrite       = atotto.WriteAll
	isTerminal        = func() bool { return term.IsTerminal(int(os.Stderr.Fd())) }
	getenv            = os.Getenv

	terminal io.Writer = os.Stderr
)

// Write copies s to the clipboard.
func Write(s string) error {
	b, err := getBackend()
	if err != nil {
		return err
	}
	return b.write(s)
}

// Available reports whether Write can reach a clipboard.
func Available() bool {
	_, err := getBackend()
	return err == nil
}

// Backend names the mechanism Write uses ("system" or "osc52"), or "" if none is available.
func Backend() string {
	b, err := getBackend()
	if err != nil {
		return ""
	}
	return b.name()
}

func getBackend() (backend, error) {
	backendOnce.Do(func() {
		backendImpl, backendErr = selectBackend()
	})
	return backendImpl, backendErr
}

func selectBackend() (backend, error) {
	if !systemUnsupported() {
		return systemBackend{}, nil
	}
	if isTerminal() {
		return osc52Backend{w: terminal}, nil
	}
	return nil, ErrUnavailable
}

type systemBackend struct{}

func (systemBackend) name() string { return "system" }

func (systemBackend) write(s string) error {
	return systemWrite(s)
}

type osc52Backend struct {
	w io.Writer
}

func (osc52Backend) name() string { return "osc52" }

func (b osc52Backend) write(s string) error {
	seq := osc52.New(s)
	switch {
	case getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(b.w)
	return err
}
