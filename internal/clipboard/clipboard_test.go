package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetForTest(t *testing.T) {
	t.Helper()

	oldUnsupported := systemUnsupported
	oldWrite := systemWrite
	oldTerminal := terminal
	oldIsTerminal := isTerminal
	oldGetenv := getenv

	backendOnce = sync.Once{}
	backendImpl = nil
	backendErr = nil
	getenv = func(string) string { return "" }

	t.Cleanup(func() {
		systemUnsupported = oldUnsupported
		systemWrite = oldWrite
		terminal = oldTerminal
		isTerminal = oldIsTerminal
		getenv = oldGetenv
		backendOnce = sync.Once{}
		backendImpl = nil
		backendErr = nil
	})
}

func TestWrite_PrefersSystemClipboard(t *testing.T) {
	resetForTest(t)
	var got string
	systemUnsupported = func() bool { return false }
	systemWrite = func(s string) error { got = s; return nil }

	require.NoError(t, Write("hello"))
	assert.Equal(t, "hello", got)
	assert.Equal(t, "system", Backend())
}

func TestWrite_FallsBackToOSC52OnTerminal(t *testing.T) {
	resetForTest(t)
	var buf bytes.Buffer
	systemUnsupported = func() bool { return true }
	isTerminal = func() bool { return true }
	terminal = &buf

	require.True(t, Available())
	require.NoError(t, Write("hi"))
	assert.Equal(t, "osc52", Backend())
	assert.Contains(t, buf.String(), "\x1b]52;c;"+base64.StdEncoding.EncodeToString([]byte("hi")))
}

func TestWrite_OSC52InsideTmux(t *testing.T) {
	resetForTest(t)
	var buf bytes.Buffer
	systemUnsupported = func() bool { return true }
	isTerminal = func() bool { return true }
	terminal = &buf
	getenv = func(k string) string {
		if k == "TMUX" {
			return "/tmp/tmux-1000/default,1,0"
		}
		return ""
	}

	require.NoError(t, Write("hi"))
	assert.Contains(t, buf.String(), "\x1bPtmux;")
}

func TestWrite_Unavailable(t *testing.T) {
	resetForTest(t)
	systemUnsupported = func() bool { return true }
	isTerminal = func() bool { return false }

	assert.False(t, Available())
	assert.ErrorIs(t, Write("x"), ErrUnavailable)
	assert.Equal(t, "", Backend())
}

func TestWrite_SystemErrorIsReturned(t *testing.T) {
	resetForTest(t)
	boom := errors.New("boom")
	systemUnsupported = func() bool { return false }
	systemWrite = func(string) error { return boom }

	assert.ErrorIs(t, Write("x"), boom)
}
