// Package parse turns source text in one of the supported dialects (JSON with common relaxations, TOML, YAML) into a value.Value that keeps the document's key order.
//
// Failures are reported as *Error. Its Message is human readable and, when the dialect reports a position, embeds it as "at <line>:<column>"; Locate recovers
// that position from any message.
package parse

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/codalotl/docview/internal/highlight"
	"github.com/codalotl/docview/internal/logging"
	"github.com/codalotl/docview/internal/value"
)

var log = logging.Get("docview.parse")

// Dialect is a source syntax.
type Dialect int

const (
	JSON Dialect = iota // JSON, or JSON5 plus Python-style True/False/None when lenient.
	TOML
	YAML
)

func (d Dialect) String() string {
	switch d {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	}
	return "json"
}

var (
	// ErrEmpty is returned by Parse for blank text. It means "no document", not a parse failure.
	ErrEmpty = errors.New("empty document")

	// ErrUnknownDialect is returned by ParseDialect.
	ErrUnknownDialect = errors.New("unknown dialect")
)

// ParseDialect returns the dialect named by name ("json", "json5", "toml", "yaml", or "yml"; case-insensitive).
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "json5", "jsonc":
		return JSON, nil
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return JSON, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

// DialectFromPath guesses a dialect from path's extension, defaulting to JSON.
func DialectFromPath(path string) Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Options adjust parsing.
type Options struct {
	// Lenient accepts JSON5 (comments, trailing commas, unquoted member names, single-quoted strings, hex numbers, Infinity, NaN, and so on) and the bare words
	// True, False, and None outside strings.
	Lenient bool

	// ExpandStrings replaces string values that hold JSON objects or arrays with their parsed value, recursively. See ExpandStrings.
	ExpandStrings bool
}

// Error is a parse failure.
type Error struct {
	Dialect  Dialect
	Message  string
	Location *highlight.Location // nil if Message carries no position.
}

func (e *Error) Error() string {
	return e.Dialect.String() + ": " + e.Message
}

func newError(d Dialect, msg string) *Error {
	e := &Error{Dialect: d, Message: msg}
	if loc, ok := Locate(msg); ok {
		e.Location = &loc
	} else {
		log.Debugf("no position in %s error: %s", d, msg)
	}
	return e
}

var locationRE = regexp.MustCompile(`(?i)at\s+(\d+):(\d+)`)

// Locate extracts the first "at <line>:<column>" position from a parser message. It returns false if there is none.
func Locate(message string) (highlight.Location, bool) {
	m := locationRE.FindStringSubmatch(message)
	if m == nil {
		return highlight.Location{}, false
	}
	line, err1 := strconv.Atoi(m[1])
	col, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return highlight.Location{}, false
	}
	return highlight.Location{Line: line, Column: col}, true
}

// Parse parses text as d. Blank text returns ErrEmpty. Syntax errors are returned as *Error.
func Parse(d Dialect, text string, opts Options) (value.Value, error) {
	if strings.TrimSpace(text) == "" {
		return value.Value{}, ErrEmpty
	}

	var v value.Value
	var err error
	switch d {
	case TOML:
		v, err = parseTOML(text)
	case YAML:
		v, err = parseYAML(text)
	default:
		v, err = parseJSON(text, opts.Lenient)
	}
	if err != nil {
		return value.Value{}, err
	}

	if opts.ExpandStrings {
		v = ExpandStrings(v, opts)
	}
	return v, nil
}

// position returns the 1-based line and rune column of byte offset off in text.
func position(text string, off int) (int, int) {
	if off < 0 {
		off = 0
	}
	if off > len(text) {
		off = len(text)
	}
	before := text[:off]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	col := len([]rune(before[lineStart:])) + 1
	return line, col
}
