// Package document holds one editable source text and its parsed value. Every SetText re-parses synchronously; a parse failure never panics and leaves the document
// either empty or showing its last valid value, depending on KeepLastGood.
package document

import (
	"errors"

	"github.com/codalotl/docview/internal/diff"
	"github.com/codalotl/docview/internal/highlight"
	"github.com/codalotl/docview/internal/logging"
	"github.com/codalotl/docview/internal/parse"
	"github.com/codalotl/docview/internal/value"
)

var log = logging.Get("docview.document")

// Status is the outcome of the latest SetText.
type Status int

const (
	StatusEmpty   Status = iota // Blank text: no document and no error.
	StatusValid                 // Parsed.
	StatusInvalid               // Parse failed; see Err.
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	}
	return "empty"
}

// Document is a source text and its parsed value. The zero value is an empty JSON document with strict parsing.
type Document struct {
	Dialect      parse.Dialect
	Options      parse.Options
	KeepLastGood bool // On failure, keep the previous value instead of clearing it.

	text     string
	status   Status
	value    value.Value
	hasValue bool
	err      error
}

// New returns an empty document.
func New(d parse.Dialect, opts parse.Options) *Document {
	return &Document{Dialect: d, Options: opts}
}

// SetText replaces the source text and re-parses it.
func (d *Document) SetText(text string) Status {
	d.text = text
	v, err := parse.Parse(d.Dialect, text, d.Options)
	switch {
	case err == nil:
		d.status = StatusValid
		d.value, d.hasValue = v, true
		d.err = nil
	case errors.Is(err, parse.ErrEmpty):
		d.status = StatusEmpty
		d.value, d.hasValue = value.Value{}, false
		d.err = nil
	default:
		log.Debugf("parse failed: %v", err)
		d.status = StatusInvalid
		d.err = err
		if !d.KeepLastGood {
			d.value, d.hasValue = value.Value{}, false
		}
	}
	return d.status
}

// Text returns the source text.
func (d *Document) Text() string {
	return d.text
}

// Status returns the outcome of the latest SetText.
func (d *Document) Status() Status {
	return d.status
}

// Value returns the parsed value. It returns false if there is none (empty text, or a failure without KeepLastGood).
func (d *Document) Value() (value.Value, bool) {
	return d.value, d.hasValue
}

// Err returns the latest parse failure, or nil.
func (d *Document) Err() error {
	return d.err
}

// ErrorLocation returns the position of the latest parse failure. It returns false if there is no failure or the parser did not report a position.
func (d *Document) ErrorLocation() (highlight.Location, bool) {
	var pe *parse.Error
	if errors.As(d.err, &pe) && pe.Location != nil {
		return *pe.Location, true
	}
	return highlight.Location{}, false
}

// Overlay renders the source text for surface s with search matches and the error position highlighted.
func (d *Document) Overlay(s highlight.Surface, search string) string {
	var loc *highlight.Location
	if l, ok := d.ErrorLocation(); ok {
		loc = &l
	}
	return highlight.Render(s, d.text, search, loc)
}

// Formatted returns the value serialized as JSON with indent spaces per level, keeping the document's key order. It returns "" if there is no value.
func (d *Document) Formatted(indent int) (string, error) {
	if !d.hasValue {
		return "", nil
	}
	return value.Stringify(d.value, indent)
}

// Compare diffs two documents' values. A document without a value compares as empty text.
func Compare(left, right *Document, indent int) diff.Comparison {
	lv, lok := left.Value()
	rv, rok := right.Value()
	return diff.Compare(lv, rv, lok, rok, indent)
}
