package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/codalotl/docview/internal/value"
	"github.com/tailscale/hujson"
)

func parseJSON(text string, lenient bool) (value.Value, error) {
	if !lenient {
		return decodeStandard(text, []byte(text), nil, nil)
	}

	doc, perr := rewriteJSON5(text)
	if perr != nil {
		return value.Value{}, perr
	}
	// hujson needs a newline to end a trailing line comment.
	std, err := hujson.Standardize(append(doc.data[:len(doc.data):len(doc.data)], '\n'))
	if err != nil {
		return value.Value{}, hujsonError(text, doc, err)
	}
	// Standardize replaces comments and trailing commas with whitespace, so offsets in std are offsets in doc.data.
	return decodeStandard(text, std, doc.source, doc.special)
}

// decodeStandard decodes standard JSON data that was derived from text. source maps an offset in data back to text (nil means they are the same) and special
// holds the non-finite numbers written as null, keyed by their end offset in data.
func decodeStandard(text string, data []byte, source func(int) int, special map[int64]float64) (value.Value, error) {
	if source == nil {
		source = func(off int) int { return off }
	}

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return value.Value{}, jsonError(text, source, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSON(dec, special)
	if err != nil {
		return value.Value{}, jsonError(text, source, err)
	}
	return v, nil
}

// decodeJSON reads one value from dec, keeping object member order.
func decodeJSON(dec *json.Decoder, special map[int64]float64) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return value.Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			var items []value.Value
			for dec.More() {
				item, err := decodeJSON(dec, special)
				if err != nil {
					return value.Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return value.Value{}, err
			}
			return value.ArrayValue(items...), nil
		case '{':
			var members []value.Member
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return value.Value{}, err
				}
				key, ok := kt.(string)
				if !ok {
					return value.Value{}, fmt.Errorf("object key is %T, not a string", kt)
				}
				v, err := decodeJSON(dec, special)
				if err != nil {
					return value.Value{}, err
				}
				members = append(members, value.Member{Key: key, Value: v})
			}
			if _, err := dec.Token(); err != nil {
				return value.Value{}, err
			}
			return value.ObjectValue(members...), nil
		}
		return value.Value{}, fmt.Errorf("unexpected %q", t)
	case string:
		return value.StringValue(t), nil
	case json.Number:
		n, ok := value.NumberLiteral(t.String())
		if !ok {
			return value.Value{}, fmt.Errorf("invalid number %q", t)
		}
		return n, nil
	case bool:
		return value.BoolValue(t), nil
	case nil:
		if f, ok := special[dec.InputOffset()]; ok {
			return value.FloatValue(f), nil
		}
		return value.NullValue(), nil
	}
	return value.Value{}, fmt.Errorf("unexpected token %v", tok)
}

// jsonError converts an encoding/json error into an *Error positioned in text.
func jsonError(text string, source func(int) int, err error) *Error {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		// Offset counts the offending byte, except at end of input where it is the input length.
		off := int(se.Offset)
		if !strings.Contains(se.Error(), "unexpected end") {
			off--
		}
		line, col := position(text, source(off))
		return newError(JSON, fmt.Sprintf("%s at %d:%d", se.Error(), line, col))
	}
	return newError(JSON, err.Error())
}

var hujsonPositionRE = regexp.MustCompile(`^hujson: line (\d+), column (\d+): `)

// hujsonError reports a hujson failure, replacing hujson's position (a byte column in doc.data) with "at <line>:<column>" in text.
func hujsonError(text string, doc *json5Doc, err error) *Error {
	msg := err.Error()
	m := hujsonPositionRE.FindStringSubmatch(msg)
	if m == nil {
		return newError(JSON, msg)
	}
	line, _ := strconv.Atoi(m[1])
	col, _ := strconv.Atoi(m[2])
	if inner := errors.Unwrap(err); inner != nil {
		msg = inner.Error()
	} else {
		msg = msg[len(m[0]):]
	}
	l, c := position(text, doc.source(byteOffset(doc.data, line, col)))
	return newError(JSON, fmt.Sprintf("%s at %d:%d", msg, l, c))
}

// byteOffset returns the offset of the 1-based line and byte column in data. Positions past the end return len(data).
func byteOffset(data []byte, line, col int) int {
	off := 0
	for l := 1; l < line; l++ {
		i := bytes.IndexByte(data[off:], '\n')
		if i < 0 {
			return len(data)
		}
		off += i + 1
	}
	return min(off+col-1, len(data))
}
