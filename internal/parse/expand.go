package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codalotl/docview/internal/value"
	"github.com/tidwall/gjson"
)

// ErrUnknownPath is returned by Query when the path selects nothing.
var ErrUnknownPath = errors.New("path selects nothing")

// ExpandStrings returns v with every string that holds a JSON object or array (after trimming, it starts with '{' and ends with '}', or starts with '[' and ends
// with ']') replaced by its parsed value. Expansion recurses into the parsed values. Strings that fail to parse are kept. opts.Lenient applies to the embedded JSON.
func ExpandStrings(v value.Value, opts Options) value.Value {
	switch v.Kind() {
	case value.String:
		s := v.Str()
		if !looksLikeContainer(s) {
			return v
		}
		var parsed value.Value
		var err error
		if gjson.Valid(s) {
			parsed, err = parseJSON(s, false)
		} else {
			parsed, err = parseJSON(s, opts.Lenient)
		}
		if err != nil {
			log.Debugf("expand strings: keeping string: %v", err)
			return v
		}
		return ExpandStrings(parsed, opts)
	case value.Array:
		items := v.Items()
		for i, it := range items {
			items[i] = ExpandStrings(it, opts)
		}
		return value.ArrayValue(items...)
	case value.Object:
		members := v.Members()
		for i, m := range members {
			members[i].Value = ExpandStrings(m.Value, opts)
		}
		return value.ObjectValue(members...)
	}
	return v
}

func looksLikeContainer(s string) bool {
	t := strings.TrimSpace(s)
	if len(t) < 2 {
		return false
	}
	return t[0] == '{' && t[len(t)-1] == '}' || t[0] == '[' && t[len(t)-1] == ']'
}

// Query selects part of v with a gjson path (ex: "servers.0.name", "items.#.id"). A blank path returns v. It returns ErrUnknownPath if nothing matches.
func Query(v value.Value, path string) (value.Value, error) {
	if strings.TrimSpace(path) == "" {
		return v, nil
	}
	js, err := value.Stringify(v, 0)
	if err != nil {
		return value.Value{}, err
	}
	res := gjson.Get(js, path)
	if !res.Exists() {
		return value.Value{}, fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}
	return parseJSON(res.Raw, false)
}
