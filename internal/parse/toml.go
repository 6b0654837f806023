package parse

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/codalotl/docview/internal/value"
	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

func parseTOML(text string) (value.Value, error) {
	var doc map[string]any
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return value.Value{}, newError(TOML, fmt.Sprintf("%s at %d:%d", de.Error(), row, col))
		}
		return value.Value{}, newError(TOML, err.Error())
	}
	return fromTOML(doc, "", tomlKeyOrder([]byte(text))), nil
}

// fromTOML converts decoded TOML into a Value. Tables list their keys in document order when order knows the table's path, and sorted otherwise.
func fromTOML(x any, path string, order map[string][]string) value.Value {
	switch t := x.(type) {
	case map[string]any:
		members := make([]value.Member, 0, len(t))
		for _, k := range orderedKeys(t, order[path]) {
			members = append(members, value.Member{Key: k, Value: fromTOML(t[k], value.AppendPointer(path, k), order)})
		}
		return value.ObjectValue(members...)
	case []any:
		items := make([]value.Value, len(t))
		for i, it := range t {
			items[i] = fromTOML(it, value.AppendPointer(path, strconv.Itoa(i)), order)
		}
		return value.ArrayValue(items...)
	case string:
		return value.StringValue(t)
	case bool:
		return value.BoolValue(t)
	case int64:
		return value.IntValue(t)
	case float64:
		return value.FloatValue(t)
	case time.Time:
		return value.StringValue(t.Format(time.RFC3339Nano))
	case toml.LocalDate:
		return value.StringValue(t.String())
	case toml.LocalTime:
		return value.StringValue(t.String())
	case toml.LocalDateTime:
		return value.StringValue(t.String())
	case nil:
		return value.NullValue()
	}
	return value.StringValue(fmt.Sprint(x))
}

func orderedKeys(m map[string]any, known []string) []string {
	keys := make([]string, 0, len(m))
	used := make(map[string]bool, len(m))
	for _, k := range known {
		if _, ok := m[k]; ok && !used[k] {
			keys = append(keys, k)
			used[k] = true
		}
	}
	var rest []string
	for k := range m {
		if !used[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// tomlOrder records the order in which keys first appear in a TOML document, per table path (a JSON pointer; array-of-tables elements include their index).
type tomlOrder struct {
	keys   map[string][]string
	seen   map[string]bool
	arrays map[string]int // array-of-tables path -> elements so far
}

// tomlKeyOrder walks data with go-toml's low-level parser. It returns whatever order it recorded before any syntax error.
func tomlKeyOrder(data []byte) map[string][]string {
	o := &tomlOrder{keys: map[string][]string{}, seen: map[string]bool{}, arrays: map[string]int{}}

	p := unstable.Parser{}
	p.Reset(data)
	current := ""
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table:
			current = o.table(keyParts(e), false)
		case unstable.ArrayTable:
			current = o.table(keyParts(e), true)
		case unstable.KeyValue:
			o.keyValue(current, e)
		}
	}
	if err := p.Error(); err != nil {
		log.Debugf("toml key order: %v", err)
	}
	return o.keys
}

func keyParts(n *unstable.Node) []string {
	var parts []string
	it := n.Key()
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

func (o *tomlOrder) add(parent, key string) string {
	child := value.AppendPointer(parent, key)
	if !o.seen[child] {
		o.seen[child] = true
		o.keys[parent] = append(o.keys[parent], key)
	}
	return child
}

// table returns the path of a [table] or [[array.table]] header. Intermediate keys naming an array of tables refer to its latest element.
func (o *tomlOrder) table(parts []string, array bool) string {
	path := ""
	for i, k := range parts {
		child := o.add(path, k)
		if i == len(parts)-1 && array {
			n := o.arrays[child]
			o.arrays[child] = n + 1
			return value.AppendPointer(child, strconv.Itoa(n))
		}
		if n, ok := o.arrays[child]; ok {
			child = value.AppendPointer(child, strconv.Itoa(n-1))
		}
		path = child
	}
	return path
}

func (o *tomlOrder) keyValue(base string, kv *unstable.Node) {
	path := base
	for _, k := range keyParts(kv) {
		path = o.add(path, k)
	}
	o.value(path, kv.Value())
}

func (o *tomlOrder) value(path string, n *unstable.Node) {
	switch n.Kind {
	case unstable.InlineTable:
		it := n.Children()
		for it.Next() {
			o.keyValue(path, it.Node())
		}
	case unstable.Array:
		i := 0
		it := n.Children()
		for it.Next() {
			o.value(value.AppendPointer(path, strconv.Itoa(i)), it.Node())
			i++
		}
	}
}
