package parse

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/codalotl/docview/internal/value"
	"gopkg.in/yaml.v3"
)

// maxAliasDepth bounds alias expansion.
const maxAliasDepth = 10000

func parseYAML(text string) (value.Value, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(strings.NewReader(text))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return value.Value{}, ErrEmpty
		}
		return value.Value{}, yamlError(err)
	}
	v, err := fromYAML(&doc, 0)
	if err != nil {
		return value.Value{}, newError(YAML, err.Error())
	}
	return v, nil
}

var yamlLineRE = regexp.MustCompile(`line (\d+)(?::\s*column (\d+))?`)

// yamlError appends "at <line>:<column>" to yaml's message when it names a line. yaml rarely reports a column, so the column defaults to 1.
func yamlError(err error) *Error {
	msg := err.Error()
	if m := yamlLineRE.FindStringSubmatch(msg); m != nil {
		col := m[2]
		if col == "" {
			col = "1"
		}
		return newError(YAML, fmt.Sprintf("%s at %s:%s", msg, m[1], col))
	}
	return newError(YAML, msg)
}

func fromYAML(n *yaml.Node, depth int) (value.Value, error) {
	if depth > maxAliasDepth {
		return value.Value{}, errors.New("document nests too deeply")
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.NullValue(), nil
		}
		return fromYAML(n.Content[0], depth+1)
	case yaml.AliasNode:
		if n.Alias == nil {
			return value.NullValue(), nil
		}
		return fromYAML(n.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]value.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromYAML(c, depth+1)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, v)
		}
		return value.ArrayValue(items...), nil
	case yaml.MappingNode:
		return yamlMapping(n, depth)
	case yaml.ScalarNode:
		return yamlScalar(n), nil
	}
	return value.NullValue(), nil
}

// yamlMapping converts a mapping, applying "<<" merge keys. Keys written in the mapping win over merged ones.
func yamlMapping(n *yaml.Node, depth int) (value.Value, error) {
	var members []value.Member
	explicit := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			merged, err := yamlMerge(v, depth)
			if err != nil {
				return value.Value{}, err
			}
			for _, m := range merged {
				if !explicit[m.Key] {
					members = append(members, m)
				}
			}
			continue
		}

		key, err := yamlKey(k, depth)
		if err != nil {
			return value.Value{}, err
		}
		val, err := fromYAML(v, depth+1)
		if err != nil {
			return value.Value{}, err
		}
		explicit[key] = true
		members = append(members, value.Member{Key: key, Value: val})
	}
	return value.ObjectValue(members...), nil
}

func yamlMerge(n *yaml.Node, depth int) ([]value.Member, error) {
	var sources []*yaml.Node
	if n.Kind == yaml.SequenceNode {
		sources = n.Content
	} else {
		sources = []*yaml.Node{n}
	}
	var members []value.Member
	for _, src := range sources {
		v, err := fromYAML(src, depth+1)
		if err != nil {
			return nil, err
		}
		if v.Kind() != value.Object {
			return nil, fmt.Errorf("line %d: merge value is a %s, not a mapping", src.Line, v.Kind())
		}
		members = append(members, v.Members()...)
	}
	return members, nil
}

func yamlKey(k *yaml.Node, depth int) (string, error) {
	if k.Kind == yaml.ScalarNode {
		return k.Value, nil
	}
	v, err := fromYAML(k, depth+1)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func yamlScalar(n *yaml.Node) value.Value {
	switch n.ShortTag() {
	case "!!null":
		return value.NullValue()
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return value.BoolValue(b)
		}
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return value.IntValue(i)
		}
		var f float64
		if err := n.Decode(&f); err == nil {
			return value.FloatValue(f)
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return value.FloatValue(f)
		}
	}
	return value.StringValue(n.Value)
}
