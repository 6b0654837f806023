// Package tree is a collapsible view over a parsed document. A Session owns one open/closed flag per container node; nodes are keyed by their JSON pointer path and
// are constructed lazily, the first time they become visible. A node's initial state is computed once, at construction: open if its depth is below the collapse
// threshold or if its subtree matches the search term. Afterwards only Toggle (and the bulk operations) change it, even if the search term changes.
//
// Closing a node destroys the state of every node below it, so re-opening it constructs its children afresh with defaults computed against the current search.
package tree

import (
	"strconv"

	"github.com/codalotl/docview/internal/value"
)

// Options control the initial state of newly constructed nodes.
type Options struct {
	CollapseDepth int    // Containers at depth < CollapseDepth start open. The root is at depth 0.
	Search        string // Containers whose subtree matches Search start open.
}

// Node is the state of one container node.
type Node struct {
	Path     string // JSON pointer from the document root; "" is the root.
	Label    string // Key or array index in the parent; empty for the root.
	HasLabel bool
	Value    value.Value
	Depth    int
	Open     bool
}

// Session is a TreeModel: the document plus the arena of constructed container nodes. A Session is not safe for concurrent use.
type Session struct {
	doc   value.Value
	opts  Options
	nodes map[string]*Node
}

// New returns a session over doc. No node is constructed until Lines or Node is called.
func New(doc value.Value, opts Options) *Session {
	return &Session{doc: doc, opts: opts, nodes: make(map[string]*Node)}
}

// Document returns the session's document.
func (s *Session) Document() value.Value {
	return s.doc
}

// Options returns the options used for newly constructed nodes.
func (s *Session) Options() Options {
	return s.opts
}

// SetDocument replaces the document and discards all node state.
func (s *Session) SetDocument(doc value.Value) {
	s.doc = doc
	s.nodes = make(map[string]*Node)
}

// SetSearch changes the search term. Existing nodes keep their state; the term affects nodes constructed from now on.
func (s *Session) SetSearch(term string) {
	s.opts.Search = term
}

// SetCollapseDepth changes the collapse threshold. Like SetSearch, it affects nodes constructed from now on.
func (s *Session) SetCollapseDepth(depth int) {
	s.opts.CollapseDepth = depth
}

// Reset discards all node state, so every node is reconstructed with defaults from the current options.
func (s *Session) Reset() {
	s.nodes = make(map[string]*Node)
}

// Node returns the state of the container at path, constructing it (and its ancestors) if every ancestor is open. It returns false if path does not name a container
// or if the container is hidden under a closed ancestor.
func (s *Session) Node(path string) (Node, bool) {
	n := s.resolve(path)
	if n == nil {
		return Node{}, false
	}
	return *n, true
}

// Toggle flips the open state of the visible container at path and reports whether it did. Closing a node destroys the state of its descendants.
func (s *Session) Toggle(path string) bool {
	n := s.resolve(path)
	if n == nil {
		return false
	}
	n.Open = !n.Open
	if !n.Open {
		s.dropDescendants(path)
	}
	return true
}

// ExpandAll constructs every container node in the document and opens it.
func (s *Session) ExpandAll() {
	s.nodes = make(map[string]*Node)
	var walk func(v value.Value, path, label string, hasLabel bool, depth int)
	walk = func(v value.Value, path, label string, hasLabel bool, depth int) {
		if !v.IsContainer() {
			return
		}
		s.nodes[path] = &Node{Path: path, Label: label, HasLabel: hasLabel, Value: v, Depth: depth, Open: true}
		eachChild(v, func(label string, child value.Value) {
			walk(child, value.AppendPointer(path, label), label, true, depth+1)
		})
	}
	walk(s.doc, "", "", false, 0)
}

// CollapseAll discards all node state and closes the root.
func (s *Session) CollapseAll() {
	s.nodes = make(map[string]*Node)
	if s.doc.IsContainer() {
		s.nodes[""] = &Node{Value: s.doc, Open: false}
	}
}

// MatchCount returns how many keys, array indices, and primitive values in the document contain the search term. It is zero when the term is blank.
func (s *Session) MatchCount() int {
	return countMatches(s.doc, s.opts.Search)
}

// node returns the constructed node for a container, constructing it with default state if needed.
func (s *Session) node(v value.Value, path, label string, hasLabel bool, depth int) *Node {
	if n, ok := s.nodes[path]; ok {
		return n
	}
	n := &Node{
		Path:     path,
		Label:    label,
		HasLabel: hasLabel,
		Value:    v,
		Depth:    depth,
		Open:     depth < s.opts.CollapseDepth || Matches(v, s.opts.Search),
	}
	s.nodes[path] = n
	return n
}

// resolve walks from the root to path through open containers, constructing nodes on the way.
func (s *Session) resolve(path string) *Node {
	if !s.doc.IsContainer() {
		return nil
	}
	cur := s.node(s.doc, "", "", false, 0)
	curPath := ""
	for _, tok := range value.SplitPointer(path) {
		if !cur.Open {
			return nil
		}
		child, ok := childOf(cur.Value, tok)
		if !ok || !child.IsContainer() {
			return nil
		}
		curPath = value.AppendPointer(curPath, tok)
		cur = s.node(child, curPath, tok, true, cur.Depth+1)
	}
	return cur
}

func (s *Session) dropDescendants(path string) {
	for p := range s.nodes {
		if p != path && value.IsDescendant(p, path) {
			delete(s.nodes, p)
		}
	}
}

// eachChild calls fn for each child of a container in display order: array elements labeled "0", "1", ..., object members labeled by key in the value's own order.
func eachChild(v value.Value, fn func(label string, child value.Value)) {
	switch v.Kind() {
	case value.Array:
		for i, item := range v.Items() {
			fn(strconv.Itoa(i), item)
		}
	case value.Object:
		for _, m := range v.Members() {
			fn(m.Key, m.Value)
		}
	}
}

func childOf(v value.Value, label string) (value.Value, bool) {
	switch v.Kind() {
	case value.Array:
		i, err := strconv.Atoi(label)
		if err != nil || i < 0 || i >= v.Len() || strconv.Itoa(i) != label {
			return value.Value{}, false
		}
		return v.Index(i), true
	case value.Object:
		return v.Get(label)
	}
	return value.Value{}, false
}
