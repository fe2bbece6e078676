package encode

import (
	"strconv"
	"strings"

	"github.com/signadot/rson/debug"
	"github.com/signadot/rson/ir"
)

// RefPrefix prefixes the names the encoder assigns to shared values.
const RefPrefix = "ref"

// RefEntry describes a composite reachable from more than one place.
type RefEntry struct {
	// Name is the reference name written after the definition.
	Name string
	// Count is the number of times the value is reached beyond the
	// first. Entries with a zero count are not kept.
	Count int
	// Path is the JSON pointer of the slot where the value was first
	// reached.
	Path string
	// Node is the shared value.
	Node *ir.Node

	written bool
}

type edge struct {
	parent *ir.Node
	index  int
}

// Refs is the result of analyzing a value graph: the composites which
// need a name, in the order they were first reached.
type Refs struct {
	entries   map[*ir.Node]*RefEntry
	order     []*RefEntry
	transform Transform
	edges     map[edge]*ir.Node
}

func newRefs(transform Transform) *Refs {
	return &Refs{
		entries:   map[*ir.Node]*RefEntry{},
		transform: transform,
		edges:     map[edge]*ir.Node{},
	}
}

// Analyze finds the composites of node reachable along more than one
// path, including values which contain themselves, and names them.
// Names are assigned in first-discovery order, visiting array elements
// by index and object members in key order, so the result only
// depends on the graph.
//
// A transform given with WithTransform applies: values it omits are
// not visited and values it substitutes are analyzed in their place.
func Analyze(node *ir.Node, opts ...EncodeOption) *Refs {
	es := newEncState(opts)
	return analyze(node, es.transform)
}

func analyze(node *ir.Node, transform Transform) *Refs {
	r := newRefs(transform)
	root := r.child(nil, 0, "", node)
	if root == Omit {
		return r
	}
	if root.IsComposite() {
		r.add(root, "")
		r.visit(root, "")
	}
	r.name()
	return r
}

// child returns what is emitted for the value v held at index i of
// parent, under key. The transform result is computed once per slot.
func (r *Refs) child(parent *ir.Node, i int, key string, v *ir.Node) *ir.Node {
	if r.transform == nil {
		return v
	}
	e := edge{parent: parent, index: i}
	if res, ok := r.edges[e]; ok {
		return res
	}
	res := r.transform(key, v)
	r.edges[e] = res
	return res
}

func (r *Refs) add(n *ir.Node, path string) {
	if e, ok := r.entries[n]; ok {
		e.Count++
		return
	}
	e := &RefEntry{Node: n, Path: path}
	r.entries[n] = e
	r.order = append(r.order, e)
}

func (r *Refs) visit(n *ir.Node, path string) {
	if e := r.entries[n]; e != nil && e.Count > 0 {
		return
	}
	for i, v := range n.Values {
		key := memberKey(n, i)
		v = r.child(n, i, key, v)
		if v == Omit || !v.IsComposite() {
			continue
		}
		childPath := path + "/" + escapePointer(key)
		r.add(v, childPath)
		r.visit(v, childPath)
	}
}

// name drops the entries reached only once and names the others.
func (r *Refs) name() {
	kept := r.order[:0]
	for _, e := range r.order {
		if e.Count == 0 {
			delete(r.entries, e.Node)
			continue
		}
		kept = append(kept, e)
		e.Name = RefPrefix + strconv.Itoa(len(kept))
		if debug.Refs() {
			debug.Logf("%s: %s at %q reached %d more times\n", e.Name, e.Node.Type, e.Path, e.Count)
		}
	}
	r.order = kept
}

// Get returns the entry of n, or nil if n is not shared.
func (r *Refs) Get(n *ir.Node) *RefEntry {
	return r.entries[n]
}

// Entries returns the shared values in naming order.
func (r *Refs) Entries() []*RefEntry {
	return r.order
}

func (r *Refs) Len() int {
	return len(r.order)
}

func memberKey(n *ir.Node, i int) string {
	if n.Type == ir.ObjectType {
		return n.Fields[i].String
	}
	return strconv.Itoa(i)
}

func escapePointer(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
