package ir

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Node is an RSON value. Objects keep their keys in Fields, parallel
// to Values; arrays keep their elements in Values.
//
// Composite nodes are compared by identity when tracking references:
// two distinct *Node with equal contents are unrelated, while the same
// *Node held in two slots is shared. Nodes carry no parent links since
// a shared node has more than one parent.
type Node struct {
	Type   Type
	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

type KeyVal struct {
	Key string
	Val *Node
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

// FromNumber builds a number node from its literal text. Integral
// literals which fit in an int64 keep an Int64, other literals a
// Float64. Literals representable as neither keep only their text.
func FromNumber(lit string) *Node {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return FromInt(i)
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err == nil && !math.IsInf(f, 0) {
		return FromFloat(f)
	}
	return &Node{Type: NumberType, Number: lit}
}

func FromSlice(vs []*Node) *Node {
	if vs == nil {
		vs = []*Node{}
	}
	return &Node{Type: ArrayType, Values: vs}
}

// FromKeyVals builds an object with the keys in the given order.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   ObjectType,
		Fields: make([]*Node, 0, len(kvs)),
		Values: make([]*Node, 0, len(kvs)),
	}
	for _, kv := range kvs {
		res.Set(kv.Key, kv.Val)
	}
	return res
}

// FromMap builds an object with sorted keys.
func FromMap(m map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(m))
	kvs := make([]KeyVal, len(keys))
	for i, k := range keys {
		kvs[i] = KeyVal{Key: k, Val: m[k]}
	}
	return FromKeyVals(kvs)
}

func (y *Node) IsComposite() bool {
	return y != nil && !y.Type.IsLeaf()
}

// Len returns the number of entries of a composite, 0 otherwise.
func (y *Node) Len() int {
	if !y.IsComposite() {
		return 0
	}
	return len(y.Values)
}

// Index returns the position of key in an object, or -1.
func (y *Node) Index(key string) int {
	for i, f := range y.Fields {
		if f.String == key {
			return i
		}
	}
	return -1
}

// Get returns the value under key in an object, or nil.
func (y *Node) Get(key string) *Node {
	if y.Type != ObjectType {
		return nil
	}
	i := y.Index(key)
	if i < 0 {
		return nil
	}
	return y.Values[i]
}

// Set replaces the value under key, keeping its position, or appends
// key at the end of the object. It returns the slot index.
func (y *Node) Set(key string, v *Node) int {
	if i := y.Index(key); i >= 0 {
		y.Values[i] = v
		return i
	}
	y.Fields = append(y.Fields, FromString(key))
	y.Values = append(y.Values, v)
	return len(y.Values) - 1
}

// Append adds v to an array, returning its index.
func (y *Node) Append(v *Node) int {
	y.Values = append(y.Values, v)
	return len(y.Values) - 1
}

// Keys returns the keys of an object in order.
func (y *Node) Keys() []string {
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}

// Clone deep copies the graph rooted at y, preserving sharing and
// cycles: a node reachable along several paths is copied once.
func (y *Node) Clone() *Node {
	return y.cloneWith(map[*Node]*Node{})
}

func (y *Node) cloneWith(seen map[*Node]*Node) *Node {
	if y == nil {
		return nil
	}
	if c, ok := seen[y]; ok {
		return c
	}
	dst := &Node{
		Type:   y.Type,
		String: y.String,
		Bool:   y.Bool,
		Number: y.Number,
	}
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if !y.IsComposite() {
		return dst
	}
	seen[y] = dst
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, f := range y.Fields {
			dst.Fields[i] = FromString(f.String)
		}
	}
	dst.Values = make([]*Node, len(y.Values))
	for i, v := range y.Values {
		dst.Values[i] = v.cloneWith(seen)
	}
	return dst
}

// Float returns the numeric value of a number node.
func (y *Node) Float() (float64, error) {
	if y.Type != NumberType {
		return 0, fmt.Errorf("%s is not a number", y.Type)
	}
	switch {
	case y.Int64 != nil:
		return float64(*y.Int64), nil
	case y.Float64 != nil:
		return *y.Float64, nil
	}
	return strconv.ParseFloat(y.Number, 64)
}
