package encode

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/rson/debug"
	"github.com/signadot/rson/format"
	"github.com/signadot/rson/ir"
	"github.com/signadot/rson/token"
)

type EncState struct {
	depth     int
	indent    string
	indentSet bool
	lastAlias bool

	format    format.Format
	transform Transform

	refs *Refs
	// composites being written, for cycle detection in JSON
	active map[*ir.Node]bool

	Color func(ir.Type, ColorAttr, string) string
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes node to w. Composites reached more than once are
// written in full the first time, followed by a reference definition,
// and as a reference use afterwards; this also terminates cycles.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	if es.format == format.YAMLFormat && !es.indentSet {
		es.indent = "  "
	}
	if !es.format.HasReferences() {
		es.refs = newRefs(es.transform)
		es.active = map[*ir.Node]bool{}
	} else {
		es.refs = analyze(node, es.transform)
	}
	if debug.Encode() {
		debug.Logf("encoding %s as %s with %d references\n", typeOf(node), es.format, es.refs.Len())
	}
	root := es.refs.child(nil, 0, "", node)
	if root == Omit {
		return ErrOmittedRoot
	}
	return encode(root, w, es)
}

// EncodeString is like Encode but returns the text.
func EncodeString(node *ir.Node, opts ...EncodeOption) (string, error) {
	b := &strings.Builder{}
	if err := Encode(node, b, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

func typeOf(node *ir.Node) ir.Type {
	if node == nil {
		return ir.NullType
	}
	return node.Type
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	es.lastAlias = false
	if node == nil {
		return writeString(w, applyColor(es, ir.NullType, ValueColor, "null"))
	}
	switch node.Type {
	case ir.ObjectType, ir.ArrayType:
		return encodeComposite(node, w, es)
	case ir.StringType:
		return writeString(w, applyColor(es, ir.StringType, ValueColor, token.Quote(node.String)))
	case ir.NumberType:
		s, err := formatNumber(node)
		if err != nil {
			return err
		}
		return writeString(w, applyColor(es, ir.NumberType, ValueColor, s))
	case ir.BoolType:
		return writeString(w, applyColor(es, ir.BoolType, ValueColor, strconv.FormatBool(node.Bool)))
	case ir.NullType:
		return writeString(w, applyColor(es, ir.NullType, ValueColor, "null"))
	}
	return fmt.Errorf("%w: unknown type %s", ErrEncoding, node.Type)
}

func encodeComposite(node *ir.Node, w io.Writer, es *EncState) error {
	entry := es.refs.Get(node)
	if entry != nil {
		if entry.written {
			return writeRefUse(w, es, node.Type, entry.Name)
		}
		entry.written = true
	}
	if es.active != nil {
		if es.active[node] {
			return fmt.Errorf("%w through %s", ErrCycle, node.Type)
		}
		es.active[node] = true
		defer delete(es.active, node)
	}
	if entry != nil && es.format == format.YAMLFormat {
		if err := writeString(w, applyColor(es, node.Type, RefDefColor, "&"+entry.Name)+" "); err != nil {
			return err
		}
	}
	open, end := "[", "]"
	if node.Type == ir.ObjectType {
		open, end = "{", "}"
	}
	if err := writeString(w, applyColor(es, node.Type, SepColor, open)); err != nil {
		return err
	}
	es.depth++
	n := 0
	for i, v := range node.Values {
		key := memberKey(node, i)
		v = es.refs.child(node, i, key, v)
		if v == Omit {
			continue
		}
		if n > 0 {
			if err := writeComma(w, es, node.Type); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if node.Type == ir.ObjectType {
			if err := writeKey(w, es, key); err != nil {
				return err
			}
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
		n++
	}
	es.depth--
	if n > 0 {
		if err := writeNL(w, es); err != nil {
			return err
		}
	}
	if err := writeString(w, applyColor(es, node.Type, SepColor, end)); err != nil {
		return err
	}
	es.lastAlias = false
	if entry != nil && es.format == format.RSONFormat {
		return writeString(w, applyColor(es, node.Type, RefDefColor, "("+entry.Name+")"))
	}
	return nil
}

func formatNumber(node *ir.Node) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		return formatFloat(*node.Float64)
	case node.Number != "":
		return node.Number, nil
	}
	return "", fmt.Errorf("%w: number without a value", ErrEncoding)
}

// formatFloat writes f the shortest way which reads back exactly,
// switching to exponent notation for very large or small magnitudes.
func formatFloat(f float64) (string, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("%w: unsupported value %v", ErrEncoding, f)
	}
	abs := math.Abs(f)
	fmtByte := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmtByte = 'e'
	}
	b := strconv.AppendFloat(nil, f, fmtByte, -1, 64)
	if fmtByte == 'e' {
		// 1e-07 -> 1e-7
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b), nil
}

// Helper functions for writing

func writeNL(w io.Writer, es *EncState) error {
	if es.indent == "" {
		if es.format == format.YAMLFormat {
			return writeString(w, " ")
		}
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(es.indent, es.depth))
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeComma(w io.Writer, es *EncState, cType ir.Type) error {
	sep := ","
	if es.lastAlias && es.format == format.YAMLFormat {
		sep = " ,"
	}
	return writeString(w, applyColor(es, cType, SepColor, sep))
}

func writeKey(w io.Writer, es *EncState, key string) error {
	if err := writeString(w, applyColor(es, ir.ObjectType, FieldColor, token.Quote(key))); err != nil {
		return err
	}
	sep := ":"
	if es.indent != "" || es.format == format.YAMLFormat {
		sep = ": "
	}
	return writeString(w, applyColor(es, ir.ObjectType, SepColor, sep))
}

func writeRefUse(w io.Writer, es *EncState, t ir.Type, name string) error {
	use := "$" + name
	if es.format == format.YAMLFormat {
		use = "*" + name
	}
	if err := writeString(w, applyColor(es, t, RefUseColor, use)); err != nil {
		return err
	}
	es.lastAlias = true
	return nil
}

// Color application helpers

func applyColor(es *EncState, nodeType ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(nodeType, attr, v)
}
