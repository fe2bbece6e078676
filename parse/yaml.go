package parse

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml/ast"
	yamlparser "github.com/goccy/go-yaml/parser"
	"github.com/signadot/rson/debug"
	"github.com/signadot/rson/ir"
	"github.com/signadot/rson/token"
)

// yamlParser maps a YAML document onto ir nodes. Anchors play the part
// of reference definitions and aliases that of reference uses. An
// anchored composite is bound before its contents are read, so aliases
// inside it refer back to it.
type yamlParser struct {
	anchors map[string]*ir.Node
	opts    *parseOpts
}

func parseYAML(d []byte, opts *parseOpts) (*ir.Node, error) {
	f, err := yamlparser.ParseBytes(d, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrYAML, err)
	}
	var docs []*ast.DocumentNode
	for _, doc := range f.Docs {
		if doc != nil && doc.Body != nil {
			docs = append(docs, doc)
		}
	}
	switch len(docs) {
	case 0:
		return nil, ErrEmpty
	case 1:
	default:
		return nil, fmt.Errorf("%w: %d documents, expected 1", ErrYAML, len(docs))
	}
	p := &yamlParser{anchors: map[string]*ir.Node{}, opts: opts}
	return p.node(docs[0].Body)
}

func yamlPos(n ast.Node) *token.Pos {
	tok := n.GetToken()
	if tok == nil || tok.Position == nil {
		return nil
	}
	return &token.Pos{I: tok.Position.Offset, Line: tok.Position.Line, Col: tok.Position.Column}
}

func (p *yamlParser) errorf(n ast.Node, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if pos := yamlPos(n); pos != nil {
		return fmt.Errorf("%w: %s at %s", ErrYAML, msg, pos)
	}
	return fmt.Errorf("%w: %s", ErrYAML, msg)
}

func (p *yamlParser) node(n ast.Node) (*ir.Node, error) {
	res, err := p.nodeInto(n, nil)
	if err != nil {
		return nil, err
	}
	if _, isAlias := n.(*ast.AliasNode); !isAlias {
		p.trackPos(res, n)
	}
	return res, nil
}

func (p *yamlParser) trackPos(res *ir.Node, n ast.Node) {
	if p.opts.positions == nil {
		return
	}
	if _, ok := p.opts.positions[res]; ok {
		return
	}
	if pos := yamlPos(n); pos != nil {
		p.opts.positions[res] = pos
	}
}

// nodeInto converts n. When shell is not nil, composite contents are
// written into it instead of a fresh node.
func (p *yamlParser) nodeInto(n ast.Node, shell *ir.Node) (*ir.Node, error) {
	switch x := n.(type) {
	case *ast.AnchorNode:
		return p.anchor(x)
	case *ast.AliasNode:
		return p.alias(x)
	case *ast.TagNode:
		if x.Start != nil && (x.Start.Value == "!!str" || x.Start.Value == "!str") {
			if tok := x.Value.GetToken(); tok != nil {
				return ir.FromString(tok.Value), nil
			}
		}
		return p.nodeInto(x.Value, shell)
	case *ast.MappingNode:
		return p.mapping(x.Values, shell)
	case *ast.MappingValueNode:
		return p.mapping([]*ast.MappingValueNode{x}, shell)
	case *ast.SequenceNode:
		return p.sequence(x, shell)
	case *ast.StringNode:
		return ir.FromString(x.Value), nil
	case *ast.LiteralNode:
		if x.Value == nil {
			return ir.FromString(""), nil
		}
		return ir.FromString(x.Value.Value), nil
	case *ast.IntegerNode:
		return ir.FromNumber(fmt.Sprint(x.Value)), nil
	case *ast.FloatNode:
		return ir.FromNumber(strconv.FormatFloat(x.Value, 'g', -1, 64)), nil
	case *ast.BoolNode:
		return ir.FromBool(x.Value), nil
	case *ast.NullNode:
		return ir.Null(), nil
	}
	return nil, p.errorf(n, "unsupported node %s", n.Type())
}

func (p *yamlParser) anchor(x *ast.AnchorNode) (*ir.Node, error) {
	name := x.Name.GetToken().Value
	def := &token.Token{Type: token.TRefDef, Bytes: []byte(name), Pos: yamlPos(x)}
	var shell *ir.Node
	switch composite(x.Value) {
	case ast.MappingType:
		shell = &ir.Node{Type: ir.ObjectType, Fields: []*ir.Node{}, Values: []*ir.Node{}}
	case ast.SequenceType:
		shell = &ir.Node{Type: ir.ArrayType, Values: []*ir.Node{}}
	}
	if shell != nil {
		p.bind(def, shell)
		p.trackPos(shell, x)
		return p.nodeInto(x.Value, shell)
	}
	res, err := p.node(x.Value)
	if err != nil {
		return nil, err
	}
	p.bind(def, res)
	return res, nil
}

// composite reports the collection type under tags, or an unknown
// type for scalars.
func composite(n ast.Node) ast.NodeType {
	for {
		switch x := n.(type) {
		case *ast.TagNode:
			n = x.Value
			continue
		case *ast.MappingNode, *ast.MappingValueNode:
			return ast.MappingType
		case *ast.SequenceNode:
			return ast.SequenceType
		}
		return ast.UnknownNodeType
	}
}

// bind records an anchor. A later anchor with the same name replaces
// it for the aliases that follow, as YAML prescribes.
func (p *yamlParser) bind(def *token.Token, v *ir.Node) {
	name := def.String()
	if debug.Parse() {
		debug.Logf("yaml anchor &%s bound to %s at %s\n", name, v.Type, def.Pos)
	}
	p.anchors[name] = v
	if p.opts.refs != nil {
		p.opts.refs.def(def)
	}
}

func (p *yamlParser) alias(x *ast.AliasNode) (*ir.Node, error) {
	name := x.Value.GetToken().Value
	pos := yamlPos(x)
	if p.opts.refs != nil {
		p.opts.refs.use(&token.Token{Type: token.TRefUse, Bytes: []byte(name), Pos: pos})
	}
	v, ok := p.anchors[name]
	if !ok {
		return nil, fmt.Errorf("%w %q at %s", ErrRefNotFound, name, pos)
	}
	return v, nil
}

func (p *yamlParser) mapping(mvs []*ast.MappingValueNode, shell *ir.Node) (*ir.Node, error) {
	obj := shell
	if obj == nil {
		obj = &ir.Node{Type: ir.ObjectType, Fields: []*ir.Node{}, Values: []*ir.Node{}}
	}
	for _, mv := range mvs {
		key, err := p.key(mv.Key)
		if err != nil {
			return nil, err
		}
		val, err := p.node(mv.Value)
		if err != nil {
			return nil, err
		}
		slot := obj.Set(key, val)
		p.trackPos(obj.Fields[slot], mv.Key)
	}
	return obj, nil
}

func (p *yamlParser) key(k ast.MapKeyNode) (string, error) {
	switch x := ast.Node(k).(type) {
	case *ast.StringNode:
		return x.Value, nil
	case *ast.MergeKeyNode:
		return "", p.errorf(x, "merge keys are not supported")
	case *ast.MappingKeyNode:
		if mk, ok := x.Value.(ast.MapKeyNode); ok {
			return p.key(mk)
		}
		return "", p.errorf(x, "unsupported key %s", x.Value.Type())
	case ast.ScalarNode:
		return x.GetToken().Value, nil
	}
	return "", p.errorf(k, "unsupported key %s", k.Type())
}

func (p *yamlParser) sequence(x *ast.SequenceNode, shell *ir.Node) (*ir.Node, error) {
	arr := shell
	if arr == nil {
		arr = &ir.Node{Type: ir.ArrayType, Values: []*ir.Node{}}
	}
	for _, v := range x.Values {
		val, err := p.node(v)
		if err != nil {
			return nil, err
		}
		arr.Append(val)
	}
	return arr, nil
}
