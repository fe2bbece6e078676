package parse

import (
	"fmt"
	"io"

	"github.com/signadot/rson/debug"
	"github.com/signadot/rson/format"
	"github.com/signadot/rson/ir"
	"github.com/signadot/rson/token"
)

func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := newParseOpts(opts)
	if len(d) == 0 {
		return nil, ErrEmpty
	}
	if pOpts.format == format.YAMLFormat {
		return parseYAML(d, pOpts)
	}
	toks, err := token.Tokenize(nil, d, pOpts.TokenizeOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return parseTokens(toks, pOpts)
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

// ParseSource parses a document read from src. YAML is not supported
// from a Source.
func ParseSource(src token.Source, opts ...ParseOption) (*ir.Node, error) {
	pOpts := newParseOpts(opts)
	if pOpts.format == format.YAMLFormat {
		return nil, fmt.Errorf("%w: %s from a character source", token.ErrUnsupported, pOpts.format)
	}
	if src.EOF() {
		return nil, ErrEmpty
	}
	toks, err := token.NewTokenizer(src, pOpts.TokenizeOpts()...).Tokenize()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return parseTokens(toks, pOpts)
}

// ParseReader reads all of r and parses it.
func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(d, opts...)
}

// ParseTokens parses a token sequence as produced by token.Tokenize.
func ParseTokens(toks []token.Token, opts ...ParseOption) (*ir.Node, error) {
	return parseTokens(toks, newParseOpts(opts))
}

func newParseOpts(opts []ParseOption) *parseOpts {
	pOpts := &parseOpts{format: format.RSONFormat}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts
}

// fixup is a slot holding a reference used before its name was bound.
type fixup struct {
	container *ir.Node
	index     int
	tok       *token.Token
}

// parser is the state of one parse: the bound names and the fixups
// waiting for the whole document to be read.
type parser struct {
	cur    *token.Cursor
	refs   map[string]*ir.Node
	fixups []fixup
	opts   *parseOpts
}

func parseTokens(toks []token.Token, opts *parseOpts) (*ir.Node, error) {
	p := &parser{
		cur:  token.NewCursor(toks),
		refs: map[string]*ir.Node{},
		opts: opts,
	}
	return p.document()
}

func (p *parser) document() (*ir.Node, error) {
	res, err := p.value()
	if err != nil {
		return nil, err
	}
	if tok := p.cur.Current(); tok.Type != token.TEOF {
		return nil, unexpected(tok)
	}
	p.cur.Next()
	if err := p.resolve(); err != nil {
		return nil, err
	}
	return res, nil
}

// resolve patches every fixup, in the order they were queued. Every
// use must name a bound reference, including a use whose object slot
// was overwritten by a later duplicate key; the last fixup patched into
// a slot wins.
func (p *parser) resolve() error {
	for i := range p.fixups {
		f := &p.fixups[i]
		name := f.tok.String()
		v, ok := p.refs[name]
		if !ok {
			return fmt.Errorf("%w %q at %s", ErrRefNotFound, name, f.tok.Pos)
		}
		if debug.Parse() {
			debug.Logf("resolved $%s at %s\n", name, f.tok.Pos)
		}
		f.container.Values[f.index] = v
	}
	return nil
}

func unexpected(tok *token.Token) error {
	if tok.Type == token.TEOF {
		return fmt.Errorf("%w at %s", ErrEmpty, tok.Pos)
	}
	return fmt.Errorf("%w %s at %s", ErrUnexpectedToken, tok.Literal(), tok.Pos)
}

func (p *parser) expect(tt token.TokenType) (*token.Token, error) {
	tok := p.cur.Current()
	if tok.Type != tt {
		return nil, unexpected(tok)
	}
	return p.cur.Next(), nil
}

func (p *parser) trackPos(node *ir.Node, pos *token.Pos) {
	if p.opts.positions != nil && pos != nil {
		p.opts.positions[node] = pos
	}
}

// value parses a value and binds it if a reference definition
// follows.
func (p *parser) value() (*ir.Node, error) {
	tok := p.cur.Current()
	var (
		res *ir.Node
		err error
	)
	switch tok.Type {
	case token.TLCurl:
		res, err = p.object()
	case token.TLSquare:
		res, err = p.array()
	case token.TString:
		p.cur.Next()
		res = ir.FromString(tok.String())
	case token.TNumber:
		p.cur.Next()
		res = ir.FromNumber(tok.String())
	case token.TTrue:
		p.cur.Next()
		res = ir.FromBool(true)
	case token.TFalse:
		p.cur.Next()
		res = ir.FromBool(false)
	case token.TNull:
		p.cur.Next()
		res = ir.Null()
	default:
		return nil, unexpected(tok)
	}
	if err != nil {
		return nil, err
	}
	p.trackPos(res, tok.Pos)
	if def := p.cur.Current(); def.Type == token.TRefDef {
		p.cur.Next()
		if err := p.bind(def, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (p *parser) bind(def *token.Token, v *ir.Node) error {
	name := def.String()
	if _, ok := p.refs[name]; ok {
		return fmt.Errorf("%w %q at %s", ErrRefExists, name, def.Pos)
	}
	if debug.Parse() {
		debug.Logf("bound (%s) to %s at %s\n", name, v.Type, def.Pos)
	}
	p.refs[name] = v
	if p.opts.refs != nil {
		p.opts.refs.def(def)
	}
	return nil
}

// member parses an array element or object value. A reference to a
// name not bound yet yields a nil node and the use token, for the
// caller to queue a fixup once the slot is known.
func (p *parser) member() (*ir.Node, *token.Token, error) {
	tok := p.cur.Current()
	if tok.Type != token.TRefUse {
		v, err := p.value()
		return v, nil, err
	}
	p.cur.Next()
	if p.opts.refs != nil {
		p.opts.refs.use(tok)
	}
	if v, ok := p.refs[tok.String()]; ok {
		return v, nil, nil
	}
	return nil, tok, nil
}

func (p *parser) queue(container *ir.Node, index int, tok *token.Token) {
	p.fixups = append(p.fixups, fixup{container: container, index: index, tok: tok})
}

// sep consumes the separator after a member: a comma, or nothing
// before the closing token.
func (p *parser) sep(closer token.TokenType) error {
	tok := p.cur.Current()
	switch tok.Type {
	case token.TComma:
		p.cur.Next()
		return nil
	case closer:
		return nil
	}
	return unexpected(tok)
}

func (p *parser) object() (*ir.Node, error) {
	p.cur.Next()
	obj := &ir.Node{Type: ir.ObjectType, Fields: []*ir.Node{}, Values: []*ir.Node{}}
	for {
		tok := p.cur.Current()
		if tok.Type == token.TRCurl {
			p.cur.Next()
			return obj, nil
		}
		if tok.Type != token.TString {
			return nil, unexpected(tok)
		}
		p.cur.Next()
		key := tok.String()
		if _, err := p.expect(token.TColon); err != nil {
			return nil, err
		}
		val, use, err := p.member()
		if err != nil {
			return nil, err
		}
		slot := obj.Set(key, val)
		p.trackPos(obj.Fields[slot], tok.Pos)
		if use != nil {
			p.queue(obj, slot, use)
		}
		if err := p.sep(token.TRCurl); err != nil {
			return nil, err
		}
	}
}

func (p *parser) array() (*ir.Node, error) {
	p.cur.Next()
	arr := &ir.Node{Type: ir.ArrayType, Values: []*ir.Node{}}
	for {
		if p.cur.Current().Type == token.TRSquare {
			p.cur.Next()
			return arr, nil
		}
		val, use, err := p.member()
		if err != nil {
			return nil, err
		}
		slot := arr.Append(val)
		if use != nil {
			p.queue(arr, slot, use)
		}
		if err := p.sep(token.TRSquare); err != nil {
			return nil, err
		}
	}
}
