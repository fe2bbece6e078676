package parse

import (
	"github.com/signadot/rson/format"
	"github.com/signadot/rson/ir"
	"github.com/signadot/rson/token"
)

type parseOpts struct {
	format    format.Format
	positions map[*ir.Node]*token.Pos
	refs      *RefInfo
}

func (o *parseOpts) TokenizeOpts() []token.TokenOpt {
	if o.format == format.YAMLFormat {
		return nil
	}
	if o.format.HasReferences() && o.format.HasComments() {
		return []token.TokenOpt{token.TokenRSON()}
	}
	return []token.TokenOpt{token.TokenJSON()}
}

// RefInfo collects the reference definitions and uses of a document
// as it is parsed.
type RefInfo struct {
	// Defs maps each bound name to its definition token.
	Defs map[string]*token.Token
	// Uses lists reference use tokens in document order.
	Uses []*token.Token
}

func (ri *RefInfo) def(tok *token.Token) {
	if ri.Defs == nil {
		ri.Defs = map[string]*token.Token{}
	}
	ri.Defs[tok.String()] = tok
}

func (ri *RefInfo) use(tok *token.Token) {
	ri.Uses = append(ri.Uses, tok)
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseRSON() ParseOption {
	return ParseFormat(format.RSONFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParsePositions records the start position of every node produced.
func ParsePositions(m map[*ir.Node]*token.Pos) ParseOption {
	return func(o *parseOpts) {
		o.positions = m
	}
}

// ParseRefInfo records reference definitions and uses into ri.
func ParseRefInfo(ri *RefInfo) ParseOption {
	return func(o *parseOpts) {
		o.refs = ri
	}
}

// GetPositions extracts the positions map from the provided options.
func GetPositions(opts ...ParseOption) map[*ir.Node]*token.Pos {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts.positions
}
