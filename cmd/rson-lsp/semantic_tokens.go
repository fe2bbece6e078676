package main

import (
	"context"

	"github.com/signadot/rson/token"
	"go.lsp.dev/protocol"
)

// indices into tokenTypes and tokenModifiers
const (
	stProperty = iota
	stString
	stNumber
	stKeyword
	stVariable
)

const smDefinition = 1 << 0

var (
	tokenTypes = []protocol.SemanticTokenTypes{
		protocol.SemanticTokenProperty,
		protocol.SemanticTokenString,
		protocol.SemanticTokenNumber,
		protocol.SemanticTokenKeyword,
		protocol.SemanticTokenVariable,
	}
	tokenModifiers = []protocol.SemanticTokenModifiers{
		protocol.SemanticTokenModifierDefinition,
	}
)

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	return &protocol.SemanticTokens{Data: semanticTokens(doc.toks, 0, -1)}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	r := params.Range
	return &protocol.SemanticTokens{Data: semanticTokens(doc.toks, int(r.Start.Line), int(r.End.Line))}, nil
}

// semanticTokens encodes the tokens on 0-based lines first through
// last, or through the end when last is negative, in the relative
// form of the protocol.
func semanticTokens(toks []token.Token, first, last int) []uint32 {
	data := []uint32{}
	prevLine, prevCol := 0, 0
	for i := range toks {
		tok := &toks[i]
		line := tok.Pos.Line - 1
		if line < first || (last >= 0 && line > last) {
			continue
		}
		var tt, mods int
		switch tok.Type {
		case token.TString:
			tt = stString
			if i+1 < len(toks) && toks[i+1].Type == token.TColon {
				tt = stProperty
			}
		case token.TNumber:
			tt = stNumber
		case token.TTrue, token.TFalse, token.TNull:
			tt = stKeyword
		case token.TRefDef:
			tt, mods = stVariable, smDefinition
		case token.TRefUse:
			tt = stVariable
		default:
			continue
		}
		col := tok.Pos.Col - 1
		length := tok.End.Col - tok.Pos.Col
		if tok.End.Line != tok.Pos.Line {
			length = len([]rune(tok.Literal()))
		}
		dLine, dCol := line-prevLine, col
		if dLine == 0 {
			dCol = col - prevCol
		}
		data = append(data, uint32(dLine), uint32(dCol), uint32(length), uint32(tt), uint32(mods))
		prevLine, prevCol = line, col
	}
	return data
}
