package main

import (
	"context"

	"github.com/signadot/rson/token"
	"go.lsp.dev/protocol"
)

// refTokenAt returns the reference definition or use under the
// position, if any.
func (s *Server) refTokenAt(params protocol.TextDocumentPositionParams) (*document, *token.Token) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	tok := doc.tokenAt(int(params.Position.Line), int(params.Position.Character))
	if tok == nil || (tok.Type != token.TRefDef && tok.Type != token.TRefUse) {
		return doc, nil
	}
	return doc, tok
}

func (doc *document) location(tok *token.Token) protocol.Location {
	return protocol.Location{
		URI:   protocol.DocumentURI(doc.uri),
		Range: tokenRange(tok),
	}
}

// Definition goes from $name to (name).
func (s *Server) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	doc, tok := s.refTokenAt(params.TextDocumentPositionParams)
	if tok == nil {
		return nil, nil
	}
	def := doc.refs.Defs[tok.String()]
	if def == nil {
		return nil, nil
	}
	return []protocol.Location{doc.location(def)}, nil
}

// References lists the uses of the name under the position.
func (s *Server) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	doc, tok := s.refTokenAt(params.TextDocumentPositionParams)
	if tok == nil {
		return nil, nil
	}
	name := tok.String()
	res := []protocol.Location{}
	if def := doc.refs.Defs[name]; def != nil && params.Context.IncludeDeclaration {
		res = append(res, doc.location(def))
	}
	for _, use := range doc.refs.Uses {
		if use.String() == name {
			res = append(res, doc.location(use))
		}
	}
	return res, nil
}

// Completion offers the names defined in the document.
func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	items := []protocol.CompletionItem{}
	for _, name := range doc.defNames {
		item := protocol.CompletionItem{
			Label: name,
			Kind:  protocol.CompletionItemKindReference,
		}
		if node := doc.bound[name]; node != nil {
			item.Detail = getTypeInfo(node)
		}
		items = append(items, item)
	}
	return &protocol.CompletionList{Items: items}, nil
}
