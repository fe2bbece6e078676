package main

import (
	"context"

	"github.com/signadot/rson/format"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	td := params.TextDocument
	s.update(ctx, string(td.URI), td.Version, td.Text)
	return nil
}

// DidChange expects full document sync: the last change holds the
// whole text.
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	n := len(params.ContentChanges)
	if n == 0 {
		return nil
	}
	td := params.TextDocument
	s.update(ctx, string(td.URI), td.Version, params.ContentChanges[n-1].Text)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.remove(uri)
	s.publishDiagnostics(ctx, &document{uri: uri})
	return nil
}

func (s *Server) update(ctx context.Context, uri string, version int32, text string) {
	doc := analyzeDocument(uri, version, text)
	if prev := s.docs.get(uri); prev != nil && doc.toks == nil && doc.format != format.YAMLFormat {
		doc.defNames = prev.defNames
	}
	s.docs.put(doc)
	if doc.err != nil {
		s.logger.Debug("document does not decode", zap.String("uri", uri), zap.Error(doc.err))
	}
	s.publishDiagnostics(ctx, doc)
}
