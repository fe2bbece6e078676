package main

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/signadot/rson/encode"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// Formatting replaces the whole document with its encoding. Documents
// which do not decode are left alone.
func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	out, err := encode.EncodeString(doc.node, formatOpts(doc, params.Options)...)
	if err != nil {
		s.logger.Info("cannot format", zap.String("uri", doc.uri), zap.Error(err))
		return nil, nil
	}
	out += "\n"
	if out == doc.text {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{{
		Range:   protocol.Range{End: endPos(doc.text)},
		NewText: out,
	}}, nil
}

func formatOpts(doc *document, opts protocol.FormattingOptions) []encode.EncodeOption {
	res := []encode.EncodeOption{encode.EncodeFormat(doc.format)}
	switch {
	case !opts.InsertSpaces:
		res = append(res, encode.IndentString("\t"))
	case opts.TabSize == 0:
		res = append(res, encode.Indent(2))
	default:
		res = append(res, encode.Indent(int(opts.TabSize)))
	}
	return res
}

// endPos is the position just past the last character of text.
func endPos(text string) protocol.Position {
	line := strings.Count(text, "\n")
	last := text[strings.LastIndex(text, "\n")+1:]
	return protocol.Position{Line: uint32(line), Character: uint32(utf8.RuneCountInString(last))}
}
