package main

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"github.com/signadot/rson/token"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

var (
	// positions as parse errors report them, "... at 3:14"
	atPosRE = regexp.MustCompile(`at (\d+):(\d+)$`)
	// and as yaml errors do, "[3:14] ..."
	yamlPosRE = regexp.MustCompile(`\[(\d+):(\d+)\]`)
)

// errorPos returns the 1-based line and column an error refers to, or
// 1:1 when it names none.
func errorPos(err error) (int, int) {
	var tokErr *token.TokenizeErr
	if errors.As(err, &tokErr) {
		return tokErr.Pos.Line, tokErr.Pos.Col
	}
	msg := err.Error()
	m := atPosRE.FindStringSubmatch(msg)
	if m == nil {
		m = yamlPosRE.FindStringSubmatch(msg)
	}
	if m == nil {
		return 1, 1
	}
	line, _ := strconv.Atoi(m[1])
	col, _ := strconv.Atoi(m[2])
	return line, col
}

func lspPos(line, col int) protocol.Position {
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	return protocol.Position{Line: uint32(line - 1), Character: uint32(col - 1)}
}

func tokenRange(tok *token.Token) protocol.Range {
	return protocol.Range{
		Start: lspPos(tok.Pos.Line, tok.Pos.Col),
		End:   lspPos(tok.End.Line, tok.End.Col),
	}
}

func diagnostics(doc *document) []protocol.Diagnostic {
	res := []protocol.Diagnostic{}
	if doc.err == nil {
		return res
	}
	line, col := errorPos(doc.err)
	start := lspPos(line, col)
	end := start
	end.Character++
	res = append(res, protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: protocol.DiagnosticSeverityError,
		Source:   lsName,
		Message:  doc.err.Error(),
	})
	return res
}

func (s *Server) publishDiagnostics(ctx context.Context, doc *document) {
	if s.client == nil {
		return
	}
	params := &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(doc.uri),
		Version:     uint32(doc.version),
		Diagnostics: diagnostics(doc),
	}
	if err := s.client.PublishDiagnostics(ctx, params); err != nil {
		s.logger.Warn("error publishing diagnostics", zap.String("uri", doc.uri), zap.Error(err))
	}
}
