package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

const testURI = "file:///tmp/doc.rson"

// {"a": [1, 2](list), "b": $list}
//
//	$list spans characters 25 to 30, (list) 12 to 18
const testDoc = `{"a": [1, 2](list), "b": $list}`

func openDoc(t *testing.T, text string) *Server {
	t.Helper()
	s := newServer(zap.NewNop())
	err := s.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: testURI, Version: 1, Text: text},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func posParams(char uint32) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Position:     protocol.Position{Line: 0, Character: char},
	}
}

func rng(from, to uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Character: from},
		End:   protocol.Position{Character: to},
	}
}

func TestDefinition(t *testing.T) {
	s := openDoc(t, testDoc)
	locs, err := s.Definition(context.Background(), &protocol.DefinitionParams{TextDocumentPositionParams: posParams(27)})
	if err != nil {
		t.Fatal(err)
	}
	want := []protocol.Location{{URI: testURI, Range: rng(12, 18)}}
	if diff := cmp.Diff(want, locs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	locs, err = s.Definition(context.Background(), &protocol.DefinitionParams{TextDocumentPositionParams: posParams(2)})
	if err != nil || locs != nil {
		t.Errorf("got %v, %v off a reference", locs, err)
	}
}

func TestReferences(t *testing.T) {
	s := openDoc(t, testDoc)
	params := &protocol.ReferenceParams{TextDocumentPositionParams: posParams(14)}
	params.Context.IncludeDeclaration = true
	locs, err := s.References(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	want := []protocol.Location{
		{URI: testURI, Range: rng(12, 18)},
		{URI: testURI, Range: rng(25, 30)},
	}
	if diff := cmp.Diff(want, locs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestHover(t *testing.T) {
	s := openDoc(t, testDoc)
	tests := []struct {
		char uint32
		want []string
	}{
		{27, []string{"**Reference:** `(list)`, 1 uses", "**Defined at:** 1:13", "array with 2 elements"}},
		{7, []string{"**Type:** integer", "**Value:** `1`"}},
		{1, []string{"**Type:** string", "`a`"}},
	}
	for _, tt := range tests {
		h, err := s.Hover(context.Background(), &protocol.HoverParams{TextDocumentPositionParams: posParams(tt.char)})
		if err != nil {
			t.Fatal(err)
		}
		if h == nil {
			t.Fatalf("no hover at %d", tt.char)
		}
		for _, w := range tt.want {
			if !strings.Contains(h.Contents.Value, w) {
				t.Errorf("hover at %d: %q does not contain %q", tt.char, h.Contents.Value, w)
			}
		}
	}
}

func TestCompletion(t *testing.T) {
	s := openDoc(t, testDoc)
	list, err := s.Completion(context.Background(), &protocol.CompletionParams{TextDocumentPositionParams: posParams(0)})
	if err != nil {
		t.Fatal(err)
	}
	want := []protocol.CompletionItem{{Label: "list", Kind: protocol.CompletionItemKindReference, Detail: "array"}}
	if diff := cmp.Diff(want, list.Items); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// a use being typed does not tokenize; names carry over
	err = s.DidChange(context.Background(), &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI}, Version: 2},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: `{"a": [1, 2](list), "b": $`}},
	})
	if err != nil {
		t.Fatal(err)
	}
	list, err = s.Completion(context.Background(), &protocol.CompletionParams{TextDocumentPositionParams: posParams(26)})
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Items) != 1 || list.Items[0].Label != "list" {
		t.Errorf("got %v", list.Items)
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		text  string
		start protocol.Position
	}{
		{`[1, 2`, protocol.Position{Character: 5}},
		{"[1,\n @]", protocol.Position{Line: 1, Character: 1}},
		{`[$nope]`, protocol.Position{Character: 1}},
	}
	for _, tt := range tests {
		doc := analyzeDocument(testURI, 1, tt.text)
		ds := diagnostics(doc)
		if len(ds) != 1 {
			t.Fatalf("%q: got %d diagnostics", tt.text, len(ds))
		}
		if ds[0].Range.Start != tt.start {
			t.Errorf("%q: got %v, want %v (%s)", tt.text, ds[0].Range.Start, tt.start, ds[0].Message)
		}
		if ds[0].Severity != protocol.DiagnosticSeverityError {
			t.Errorf("%q: severity %v", tt.text, ds[0].Severity)
		}
	}
	if ds := diagnostics(analyzeDocument(testURI, 1, testDoc)); len(ds) != 0 {
		t.Errorf("got %v", ds)
	}
}

func TestErrorPos(t *testing.T) {
	tests := []struct {
		err       error
		line, col int
	}{
		{errors.New("parse error: unexpected token 2 at 3:14"), 3, 14},
		{errors.New("parse error: yaml: [2:5] mapping value is not allowed"), 2, 5},
		{errors.New("nothing"), 1, 1},
	}
	for _, tt := range tests {
		line, col := errorPos(tt.err)
		if line != tt.line || col != tt.col {
			t.Errorf("%v: got %d:%d", tt.err, line, col)
		}
	}
}

func TestFormatting(t *testing.T) {
	s := openDoc(t, `{"a":1}`)
	params := &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Options:      protocol.FormattingOptions{InsertSpaces: true, TabSize: 2},
	}
	edits, err := s.Formatting(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	want := []protocol.TextEdit{{Range: rng(0, 7), NewText: "{\n  \"a\": 1\n}\n"}}
	if diff := cmp.Diff(want, edits); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	s = openDoc(t, "{\n  \"a\": 1\n}\n")
	edits, err = s.Formatting(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 0 {
		t.Errorf("formatted document changed: %v", edits)
	}
}

func TestSemanticTokens(t *testing.T) {
	s := openDoc(t, `{"k": [true](x), "u": $x}`)
	res, err := s.SemanticTokensFull(context.Background(), &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []uint32{
		0, 1, 3, stProperty, 0,
		0, 6, 4, stKeyword, 0,
		0, 5, 3, stVariable, smDefinition,
		0, 5, 3, stProperty, 0,
		0, 5, 2, stVariable, 0,
	}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
