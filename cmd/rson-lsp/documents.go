package main

import (
	"path"
	"sync"

	"github.com/signadot/rson/format"
	"github.com/signadot/rson/ir"
	"github.com/signadot/rson/parse"
	"github.com/signadot/rson/token"
)

// document is the analysis of one open text. node is nil when the text
// does not decode, in which case err holds the reason; toks is nil when
// it does not tokenize or is not in a tokenized format.
type document struct {
	uri     string
	version int32
	text    string
	format  format.Format

	node      *ir.Node
	err       error
	toks      []token.Token
	refs      parse.RefInfo
	positions map[*ir.Node]*token.Pos
	// nodes by the byte offset of their first token
	byOffset map[int]*ir.Node
	// bound values by reference name
	bound map[string]*ir.Node
	// defined names in document order, kept from the last text that
	// tokenized so completion works while a use is being typed
	defNames []string
}

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[string]*document)}
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(doc *document) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[doc.uri] = doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func documentFormat(uri string) format.Format {
	if f, ok := format.FromSuffix(path.Ext(uri)); ok {
		return f
	}
	return format.RSONFormat
}

// analyzeDocument decodes text, keeping what hover, navigation and
// highlighting need.
func analyzeDocument(uri string, version int32, text string) *document {
	doc := &document{
		uri:       uri,
		version:   version,
		text:      text,
		format:    documentFormat(uri),
		positions: map[*ir.Node]*token.Pos{},
		byOffset:  map[int]*ir.Node{},
		bound:     map[string]*ir.Node{},
	}
	opts := []parse.ParseOption{
		parse.ParseFormat(doc.format),
		parse.ParsePositions(doc.positions),
		parse.ParseRefInfo(&doc.refs),
	}
	if doc.format == format.YAMLFormat {
		doc.node, doc.err = parse.Parse([]byte(text), opts...)
		return doc
	}
	tokOpts := []token.TokenOpt{token.TokenRSON()}
	if doc.format == format.JSONFormat {
		tokOpts = []token.TokenOpt{token.TokenJSON()}
	}
	toks, err := token.Tokenize(nil, []byte(text), tokOpts...)
	if err != nil {
		doc.err = err
		return doc
	}
	doc.toks = toks
	for i := range toks {
		if toks[i].Type == token.TRefDef {
			doc.defNames = append(doc.defNames, toks[i].String())
		}
	}
	doc.node, doc.err = parse.ParseTokens(toks, opts...)
	if doc.err != nil {
		return doc
	}
	for node, pos := range doc.positions {
		doc.byOffset[pos.I] = node
	}
	doc.bindNames()
	return doc
}

// bindNames pairs each reference definition with the value it follows:
// the scalar just before it, or the composite whose closer is.
func (doc *document) bindNames() {
	openers := []int{}
	prev := -1
	for i := range doc.toks {
		tok := &doc.toks[i]
		switch tok.Type {
		case token.TLCurl, token.TLSquare:
			openers = append(openers, tok.Pos.I)
			continue
		case token.TRCurl, token.TRSquare:
			if len(openers) == 0 {
				prev = -1
				continue
			}
			prev = openers[len(openers)-1]
			openers = openers[:len(openers)-1]
			continue
		case token.TRefDef:
			if prev >= 0 {
				if node := doc.byOffset[prev]; node != nil {
					doc.bound[tok.String()] = node
				}
			}
		case token.TString, token.TNumber, token.TTrue, token.TFalse, token.TNull:
			prev = tok.Pos.I
			continue
		}
		prev = -1
	}
}

// tokenAt returns the token under the 0-based line and character, or
// the one ending there.
func (doc *document) tokenAt(line, char int) *token.Token {
	var touching *token.Token
	for i := range doc.toks {
		tok := &doc.toks[i]
		if tok.Type == token.TEOF || tok.Pos.Line-1 != line {
			continue
		}
		start, end := tok.Pos.Col-1, tok.End.Col-1
		if tok.End.Line != tok.Pos.Line {
			end = start + len([]rune(tok.Literal()))
		}
		if start <= char && char < end {
			return tok
		}
		if char == end && touching == nil {
			touching = tok
		}
	}
	return touching
}
