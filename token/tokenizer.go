package token

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/signadot/rson/debug"
)

type tokenOpts struct {
	json bool
}

type TokenOpt func(*tokenOpts)

// TokenJSON restricts tokenizing to strict JSON: comments and
// references are rejected as unexpected characters.
func TokenJSON() TokenOpt {
	return func(o *tokenOpts) { o.json = true }
}

// TokenRSON enables comments and references (the default).
func TokenRSON() TokenOpt {
	return func(o *tokenOpts) { o.json = false }
}

// Tokenizer turns a Source into a sequence of tokens.
type Tokenizer struct {
	src   Source
	pt    *posTracker
	start *Pos
	opt   *tokenOpts
}

func NewTokenizer(src Source, opts ...TokenOpt) *Tokenizer {
	opt := &tokenOpts{}
	for _, o := range opts {
		o(opt)
	}
	return &Tokenizer{
		src: src,
		pt:  newPosTracker(),
		opt: opt,
	}
}

// NewTokenizerFromBytes returns a Tokenizer over d.
func NewTokenizerFromBytes(d []byte, opts ...TokenOpt) *Tokenizer {
	return NewTokenizer(NewBytesSource(d), opts...)
}

// Tokenize tokenizes src, appending the tokens to dst. The result
// always ends with a TEOF token.
func Tokenize(dst []Token, src []byte, opts ...TokenOpt) ([]Token, error) {
	toks, err := NewTokenizerFromBytes(src, opts...).Tokenize()
	if err != nil {
		return nil, err
	}
	return append(dst, toks...), nil
}

// Tokenize consumes the whole source. The first error aborts
// tokenizing; no partial token sequence is returned.
func (t *Tokenizer) Tokenize() ([]Token, error) {
	toks := []Token{}
	for {
		r, ok := t.src.Peek()
		if !ok {
			break
		}
		t.start = t.pt.pos()
		var (
			tok *Token
			err error
		)
		switch {
		case isLineBreak(r), isWhitespace(r):
			t.next()
			continue
		case isDigit(r), r == '-':
			tok, err = t.number()
		case r == '"':
			tok, err = t.quoted()
		case r == 't':
			tok, err = t.word(TTrue, "true")
		case r == 'f':
			tok, err = t.word(TFalse, "false")
		case r == 'n':
			tok, err = t.word(TNull, "null")
		case r == '(' && !t.opt.json:
			tok, err = t.refDef()
		case r == '$' && !t.opt.json:
			tok, err = t.refUse()
		case r == '/' && !t.opt.json:
			err = t.comment()
		default:
			tt, ok := structural(r)
			if !ok {
				return nil, UnexpectedErr(r, true, t.pt.pos())
			}
			t.next()
			tok = t.mkToken(tt, string(r))
		}
		if err != nil {
			return nil, err
		}
		if tok == nil {
			continue
		}
		if debug.Tokenize() {
			debug.Logf("token %s %q at %s\n", tok.Type, tok.Bytes, tok.Pos)
		}
		toks = append(toks, *tok)
	}
	if err := SourceErr(t.src); err != nil {
		return nil, NewTokenizeErr(fmt.Errorf("%w: %w", ErrSourceRead, err), t.pt.pos())
	}
	end := t.pt.pos()
	toks = append(toks, Token{Type: TEOF, Bytes: []byte("EOF"), Pos: end, End: end.Copy()})
	return toks, nil
}

func structural(r rune) (TokenType, bool) {
	switch r {
	case '{':
		return TLCurl, true
	case '}':
		return TRCurl, true
	case '[':
		return TLSquare, true
	case ']':
		return TRSquare, true
	case ':':
		return TColon, true
	case ',':
		return TComma, true
	}
	return 0, false
}

func (t *Tokenizer) mkToken(tt TokenType, v string) *Token {
	return &Token{
		Type:  tt,
		Bytes: []byte(v),
		Pos:   t.start,
		End:   t.pt.pos(),
	}
}

// next consumes one rune, returning its raw text.
func (t *Tokenizer) next() string {
	s := t.src.Read(1)
	if s == "" {
		return s
	}
	r, _ := utf8.DecodeRuneInString(s)
	t.pt.advance(r, len(s))
	return s
}

// expectDigit consumes a digit into b or fails at the current rune.
func (t *Tokenizer) expectDigit(b *strings.Builder) error {
	r, ok := t.src.Peek()
	if !ok || !isDigit(r) {
		return badErr(ErrNumber, r, ok, t.pt.pos())
	}
	b.WriteString(t.next())
	return nil
}

func (t *Tokenizer) digits(b *strings.Builder) {
	for {
		r, ok := t.src.Peek()
		if !ok || !isDigit(r) {
			return
		}
		b.WriteString(t.next())
	}
}

// number reads JSON number syntax, except that leading zeros are
// accepted.
func (t *Tokenizer) number() (*Token, error) {
	b := &strings.Builder{}
	if r, _ := t.src.Peek(); r == '-' {
		b.WriteString(t.next())
	}
	if err := t.expectDigit(b); err != nil {
		return nil, err
	}
	t.digits(b)
	if r, ok := t.src.Peek(); ok && r == '.' {
		b.WriteString(t.next())
		if err := t.expectDigit(b); err != nil {
			return nil, err
		}
		t.digits(b)
	}
	if r, ok := t.src.Peek(); ok && (r == 'e' || r == 'E') {
		b.WriteString(t.next())
		if r, ok := t.src.Peek(); ok && (r == '+' || r == '-') {
			b.WriteString(t.next())
		}
		if err := t.expectDigit(b); err != nil {
			return nil, err
		}
		t.digits(b)
	}
	return t.mkToken(TNumber, b.String()), nil
}

func (t *Tokenizer) word(tt TokenType, w string) (*Token, error) {
	for _, want := range w {
		r, ok := t.src.Peek()
		if !ok || r != want {
			return nil, badErr(ErrLiteral, r, ok, t.pt.pos())
		}
		t.next()
	}
	return t.mkToken(tt, w), nil
}

// quoted reads a double quoted string. A string left open at end of
// input ends there without error.
func (t *Tokenizer) quoted() (*Token, error) {
	t.next()
	var (
		buf []byte
		hi  rune = -1
	)
	flush := func() {
		if hi >= 0 {
			buf = utf8.AppendRune(buf, utf8.RuneError)
			hi = -1
		}
	}
	for {
		r, ok := t.src.Peek()
		if !ok {
			break
		}
		raw := t.next()
		if r == '"' {
			break
		}
		if r != '\\' {
			flush()
			buf = append(buf, raw...)
			continue
		}
		e, ok := t.src.Peek()
		if !ok {
			return nil, NewTokenizeErr(fmt.Errorf("%w: %s", ErrBadEscape, describe(e, ok)), t.pt.pos())
		}
		if e == 'u' {
			t.next()
			u, err := t.hex4()
			if err != nil {
				return nil, err
			}
			switch {
			case utf16.IsSurrogate(u) && u < 0xdc00:
				flush()
				hi = u
			case utf16.IsSurrogate(u):
				if hi >= 0 {
					buf = utf8.AppendRune(buf, utf16.DecodeRune(hi, u))
					hi = -1
				} else {
					buf = utf8.AppendRune(buf, utf8.RuneError)
				}
			default:
				flush()
				buf = utf8.AppendRune(buf, u)
			}
			continue
		}
		flush()
		c, ok := unescape(e)
		if !ok {
			return nil, NewTokenizeErr(fmt.Errorf("%w: %s", ErrBadEscape, describe(e, true)), t.pt.pos())
		}
		t.next()
		buf = append(buf, c)
	}
	flush()
	return &Token{Type: TString, Bytes: buf, Pos: t.start, End: t.pt.pos()}, nil
}

func unescape(e rune) (byte, bool) {
	switch e {
	case '"', '\\', '/':
		return byte(e), true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	}
	return 0, false
}

func (t *Tokenizer) hex4() (rune, error) {
	var u rune
	for range 4 {
		r, ok := t.src.Peek()
		if !ok || !isHexDigit(r) {
			return 0, NewTokenizeErr(fmt.Errorf("%w: %s", ErrBadUnicode, describe(r, ok)), t.pt.pos())
		}
		t.next()
		u = u<<4 | hexVal(r)
	}
	return u, nil
}

func (t *Tokenizer) ident() (string, error) {
	r, ok := t.src.Peek()
	if !ok || !isIdentStart(r) {
		return "", badErr(ErrIdentifier, r, ok, t.pt.pos())
	}
	b := &strings.Builder{}
	for {
		r, ok := t.src.Peek()
		if !ok || !isIdentPart(r) {
			return b.String(), nil
		}
		b.WriteString(t.next())
	}
}

func (t *Tokenizer) refDef() (*Token, error) {
	t.next()
	name, err := t.ident()
	if err != nil {
		return nil, err
	}
	if r, ok := t.src.Peek(); !ok || r != ')' {
		return nil, badErr(ErrIdentifier, r, ok, t.pt.pos())
	}
	t.next()
	return t.mkToken(TRefDef, name), nil
}

func (t *Tokenizer) refUse() (*Token, error) {
	t.next()
	name, err := t.ident()
	if err != nil {
		return nil, err
	}
	return t.mkToken(TRefUse, name), nil
}

// comment skips a line or block comment. A block comment left open at
// end of input ends there without error.
func (t *Tokenizer) comment() error {
	t.next()
	r, ok := t.src.Peek()
	switch {
	case ok && r == '/':
		for {
			r, ok := t.src.Peek()
			if !ok {
				return nil
			}
			t.next()
			if isLineBreak(r) {
				return nil
			}
		}
	case ok && r == '*':
		t.next()
		for {
			r, ok := t.src.Peek()
			if !ok {
				return nil
			}
			t.next()
			if r != '*' {
				continue
			}
			if r, ok := t.src.Peek(); ok && r == '/' {
				t.next()
				return nil
			}
		}
	}
	return UnexpectedErr(r, ok, t.pt.pos())
}
