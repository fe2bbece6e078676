package token

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrUnexpected  = errors.New("unexpected character")
	ErrBadEscape   = errors.New("bad escape")
	ErrBadUnicode  = errors.New("bad unicode escape")
	ErrNumber      = errors.New("bad number")
	ErrLiteral     = errors.New("bad literal")
	ErrIdentifier  = errors.New("bad identifier")
	ErrSourceRead  = errors.New("source read error")
	ErrUnsupported = errors.New("unsupported")
)

type TokenizeErr struct {
	Err error
	Pos Pos
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func NewTokenizeErr(e error, p *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: *p}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

// UnexpectedErr reports an unexpected rune at p. ok is false at end of
// input.
func UnexpectedErr(r rune, ok bool, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("%w %s", ErrUnexpected, describe(r, ok)), p)
}

// badErr reports an unexpected rune at p inside a token of the given
// kind, one of ErrNumber, ErrLiteral or ErrIdentifier. The result
// matches both kind and ErrUnexpected.
func badErr(kind error, r rune, ok bool, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("%w: %w %s", kind, ErrUnexpected, describe(r, ok)), p)
}

func describe(r rune, ok bool) string {
	if !ok {
		return "end of input"
	}
	return strconv.QuoteRune(r)
}
