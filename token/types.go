package token

import (
	"fmt"
	"strconv"
)

type TokenType int

const (
	TEOF TokenType = iota
	TLCurl
	TRCurl
	TLSquare
	TRSquare
	TColon
	TComma
	TString
	TNumber
	TTrue
	TFalse
	TNull
	TRefDef
	TRefUse
)

func (t TokenType) String() string {
	s, ok := map[TokenType]string{
		TEOF:     "TEOF",
		TLCurl:   "TLCurl",
		TRCurl:   "TRCurl",
		TLSquare: "TLSquare",
		TRSquare: "TRSquare",
		TColon:   "TColon",
		TComma:   "TComma",
		TString:  "TString",
		TNumber:  "TNumber",
		TTrue:    "TTrue",
		TFalse:   "TFalse",
		TNull:    "TNull",
		TRefDef:  "TRefDef",
		TRefUse:  "TRefUse",
	}[t]
	if ok {
		return s
	}
	return "T<" + strconv.Itoa(int(t)) + ">"
}

// IsValueStart reports whether a token of type t begins a value.
func (t TokenType) IsValueStart() bool {
	switch t {
	case TLCurl, TLSquare, TString, TNumber, TTrue, TFalse, TNull:
		return true
	}
	return false
}

// Token is a lexical unit. For TString, Bytes holds the decoded
// contents; for TRefDef and TRefUse it holds the identifier.
type Token struct {
	Type  TokenType
	Bytes []byte
	Pos   *Pos
	End   *Pos
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

func (t *Token) String() string {
	return string(t.Bytes)
}

// Literal returns the token as it would be written in a document,
// for use in error messages.
func (t *Token) Literal() string {
	switch t.Type {
	case TString:
		return Quote(string(t.Bytes))
	case TRefDef:
		return "(" + string(t.Bytes) + ")"
	case TRefUse:
		return "$" + string(t.Bytes)
	default:
		return string(t.Bytes)
	}
}
