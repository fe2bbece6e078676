package token

// Cursor is a forward only view over a token sequence ending in TEOF.
type Cursor struct {
	toks []Token
	i    int
}

func NewCursor(toks []Token) *Cursor {
	if len(toks) == 0 || toks[len(toks)-1].Type != TEOF {
		toks = append(toks, Token{Type: TEOF, Bytes: []byte("EOF"), Pos: &Pos{Line: 1, Col: 1}})
	}
	return &Cursor{toks: toks}
}

// Current returns the current token without consuming it. Once the
// sequence is exhausted it keeps returning the TEOF token.
func (c *Cursor) Current() *Token {
	if c.i >= len(c.toks) {
		return &c.toks[len(c.toks)-1]
	}
	return &c.toks[c.i]
}

// Next returns the current token and advances past it.
func (c *Cursor) Next() *Token {
	t := c.Current()
	if c.i < len(c.toks) {
		c.i++
	}
	return t
}

// HasNext reports whether tokens other than the final TEOF remain.
func (c *Cursor) HasNext() bool {
	return c.i < len(c.toks)-1
}
