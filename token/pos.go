package token

import "fmt"

// Pos is a position in a document. I is the byte offset, Line and Col
// are 1-based, with Col counting runes.
type Pos struct {
	I    int
	Line int
	Col  int
}

func (p *Pos) LineCol() (int, int) {
	return p.Line, p.Col
}

// Copy returns a detached copy of p.
func (p *Pos) Copy() *Pos {
	res := *p
	return &res
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// posTracker advances a position over runes, treating "\r\n" as a
// single line break.
type posTracker struct {
	cur    Pos
	prevCR bool
}

func newPosTracker() *posTracker {
	return &posTracker{cur: Pos{Line: 1, Col: 1}}
}

func (pt *posTracker) pos() *Pos {
	return pt.cur.Copy()
}

func (pt *posTracker) advance(r rune, size int) {
	pt.cur.I += size
	switch {
	case r == '\n' && pt.prevCR:
		pt.prevCR = false
	case isLineBreak(r):
		pt.cur.Line++
		pt.cur.Col = 1
		pt.prevCR = r == '\r'
	default:
		pt.cur.Col++
		pt.prevCR = false
	}
}
