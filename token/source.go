package token

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

// Source is a sequential, peekable reader of runes that the Tokenizer
// consumes.
type Source interface {
	// Peek returns the current rune without consuming it. ok is
	// false at end of input.
	Peek() (r rune, ok bool)
	// Read consumes up to n runes and returns them. Invalid UTF-8
	// bytes are returned verbatim, one per rune.
	Read(n int) string
	EOF() bool
	// Offset is the byte offset of the current rune.
	Offset() int
}

// NewBytesSource returns a Source over d.
func NewBytesSource(d []byte) Source {
	return &bytesSource{d: d}
}

type bytesSource struct {
	d   []byte
	off int
}

func (s *bytesSource) Peek() (rune, bool) {
	if s.off >= len(s.d) {
		return 0, false
	}
	r, _ := utf8.DecodeRune(s.d[s.off:])
	return r, true
}

func (s *bytesSource) Read(n int) string {
	start := s.off
	for i := 0; i < n && s.off < len(s.d); i++ {
		_, size := utf8.DecodeRune(s.d[s.off:])
		s.off += size
	}
	return string(s.d[start:s.off])
}

func (s *bytesSource) EOF() bool {
	return s.off >= len(s.d)
}

func (s *bytesSource) Offset() int {
	return s.off
}

// NewReaderSource returns a Source reading from r. Read errors other
// than io.EOF end the input early and are reported by SourceErr.
func NewReaderSource(r io.Reader) Source {
	return &readerSource{r: bufio.NewReader(r)}
}

type readerSource struct {
	r *bufio.Reader

	peeked  bool
	cur     rune
	curSize int
	curRaw  string
	eof     bool
	err     error
	off     int
}

func (s *readerSource) fill() {
	if s.peeked || s.eof {
		return
	}
	r, size, err := s.r.ReadRune()
	if err != nil {
		s.eof = true
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		return
	}
	raw := string(r)
	if r == utf8.RuneError && size == 1 {
		// keep the invalid byte as is.
		if err := s.r.UnreadRune(); err == nil {
			b, _ := s.r.ReadByte()
			raw = string([]byte{b})
		}
	}
	s.cur, s.curSize, s.curRaw = r, size, raw
	s.peeked = true
}

func (s *readerSource) Peek() (rune, bool) {
	s.fill()
	if !s.peeked {
		return 0, false
	}
	return s.cur, true
}

func (s *readerSource) Read(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		s.fill()
		if !s.peeked {
			break
		}
		b.WriteString(s.curRaw)
		s.off += s.curSize
		s.peeked = false
	}
	return b.String()
}

func (s *readerSource) EOF() bool {
	s.fill()
	return !s.peeked
}

func (s *readerSource) Offset() int {
	return s.off
}

// SourceErr returns the read error that ended src early, if any.
func SourceErr(src Source) error {
	if rs, ok := src.(*readerSource); ok {
		return rs.err
	}
	return nil
}
