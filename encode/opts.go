package encode

import (
	"strings"

	"github.com/signadot/rson/format"
	"github.com/signadot/rson/ir"
)

type EncodeOption func(*EncState)

// Transform is called on every emitted value with its key: the object
// key, the decimal index of an array element, or "" for the root. It
// returns the value to emit instead, or Omit to leave the member out.
type Transform func(key string, v *ir.Node) *ir.Node

// Omit is returned by a Transform to drop a member.
var Omit = &ir.Node{Type: ir.NullType}

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	return newEncState(opts).format
}

// Indent lays out composites over several lines, indenting each level
// by n spaces. Indent(0) keeps everything on one line.
func Indent(n int) EncodeOption {
	return IndentString(strings.Repeat(" ", max(n, 0)))
}

// IndentString is like Indent with an arbitrary indentation unit such
// as "\t".
func IndentString(s string) EncodeOption {
	return func(es *EncState) {
		es.indent = s
		es.indentSet = true
	}
}

func WithTransform(t Transform) EncodeOption {
	return func(es *EncState) { es.transform = t }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
