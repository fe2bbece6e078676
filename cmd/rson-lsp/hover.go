package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/signadot/rson/ir"
	"github.com/signadot/rson/token"
	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	tok := doc.tokenAt(int(params.Position.Line), int(params.Position.Character))
	if tok == nil {
		return nil, nil
	}
	hoverText := doc.hoverText(tok)
	if hoverText == "" {
		return nil, nil
	}
	r := tokenRange(tok)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText,
		},
		Range: &r,
	}, nil
}

func (doc *document) hoverText(tok *token.Token) string {
	switch tok.Type {
	case token.TRefDef, token.TRefUse:
		name := tok.String()
		node := doc.bound[name]
		if node == nil {
			return ""
		}
		uses := 0
		for _, u := range doc.refs.Uses {
			if u.String() == name {
				uses++
			}
		}
		parts := []string{fmt.Sprintf("**Reference:** `(%s)`, %d uses", name, uses)}
		if def := doc.refs.Defs[name]; def != nil {
			parts = append(parts, fmt.Sprintf("**Defined at:** %s", def.Pos))
		}
		return strings.Join(append(parts, buildHoverText(node)), "\n\n")
	}
	if !tok.Type.IsValueStart() {
		return ""
	}
	return buildHoverText(doc.byOffset[tok.Pos.I])
}

func buildHoverText(node *ir.Node) string {
	if node == nil {
		return ""
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("**Type:** %s", getTypeInfo(node)))
	if valueInfo := getValueInfo(node); valueInfo != "" {
		parts = append(parts, fmt.Sprintf("**Value:** %s", valueInfo))
	}
	return strings.Join(parts, "\n\n")
}

func getTypeInfo(node *ir.Node) string {
	switch node.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		return "boolean"
	case ir.NumberType:
		if node.Int64 != nil {
			return "integer"
		}
		return "float"
	case ir.StringType:
		return "string"
	case ir.ArrayType:
		return "array"
	case ir.ObjectType:
		return "object"
	default:
		return "unknown"
	}
}

func getValueInfo(node *ir.Node) string {
	switch node.Type {
	case ir.NullType:
		return "`null`"
	case ir.BoolType:
		if node.Bool {
			return "`true`"
		}
		return "`false`"
	case ir.NumberType:
		if node.Int64 != nil {
			return fmt.Sprintf("`%d`", *node.Int64)
		}
		if node.Float64 != nil {
			return fmt.Sprintf("`%g`", *node.Float64)
		}
		return fmt.Sprintf("`%s`", node.Number)
	case ir.StringType:
		val := node.String
		if len(val) > 50 {
			val = val[:50] + "..."
		}
		return fmt.Sprintf("`%s`", val)
	case ir.ArrayType:
		return fmt.Sprintf("array with %d elements", len(node.Values))
	case ir.ObjectType:
		return fmt.Sprintf("object with %d keys", len(node.Fields))
	}
	return ""
}
