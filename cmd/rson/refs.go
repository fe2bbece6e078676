package main

import (
	"fmt"
	"io"

	"github.com/signadot/rson/encode"
	"github.com/signadot/rson/ir"

	"github.com/scott-cotton/cli"
)

func refs(cfg *RefsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Refs.Parse(cc, args)
	if err != nil {
		return err
	}
	multi := len(args) > 1
	return eachDoc(cfg.MainConfig, cc, args, func(file string, doc *ir.Node) error {
		if multi {
			fmt.Fprintf(cc.Out, "%s:\n", file)
		}
		entries := encode.Analyze(doc).Entries()
		if cfg.OutFormat != nil {
			table, err := refTable(entries)
			if err != nil {
				return err
			}
			return writeDoc(cc.Out, table, cfg.encOpts(cc.Out)...)
		}
		return writeRefLines(cc.Out, entries)
	})
}

// writeRefLines writes one tab separated line per entry: the name, the
// type, the number of places the value appears and its first path.
func writeRefLines(w io.Writer, entries []*encode.RefEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t%q\n", e.Name, e.Node.Type, e.Count+1, e.Path); err != nil {
			return err
		}
	}
	return nil
}

// refTable is the document form of entries, for -O.
func refTable(entries []*encode.RefEntry) (*ir.Node, error) {
	rows := make([]any, len(entries))
	for i, e := range entries {
		rows[i] = map[string]any{
			"name":  e.Name,
			"type":  e.Node.Type.String(),
			"count": e.Count + 1,
			"path":  e.Path,
		}
	}
	return ir.FromAny(rows)
}
