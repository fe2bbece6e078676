package main

import (
	"github.com/signadot/rson/ir"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	return eachDoc(cfg.MainConfig, cc, args, func(_ string, doc *ir.Node) error {
		return writeDoc(cc.Out, doc, opts...)
	})
}
