package main

import (
	"fmt"

	"github.com/signadot/rson/ir"

	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.OutFormat == nil {
		return fmt.Errorf("%w: convert requires an output format (-O)", cli.ErrUsage)
	}
	opts := cfg.encOpts(cc.Out)
	return eachDoc(cfg.MainConfig, cc, args, func(_ string, doc *ir.Node) error {
		return writeDoc(cc.Out, doc, opts...)
	})
}
