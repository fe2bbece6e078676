package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/rson/encode"
	"github.com/signadot/rson/format"
	"github.com/signadot/rson/ir"

	"github.com/scott-cotton/cli"
)

func fmtDocs(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: -w requires files", cli.ErrUsage)
	}
	opts := append(cfg.encOpts(cc.Out), encode.EncodeFormat(format.RSONFormat))
	if !cfg.Write {
		return eachDoc(cfg.MainConfig, cc, args, func(_ string, doc *ir.Node) error {
			return writeDoc(cc.Out, doc, opts...)
		})
	}
	opts = append(opts, encode.EncodeColors(nil))
	return eachDoc(cfg.MainConfig, cc, args, func(file string, doc *ir.Node) error {
		if file == "-" {
			return writeDoc(cc.Out, doc, opts...)
		}
		buf := &bytes.Buffer{}
		if err := writeDoc(buf, doc, opts...); err != nil {
			return err
		}
		info, err := os.Stat(file)
		if err != nil {
			return err
		}
		return os.WriteFile(file, buf.Bytes(), info.Mode().Perm())
	})
}
