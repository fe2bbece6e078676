package main

import (
	"fmt"

	"github.com/signadot/rson/encode"
	"github.com/signadot/rson/format"
	"github.com/signadot/rson/ir"
	"github.com/signadot/rson/parse"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch argument", cli.ErrUsage)
	}
	ops, err := getPatch(cfg, cc, args[0])
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	return eachDoc(cfg.MainConfig, cc, args[1:], func(_ string, doc *ir.Node) error {
		res, err := applyPatch(ops, doc)
		if err != nil {
			return err
		}
		return writeDoc(cc.Out, res, opts...)
	})
}

// getPatch reads a JSON patch given as a file, or inline with -s. The
// patch may be written in any input format.
func getPatch(cfg *PatchConfig, cc *cli.Context, arg string) (jsonpatch.Patch, error) {
	var (
		node *ir.Node
		err  error
	)
	if cfg.String {
		node, err = parse.ParseString(arg, parse.ParseFormat(cfg.inFormat("")))
	} else {
		node, err = getDocFile(cfg.MainConfig, cc, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: error decoding patch: %w", cli.ErrUsage, err)
	}
	d, err := encode.EncodeString(node, encode.EncodeFormat(format.JSONFormat))
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch([]byte(d))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return ops, nil
}

// applyPatch applies ops to the JSON rendition of doc. Shared values
// are expanded, so the result holds no references; cyclic documents
// cannot be patched.
func applyPatch(ops jsonpatch.Patch, doc *ir.Node) (*ir.Node, error) {
	d, err := encode.EncodeString(doc, encode.EncodeFormat(format.JSONFormat))
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply([]byte(d))
	if err != nil {
		return nil, fmt.Errorf("error patching: %w", err)
	}
	return parse.Parse(out, parse.ParseJSON())
}
