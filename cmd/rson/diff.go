package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/rson/encode"
	"github.com/signadot/rson/format"
	"github.com/signadot/rson/ir"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getDocFile(cfg.MainConfig, cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getDocFile(cfg.MainConfig, cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	if cfg.Reverse {
		a, b = b, a
	}
	differs, err := diffDocs(cc.Out, a, b, cfg.useColor(cc.Out))
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffDocs writes a line diff of the indented rson encodings of a and
// b, reporting whether they differ. Reference names follow discovery
// order, so documents describing the same graph encode identically.
func diffDocs(w io.Writer, a, b *ir.Node, colored bool) (bool, error) {
	opts := []encode.EncodeOption{encode.EncodeFormat(format.RSONFormat), encode.Indent(2)}
	ta, err := encode.EncodeString(a, opts...)
	if err != nil {
		return false, err
	}
	tb, err := encode.EncodeString(b, opts...)
	if err != nil {
		return false, err
	}
	if ta == tb {
		return false, nil
	}
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(ta+"\n", tb+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	del, ins := fmt.Sprint, fmt.Sprint
	if colored {
		del, ins = color.New(color.FgRed).Sprint, color.New(color.FgGreen).Sprint
	}
	for _, d := range diffs {
		prefix, paint := " ", fmt.Sprint
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, paint = "-", del
		case diffpatch.DiffInsert:
			prefix, paint = "+", ins
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			if _, err := io.WriteString(w, paint(prefix+ln)); err != nil {
				return true, err
			}
		}
	}
	return true, nil
}
