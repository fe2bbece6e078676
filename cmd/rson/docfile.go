package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/rson/encode"
	"github.com/signadot/rson/format"
	"github.com/signadot/rson/ir"
	"github.com/signadot/rson/parse"
	"github.com/signadot/rson/token"

	"github.com/scott-cotton/cli"
)

// getDocFile decodes the document in path, "-" meaning the command's
// standard input.
func getDocFile(cfg *MainConfig, cc *cli.Context, path string) (*ir.Node, error) {
	opts := cfg.parseOpts(path)
	if path == "-" {
		if cfg.inFormat(path) == format.YAMLFormat {
			return parse.ParseReader(cc.In, opts...)
		}
		return parse.ParseSource(token.NewReaderSource(cc.In), opts...)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return parse.Parse(d, opts...)
}

// eachDoc calls fn with each file named in args, or with standard
// input when there are none.
func eachDoc(cfg *MainConfig, cc *cli.Context, args []string, fn func(file string, doc *ir.Node) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		doc, err := getDocFile(cfg, cc, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if err := fn(file, doc); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return nil
}

func writeDoc(w io.Writer, doc *ir.Node, opts ...encode.EncodeOption) error {
	if err := encode.Encode(doc, w, opts...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("error writing result: %w", err)
	}
	return nil
}
