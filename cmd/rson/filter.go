package main

import (
	"fmt"

	"github.com/signadot/rson/encode"
	"github.com/signadot/rson/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

// memberEnv is what a filter expression sees of a member.
type memberEnv struct {
	Key    string
	Type   string
	String string
	Number float64
	Bool   bool
	Len    int
}

func newMemberEnv(key string, v *ir.Node) memberEnv {
	env := memberEnv{Key: key, Type: ir.NullType.String()}
	if v == nil {
		return env
	}
	env.Type = v.Type.String()
	switch v.Type {
	case ir.StringType:
		env.String = v.String
	case ir.NumberType:
		env.Number, _ = v.Float()
	case ir.BoolType:
		env.Bool = v.Bool
	case ir.ObjectType, ir.ArrayType:
		env.Len = v.Len()
	}
	return env
}

// exprFilter omits the members for which prog evaluates to drop. The
// first evaluation error stops filtering and is kept in err.
type exprFilter struct {
	prog *vm.Program
	drop bool
	err  error
}

func newExprFilter(src string, drop bool) (*exprFilter, error) {
	prog, err := expr.Compile(src, expr.Env(memberEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", src, err)
	}
	return &exprFilter{prog: prog, drop: drop}, nil
}

func (f *exprFilter) transform(key string, v *ir.Node) *ir.Node {
	if f.err != nil {
		return v
	}
	res, err := expr.Run(f.prog, newMemberEnv(key, v))
	if err != nil {
		f.err = fmt.Errorf("error evaluating filter at %q: %w", key, err)
		return v
	}
	if res.(bool) == f.drop {
		return encode.Omit
	}
	return v
}

func filter(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		return err
	}
	var f *exprFilter
	switch {
	case cfg.Drop != "" && cfg.Keep != "":
		return fmt.Errorf("%w: only one of -drop, -keep may be specified", cli.ErrUsage)
	case cfg.Drop != "":
		f, err = newExprFilter(cfg.Drop, true)
	case cfg.Keep != "":
		f, err = newExprFilter(cfg.Keep, false)
	default:
		return fmt.Errorf("%w: one of -drop, -keep is required", cli.ErrUsage)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	opts := append(cfg.encOpts(cc.Out), encode.WithTransform(f.transform))
	return eachDoc(cfg.MainConfig, cc, args, func(_ string, doc *ir.Node) error {
		if err := writeDoc(cc.Out, doc, opts...); err != nil {
			return err
		}
		return f.err
	})
}
