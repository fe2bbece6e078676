package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	failed := 0
	for _, file := range args {
		if _, err := getDocFile(cfg.MainConfig, cc, file); err != nil {
			failed++
			fmt.Fprintf(cc.Out, "%s: %v\n", file, err)
			continue
		}
		if !cfg.Quiet {
			fmt.Fprintf(cc.Out, "%s: ok\n", file)
		}
	}
	if failed != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
