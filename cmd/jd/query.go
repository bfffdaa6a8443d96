package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	jdoc "github.com/jdoc-format/go-jdoc"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query needs an expression argument", cli.ErrUsage)
	}
	expression := args[0]
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, arg := range files {
		d, err := cfg.readDoc(arg)
		if err != nil {
			return err
		}
		res, err := d.Query(expression)
		d.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		out, err := jdoc.FromValue(res)
		if err != nil {
			return err
		}
		s, err := out.Render(cfg.encOpts(cc.Out)...)
		out.Close()
		if err != nil {
			return err
		}
		fmt.Fprintln(cc.Out, s)
	}
	return nil
}
