package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		d, err := cfg.readDoc(arg)
		if err != nil {
			return err
		}
		err = d.RenderTo(cc.Out, cfg.encOpts(cc.Out)...)
		d.Close()
		if err != nil {
			return err
		}
		fmt.Fprintln(cc.Out)
	}
	return nil
}
