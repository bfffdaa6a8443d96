package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff needs exactly two files", cli.ErrUsage)
	}
	a, err := cfg.readDoc(args[0])
	if err != nil {
		return err
	}
	defer a.Close()
	b, err := cfg.readDoc(args[1])
	if err != nil {
		return err
	}
	defer b.Close()

	if cfg.Merge {
		patch, err := a.CreateMergePatch(b)
		if err != nil {
			return err
		}
		fmt.Fprintln(cc.Out, string(patch))
		return nil
	}
	text, err := a.DiffText(b)
	if err != nil {
		return err
	}
	fmt.Fprint(cc.Out, text)
	return nil
}
