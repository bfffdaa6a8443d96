package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	jdoc "github.com/jdoc-format/go-jdoc"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
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
		data, err := d.MarshalCBOR()
		d.Close()
		if err != nil {
			return err
		}
		if _, err := cc.Out.Write(data); err != nil {
			return err
		}
	}
	return nil
}

func load(cfg *LoadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Load.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		var data []byte
		if arg == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(arg)
		}
		if err != nil {
			return err
		}
		d, err := jdoc.FromCBOR(data)
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
