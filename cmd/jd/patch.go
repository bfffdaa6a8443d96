package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	jdoc "github.com/jdoc-format/go-jdoc"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch needs a patch argument", cli.ErrUsage)
	}
	if cfg.String && cfg.File {
		return fmt.Errorf("%w: -s and -f exclude each other", cli.ErrUsage)
	}
	patchData := []byte(args[0])
	if cfg.File || (!cfg.String && looksLikeFile(args[0])) {
		patchData, err = os.ReadFile(args[0])
		if err != nil {
			return err
		}
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, arg := range files {
		d, err := cfg.readDoc(arg)
		if err != nil {
			return err
		}
		if err := applyTo(cfg, d, patchData); err != nil {
			d.Close()
			return fmt.Errorf("%s: %w", arg, err)
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

func applyTo(cfg *PatchConfig, d *jdoc.Document, patchData []byte) error {
	if cfg.Merge {
		return d.ApplyMergePatch(patchData)
	}
	return d.ApplyPatch(patchData)
}

// looksLikeFile guesses whether an argument names a file rather than
// holding inline patch text.
func looksLikeFile(arg string) bool {
	if len(arg) == 0 || arg[0] == '{' || arg[0] == '[' {
		return false
	}
	_, err := os.Stat(arg)
	return err == nil
}
