package main

import (
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	jdoc "github.com/jdoc-format/go-jdoc"
	"github.com/jdoc-format/go-jdoc/encode"
	"github.com/jdoc-format/go-jdoc/parse"
)

type MainConfig struct {
	Pretty bool `cli:"name=p aliases=pretty desc='pretty-print output'"`
	Color  bool `cli:"name=color desc='encode with color'"`

	J bool `cli:"name=j aliases=json desc='read input as json (default)'"`
	Y bool `cli:"name=y aliases=yaml desc='read input as yaml'"`

	Jsonc bool `cli:"name=jsonc desc='allow comments and trailing commas'"`
	Nan   bool `cli:"name=nan desc='allow NaN and Infinity literals'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) parseOpts() []parse.Option {
	var res []parse.Option
	if cfg.Jsonc {
		res = append(res, parse.AllowComments(), parse.AllowTrailingCommas())
	}
	if cfg.Nan {
		res = append(res, parse.AllowInfAndNaN())
	}
	return res
}

// readDoc builds a document from the named file, or stdin for "" or "-".
func (cfg *MainConfig) readDoc(path string) (*jdoc.Document, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	opts := []jdoc.Option{jdoc.WithParseOptions(cfg.parseOpts()...)}
	if cfg.Y {
		return jdoc.ParseYAML(data, opts...)
	}
	return jdoc.Parse(data, opts...)
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.Option {
	// -nan admits non-finite floats on the way in, so the encoder must
	// accept them on the way out too.
	res := []encode.Option{
		encode.Pretty(cfg.Pretty),
		encode.InfNaNAsNull(cfg.Nan),
	}
	if cfg.Color {
		return append(res, encode.WithColors(encode.NewColors()))
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.WithColors(encode.NewColors()))
	}
	return res
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Merge bool `cli:"name=m aliases=merge desc='emit an rfc 7386 merge patch instead of a text diff'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge  bool `cli:"name=m aliases=merge desc='apply patch as an rfc 7386 merge patch'"`
	String bool `cli:"name=s desc='patch arg as string'"`
	File   bool `cli:"name=f desc='patch arg as file'"`

	Patch *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Query *cli.Command
}

type DumpConfig struct {
	*MainConfig

	Dump *cli.Command
}

type LoadConfig struct {
	*MainConfig

	Load *cli.Command
}
