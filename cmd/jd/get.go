package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scott-cotton/cli"

	jdoc "github.com/jdoc-format/go-jdoc"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get needs a path argument", cli.ErrUsage)
	}
	steps, err := parsePath(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", cli.ErrUsage, err)
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
		v, err := walk(d.Value(), steps)
		if err != nil {
			d.Close()
			return fmt.Errorf("%s: %w", arg, err)
		}
		s, err := v.Render(cfg.encOpts(cc.Out)...)
		d.Close()
		if err != nil {
			return err
		}
		fmt.Fprintln(cc.Out, s)
	}
	return nil
}

type step struct {
	key   string
	index int
	isIdx bool
}

// parsePath splits a path like a.b[0].c into key and index steps. A bare
// "." names the root.
func parsePath(s string) ([]step, error) {
	if s == "." || s == "" {
		return nil, nil
	}
	var steps []step
	for _, part := range strings.Split(strings.TrimPrefix(s, "."), ".") {
		for {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				if part != "" {
					steps = append(steps, step{key: part})
				}
				break
			}
			if open > 0 {
				steps = append(steps, step{key: part[:open]})
			}
			end := strings.IndexByte(part, ']')
			if end < open {
				return nil, fmt.Errorf("unbalanced brackets in path element %q", part)
			}
			i, err := strconv.Atoi(part[open+1 : end])
			if err != nil {
				return nil, fmt.Errorf("bad index in path element %q: %w", part, err)
			}
			steps = append(steps, step{index: i, isIdx: true})
			part = part[end+1:]
		}
	}
	return steps, nil
}

func walk(v jdoc.Value, steps []step) (jdoc.Value, error) {
	for _, st := range steps {
		if st.isIdx {
			if !v.IsArray() {
				return v, fmt.Errorf("cannot index %s value with [%d]", v.Type(), st.index)
			}
			if st.index < 0 || st.index >= v.Len() {
				return v, fmt.Errorf("index %d out of range (len %d)", st.index, v.Len())
			}
			v = v.At(st.index)
			continue
		}
		next, ok := v.Get(st.key)
		if !ok {
			return v, fmt.Errorf("no member %q", st.key)
		}
		v = next
	}
	return v, nil
}
