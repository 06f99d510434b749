package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/statepatch/statepatch/encode"
	"github.com/statepatch/statepatch/patch"
	"github.com/statepatch/statepatch/project"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getStateFile(cfg.MainConfig, cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getStateFile(cfg.MainConfig, cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	prev, cur := project.Project(a), project.Project(b)

	if cfg.Text {
		out, err := encode.TextDiff(prev, cur, cfg.colors())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cc.Out, out)
		return err
	}

	filter, err := compileFilter(cfg.Match)
	if err != nil {
		return err
	}
	ops := patch.Diff(prev, cur)
	ops, err = filter.apply(ops)
	if err != nil {
		return err
	}
	if err := encode.Encode(ops, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return err
	}
	if len(ops) != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
