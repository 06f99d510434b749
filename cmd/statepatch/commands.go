package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "statepatch").
		WithSynopsis("statepatch [opts] command [opts]").
		WithDescription("statepatch computes patch operation lists between state snapshots.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return spMain(cfg, cc, args)
		}).
		WithSubs(
			DiffCommand(cfg),
			WatchCommand(cfg))
}

func spMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.J && cfg.Y {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [opts] a b").
		WithDescription("diff two state documents and print the patch operations").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func WatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WatchConfig{MainConfig: mainCfg, Every: time.Second, Lim: -1}
	everyOpt := &cli.Opt{
		Name: "every",
		Type: cli.FuncOpt(cfg.mkEvery()),
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, everyOpt)

	cmd := cli.NewCommand("watch").
		WithAliases("w").
		WithOpts(opts...).
		WithSynopsis("watch [-every <dur>] [-lim <n>] <cmd>").
		WithDescription("poll a command and emit patches between successive outputs").
		WithRun(func(cc *cli.Context, args []string) error {
			return watch(cfg, cc, args)
		})
	cfg.Watch = cmd
	return cmd
}
