package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/statepatch/statepatch/encode"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='colorize output'"`
	Human bool `cli:"name=u aliases=human desc='one op per line instead of a JSON Patch document'"`

	J bool `cli:"name=j aliases=json desc='decode inputs as json'"`
	Y bool `cli:"name=y aliases=yaml desc='decode inputs as yaml (default)'"`

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

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.Human(cfg.Human),
	}
	if cfg.Color {
		return append(res, encode.WithColors(encode.NewColors()))
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

func (cfg *MainConfig) colors() *encode.Colors {
	if cfg.Color || isatty.IsTerminal(os.Stdout.Fd()) {
		return encode.NewColors()
	}
	return nil
}

type DiffConfig struct {
	*MainConfig
	Text  bool   `cli:"name=text desc='render a character-level text diff instead of ops'"`
	Match string `cli:"name=match desc='expression filtering ops, e.g. op == \"replace\"'"`

	Diff *cli.Command
}

type WatchConfig struct {
	*MainConfig
	Every time.Duration
	Lim   int    `cli:"name=lim desc='max number of times to poll'"`
	Match string `cli:"name=match desc='expression filtering ops'"`

	Watch *cli.Command
}

func (cfg *WatchConfig) mkEvery() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.Every = d
		return d, nil
	}
}
