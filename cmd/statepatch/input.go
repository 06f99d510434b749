package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

// getStateFile reads a JSON or YAML document into a plain Go value
// ready for projection. "-" reads from the context's input.
func getStateFile(cfg *MainConfig, cc *cli.Context, path string) (any, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return decodeState(cfg, d)
}

func decodeState(cfg *MainConfig, d []byte) (any, error) {
	var v any
	if cfg.J {
		if err := json.Unmarshal(d, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	if err := yaml.Unmarshal(d, &v); err != nil {
		return nil, err
	}
	return v, nil
}
