package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/statepatch/statepatch/patch"
)

// opFilter keeps ops matching a compiled predicate over {op, path, value}.
type opFilter struct {
	prg *vm.Program
}

func compileFilter(src string) (*opFilter, error) {
	if src == "" {
		return nil, nil
	}
	prg, err := expr.Compile(src, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid -match expression %q: %w", src, err)
	}
	return &opFilter{prg: prg}, nil
}

func (f *opFilter) apply(ops []patch.Op) ([]patch.Op, error) {
	if f == nil {
		return ops, nil
	}
	res := make([]patch.Op, 0, len(ops))
	for i := range ops {
		op := &ops[i]
		env := map[string]any{
			"op":   op.Kind.String(),
			"path": op.Path.String(),
		}
		if op.Value != nil {
			env["value"] = op.Value.ToAny()
		} else {
			env["value"] = nil
		}
		out, err := expr.Run(f.prg, env)
		if err != nil {
			return nil, err
		}
		keep, ok := out.(bool)
		if !ok {
			return nil, fmt.Errorf("-match expression returned %T, want bool", out)
		}
		if keep {
			res = append(res, *op)
		}
	}
	return res, nil
}
