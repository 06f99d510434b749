package debug

import (
	"encoding/json"
	"fmt"
	"os"
)

// Logf writes to stderr, pretty-printing json-able arguments.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case bool, string, float64, int:

		default:
			if m, ok := a.(json.Marshaler); ok {
				d, err := m.MarshalJSON()
				if err == nil {
					args[i] = string(d)
				}
			}
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
