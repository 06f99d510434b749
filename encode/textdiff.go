package encode

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/statepatch/statepatch/view"
)

// TextDiff renders a character-level colored diff of the JSON encodings
// of two views. Purely presentational: the op list from patch.Diff is
// the authoritative change record.
func TextDiff(from, to *view.Node, colors *Colors) (string, error) {
	fd, err := from.MarshalJSON()
	if err != nil {
		return "", err
	}
	td, err := to.MarshalJSON()
	if err != nil {
		return "", err
	}
	a, b := string(fd), string(td)
	diffCfg := diffpatch.New()
	doMultiLine := strings.Contains(a, "\n") && strings.Contains(b, "\n")
	diffs := diffCfg.DiffMain(a, b, doMultiLine)
	var sb strings.Builder
	for i := range diffs {
		d := &diffs[i]
		switch d.Type {
		case diffpatch.DiffInsert:
			if colors != nil {
				sb.WriteString(colors.insert(d.Text))
			} else {
				sb.WriteString("{+" + d.Text + "+}")
			}
		case diffpatch.DiffDelete:
			if colors != nil {
				sb.WriteString(colors.delete(d.Text))
			} else {
				sb.WriteString("[-" + d.Text + "-]")
			}
		case diffpatch.DiffEqual:
			sb.WriteString(d.Text)
		}
	}
	return sb.String(), nil
}
