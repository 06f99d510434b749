package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/statepatch/statepatch/patch"
	"github.com/statepatch/statepatch/project"
)

func TestEncodeJSONDocument(t *testing.T) {
	ops := patch.Diff(
		project.Project(map[string]any{"a": 1}),
		project.Project(map[string]any{"a": 2, "b": "x"}),
	)
	buf := bytes.NewBuffer(nil)
	if err := Encode(ops, buf); err != nil {
		t.Fatal(err)
	}
	want := `[{"op":"replace","path":"/a","value":2},{"op":"add","path":"/b","value":"x"}]` + "\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestEncodeHuman(t *testing.T) {
	ops := patch.Diff(
		project.Project(map[string]any{"a": 1, "b": 2}),
		project.Project(map[string]any{"a": 1}),
	)
	buf := bytes.NewBuffer(nil)
	if err := Encode(ops, buf, Human(true)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "remove /b\n" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeEmpty(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(nil, buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestTextDiff(t *testing.T) {
	from := project.Project(map[string]any{"a": "hello"})
	to := project.Project(map[string]any{"a": "help"})
	out, err := TextDiff(from, to, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "hel") {
		t.Errorf("unexpected text diff output %q", out)
	}
}
