package main

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/rson/parse"
)

func TestDiffDocs(t *testing.T) {
	a, err := parse.ParseString(`{"a": 1, "b": 2}`)
	if err != nil {
		t.Fatal(err)
	}
	b, err := parse.ParseString(`{"a": 1, "b": 3}`)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	differs, err := diffDocs(buf, a, b, false)
	if err != nil {
		t.Fatal(err)
	}
	if !differs {
		t.Fatal("expected a difference")
	}
	want := " {\n   \"a\": 1,\n-  \"b\": 2\n+  \"b\": 3\n }\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDiffDocsSameGraph(t *testing.T) {
	a, err := parse.ParseString(`[$x, [1](x)]`)
	if err != nil {
		t.Fatal(err)
	}
	b, err := parse.ParseString(`[[1](other), $other]`)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	differs, err := diffDocs(buf, a, b, false)
	if err != nil {
		t.Fatal(err)
	}
	if differs || buf.Len() != 0 {
		t.Errorf("same graphs reported different: %s", buf.String())
	}
}
