package main

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/rson/encode"
	"github.com/signadot/rson/parse"
)

func TestRefsOutput(t *testing.T) {
	doc, err := parse.ParseString(`{"x": [1](s), "y": {"up": $top, "s": $s}, "z": $s}(top)`)
	if err != nil {
		t.Fatal(err)
	}
	entries := encode.Analyze(doc).Entries()

	buf := &bytes.Buffer{}
	if err := writeRefLines(buf, entries); err != nil {
		t.Fatal(err)
	}
	want := "ref1\tObject\t2\t\"\"\nref2\tArray\t3\t\"/x\"\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	table, err := refTable(entries)
	if err != nil {
		t.Fatal(err)
	}
	got := encode.MustString(table)
	wantTable := `[{"count":2,"name":"ref1","path":"","type":"Object"},{"count":3,"name":"ref2","path":"/x","type":"Array"}]`
	if got != wantTable {
		t.Errorf("got %s", got)
	}
}
