package main

import (
	"errors"
	"testing"

	"github.com/signadot/rson/encode"
	"github.com/signadot/rson/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

func TestApplyPatch(t *testing.T) {
	ops, err := jsonpatch.DecodePatch([]byte(`[
		{"op": "replace", "path": "/a/0", "value": 5},
		{"op": "add", "path": "/b/-", "value": "x"}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := parse.ParseString(`{"a": [1](s), "b": $s}`)
	if err != nil {
		t.Fatal(err)
	}
	res, err := applyPatch(ops, doc)
	if err != nil {
		t.Fatal(err)
	}
	got := encode.MustString(res)
	if got != `{"a":[5],"b":[1,"x"]}` {
		t.Errorf("got %s", got)
	}

	cyc, err := parse.ParseString(`{"self": $r}(r)`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := applyPatch(ops, cyc); !errors.Is(err, encode.ErrCycle) {
		t.Errorf("got %v", err)
	}
}
