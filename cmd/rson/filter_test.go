package main

import (
	"testing"

	"github.com/signadot/rson/encode"
	"github.com/signadot/rson/parse"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		in   string
		expr string
		drop bool
		out  string
	}{
		{
			in:   `{"a": 1, "_b": 2, "c": null, "d": [1, "x", null]}`,
			expr: `Key startsWith "_" || Type == "Null"`,
			drop: true,
			out:  `{"a":1,"d":[1,"x"]}`,
		},
		{
			in:   `[1, "x", {"y": "z"}]`,
			expr: `Type != "String"`,
			out:  `[1,{}]`,
		},
		{
			in:   `{"big": 10, "small": 1, "list": [[], [1, 2]]}`,
			expr: `Number > 5 || (Type == "Array" && Len == 0)`,
			drop: true,
			out:  `{"small":1,"list":[[1,2]]}`,
		},
		{
			in:   `{"s": [1](x), "t": $x, "u": $x}`,
			expr: `Key == "s"`,
			drop: true,
			out:  `{"t":[1](ref1),"u":$ref1}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := newExprFilter(tt.expr, tt.drop)
			if err != nil {
				t.Fatal(err)
			}
			doc, err := parse.ParseString(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			got, err := encode.EncodeString(doc, encode.WithTransform(f.transform))
			if err != nil {
				t.Fatal(err)
			}
			if f.err != nil {
				t.Fatal(f.err)
			}
			if got != tt.out {
				t.Errorf("got %s, want %s", got, tt.out)
			}
		})
	}
}

func TestFilterCompileError(t *testing.T) {
	for _, src := range []string{`Key +`, `Key + "x"`, `Nope == 1`} {
		if _, err := newExprFilter(src, true); err == nil {
			t.Errorf("%q: expected an error", src)
		}
	}
}
