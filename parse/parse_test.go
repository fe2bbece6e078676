package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/rson/format"
	"github.com/signadot/rson/ir"
	"github.com/signadot/rson/token"
)

type parseTest struct {
	in  string
	e   error
	msg string
}

func TestParseOK(t *testing.T) {
	pts := []parseTest{
		{in: `null`},
		{in: `true`},
		{in: `false`},
		{in: `22`},
		{in: `-1.5e3`},
		{in: `"hello"`},
		{in: `[]`},
		{in: `{}`},
		{in: `[[]]`},
		{in: `{"a":1,"b":[1,2,{"c":null}]}`},
		{in: `[1,2,]`},
		{in: `{"a":1,}`},
		{in: "// comment\n[1]"},
		{in: "/* block */ [1] // trailing"},
		{in: "[1] /* open to the end"},
		{in: `{"a": [1](x), "b": $x}`},
		{in: `[$x, [2](x)]`},
		{in: `[$r](r)`},
		{in: `"s"(s)`},
		{in: " \t\r\n{\r\n\"a\" : 1\r\n}\n"},
	}
	for _, pt := range pts {
		t.Run(pt.in, func(t *testing.T) {
			if _, err := ParseString(pt.in); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	pts := []parseTest{
		{in: ``, e: ErrEmpty, msg: "parse error: unexpected end of input"},
		{in: "  \n", e: ErrEmpty},
		{in: `[1 2]`, e: ErrUnexpectedToken, msg: "parse error: unexpected token 2 at 1:4"},
		{in: `[1,`, e: ErrEmpty, msg: "parse error: unexpected end of input at 1:4"},
		{in: `1 2`, e: ErrUnexpectedToken, msg: "parse error: unexpected token 2 at 1:3"},
		{in: `{1:2}`, e: ErrUnexpectedToken, msg: "parse error: unexpected token 1 at 1:2"},
		{in: `{"a" 2}`, e: ErrUnexpectedToken, msg: "parse error: unexpected token 2 at 1:6"},
		{in: `1(a)(b)`, e: ErrUnexpectedToken, msg: "parse error: unexpected token (b) at 1:5"},
		{in: `$x`, e: ErrUnexpectedToken, msg: "parse error: unexpected token $x at 1:1"},
		{in: `[,]`, e: ErrUnexpectedToken},
		{in: `{"a":[1](x),"b":[2](x)}`, e: ErrRefExists, msg: `parse error: reference already exists "x" at 1:20`},
		{in: `[$nope]`, e: ErrRefNotFound, msg: `parse error: reference not found "nope" at 1:2`},
		{in: `[1, $a, $b, [2](a)]`, e: ErrRefNotFound, msg: `parse error: reference not found "b" at 1:9`},
		{in: `@`, e: token.ErrUnexpected},
		{in: `"\q"`, e: token.ErrBadEscape},
	}
	for _, pt := range pts {
		t.Run(pt.in, func(t *testing.T) {
			_, err := ParseString(pt.in)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, pt.e) {
				t.Errorf("got %v, want %v", err, pt.e)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("%v does not wrap ErrParse", err)
			}
			if pt.msg != "" && err.Error() != pt.msg {
				t.Errorf("got message %q, want %q", err.Error(), pt.msg)
			}
		})
	}
}

func TestParseRefIdentity(t *testing.T) {
	root, err := ParseString(`{"a": [1](x), "b": $x}`)
	if err != nil {
		t.Fatal(err)
	}
	if root.Get("a") != root.Get("b") {
		t.Error("backward use should share the definition")
	}

	root, err = ParseString(`[$x, [2](x)]`)
	if err != nil {
		t.Fatal(err)
	}
	if root.Values[0] != root.Values[1] || root.Values[0] == nil {
		t.Error("forward use should share the definition")
	}

	root, err = ParseString(`{"self": $r}(r)`)
	if err != nil {
		t.Fatal(err)
	}
	if root.Get("self") != root {
		t.Error("self reference should point at the root")
	}

	root, err = ParseString(`{"a": {"up": $r, "list": [$r, $r]}}(r)`)
	if err != nil {
		t.Fatal(err)
	}
	inner := root.Get("a")
	if inner.Get("up") != root || inner.Get("list").Values[1] != root {
		t.Error("ancestor reference should point at the root")
	}

	root, err = ParseString(`["s"(x), $x]`)
	if err != nil {
		t.Fatal(err)
	}
	if root.Values[0] != root.Values[1] {
		t.Error("scalar definitions are shared too")
	}

	shared := ir.FromSlice([]*ir.Node{ir.FromInt(1)})
	want := ir.FromSlice([]*ir.Node{shared, shared, ir.FromSlice([]*ir.Node{shared})})
	got, err := ParseString(`[$a, [1](a), [$a]]`)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equiv(got, want) {
		t.Error("graph mismatch")
	}
}

func TestParseDuplicateKeys(t *testing.T) {
	root, err := ParseString(`{"a": 1, "b": 2, "a": 3}`)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, root.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if *root.Get("a").Int64 != 3 {
		t.Errorf("last value should win, got %d", *root.Get("a").Int64)
	}

	// uses in overwritten slots still have to resolve
	for _, in := range []string{
		`{"a": $missing, "a": 1}`,
		`{"a": $nope, "a": $y, "b": [0](y)}`,
	} {
		if _, err := ParseString(in); !errors.Is(err, ErrRefNotFound) {
			t.Errorf("%s: expected ErrRefNotFound, got %v", in, err)
		}
	}

	// fixups are patched after the whole document is read
	root, err = ParseString(`{"a": $x, "a": 1, "b": {}(x)}`)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, root.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if root.Get("a") != root.Get("b") {
		t.Error("a should hold the node bound to x")
	}

	root, err = ParseString(`{"a": $x, "a": $y, "x": 1(x), "y": 2(y)}`)
	if err != nil {
		t.Fatal(err)
	}
	if root.Get("a") != root.Get("y") {
		t.Error("the later use should win")
	}
}

func TestParseJSON(t *testing.T) {
	if _, err := ParseString(`{"a": [1, 2.5, "x", true, null]}`, ParseJSON()); err != nil {
		t.Fatal(err)
	}
	for _, in := range []string{`[1](a)`, `[$a]`, "// c\n1"} {
		if _, err := ParseString(in, ParseJSON()); !errors.Is(err, ErrParse) {
			t.Errorf("%s: expected a parse error, got %v", in, err)
		}
	}
}

func TestParseYAML(t *testing.T) {
	root, err := ParseString("a: &x [1, 2]\nb: *x\n", ParseYAML())
	if err != nil {
		t.Fatal(err)
	}
	if root.Get("a") == nil || root.Get("a") != root.Get("b") {
		t.Error("alias should share the anchored node")
	}

	root, err = ParseString("&r {self: *r}\n", ParseYAML())
	if err != nil {
		t.Fatal(err)
	}
	if root.Get("self") != root {
		t.Error("alias inside its anchor should make a cycle")
	}

	root, err = ParseString("i: 1\nf: 1.5\nb: true\nn: null\ns: \"x\"\n", ParseYAML())
	if err != nil {
		t.Fatal(err)
	}
	types := []ir.Type{}
	for _, v := range root.Values {
		types = append(types, v.Type)
	}
	want := []ir.Type{ir.NumberType, ir.NumberType, ir.BoolType, ir.NullType, ir.StringType}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("types (-want +got):\n%s", diff)
	}
	if *root.Get("i").Int64 != 1 || *root.Get("f").Float64 != 1.5 {
		t.Error("numbers")
	}

	root, err = ParseString("- {k: v}\n- [1]\n", ParseFormat(format.YAMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	if root.Type != ir.ArrayType || len(root.Values) != 2 || root.Values[0].Get("k") == nil {
		t.Error("yaml sequence of mappings")
	}

	for _, in := range []string{"a: *nope\n", "a: 1\n---\nb: 2\n"} {
		if _, err := ParseString(in, ParseYAML()); !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected a parse error, got %v", in, err)
		}
	}
}

func TestParseRefInfo(t *testing.T) {
	ri := &RefInfo{}
	if _, err := ParseString(`{"a": [1](x), "b": $x, "c": $x}`, ParseRefInfo(ri)); err != nil {
		t.Fatal(err)
	}
	def, ok := ri.Defs["x"]
	if !ok {
		t.Fatal("no definition recorded")
	}
	if def.Pos.Line != 1 || def.Pos.Col != 10 {
		t.Errorf("definition at %s", def.Pos)
	}
	if len(ri.Uses) != 2 || ri.Uses[0].String() != "x" {
		t.Errorf("uses %v", ri.Uses)
	}
}

func TestParsePositions(t *testing.T) {
	m := map[*ir.Node]*token.Pos{}
	root, err := ParseString("{\"a\": [1],\n \"b\": 2}", ParsePositions(m))
	if err != nil {
		t.Fatal(err)
	}
	check := func(n *ir.Node, line, col int) {
		t.Helper()
		pos, ok := m[n]
		if !ok {
			t.Fatalf("no position for %s", n.Type)
		}
		if pos.Line != line || pos.Col != col {
			t.Errorf("got %s, want %d:%d", pos, line, col)
		}
	}
	check(root, 1, 1)
	check(root.Fields[0], 1, 2)
	check(root.Get("a"), 1, 7)
	check(root.Get("a").Values[0], 1, 8)
	check(root.Fields[1], 2, 2)
	check(root.Get("b"), 2, 7)
	if GetPositions(ParsePositions(m)) == nil {
		t.Error("GetPositions")
	}
}

func TestParseSource(t *testing.T) {
	root, err := ParseSource(token.NewReaderSource(strings.NewReader(`[[1](a), $a]`)))
	if err != nil {
		t.Fatal(err)
	}
	if root.Values[0] != root.Values[1] {
		t.Error("sharing lost")
	}
	if _, err := ParseReader(strings.NewReader(`{"a": 1}`)); err != nil {
		t.Error(err)
	}
	if _, err := ParseSource(token.NewBytesSource(nil)); !errors.Is(err, ErrEmpty) {
		t.Errorf("got %v", err)
	}
	if _, err := ParseSource(token.NewBytesSource([]byte("a: 1")), ParseYAML()); !errors.Is(err, token.ErrUnsupported) {
		t.Errorf("got %v", err)
	}
}
