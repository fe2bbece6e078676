package ir

import (
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		// Type Ranking: Null < Bool < Number < String < Array < Object
		{"Null < Bool", Null(), FromBool(false), -1},
		{"Bool < Number", FromBool(true), FromInt(1), -1},
		{"Number < String", FromInt(1), FromString("a"), -1},
		{"String < Array", FromString("a"), FromSlice(nil), -1},
		{"Array < Object", FromSlice(nil), FromKeyVals(nil), -1},

		{"false < true", FromBool(false), FromBool(true), -1},
		{"true > false", FromBool(true), FromBool(false), 1},
		{"true == true", FromBool(true), FromBool(true), 0},

		// numbers compare by value whatever their representation
		{"Int == Float", FromInt(1), FromFloat(1.0), 0},
		{"Int < Float", FromInt(1), FromFloat(1.5), -1},
		{"Float == Literal", FromFloat(2.5), FromNumber("25e-1"), 0},
		{"Literal < Literal", &Node{Type: NumberType, Number: "1e400"}, &Node{Type: NumberType, Number: "2e400"}, -1},

		{"String < String", FromString("a"), FromString("b"), -1},

		{"Empty Array == Empty Array", FromSlice(nil), FromSlice(nil), 0},
		{"Short Array < Long Array", FromSlice([]*Node{FromInt(1)}), FromSlice([]*Node{FromInt(1), FromInt(2)}), -1},
		{"Array elements", FromSlice([]*Node{FromInt(2)}), FromSlice([]*Node{FromInt(1), FromInt(2)}), 1},

		{"Object keys", FromKeyVals([]KeyVal{{"a", Null()}}), FromKeyVals([]KeyVal{{"b", Null()}}), -1},
		{"Object values", FromKeyVals([]KeyVal{{"a", FromInt(2)}}), FromKeyVals([]KeyVal{{"a", FromInt(1)}}), 1},
		{"Object order matters", FromKeyVals([]KeyVal{{"a", Null()}, {"b", Null()}}), FromKeyVals([]KeyVal{{"b", Null()}, {"a", Null()}}), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestFromNumber(t *testing.T) {
	tests := []struct {
		lit   string
		isInt bool
		isF   bool
	}{
		{"0", true, false},
		{"007", true, false},
		{"-12", true, false},
		{"9223372036854775808", false, true},
		{"1.5", false, true},
		{"1e3", false, true},
		{"1e400", false, false},
	}
	for _, tt := range tests {
		n := FromNumber(tt.lit)
		if (n.Int64 != nil) != tt.isInt || (n.Float64 != nil) != tt.isF {
			t.Errorf("%s: int=%v float=%v", tt.lit, n.Int64 != nil, n.Float64 != nil)
		}
		if !tt.isInt && !tt.isF && n.Number != tt.lit {
			t.Errorf("%s: literal not kept: %q", tt.lit, n.Number)
		}
	}
	if *FromNumber("007").Int64 != 7 {
		t.Error("007 should be 7")
	}
}

func TestEquiv(t *testing.T) {
	shared := FromSlice([]*Node{FromInt(1)})
	a := FromKeyVals([]KeyVal{{"x", shared}, {"y", shared}})
	b := FromKeyVals([]KeyVal{
		{"x", FromSlice([]*Node{FromInt(1)})},
		{"y", FromSlice([]*Node{FromInt(1)})},
	})
	if Compare(a, b) != 0 {
		t.Error("a and b should be structurally equal")
	}
	if Equiv(a, b) {
		t.Error("sharing in a is not mirrored in b")
	}
	if !Equiv(a, a.Clone()) {
		t.Error("clone should preserve sharing")
	}

	cyc := FromKeyVals(nil)
	cyc.Set("self", cyc)
	other := FromKeyVals(nil)
	other.Set("self", other)
	if !Equiv(cyc, other) {
		t.Error("self cycles should be equivalent")
	}
	twoStep := FromKeyVals(nil)
	mid := FromKeyVals([]KeyVal{{"self", twoStep}})
	twoStep.Set("self", mid)
	if Equiv(cyc, twoStep) {
		t.Error("a one step cycle is not a two step cycle")
	}
	c := cyc.Clone()
	if c == cyc || c.Get("self") != c {
		t.Error("clone should copy the cycle")
	}
}

func TestObjectSet(t *testing.T) {
	o := FromKeyVals([]KeyVal{{"a", FromInt(1)}, {"b", FromInt(2)}})
	if i := o.Set("a", FromInt(3)); i != 0 {
		t.Errorf("replacing a: slot %d", i)
	}
	if i := o.Set("c", Null()); i != 2 {
		t.Errorf("appending c: slot %d", i)
	}
	keys := o.Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[2] != "c" {
		t.Errorf("keys %v", keys)
	}
	if *o.Get("a").Int64 != 3 || o.Get("zz") != nil {
		t.Error("get")
	}
}

func TestFromAny(t *testing.T) {
	n, err := FromAny(map[string]any{
		"b": []any{1, 2.5, "x", nil, true},
		"a": map[string]any{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if keys := n.Keys(); len(keys) != 2 || keys[0] != "a" {
		t.Errorf("keys not sorted: %v", keys)
	}
	arr := n.Get("b")
	if arr.Type != ArrayType || arr.Len() != 5 || *arr.Values[0].Int64 != 1 || *arr.Values[1].Float64 != 2.5 {
		t.Errorf("bad array")
	}
	if _, err := FromAny(struct{}{}); err == nil {
		t.Error("expected unsupported error")
	}
}
