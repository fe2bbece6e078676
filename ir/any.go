package ir

import (
	"encoding/json"
	"fmt"
)

// FromAny builds a tree from plain Go values: nil, bool, integer and
// float types, string, json.Number, []any, map[string]any and *Node.
// Map keys are sorted. Each map or slice yields a distinct node, so
// the result never shares composites.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x, nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint:
		return FromNumber(fmt.Sprint(x)), nil
	case uint64:
		return FromNumber(fmt.Sprint(x)), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		return FromNumber(x.String()), nil
	case []any:
		vs := make([]*Node, len(x))
		for i := range x {
			n, err := FromAny(x[i])
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case map[string]any:
		m := make(map[string]*Node, len(x))
		for k, xv := range x {
			n, err := FromAny(xv)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			m[k] = n
		}
		return FromMap(m), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
}

// MustFromAny is like FromAny but panics on error.
func MustFromAny(v any) *Node {
	n, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return n
}
