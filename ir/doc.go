// Package ir contains the in-memory representation of RSON values.
//
// A value is a *Node of one of the types Null, Bool, Number, String,
// Array or Object. Objects are ordered: Fields holds the keys (as
// String nodes) and Values the corresponding values.
//
// Unlike a plain tree, a Node graph may share composite nodes between
// several slots and may contain cycles; RSON references describe
// exactly this. Identity is pointer identity:
//
//	shared := ir.FromSlice(nil)
//	root := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "a", Val: shared},
//	    {Key: "b", Val: shared},
//	})
//	root.Set("self", root)
//
// Compare is a structural order for acyclic values. Equiv compares
// graphs including their sharing and cycles. Clone copies a graph
// preserving both.
//
// # Related Packages
//
//   - github.com/signadot/rson/parse - decode text into nodes
//   - github.com/signadot/rson/encode - encode nodes into text
package ir
