// Package encode encodes IR nodes to RSON, JSON or YAML text.
//
// Shared composites and cycles are found by Analyze and written once,
// with a reference definition after the closing bracket, and as
// reference uses everywhere else:
//
//	a := ir.FromKeyVals(nil)
//	a.Set("b", a)
//	s, err := encode.EncodeString(a) // {"b":$ref1}(ref1)
//
// # Usage
//
//	// Indented output
//	err := encode.Encode(node, os.Stdout, encode.Indent(2))
//
//	// Drop members
//	err := encode.Encode(node, os.Stdout, encode.WithTransform(
//	    func(key string, v *ir.Node) *ir.Node {
//	        if key == "password" {
//	            return encode.Omit
//	        }
//	        return v
//	    }))
//
//	// YAML, with anchors and aliases
//	err := encode.Encode(node, os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//
// JSON has no references: shared values are written in full each
// time and cycles are an error.
//
// # Related Packages
//
//   - github.com/signadot/rson/ir - IR representation
//   - github.com/signadot/rson/parse - Parse text to IR
package encode
