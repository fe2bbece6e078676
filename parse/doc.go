// Package parse decodes RSON, JSON and YAML documents into ir nodes.
//
// RSON is JSON with comments and references. A reference definition
// "(name)" follows a value and binds the name to it; a reference use
// "$name" stands for the bound value in an array element or object
// value position. Uses may come before their definition, including
// inside the value being defined, so documents may describe shared
// and cyclic graphs:
//
//	{"self": $root, "list": [$x, {"n": 1}(x)]}(root)
//
// decodes to an object whose "self" entry is the object itself and
// whose list holds the same node twice. Uses are resolved after the
// whole document is read; a use of a name never bound is an error, as
// is binding a name twice.
//
// With ParseYAML, anchors and aliases play the same part as
// definitions and uses.
package parse
