// Package token tokenizes RSON text.
//
// RSON is JSON extended with comments and named references:
//
//	// a line comment
//	{
//	  "root": {"kids": [$root]}(root), /* a block comment */
//	  "same": $root
//	}
//
// A parenthesized identifier directly following a value, such as
// (root) above, is a reference definition binding the name to that
// value. $root is a reference use. The tokenizer only recognizes these
// forms; binding and resolution happen in package parse.
//
// Tokens carry 1-based line:column positions. Tokenizing stops at the
// first error.
package token
