// Package ast holds the syntax tree produced by the parser.
//
// A Tree is either a Leaf wrapping one integer literal or an Operation
// joining two subtrees with a binary operator. The set is closed: only
// this package can add variants.
package ast
