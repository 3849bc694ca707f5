package ast

import (
	"tally/internal/source"
)

// Tree is a node of the syntax tree: *Leaf or *Operation.
type Tree interface {
	// Span covers every token the node was built from.
	Span() source.Span
	treeNode()
}

// Leaf is an operand.
type Leaf struct {
	Token LeafToken
}

// Operation applies Operator to Left and Right.
type Operation struct {
	Operator OperatorToken
	Left     Tree
	Right    Tree
}

func (*Leaf) treeNode()      {}
func (*Operation) treeNode() {}

func (l *Leaf) Span() source.Span { return l.Token.Span }

func (o *Operation) Span() source.Span {
	sp := o.Operator.Span
	if o.Left != nil {
		sp = sp.Cover(o.Left.Span())
	}
	if o.Right != nil {
		sp = sp.Cover(o.Right.Span())
	}
	return sp
}

// NewLeaf wraps a literal into a tree.
func NewLeaf(tok LeafToken) *Leaf {
	return &Leaf{Token: tok}
}

// NewOperation builds a binary node.
func NewOperation(op OperatorToken, left, right Tree) *Operation {
	return &Operation{Operator: op, Left: left, Right: right}
}

// Walk visits t in pre-order, left before right. Returning false from fn
// skips the children of the current node.
func Walk(t Tree, fn func(Tree) bool) {
	if t == nil || !fn(t) {
		return
	}
	if op, ok := t.(*Operation); ok {
		Walk(op.Left, fn)
		Walk(op.Right, fn)
	}
}
