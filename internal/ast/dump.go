package ast

import (
	"strconv"
	"strings"
)

// Dump renders t in debug form, e.g.
//
//	Operation(Plus, Leaf(Integer("82")), Leaf(Integer("1")))
func Dump(t Tree) string {
	var b strings.Builder
	dump(&b, t)
	return b.String()
}

func dump(b *strings.Builder, t Tree) {
	switch n := t.(type) {
	case *Leaf:
		b.WriteString("Leaf(Integer(")
		b.WriteString(strconv.Quote(n.Token.Text))
		b.WriteString("))")
	case *Operation:
		b.WriteString("Operation(")
		b.WriteString(n.Operator.Op.String())
		b.WriteString(", ")
		dump(b, n.Left)
		b.WriteString(", ")
		dump(b, n.Right)
		b.WriteByte(')')
	default:
		b.WriteString("<nil>")
	}
}
