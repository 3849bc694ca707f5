// Package testkit holds invariant checks shared by tests of several packages.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tally/internal/ast"
	"tally/internal/source"
)

// CheckTreeSpans runs a minimal set of span invariants on a parsed tree:
// 1) every span is non-empty, points at sf and lies within its content
// 2) a leaf's text is exactly the source under its span
// 3) an operation's span covers left, operator and right, in that order
func CheckTreeSpans(tree ast.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	checkSpan := func(what string, sp source.Span) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("%s span is empty: %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span points to different file id: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s span end beyond content: %d > %d", what, sp.End, lenContent)
		}
		return nil
	}

	var walkErr error
	ast.Walk(tree, func(n ast.Tree) bool {
		if walkErr != nil {
			return false
		}
		switch n := n.(type) {
		case *ast.Leaf:
			sp := n.Span()
			if walkErr = checkSpan("leaf", sp); walkErr != nil {
				return false
			}
			if got := string(sf.Content[sp.Start:sp.End]); got != n.Token.Text {
				walkErr = fmt.Errorf("leaf text %q does not match source %q at %v", n.Token.Text, got, sp)
			}
		case *ast.Operation:
			if n.Left == nil || n.Right == nil {
				walkErr = fmt.Errorf("operation %s has a nil operand", n.Operator.Op)
				return false
			}
			if walkErr = checkSpan("operator", n.Operator.Span); walkErr != nil {
				return false
			}
			left, op, right := n.Left.Span(), n.Operator.Span, n.Right.Span()
			if left.End > op.Start || op.End > right.Start {
				walkErr = fmt.Errorf("operands out of order: left %v, operator %v, right %v", left, op, right)
				return false
			}
			whole := n.Span()
			if !whole.Contains(left) || !whole.Contains(right) || !whole.Contains(op) {
				walkErr = fmt.Errorf("operation span %v does not cover its parts", whole)
			}
		}
		return walkErr == nil
	})
	return walkErr
}
