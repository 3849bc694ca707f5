package eval

import (
	"fmt"
	"io"
	"iter"
	"strconv"

	"tally/internal/ast"
	"tally/internal/diag"
	"tally/internal/source"

	"fortio.org/safecast"
)

// TreeSource hands out trees one at a time and reports the end as io.EOF.
// *parser.Parser satisfies it.
type TreeSource interface {
	Next() (ast.Tree, error)
}

type Options struct {
	Reporter diag.Reporter // может быть nil
}

// Evaluator pulls trees from a TreeSource and reduces each to a Value.
type Evaluator struct {
	file   *source.File
	src    TreeSource
	opts   Options
	halted bool
}

func New(file *source.File, src TreeSource, opts Options) *Evaluator {
	return &Evaluator{file: file, src: src, opts: opts}
}

// Next returns the value of the next tree. io.EOF marks the clean end;
// after any other error the evaluator halts and keeps returning io.EOF.
func (ev *Evaluator) Next() (Value, error) {
	if ev.halted {
		return Value{}, io.EOF
	}
	tree, err := ev.src.Next()
	if err != nil {
		ev.halted = true
		return Value{}, err
	}
	v, err := ev.Eval(tree)
	if err != nil {
		ev.halted = true
	}
	return v, err
}

// All adapts the evaluator to a range-over-func sequence. The terminal
// error, if any, is yielded as the last pair.
func (ev *Evaluator) All() iter.Seq2[Value, error] {
	return func(yield func(Value, error) bool) {
		for {
			v, err := ev.Next()
			if err == io.EOF {
				return
			}
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// Eval reduces a single tree. Left operands are evaluated before right ones.
func (ev *Evaluator) Eval(tree ast.Tree) (Value, error) {
	switch n := tree.(type) {
	case *ast.Leaf:
		return ev.evalLeaf(n)
	case *ast.Operation:
		return ev.evalOperation(n)
	default:
		panic(fmt.Sprintf("eval: unexpected tree node %T", tree))
	}
}

func (ev *Evaluator) evalLeaf(leaf *ast.Leaf) (Value, error) {
	wide, err := strconv.ParseInt(leaf.Token.Text, 10, 64)
	if err != nil {
		return Value{}, ev.invalidNumber(leaf)
	}
	n, err := safecast.Conv[int32](wide)
	if err != nil {
		return Value{}, ev.invalidNumber(leaf)
	}
	return MakeI32(n), nil
}

func (ev *Evaluator) evalOperation(op *ast.Operation) (Value, error) {
	left, err := ev.Eval(op.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := ev.Eval(op.Right)
	if err != nil {
		return Value{}, err
	}
	res, ok := binaryOps[op.Operator.Op](left.I32, right.I32)
	if !ok {
		d := diag.NewError(diag.EvalArithmeticOverflow, op.Span(),
			fmt.Sprintf("arithmetic overflow: %d %s %d does not fit in i32",
				left.I32, op.Operator.Op.Symbol(), right.I32)).
			WithLabel("result out of range")
		return Value{}, ev.fail(d)
	}
	return MakeI32(res), nil
}

func (ev *Evaluator) invalidNumber(leaf *ast.Leaf) error {
	d := diag.NewError(diag.EvalInvalidNumber, leaf.Span(),
		"invalid number "+strconv.Quote(leaf.Token.Text)).
		WithLabel("does not fit in i32")
	return ev.fail(d)
}

func (ev *Evaluator) fail(d diag.Diagnostic) error {
	diag.Emit(ev.opts.Reporter, d)
	return diag.NewErrorFor(ev.file, d)
}
