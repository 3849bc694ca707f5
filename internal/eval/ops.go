package eval

import (
	"fmt"

	"tally/internal/ast"
)

// binaryFunc is the checked implementation of one operator.
type binaryFunc func(a, b int32) (int32, bool)

// binaryOps is indexed by ast.Operator.
var binaryOps = [ast.OpCount]binaryFunc{
	ast.OpPlus: AddInt32Checked,
}

// Новый оператор в ast ломает компиляцию здесь, пока его не добавят в binaryOps.
func _() {
	var x [1]struct{}
	_ = x[ast.OpCount-1-ast.OpPlus]
}

func init() {
	for op, fn := range binaryOps {
		if fn == nil {
			panic(fmt.Sprintf("eval: no implementation for operator %s", ast.Operator(op)))
		}
	}
}
