package plruntime

import "github.com/gosuda/pl0/ast"

func (vm *VM) evalCondition(c ast.Node) (bool, error) {
	switch cond := c.(type) {
	case ast.Odd:
		v, err := vm.evalExpr(cond.Expr)
		if err != nil {
			return false, err
		}
		return v%2 != 0, nil
	case ast.ComposedExpression:
		left, err := vm.evalExpr(cond.Left)
		if err != nil {
			return false, err
		}
		right, err := vm.evalExpr(cond.Right)
		if err != nil {
			return false, err
		}
		return compare(cond.Op, left, right)
	default:
		return false, runtimeErrorf(CodeInvariant, "", "%T is not a condition", c)
	}
}

func compare(op ast.RelOp, a, b int64) (bool, error) {
	switch op {
	case ast.Eq:
		return a == b, nil
	case ast.Ne:
		return a != b, nil
	case ast.Lt:
		return a < b, nil
	case ast.Le:
		return a <= b, nil
	case ast.Gt:
		return a > b, nil
	case ast.Ge:
		return a >= b, nil
	default:
		return false, runtimeErrorf(CodeInvariant, "", "unknown relational operator %d", op)
	}
}
