package plruntime

import (
	"github.com/gosuda/pl0/ast"
)

func (vm *VM) evalExpr(e ast.Node) (int64, error) {
	switch ex := e.(type) {
	case ast.Number:
		return ex.Value, nil
	case ast.Ident:
		return vm.stack.resolveRef(ex.Name)
	case ast.Factor:
		return vm.evalExpr(ex.Inner)
	case ast.Term:
		return vm.evalTerm(ex)
	case ast.Expression:
		return vm.evalExpression(ex)
	default:
		return 0, runtimeErrorf(CodeInvariant, "", "%T is not an expression", e)
	}
}

// evalTerm folds the factors left to right into an accumulator that starts
// at 1, the first factor entering through an implicit multiplication.
func (vm *VM) evalTerm(t ast.Term) (int64, error) {
	if len(t.Factors) == 0 || len(t.Ops) != len(t.Factors)-1 {
		return 0, runtimeErrorf(CodeInvariant, "", "term has %d factors and %d operators", len(t.Factors), len(t.Ops))
	}
	acc := int64(1)
	for i, f := range t.Factors {
		op := ast.Mul
		if i > 0 {
			op = t.Ops[i-1]
		}
		v, err := vm.evalExpr(f)
		if err != nil {
			return 0, err
		}
		switch op {
		case ast.Mul:
			acc *= v
		case ast.Div:
			if v == 0 {
				return 0, runtimeErrorf(CodeDivisionByZero, "", "division by zero")
			}
			acc /= v
		default:
			return 0, runtimeErrorf(CodeInvariant, "", "unknown term operator %d", op)
		}
	}
	return acc, nil
}

// evalExpression accepts both shapes the parser produces: one sign per term
// (leading sign written), or one sign fewer with the first term positive.
func (vm *VM) evalExpression(ex ast.Expression) (int64, error) {
	terms := ex.Terms
	if len(terms) == 0 {
		return 0, runtimeErrorf(CodeInvariant, "", "empty expression")
	}
	acc := int64(0)
	switch len(ex.Signs) {
	case len(terms):
	case len(terms) - 1:
		first, err := vm.evalExpr(terms[0])
		if err != nil {
			return 0, err
		}
		acc = first
		terms = terms[1:]
	default:
		return 0, runtimeErrorf(CodeInvariant, "", "expression has %d terms and %d signs", len(ex.Terms), len(ex.Signs))
	}
	for i, t := range terms {
		v, err := vm.evalExpr(t)
		if err != nil {
			return 0, err
		}
		switch ex.Signs[i] {
		case ast.Plus:
			acc += v
		case ast.Minus:
			acc -= v
		default:
			return 0, runtimeErrorf(CodeInvariant, "", "unknown sign %d", ex.Signs[i])
		}
	}
	return acc, nil
}
