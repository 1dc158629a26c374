package plruntime

import "github.com/gosuda/pl0/ast"

func num(v int64) ast.Node { return ast.Factor{Inner: ast.Number{Value: v}} }

func ref(name string) ast.Node { return ast.Factor{Inner: ast.Ident{Name: name}} }

func ident(name string) ast.Ident { return ast.Ident{Name: name} }

func term(factors []ast.Node, ops ...ast.MulOp) ast.Node {
	return ast.Term{Factors: factors, Ops: ops}
}

func single(f ast.Node) ast.Node {
	return ast.Expression{Terms: []ast.Node{term([]ast.Node{f})}}
}

func expr(terms []ast.Node, signs ...ast.Sign) ast.Node {
	return ast.Expression{Terms: terms, Signs: signs}
}

func assign(name string, e ast.Node) ast.Node {
	return ast.Assignment{Ident: ident(name), Expression: e}
}

func show(e ast.Node) ast.Node { return ast.ExclaimationMark{Expression: e} }

func call(name string) ast.Node { return ast.Call{Ident: ident(name)} }

func seq(stmts ...ast.Node) ast.Node { return ast.BeginEnd{Statements: stmts} }

func cmp(left ast.Node, op ast.RelOp, right ast.Node) ast.Node {
	return ast.ComposedExpression{Left: left, Op: op, Right: right}
}

func vars(names ...string) []ast.Ident {
	out := make([]ast.Ident, 0, len(names))
	for _, n := range names {
		out = append(out, ident(n))
	}
	return out
}

func proc(name string, body *ast.Block) ast.Procedure {
	return ast.Procedure{Ident: ident(name), Block: body}
}

func runProgram(block *ast.Block, inputs ...string) ([]Output, *VM, error) {
	vm, err := New(block)
	if err != nil {
		return nil, nil, err
	}
	vm.EnqueueInput(inputs...)
	out, err := vm.Run()
	return out, vm, err
}

func texts(out []Output) []string {
	s := make([]string, 0, len(out))
	for _, o := range out {
		s = append(s, o.Text)
	}
	return s
}
