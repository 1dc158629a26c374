package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kr/pretty"

	"github.com/gosuda/pl0/ast"
)

func factorNum(v int64) ast.Node { return ast.Factor{Inner: ast.Number{Value: v}} }

func factorRef(name string) ast.Node { return ast.Factor{Inner: ast.Ident{Name: name}} }

func assertAST(t *testing.T, got, want any) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AST mismatch:\n%s", strings.Join(pretty.Diff(want, got), "\n"))
	}
}

func TestParseExpressionShapes(t *testing.T) {
	block, err := ParseProgram("! 2 + 3 * 4.")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := ast.ExclaimationMark{Expression: ast.Expression{
		Terms: []ast.Node{
			ast.Term{Factors: []ast.Node{factorNum(2)}},
			ast.Term{Factors: []ast.Node{factorNum(3), factorNum(4)}, Ops: []ast.MulOp{ast.Mul}},
		},
		Signs: []ast.Sign{ast.Plus},
	}}
	assertAST(t, block.Statement, want)

	block, err = ParseProgram("! -x / (1 - y).")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	inner := ast.Expression{
		Terms: []ast.Node{
			ast.Term{Factors: []ast.Node{factorNum(1)}},
			ast.Term{Factors: []ast.Node{factorRef("y")}},
		},
		Signs: []ast.Sign{ast.Minus},
	}
	want = ast.ExclaimationMark{Expression: ast.Expression{
		Terms: []ast.Node{
			ast.Term{Factors: []ast.Node{factorRef("x"), ast.Factor{Inner: inner}}, Ops: []ast.MulOp{ast.Div}},
		},
		Signs: []ast.Sign{ast.Minus},
	}}
	assertAST(t, block.Statement, want)
}

func TestParseBlockDeclarations(t *testing.T) {
	src := `
CONST m = 7, n = 85;
VAR x, y;
PROCEDURE p;
  VAR a;
  a := x;
PROCEDURE q;
  CALL p;
BEGIN
  ? x;
  CALL q;
  IF ODD x THEN ! x;
  WHILE x # 0 DO x := x - 1
END.`
	block, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	wantConsts := []ast.Const{
		{Ident: ast.Ident{Name: "m"}, Value: ast.Number{Value: 7}},
		{Ident: ast.Ident{Name: "n"}, Value: ast.Number{Value: 85}},
	}
	assertAST(t, block.ConstDecl, wantConsts)
	assertAST(t, block.VarDecl, []ast.Ident{{Name: "x"}, {Name: "y"}})
	if len(block.Procedures) != 2 || block.Procedures[0].Ident.Name != "p" || block.Procedures[1].Ident.Name != "q" {
		t.Fatalf("unexpected procedures: %# v", pretty.Formatter(block.Procedures))
	}
	assertAST(t, block.Procedures[0].Block.VarDecl, []ast.Ident{{Name: "a"}})
	assertAST(t, block.Procedures[1].Block.Statement, ast.Call{Ident: ast.Ident{Name: "p"}})

	body, ok := block.Statement.(ast.BeginEnd)
	if !ok || len(body.Statements) != 4 {
		t.Fatalf("unexpected body: %# v", pretty.Formatter(block.Statement))
	}
	assertAST(t, body.Statements[0], ast.QuestionMark{Ident: ast.Ident{Name: "x"}})
	ifThen, ok := body.Statements[2].(ast.IfThen)
	if !ok {
		t.Fatalf("statement 2 is %T", body.Statements[2])
	}
	if _, ok := ifThen.Condition.(ast.Odd); !ok {
		t.Fatalf("condition is %T", ifThen.Condition)
	}
	loop, ok := body.Statements[3].(ast.WhileDo)
	if !ok {
		t.Fatalf("statement 3 is %T", body.Statements[3])
	}
	cond, ok := loop.Condition.(ast.ComposedExpression)
	if !ok || cond.Op != ast.Ne {
		t.Fatalf("unexpected loop condition: %# v", pretty.Formatter(loop.Condition))
	}
}

func TestParseEmptyStatements(t *testing.T) {
	block, err := ParseProgram("VAR x; BEGIN x := 1; END.")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	body := block.Statement.(ast.BeginEnd)
	if len(body.Statements) != 2 {
		t.Fatalf("unexpected statements: %d", len(body.Statements))
	}
	if _, ok := body.Statements[1].(ast.Empty); !ok {
		t.Fatalf("trailing statement is %T", body.Statements[1])
	}

	block, err = ParseProgram(".")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, ok := block.Statement.(ast.Empty); !ok {
		t.Fatalf("statement is %T", block.Statement)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"x := 1", `1:7: expected "."`},
		{"x := 1. y", `1:9: unexpected "y" after end of program`},
		{"CONST a = b; .", `1:11: constant a needs a number`},
		{"VAR ; .", `1:5: expected identifier`},
		{"IF x THEN y := 1.", `1:6: expected relational operator`},
		{"WHILE x < 1 y := 1.", `1:13: expected DO`},
		{"BEGIN x := 1 .", `1:14: expected END`},
		{"x := (1 + 2.", `1:12: expected ")"`},
		{"x := * 2.", `1:6: unexpected "*" in expression`},
		{"PROCEDURE p; x := 1.", `1:20: expected ";"`},
	}
	for _, tc := range cases {
		_, err := ParseProgram(tc.src)
		var perr *Error
		if !errors.As(err, &perr) {
			t.Fatalf("%q: expected *Error, got %v", tc.src, err)
		}
		if !strings.HasPrefix(err.Error(), tc.want) {
			t.Fatalf("%q: error %q, want prefix %q", tc.src, err.Error(), tc.want)
		}
	}
}

func TestParseNestingLimit(t *testing.T) {
	src := "x := " + strings.Repeat("(", maxNesting+1) + "1" + strings.Repeat(")", maxNesting+1) + "."
	if _, err := ParseProgram(src); err == nil || !strings.Contains(err.Error(), "nesting too deep") {
		t.Fatalf("expected nesting error, got %v", err)
	}
}
