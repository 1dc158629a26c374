package parser

import (
	"fmt"

	"github.com/gosuda/pl0/ast"
)

const maxNesting = 256

type parser struct {
	tokens []Token
	pos    int
	depth  int
}

func (p *parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t Token, format string, args ...any) error {
	return &Error{Pos: t.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) acceptSep(text string) bool {
	if p.peek().is(TokSeparator, text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) acceptKeyword(text string) bool {
	if p.peek().is(TokKeyword, text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expectSep(text string) error {
	if t := p.peek(); !t.is(TokSeparator, text) {
		return p.errorf(t, "expected %q, got %q", text, t.String())
	}
	p.next()
	return nil
}

func (p *parser) expectKeyword(text string) error {
	if t := p.peek(); !t.is(TokKeyword, text) {
		return p.errorf(t, "expected %s, got %q", text, t.String())
	}
	p.next()
	return nil
}

func (p *parser) expectIdent() (ast.Ident, error) {
	t := p.peek()
	if t.Kind != TokIdent {
		return ast.Ident{}, p.errorf(t, "expected identifier, got %q", t.String())
	}
	p.next()
	return ast.Ident{Name: t.Text}, nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxNesting {
		return p.errorf(p.peek(), "nesting too deep")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) parseBlock() (*ast.Block, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	block := &ast.Block{}
	if p.acceptKeyword("CONST") {
		for {
			ident, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			if err := p.expectSep("="); err != nil {
				return nil, err
			}
			t := p.peek()
			if t.Kind != TokNumber {
				return nil, p.errorf(t, "constant %s needs a number, got %q", ident.Name, t.String())
			}
			p.next()
			block.ConstDecl = append(block.ConstDecl, ast.Const{Ident: ident, Value: ast.Number{Value: t.Value}})
			if !p.acceptSep(",") {
				break
			}
		}
		if err := p.expectSep(";"); err != nil {
			return nil, err
		}
	}
	if p.acceptKeyword("VAR") {
		for {
			ident, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			block.VarDecl = append(block.VarDecl, ident)
			if !p.acceptSep(",") {
				break
			}
		}
		if err := p.expectSep(";"); err != nil {
			return nil, err
		}
	}
	for p.acceptKeyword("PROCEDURE") {
		ident, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectSep(";"); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if err := p.expectSep(";"); err != nil {
			return nil, err
		}
		block.Procedures = append(block.Procedures, ast.Procedure{Ident: ident, Block: body})
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	block.Statement = stmt
	return block, nil
}

func (p *parser) parseStatement() (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	t := p.peek()
	switch {
	case t.Kind == TokIdent:
		p.next()
		if err := p.expectSep(":="); err != nil {
			return nil, err
		}
		ex, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.Assignment{Ident: ast.Ident{Name: t.Text}, Expression: ex}, nil
	case t.is(TokKeyword, "CALL"):
		p.next()
		ident, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		return ast.Call{Ident: ident}, nil
	case t.is(TokSeparator, "?"):
		p.next()
		ident, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		return ast.QuestionMark{Ident: ident}, nil
	case t.is(TokSeparator, "!"):
		p.next()
		ex, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.ExclaimationMark{Expression: ex}, nil
	case t.is(TokKeyword, "BEGIN"):
		p.next()
		stmts := []ast.Node{}
		for {
			st, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, st)
			if !p.acceptSep(";") {
				break
			}
		}
		if err := p.expectKeyword("END"); err != nil {
			return nil, err
		}
		return ast.BeginEnd{Statements: stmts}, nil
	case t.is(TokKeyword, "IF"):
		p.next()
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("THEN"); err != nil {
			return nil, err
		}
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		return ast.IfThen{Condition: cond, Statement: st}, nil
	case t.is(TokKeyword, "WHILE"):
		p.next()
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("DO"); err != nil {
			return nil, err
		}
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		return ast.WhileDo{Condition: cond, Statement: st}, nil
	default:
		return ast.Empty{}, nil
	}
}

func (p *parser) parseCondition() (ast.Node, error) {
	if p.acceptKeyword("ODD") {
		ex, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.Odd{Expr: ex}, nil
	}
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	op, ok := ast.RelOp(0), false
	if t.Kind == TokSeparator {
		op, ok = ast.ParseRelOp(t.Text)
	}
	if !ok {
		return nil, p.errorf(t, "expected relational operator, got %q", t.String())
	}
	p.next()
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.ComposedExpression{Left: left, Op: op, Right: right}, nil
}

func (p *parser) parseSign() (ast.Sign, bool) {
	switch {
	case p.acceptSep("+"):
		return ast.Plus, true
	case p.acceptSep("-"):
		return ast.Minus, true
	default:
		return ast.Plus, false
	}
}

func (p *parser) parseExpression() (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	ex := ast.Expression{}
	if sign, ok := p.parseSign(); ok {
		ex.Signs = append(ex.Signs, sign)
	}
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	ex.Terms = append(ex.Terms, first)
	for {
		sign, ok := p.parseSign()
		if !ok {
			break
		}
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		ex.Terms = append(ex.Terms, term)
		ex.Signs = append(ex.Signs, sign)
	}
	return ex, nil
}

func (p *parser) parseTerm() (ast.Node, error) {
	first, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	term := ast.Term{Factors: []ast.Node{first}}
	for {
		var op ast.MulOp
		switch {
		case p.acceptSep("*"):
			op = ast.Mul
		case p.acceptSep("/"):
			op = ast.Div
		default:
			return term, nil
		}
		f, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		term.Factors = append(term.Factors, f)
		term.Ops = append(term.Ops, op)
	}
}

func (p *parser) parseFactor() (ast.Node, error) {
	t := p.next()
	switch {
	case t.Kind == TokNumber:
		return ast.Factor{Inner: ast.Number{Value: t.Value}}, nil
	case t.Kind == TokIdent:
		return ast.Factor{Inner: ast.Ident{Name: t.Text}}, nil
	case t.is(TokSeparator, "("):
		ex, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectSep(")"); err != nil {
			return nil, err
		}
		return ast.Factor{Inner: ex}, nil
	default:
		return nil, p.errorf(t, "unexpected %q in expression", t.String())
	}
}
