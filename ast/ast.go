package ast

// Node is any PL/0 syntax node. The set of variants is closed; the evaluator
// switches over the concrete types below.
type Node interface {
	isNode()
}

type Sign int

const (
	Plus Sign = iota
	Minus
)

func (s Sign) String() string {
	if s == Minus {
		return "-"
	}
	return "+"
}

type MulOp int

const (
	Mul MulOp = iota
	Div
)

func (op MulOp) String() string {
	if op == Div {
		return "/"
	}
	return "*"
}

type RelOp int

const (
	Eq RelOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

var relOpText = [...]string{
	Eq: "=",
	Ne: "#",
	Lt: "<",
	Le: "<=",
	Gt: ">",
	Ge: ">=",
}

func (op RelOp) String() string {
	if op < 0 || int(op) >= len(relOpText) {
		return "?"
	}
	return relOpText[op]
}

// ParseRelOp maps a separator to its relational operator.
func ParseRelOp(s string) (RelOp, bool) {
	for i, text := range relOpText {
		if text == s {
			return RelOp(i), true
		}
	}
	return 0, false
}

type Number struct {
	Value int64
}

func (Number) isNode() {}

// Ident is both a name reference and a declaration site; the parent decides.
type Ident struct {
	Name string
}

func (Ident) isNode() {}

type Factor struct {
	Inner Node
}

func (Factor) isNode() {}

// Term is a product/quotient chain: len(Ops) == len(Factors)-1.
type Term struct {
	Factors []Node
	Ops     []MulOp
}

func (Term) isNode() {}

// Expression is a sum/difference chain. Signs either covers every term
// (leading sign written) or every term but the first.
type Expression struct {
	Terms []Node
	Signs []Sign
}

func (Expression) isNode() {}

type ComposedExpression struct {
	Left  Node
	Op    RelOp
	Right Node
}

func (ComposedExpression) isNode() {}

type Odd struct {
	Expr Node
}

func (Odd) isNode() {}

type BeginEnd struct {
	Statements []Node
}

func (BeginEnd) isNode() {}

type IfThen struct {
	Condition Node
	Statement Node
}

func (IfThen) isNode() {}

type WhileDo struct {
	Condition Node
	Statement Node
}

func (WhileDo) isNode() {}

type Assignment struct {
	Ident      Ident
	Expression Node
}

func (Assignment) isNode() {}

type Call struct {
	Ident Ident
}

func (Call) isNode() {}

// QuestionMark reads one integer into Ident.
type QuestionMark struct {
	Ident Ident
}

func (QuestionMark) isNode() {}

// ExclaimationMark prints the value of Expression.
type ExclaimationMark struct {
	Expression Node
}

func (ExclaimationMark) isNode() {}

// Empty is the statement that does nothing.
type Empty struct{}

func (Empty) isNode() {}

type Const struct {
	Ident Ident
	Value Number
}

func (Const) isNode() {}

type Procedure struct {
	Ident Ident
	Block *Block
}

func (Procedure) isNode() {}

type Block struct {
	ConstDecl  []Const
	VarDecl    []Ident
	Procedures []Procedure
	Statement  Node
}

func (Block) isNode() {}
