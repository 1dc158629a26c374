package parser

import (
	"fmt"

	"github.com/gosuda/pl0/ast"
)

// Error is a lex or parse failure at a source position.
type Error struct {
	Pos Pos
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ParseProgram tokenizes and parses a complete program ("block .").
func ParseProgram(src string) (*ast.Block, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses an already tokenized program. toks must end with TokEOF.
func ParseTokens(toks []Token) (*ast.Block, error) {
	if len(toks) == 0 || toks[len(toks)-1].Kind != TokEOF {
		toks = append(append([]Token(nil), toks...), Token{Kind: TokEOF})
	}
	p := &parser{tokens: toks}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expectSep("."); err != nil {
		return nil, err
	}
	if t := p.peek(); t.Kind != TokEOF {
		return nil, p.errorf(t, "unexpected %q after end of program", t.String())
	}
	return block, nil
}
