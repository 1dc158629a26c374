package parser

import (
	"fmt"
	"strconv"
	"unicode"
)

type TokenKind int

const (
	TokEOF TokenKind = iota
	TokNumber
	TokIdent
	TokKeyword
	TokSeparator
)

func (k TokenKind) String() string {
	switch k {
	case TokNumber:
		return "number"
	case TokIdent:
		return "ident"
	case TokKeyword:
		return "keyword"
	case TokSeparator:
		return "separator"
	default:
		return "eof"
	}
}

type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

type Token struct {
	Kind  TokenKind
	Text  string
	Value int64
	Pos   Pos
}

func (t Token) String() string {
	switch t.Kind {
	case TokEOF:
		return "end of input"
	case TokNumber:
		return strconv.FormatInt(t.Value, 10)
	default:
		return t.Text
	}
}

func (t Token) is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}

var keywords = map[string]struct{}{
	"BEGIN":     {},
	"END":       {},
	"PROCEDURE": {},
	"WHILE":     {},
	"DO":        {},
	"IF":        {},
	"THEN":      {},
	"CALL":      {},
	"ODD":       {},
	"VAR":       {},
	"CONST":     {},
}

// IsKeyword reports whether s is a reserved word. Keywords are upper case only.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// Tokenize splits PL/0 source into tokens. The result always ends with a
// TokEOF token. Braced {comments} are skipped.
func Tokenize(src string) ([]Token, error) {
	r := []rune(src)
	toks := make([]Token, 0, len(r)/2)
	line, col := 1, 1
	advance := func(n int, i int) int {
		for k := 0; k < n; k++ {
			if r[i+k] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		return i + n
	}
	for i := 0; i < len(r); {
		ch := r[i]
		pos := Pos{Line: line, Col: col}
		if unicode.IsSpace(ch) {
			i = advance(1, i)
			continue
		}
		if ch == '{' {
			j := i + 1
			for j < len(r) && r[j] != '}' {
				j++
			}
			if j >= len(r) {
				return nil, &Error{Pos: pos, Msg: "unterminated comment"}
			}
			i = advance(j+1-i, i)
			continue
		}
		if unicode.IsDigit(ch) {
			j := i + 1
			for j < len(r) && unicode.IsDigit(r[j]) {
				j++
			}
			lit := string(r[i:j])
			v, err := strconv.ParseInt(lit, 10, 64)
			if err != nil {
				return nil, &Error{Pos: pos, Msg: fmt.Sprintf("invalid number %q", lit)}
			}
			toks = append(toks, Token{Kind: TokNumber, Text: lit, Value: v, Pos: pos})
			i = advance(j-i, i)
			continue
		}
		if isIdentStart(ch) {
			j := i + 1
			for j < len(r) && isIdentPart(r[j]) {
				j++
			}
			lit := string(r[i:j])
			kind := TokIdent
			if IsKeyword(lit) {
				kind = TokKeyword
			}
			toks = append(toks, Token{Kind: kind, Text: lit, Pos: pos})
			i = advance(j-i, i)
			continue
		}
		if i+1 < len(r) {
			switch two := string(r[i : i+2]); two {
			case ":=", ">=", "<=":
				toks = append(toks, Token{Kind: TokSeparator, Text: two, Pos: pos})
				i = advance(2, i)
				continue
			}
		}
		switch ch {
		case ',', ';', '=', '>', '<', '+', '-', '*', '/', '#', '.', '!', '?', '(', ')':
			toks = append(toks, Token{Kind: TokSeparator, Text: string(ch), Pos: pos})
			i = advance(1, i)
		default:
			return nil, &Error{Pos: pos, Msg: fmt.Sprintf("unexpected character %q", ch)}
		}
	}
	toks = append(toks, Token{Kind: TokEOF, Pos: Pos{Line: line, Col: col}})
	return toks, nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
