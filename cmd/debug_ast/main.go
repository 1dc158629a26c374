package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kr/pretty"

	"github.com/gosuda/pl0/ast"
	"github.com/gosuda/pl0/parser"
)

func main() {
	tokens := flag.Bool("tokens", false, "dump the token stream instead of the tree")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: debug_ast [-tokens] program.pl0")
		os.Exit(1)
	}
	b, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	src := string(b)

	if *tokens {
		toks, err := parser.Tokenize(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, tok := range toks {
			fmt.Printf("%-6s %-10s %s\n", tok.Pos, tok.Kind, tok.Text)
		}
		return
	}

	prog, err := parser.ParseProgram(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	summarize(prog, "")
	fmt.Printf("%# v\n", pretty.Formatter(prog))
}

func summarize(b *ast.Block, indent string) {
	fmt.Printf("%sconsts=%d vars=%d procs=%d stmt=%T\n", indent, len(b.ConstDecl), len(b.VarDecl), len(b.Procedures), b.Statement)
	for _, p := range b.Procedures {
		fmt.Printf("%sPROCEDURE %s\n", indent, p.Ident.Name)
		summarize(p.Block, indent+"  ")
	}
}
