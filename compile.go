package pl0

import (
	"github.com/gosuda/pl0/ast"
	"github.com/gosuda/pl0/parser"
	plruntime "github.com/gosuda/pl0/runtime"
)

// Compile parses a PL/0 program and builds a VM ready to Run.
func Compile(src string) (*plruntime.VM, error) {
	program, err := parser.ParseProgram(src)
	if err != nil {
		return nil, err
	}
	return plruntime.New(program)
}

// Parse only returns the AST for tooling use.
func Parse(src string) (*ast.Block, error) {
	return parser.ParseProgram(src)
}

// RunSource compiles src, queues inputs and runs it once.
func RunSource(src string, inputs ...string) ([]plruntime.Output, error) {
	vm, err := Compile(src)
	if err != nil {
		return nil, err
	}
	vm.EnqueueInput(inputs...)
	return vm.Run()
}
