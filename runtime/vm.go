package plruntime

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gosuda/pl0/ast"
)

// Output is one line printed by a "!" statement.
type Output struct {
	Text  string `json:"text"`
	Value int64  `json:"value"`
}

type VM struct {
	program       *ast.Block
	stack         callStack
	outputs       []Output
	outputHook    func(Output)
	inputProvider InputProvider
	input         inputState
	log           *slog.Logger
	stepLimit     int64
	stats         Stats
}

func New(program *ast.Block) (*VM, error) {
	if program == nil {
		return nil, fmt.Errorf("nil program")
	}
	vm := &VM{
		program: program,
		log:     slog.New(slog.DiscardHandler),
	}
	vm.stack.reset()
	return vm, nil
}

// SetLogger routes run and call tracing to l. A nil logger disables it.
func (vm *VM) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	vm.log = l
}

// SetOutputHook is called for every printed line as soon as it is produced.
func (vm *VM) SetOutputHook(hook func(Output)) {
	vm.outputHook = hook
}

// SetStepLimit aborts a run after n executed statements. Zero means no limit.
func (vm *VM) SetStepLimit(n int64) {
	if n < 0 {
		n = 0
	}
	vm.stepLimit = n
}

// Stats reports counters of the most recent run.
func (vm *VM) Stats() Stats {
	return vm.stats
}

// Run executes the program from a fresh call stack. On failure the lines
// printed before the failure are returned along with the error.
func (vm *VM) Run() ([]Output, error) {
	vm.stack.reset()
	vm.outputs = vm.outputs[:0]
	vm.stats = Stats{MaxDepth: 1}
	base := vm.log
	vm.log = base.With("run_id", uuid.NewString())
	defer func() { vm.log = base }()

	start := time.Now()
	vm.log.Debug("run start")
	err := vm.runBlock(vm.program)
	vm.stats.Elapsed = time.Since(start)
	out := append([]Output(nil), vm.outputs...)
	if err != nil {
		vm.log.Debug("run failed", "err", err, "steps", vm.stats.Steps)
		return out, err
	}
	vm.log.Debug("run done", "steps", vm.stats.Steps, "outputs", len(out))
	return out, nil
}

func (vm *VM) tick() error {
	vm.stats.Steps++
	if vm.stepLimit > 0 && vm.stats.Steps > vm.stepLimit {
		return runtimeErrorf(CodeStepLimit, "", "exceeded %d steps", vm.stepLimit)
	}
	return nil
}

func (vm *VM) runBlock(block *ast.Block) error {
	if block == nil {
		return runtimeErrorf(CodeInvariant, "", "nil block")
	}
	for _, c := range block.ConstDecl {
		if err := vm.declareConst(c); err != nil {
			return err
		}
	}
	for _, v := range block.VarDecl {
		if err := vm.stack.declare(v.Name, 0); err != nil {
			return err
		}
	}
	for _, p := range block.Procedures {
		if err := vm.declareProcedure(p); err != nil {
			return err
		}
	}
	if block.Statement == nil {
		return nil
	}
	return vm.runStatement(block.Statement)
}

func (vm *VM) declareConst(c ast.Const) error {
	return vm.stack.declare(c.Ident.Name, c.Value.Value)
}

func (vm *VM) declareProcedure(p ast.Procedure) error {
	return vm.stack.registerProcedure(p.Ident.Name, p.Block)
}

func (vm *VM) callProcedure(name string) error {
	body, err := vm.stack.lookupProcedure(name)
	if err != nil {
		return err
	}
	vm.stack.push()
	depth := vm.stack.depth()
	vm.stats.Calls++
	if depth > vm.stats.MaxDepth {
		vm.stats.MaxDepth = depth
	}
	vm.log.Debug("call", "procedure", name, "depth", depth)
	if err := vm.runBlock(body); err != nil {
		return err
	}
	if err := vm.stack.pop(); err != nil {
		return err
	}
	vm.log.Debug("return", "procedure", name, "depth", depth)
	return nil
}

func (vm *VM) runStatement(stmt ast.Node) error {
	if err := vm.tick(); err != nil {
		return err
	}
	switch s := stmt.(type) {
	case ast.BeginEnd:
		for _, st := range s.Statements {
			if err := vm.runStatement(st); err != nil {
				return err
			}
		}
		return nil
	case ast.IfThen:
		ok, err := vm.evalCondition(s.Condition)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		return vm.runStatement(s.Statement)
	case ast.WhileDo:
		for {
			ok, err := vm.evalCondition(s.Condition)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if err := vm.runStatement(s.Statement); err != nil {
				return err
			}
		}
	case ast.Assignment:
		v, err := vm.evalExpr(s.Expression)
		if err != nil {
			return err
		}
		target, err := vm.stack.resolveMut(s.Ident.Name)
		if err != nil {
			return err
		}
		target.Set(v)
		return nil
	case ast.Call:
		return vm.callProcedure(s.Ident.Name)
	case ast.QuestionMark:
		v, err := vm.readInput(s.Ident.Name)
		if err != nil {
			return err
		}
		target, err := vm.stack.resolveMut(s.Ident.Name)
		if err != nil {
			return err
		}
		target.Set(v)
		return nil
	case ast.ExclaimationMark:
		v, err := vm.evalExpr(s.Expression)
		if err != nil {
			return err
		}
		vm.emitValue(v)
		return nil
	case ast.Empty:
		return nil
	case ast.Const:
		return vm.declareConst(s)
	case ast.Procedure:
		return vm.declareProcedure(s)
	case ast.Block:
		return vm.runBlock(&s)
	case *ast.Block:
		return vm.runBlock(s)
	default:
		return runtimeErrorf(CodeInvariant, "", "%T is not a statement", stmt)
	}
}
