package plruntime

import "github.com/gosuda/pl0/ast"

// frame is one activation: variable bindings plus the procedures declared
// while this activation was on top of the stack.
type frame struct {
	vars  map[string]int64
	procs map[string]*ast.Block
}

func newFrame() *frame {
	return &frame{
		vars:  map[string]int64{},
		procs: map[string]*ast.Block{},
	}
}

// callStack is owned by a single VM. Variables resolve top-down through every
// frame; procedures resolve in the top frame only.
type callStack struct {
	frames []*frame
}

func (cs *callStack) reset() {
	cs.frames = []*frame{newFrame()}
}

func (cs *callStack) depth() int {
	return len(cs.frames)
}

func (cs *callStack) top() (*frame, error) {
	if len(cs.frames) == 0 {
		return nil, runtimeErrorf(CodeInvariant, "", "empty call stack")
	}
	return cs.frames[len(cs.frames)-1], nil
}

func (cs *callStack) push() {
	cs.frames = append(cs.frames, newFrame())
}

// pop removes the frame of the current call. The global frame is never
// popped; doing so means a push/pop mismatch.
func (cs *callStack) pop() error {
	if len(cs.frames) <= 1 {
		return runtimeErrorf(CodeInvariant, "", "pop without matching push (depth %d)", len(cs.frames))
	}
	cs.frames[len(cs.frames)-1] = nil
	cs.frames = cs.frames[:len(cs.frames)-1]
	return nil
}

func (cs *callStack) declare(name string, v int64) error {
	fr, err := cs.top()
	if err != nil {
		return err
	}
	fr.vars[name] = v
	return nil
}

func (cs *callStack) find(name string) *frame {
	for i := len(cs.frames) - 1; i >= 0; i-- {
		if _, ok := cs.frames[i].vars[name]; ok {
			return cs.frames[i]
		}
	}
	return nil
}

func (cs *callStack) resolveRef(name string) (int64, error) {
	fr := cs.find(name)
	if fr == nil {
		return 0, runtimeErrorf(CodeUnresolved, name, "undeclared identifier %s", name)
	}
	return fr.vars[name], nil
}

// binding is a writable handle to the frame slot that holds a variable.
type binding struct {
	fr   *frame
	name string
}

func (b binding) Get() int64 {
	return b.fr.vars[b.name]
}

func (b binding) Set(v int64) {
	b.fr.vars[b.name] = v
}

func (cs *callStack) resolveMut(name string) (binding, error) {
	fr := cs.find(name)
	if fr == nil {
		return binding{}, runtimeErrorf(CodeUnresolved, name, "assignment to undeclared identifier %s", name)
	}
	return binding{fr: fr, name: name}, nil
}

func (cs *callStack) registerProcedure(name string, body *ast.Block) error {
	fr, err := cs.top()
	if err != nil {
		return err
	}
	fr.procs[name] = body
	return nil
}

func (cs *callStack) lookupProcedure(name string) (*ast.Block, error) {
	fr, err := cs.top()
	if err != nil {
		return nil, err
	}
	body, ok := fr.procs[name]
	if !ok || body == nil {
		return nil, runtimeErrorf(CodeUnknownProcedure, name, "procedure %s is not declared in this scope", name)
	}
	return body, nil
}
