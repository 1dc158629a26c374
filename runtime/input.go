package plruntime

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// InputRequest describes a pending "?" statement.
type InputRequest struct {
	Name string
	Seq  int
}

// InputProvider returns one line of text for req. Returning io.EOF means no
// more input exists.
type InputProvider func(req InputRequest) (string, error)

type inputState struct {
	Queue []string
}

func (vm *VM) SetInputProvider(p InputProvider) {
	vm.inputProvider = p
}

// EnqueueInput supplies lines that are consumed before the provider is asked.
func (vm *VM) EnqueueInput(values ...string) {
	vm.input.Queue = append(vm.input.Queue, values...)
}

func (vm *VM) consumeQueuedInput() (string, bool) {
	if len(vm.input.Queue) == 0 {
		return "", false
	}
	v := vm.input.Queue[0]
	vm.input.Queue = vm.input.Queue[1:]
	return v, true
}

func (vm *VM) readInput(name string) (int64, error) {
	vm.stats.Inputs++
	req := InputRequest{Name: name, Seq: vm.stats.Inputs}
	raw, ok := vm.consumeQueuedInput()
	if !ok {
		if vm.inputProvider == nil {
			return 0, runtimeErrorf(CodeInput, name, "no input available for %s", name)
		}
		line, err := vm.inputProvider(req)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, runtimeErrorf(CodeInput, name, "no input available for %s", name)
			}
			return 0, &RuntimeError{Code: CodeInput, Name: name, Message: "read input for " + name, Cause: err}
		}
		raw = line
	}
	vm.log.Debug("input", "name", name, "raw", raw)
	n, ok := parseIntInput(raw)
	if !ok {
		return 0, runtimeErrorf(CodeBadInput, name, "input %q for %s is not an integer", raw, name)
	}
	return n, nil
}

func parseIntInput(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (vm *VM) emitValue(v int64) {
	out := Output{Text: strconv.FormatInt(v, 10), Value: v}
	vm.outputs = append(vm.outputs, out)
	vm.stats.Outputs++
	if vm.outputHook != nil {
		vm.outputHook(out)
	}
}
