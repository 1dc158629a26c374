//go:build js && wasm

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall/js"

	"github.com/gosuda/pl0"
	plruntime "github.com/gosuda/pl0/runtime"
)

type runResult struct {
	Outputs []plruntime.Output `json:"outputs"`
	Error   string             `json:"error,omitempty"`
	Code    string             `json:"code,omitempty"`
}

type inputRequestPayload struct {
	Name string `json:"name"`
	Seq  int    `json:"seq"`
}

const abortSentinel = "__PL0_ABORT__"

// inputPrompt asks the page through pl0InputNext when the queued inputs run
// out. A missing callback or a null answer ends input.
func inputPrompt(req plruntime.InputRequest) (string, error) {
	fn := js.Global().Get("pl0InputNext")
	if fn.Type() != js.TypeFunction {
		return "", io.EOF
	}
	b, _ := json.Marshal(inputRequestPayload{Name: req.Name, Seq: req.Seq})
	v := fn.Invoke(string(b))
	if v.IsUndefined() || v.IsNull() {
		return "", io.EOF
	}
	out := strings.TrimSpace(v.String())
	if out == abortSentinel {
		return "", errors.New("input aborted")
	}
	return out, nil
}

func runProgram(this js.Value, args []js.Value) any {
	result := runResult{Outputs: []plruntime.Output{}}
	if len(args) < 1 {
		result.Error = "pl0Run requires program source"
		return encode(result)
	}

	var queued []string
	if len(args) > 1 && strings.TrimSpace(args[1].String()) != "" {
		if err := json.Unmarshal([]byte(args[1].String()), &queued); err != nil {
			result.Error = fmt.Sprintf("invalid inputs json: %v", err)
			return encode(result)
		}
	}

	vm, err := pl0.Compile(args[0].String())
	if err != nil {
		result.Error = fmt.Sprintf("compile: %v", err)
		return encode(result)
	}
	vm.SetStepLimit(stepLimitArg(args))
	if len(queued) > 0 {
		vm.EnqueueInput(queued...)
	}
	vm.SetInputProvider(inputPrompt)

	out, err := vm.Run()
	result.Outputs = append(result.Outputs, out...)
	if err != nil {
		result.Error = fmt.Sprintf("runtime: %v", err)
		if code, ok := plruntime.ErrorCode(err); ok {
			result.Code = string(code)
		}
	}
	return encode(result)
}

// stepLimitArg reads the optional third argument; anything but a number
// (missing, null, undefined) leaves the run unbounded.
func stepLimitArg(args []js.Value) int64 {
	if len(args) < 3 || args[2].Type() != js.TypeNumber {
		return 0
	}
	return int64(args[2].Int())
}

func encode(r runResult) string {
	b, _ := json.Marshal(r)
	return string(b)
}

func main() {
	js.Global().Set("pl0Run", js.FuncOf(runProgram))
	select {}
}
