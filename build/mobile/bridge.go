package mobile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gosuda/pl0"
	plruntime "github.com/gosuda/pl0/runtime"
)

type runResult struct {
	Outputs []plruntime.Output `json:"outputs"`
	Error   string             `json:"error,omitempty"`
	Code    string             `json:"code,omitempty"`
	Steps   int64              `json:"steps"`
}

// Run executes a PL/0 program and returns a JSON result.
// inputsJSON format: ["1","-7", ...]
// maxSteps of 0 leaves the run unbounded.
func Run(source, inputsJSON string, maxSteps int64) string {
	result := runResult{Outputs: []plruntime.Output{}}

	if strings.TrimSpace(source) == "" {
		result.Error = "no program provided"
		return encode(result)
	}

	var queued []string
	if strings.TrimSpace(inputsJSON) != "" {
		if err := json.Unmarshal([]byte(inputsJSON), &queued); err != nil {
			result.Error = fmt.Sprintf("invalid inputs json: %v", err)
			return encode(result)
		}
	}

	vm, err := pl0.Compile(source)
	if err != nil {
		result.Error = fmt.Sprintf("compile: %v", err)
		return encode(result)
	}
	vm.SetStepLimit(maxSteps)
	if len(queued) > 0 {
		vm.EnqueueInput(queued...)
	}

	out, err := vm.Run()
	result.Outputs = append(result.Outputs, out...)
	result.Steps = vm.Stats().Steps
	if err != nil {
		result.Error = fmt.Sprintf("runtime: %v", err)
		if code, ok := plruntime.ErrorCode(err); ok {
			result.Code = string(code)
		}
	}
	return encode(result)
}

func encode(r runResult) string {
	b, _ := json.Marshal(r)
	return string(b)
}
