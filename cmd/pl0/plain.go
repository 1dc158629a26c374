package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	plruntime "github.com/gosuda/pl0/runtime"
)

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// lineReader feeds "?" statements. On a terminal it prompts with liner;
// otherwise it reads raw lines.
type lineReader struct {
	interactive bool
	reader      *bufio.Reader
	ln          *liner.State
}

func newLineReader(in io.Reader) *lineReader {
	return &lineReader{
		interactive: isTerminal(in),
		reader:      bufio.NewReader(in),
	}
}

func (r *lineReader) read(req plruntime.InputRequest) (string, error) {
	if r.interactive {
		if r.ln == nil {
			r.ln = liner.NewLiner()
			r.ln.SetCtrlCAborts(true)
		}
		line, err := r.ln.Prompt(req.Name + "? ")
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", errInputAborted
		}
		if err != nil {
			return "", err
		}
		r.ln.AppendHistory(line)
		return line, nil
	}
	line, err := r.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *lineReader) Close() {
	if r.ln != nil {
		_ = r.ln.Close()
	}
}

func runPlain(cfg appConfig, logger *slog.Logger) (plruntime.Stats, error) {
	vm, err := newVM(cfg, logger)
	if err != nil {
		return plruntime.Stats{}, err
	}

	input := newLineReader(cfg.stdin)
	defer input.Close()

	vm.SetOutputHook(func(out plruntime.Output) {
		fmt.Fprintln(cfg.stdout, out.Text)
	})
	vm.SetInputProvider(input.read)

	_, err = vm.Run()
	return vm.Stats(), err
}
