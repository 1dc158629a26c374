package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gosuda/pl0"
	plruntime "github.com/gosuda/pl0/runtime"
)

var errInputAborted = errors.New("input aborted")

// newVM compiles the configured program and applies the runtime options
// shared by every front end.
func newVM(cfg appConfig, logger *slog.Logger) (*plruntime.VM, error) {
	vm, err := pl0.Compile(cfg.source)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", cfg.file, err)
	}
	vm.SetLogger(logger)
	vm.SetStepLimit(cfg.maxSteps)
	if len(cfg.inputs) > 0 {
		vm.EnqueueInput(cfg.inputs...)
	}
	return vm, nil
}

// newLogger builds the run logger. The TUI owns the terminal, so it only
// logs when a log file is configured.
func newLogger(cfg appConfig, tui bool) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		lvl = slog.LevelWarn
	}
	var w io.Writer = cfg.stderr
	closeFn := func() {}
	if cfg.logFile != "" {
		f, err := os.OpenFile(cfg.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closeFn, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	} else if tui {
		return slog.New(slog.DiscardHandler), closeFn, nil
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h).With("program", cfg.file), closeFn, nil
}

func runVM(cfg appConfig, logger *slog.Logger, events chan<- tea.Msg) {
	defer close(events)
	vm, err := newVM(cfg, logger)
	if err != nil {
		events <- vmDoneMsg{err: err}
		return
	}
	vm.SetOutputHook(func(out plruntime.Output) {
		events <- vmOutputMsg{out: out}
	})
	vm.SetInputProvider(func(req plruntime.InputRequest) (string, error) {
		resp := make(chan vmInputResp, 1)
		events <- vmPromptMsg{req: req, resp: resp}
		r := <-resp
		if r.aborted {
			return "", errInputAborted
		}
		return r.value, nil
	})

	_, err = vm.Run()
	events <- vmDoneMsg{stats: vm.Stats(), err: err}
}
