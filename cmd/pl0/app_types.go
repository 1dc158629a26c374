package main

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	plruntime "github.com/gosuda/pl0/runtime"
)

type appConfig struct {
	file     string
	source   string
	mode     string
	maxSteps int64
	stats    bool
	inputs   []string
	logLevel string
	logFile  string
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

type vmStartedMsg struct {
	events <-chan tea.Msg
}

type vmOutputMsg struct {
	out plruntime.Output
}

type vmDoneMsg struct {
	stats plruntime.Stats
	err   error
}

type vmInputResp struct {
	value   string
	aborted bool
}

type vmPromptMsg struct {
	req  plruntime.InputRequest
	resp chan vmInputResp
}

type vmPollMsg struct{}

type pendingInput struct {
	req  plruntime.InputRequest
	resp chan vmInputResp
}
