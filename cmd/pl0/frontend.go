package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

type model struct {
	cfg      appConfig
	logger   *slog.Logger
	viewport viewport.Model
	input    textinput.Model
	ready    bool
	status   string
	running  bool
	events   <-chan tea.Msg
	pending  *pendingInput
	lines    []string
	runErr   error
}

var (
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func newModel(cfg appConfig, logger *slog.Logger) model {
	vp := viewport.New(80, 20)
	ti := textinput.New()
	ti.Prompt = "? "
	ti.CharLimit = 64
	ti.SetValue("")
	return model{
		cfg:      cfg,
		logger:   logger,
		viewport: vp,
		input:    ti,
		status:   "starting",
	}
}

func startVM(cfg appConfig, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		events := make(chan tea.Msg, 256)
		go runVM(cfg, logger, events)
		return vmStartedMsg{events: events}
	}
}

func waitVMEvent(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case msg, ok := <-events:
			if !ok {
				return nil
			}
			return msg
		case <-time.After(20 * time.Millisecond):
			return vmPollMsg{}
		}
	}
}

func sendInputResp(ch chan vmInputResp, resp vmInputResp) {
	select {
	case ch <- resp:
	default:
	}
}

func (m model) Init() tea.Cmd {
	return startVM(m.cfg, m.logger)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		footerLines := 2
		if m.pending != nil {
			footerLines++
		}
		vh := msg.Height - footerLines
		if vh < 1 {
			vh = 1
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = vh
		m.ready = true
		m.rebuildContent()
		return m, nil

	case vmStartedMsg:
		m.runErr = nil
		m.events = msg.events
		m.running = true
		m.status = "running"
		return m, waitVMEvent(m.events)

	case vmOutputMsg:
		m.lines = append(m.lines, msg.out.Text)
		m.rebuildContent()
		return m, waitVMEvent(m.events)

	case vmPollMsg:
		if m.running && m.pending == nil {
			return m, waitVMEvent(m.events)
		}
		return m, nil

	case vmPromptMsg:
		m.pending = &pendingInput{req: msg.req, resp: msg.resp}
		m.input.SetValue("")
		m.input.Placeholder = "integer"
		m.status = fmt.Sprintf("input for %s", msg.req.Name)
		cmd := m.input.Focus()
		return m, cmd

	case vmDoneMsg:
		m.running = false
		m.pending = nil
		m.runErr = msg.err
		m.input.Blur()
		summary := fmt.Sprintf("%s steps, %s calls", humanize.Comma(msg.stats.Steps), humanize.Comma(msg.stats.Calls))
		if msg.err != nil {
			m.status = "failed · " + summary
			m.lines = append(m.lines, errStyle.Render(msg.err.Error()))
		} else {
			m.status = "done · " + summary
		}
		m.rebuildContent()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.pending != nil {
				sendInputResp(m.pending.resp, vmInputResp{aborted: true})
			}
			if m.running {
				m.runErr = errInputAborted
			}
			return m, tea.Quit
		}

		if m.pending != nil {
			if msg.Type == tea.KeyEnter {
				val := strings.TrimSpace(m.input.Value())
				m.lines = append(m.lines, fmt.Sprintf("? %s = %s", m.pending.req.Name, val))
				sendInputResp(m.pending.resp, vmInputResp{value: val})
				m.pending = nil
				m.input.Blur()
				m.input.SetValue("")
				m.status = "running"
				m.rebuildContent()
				return m, waitVMEvent(m.events)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			if m.running {
				return m, nil
			}
			m.lines = nil
			m.rebuildContent()
			m.status = "restarting"
			return m, startVM(m.cfg, m.logger)
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "initializing..."
	}
	parts := []string{m.viewport.View()}
	if m.pending != nil {
		parts = append(parts, inputStyle.Render(m.input.View()))
	}
	help := "q quit · r rerun · g/G top/bottom"
	parts = append(parts, statusStyle.Render(m.cfg.file+" · "+m.status+" · "+help))
	return strings.Join(parts, "\n")
}

func (m *model) rebuildContent() {
	content := strings.Join(m.lines, "\n")
	if content == "" {
		content = "(no output yet)"
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

// result is the runtime error of the last run, or errInputAborted when the
// user quit while it was still running.
func (m model) result() error {
	return m.runErr
}

func runTUI(cfg appConfig, logger *slog.Logger) error {
	p := tea.NewProgram(newModel(cfg, logger), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(model); ok {
		return fm.result()
	}
	return nil
}
