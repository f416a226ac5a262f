package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dualdiff/internal/view"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(50, m.width-20))

	case pollMsg:
		m.s.Poll()
		if m.s.Refreshing() {
			cmd = m.tick()
		}

	case settledMsg:
		cmd = m.refresh()

	case watchMsg:
		m.log.Debug("change detected, refreshing")
		cmd = tea.Batch(m.refresh(), waitWatch(m.watch))

	case launchedMsg:
		if msg.err != nil {
			m.s.Notify(fmt.Sprintf("External tool failed: %v", msg.err))
		}
		cmd = m.refresh()

	case tea.KeyMsg:
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
	}

	m.scroll()
	return m, cmd
}

// handleKey processes keyboard input. It reports whether to quit.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.s.PendingCopy() != nil {
		return m.handleConfirmKey(msg)
	}

	// Moving on dismisses the last message and brings back the summary.
	if key.Matches(msg, m.keys.Navigation()...) {
		m.s.Notify("")
	}

	sel := m.s.Selection()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return nil, true

	case key.Matches(msg, m.keys.Up):
		m.s.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.s.Move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.s.PageUp(m.height)
	case key.Matches(msg, m.keys.PageDown):
		m.s.PageDown(m.height)
	case key.Matches(msg, m.keys.Home):
		m.s.First()
	case key.Matches(msg, m.keys.End):
		m.s.Last()
	case key.Matches(msg, m.keys.Left):
		m.s.SwitchPanel(0)
	case key.Matches(msg, m.keys.Right):
		m.s.SwitchPanel(1)

	case key.Matches(msg, m.keys.Enter):
		return m.enter(), false

	case key.Matches(msg, m.keys.FilterAll):
		m.s.SetFilter(view.All)
	case key.Matches(msg, m.keys.FilterDiffs):
		m.s.SetFilter(view.Differences)
	case key.Matches(msg, m.keys.FilterMods):
		m.s.SetFilter(view.Modified)
	case key.Matches(msg, m.keys.ExpandAll):
		m.s.ExpandAll()
	case key.Matches(msg, m.keys.CollapseAll):
		m.s.CollapseAll()
	case key.Matches(msg, m.keys.Swap):
		m.s.Swap()
	case key.Matches(msg, m.keys.Refresh):
		return m.refresh(), false

	case key.Matches(msg, m.keys.CopyRight):
		if sel.Active == 0 {
			m.prepareCopy()
		}
	case key.Matches(msg, m.keys.CopyLeft):
		if sel.Active == 1 {
			m.prepareCopy()
		}

	case key.Matches(msg, m.keys.Yank):
		m.yank()
	}
	return nil, false
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return nil, true
	case key.Matches(msg, m.keys.Confirm):
		wait, err := m.s.ExecuteCopy()
		if err != nil {
			return nil, false
		}
		return tea.Tick(wait, func(time.Time) tea.Msg { return settledMsg{} }), false
	case key.Matches(msg, m.keys.Cancel):
		m.s.CancelCopy()
	}
	return nil, false
}

// enter toggles a directory or hands the terminal to the diff tool.
func (m Model) enter() tea.Cmd {
	row, ok := m.s.Selected()
	if !ok {
		return nil
	}
	if row.Node.IsDir {
		m.s.Toggle()
		return nil
	}
	cmd, ok, err := m.s.LaunchCommand()
	if err != nil || !ok {
		return nil
	}
	m.log.Debug("launching external tool", "args", cmd.Args)
	return tea.ExecProcess(cmd, func(err error) tea.Msg { return launchedMsg{err: err} })
}

func (m Model) prepareCopy() {
	if !m.s.CanCopy() {
		return
	}
	if _, err := m.s.PrepareCopy(); err != nil {
		m.s.Notify(fmt.Sprintf("Cannot copy: %v", err))
	}
}

func (m Model) yank() {
	p, ok := m.s.SelectedPath()
	if !ok {
		return
	}
	if err := m.clipboard(p); err != nil {
		m.s.Notify(fmt.Sprintf("Clipboard unavailable: %v", err))
		return
	}
	m.s.Notify("Copied path: " + p)
}
