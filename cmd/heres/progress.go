package main

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// doneMsg carries the result of the background request.
type doneMsg struct{ err error }

// progressModel shows a spinner while one request is in flight. Keys other
// than ctrl+c are ignored, so the request cannot be sent twice from here.
type progressModel struct {
	spinner spinner.Model
	title   string
	run     func() error
	cancel  context.CancelFunc
	done    bool
	err     error
}

func newProgressModel(title string, run func() error, cancel context.CancelFunc) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	return progressModel{spinner: s, title: title, run: run, cancel: cancel}
}

func (m progressModel) Init() tea.Cmd {
	run := m.run
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return doneMsg{err: run()}
	})
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// The request goroutine sees the cancellation and reports back
			// through doneMsg.
			m.cancel()
			m.title = "Cancelando…"
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n" + styleHelp.Render("ctrl+c  cancelar") + "\n"
}

// runWithSpinner runs fn on a background goroutine and shows a spinner on
// stderr until it returns.
func runWithSpinner(ctx context.Context, title string, fn func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newProgressModel(title, func() error { return fn(ctx) }, cancel)
	final, err := tea.NewProgram(m, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return err
	}
	return final.(progressModel).err
}
