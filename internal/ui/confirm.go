// internal/ui/confirm.go
package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/solana-lock/internal/ui/style"
)

// ConfirmModel asks the user to approve a rendered plan.
type ConfirmModel struct {
	summary   string
	keys      KeyMap
	help      help.Model
	confirmed bool
	done      bool
}

// NewConfirmModel creates a prompt for the given summary
func NewConfirmModel(summary string) ConfirmModel {
	return ConfirmModel{
		summary: summary,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel), key.Matches(keyMsg, m.keys.Quit):
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.done {
		if m.confirmed {
			return m.summary + "\n" + style.SuccessStyle.Render("sending...") + "\n"
		}
		return m.summary + "\n" + style.WarningStyle.Render("cancelled") + "\n"
	}
	return m.summary + "\n" +
		style.SubHeaderStyle.Render("Send this transaction?") + "\n" +
		style.HelpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())) + "\n"
}

// Confirmed reports whether the user approved.
func (m ConfirmModel) Confirmed() bool {
	return m.confirmed
}

// Confirm runs the prompt on the given terminal streams.
func Confirm(ctx context.Context, summary string, in io.Reader, out io.Writer) (bool, error) {
	p := tea.NewProgram(NewConfirmModel(summary),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	m, ok := final.(ConfirmModel)
	if !ok {
		return false, fmt.Errorf("confirmation prompt: unexpected model %T", final)
	}
	return m.Confirmed(), nil
}
