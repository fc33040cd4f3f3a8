package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tldr-it-stepankutaj/whodat/internal/app"
)

// BackMsg asks the parent view to close the current one.
type BackMsg struct{}

// Back is a tea.Cmd producing BackMsg.
func Back() tea.Msg { return BackMsg{} }

// frame is the top-level model. Closing the outermost view quits.
type frame struct {
	inner tea.Model
}

func (f frame) Init() tea.Cmd { return f.inner.Init() }

func (f frame) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BackMsg:
		return f, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return f, tea.Quit
		}
	}
	var cmd tea.Cmd
	f.inner, cmd = f.inner.Update(msg)
	return f, cmd
}

func (f frame) View() string { return f.inner.View() }

// RunModel runs m full screen until it goes back or the user hits ctrl+c.
func RunModel(m tea.Model) error {
	_, err := tea.NewProgram(frame{inner: m}).Run()
	return err
}

// Run starts the TUI on the home view.
func Run(appCtx app.Context) error {
	return RunModel(NewHome(appCtx.Registry))
}
