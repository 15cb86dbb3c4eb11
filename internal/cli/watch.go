package cli

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mkarsai/worktime/internal/session"
	"github.com/mkarsai/worktime/internal/tz"
)

// watchTickMsg is emitted by the minute ticker to trigger a re-render.
type watchTickMsg struct{}

type watchModel struct {
	tracker *session.Tracker
	view    string
	err     error
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case watchTickMsg:
		view, err := renderStatus(m.tracker, time.Now())
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.view = view
	}
	return m, nil
}

func (m watchModel) View() string {
	return m.view + "\n" + Silent("q to quit") + "\n"
}

func runStatusWatch(cmd *cobra.Command, tracker *session.Tracker) error {
	out := cmd.OutOrStdout()

	// Non-TTY fallback: print the panel once.
	if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		return runStatus(cmd, tracker)
	}

	view, err := renderStatus(tracker, time.Now())
	if err != nil {
		return err
	}

	m := watchModel{tracker: tracker, view: view}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(out))

	stop := tz.StartMinuteTicker(func() {
		p.Send(watchTickMsg{})
	})
	defer stop()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(watchModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
