package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"denv.sh/cli/internal/core/platform"
)

var (
	pickerTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).MarginBottom(1)
	pickerSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	pickerHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// pickerModel holds the state for the Bubble Tea platform picker
type pickerModel struct {
	platforms []platform.Platform
	cursor    int
	chosen    platform.Platform
	aborted   bool
}

// pickPlatform runs an interactive selector over the supported platforms.
// It requires a terminal on standard input.
func pickPlatform() (platform.Platform, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return platform.Platform{}, fmt.Errorf("cannot pick a platform: standard input is not a terminal")
	}

	model := newPickerModel()
	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return platform.Platform{}, fmt.Errorf("platform picker failed: %w", err)
	}

	result := final.(pickerModel)
	if result.aborted {
		return platform.Platform{}, fmt.Errorf("no platform selected")
	}
	return result.chosen, nil
}

// newPickerModel creates the picker with the cursor on the host platform
// when the host is in the supported set.
func newPickerModel() pickerModel {
	model := pickerModel{platforms: platform.Supported()}
	if host, err := platform.Current(); err == nil {
		for i, p := range model.platforms {
			if p == host {
				model.cursor = i
			}
		}
	}
	return model
}

// Init implements tea.Model
func (m pickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.platforms)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = m.platforms[m.cursor]
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m pickerModel) View() string {
	if !m.chosen.IsZero() || m.aborted {
		return ""
	}

	s := pickerTitleStyle.Render("Select target platform") + "\n"
	for i, p := range m.platforms {
		if i == m.cursor {
			s += pickerSelectedStyle.Render("> "+p.String()) + "\n"
		} else {
			s += "  " + p.String() + "\n"
		}
	}
	s += pickerHelpStyle.Render("enter: select • q: cancel")
	return s
}
