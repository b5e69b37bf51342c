package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/example/namescrub/pkg/ui" // Import the shared styles
)

// inputModel asks one free-text question. check, when set, runs on Enter and
// keeps the prompt open with the error shown until it passes.
type inputModel struct {
	title   string
	input   textinput.Model
	check   func(string) error
	err     error
	value   string
	done    bool
	aborted bool
}

func newInputModel(title, placeholder string, check func(string) error) inputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 255
	ti.Focus()

	return inputModel{title: title, input: ti, check: check}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			if m.check != nil {
				if err := m.check(v); err != nil {
					m.err = err
					m.input.SetValue("")
					return m, nil
				}
			}
			m.err = nil
			m.value = v
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return fmt.Sprintf("%s %s\n", ui.PromptStyle.Render(m.title), m.value)
	}
	if m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n" + ui.PromptStyle.Render(m.title) + "\n")
	b.WriteString(m.input.View() + "\n")
	if m.err != nil {
		b.WriteString(ui.ErrorTextStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString(ui.HintStyle.Render("enter to confirm • esc to cancel") + "\n")
	return b.String()
}

type modeItem struct {
	name string
	desc string
}

func (i modeItem) Title() string       { return i.name }
func (i modeItem) Description() string { return i.desc }
func (i modeItem) FilterValue() string { return i.name }

// modeModel lets the user pick between listing files and naming a folder.
type modeModel struct {
	list     list.Model
	selected string
	aborted  bool
}

func newModeModel() modeModel {
	items := []list.Item{
		modeItem{name: ModeFiles, desc: "Enter one or more file paths"},
		modeItem{name: ModeFolder, desc: "Rename every file in one folder"},
	}
	l := list.New(items, list.NewDefaultDelegate(), 48, 12)
	l.Title = "What do you want to rename?"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return modeModel{list: l}
}

func (m modeModel) Init() tea.Cmd { return nil }

func (m modeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, min(msg.Height-2, 12))

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if i, ok := m.list.SelectedItem().(modeItem); ok {
				m.selected = i.name
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modeModel) View() string {
	if m.selected != "" || m.aborted {
		return ""
	}
	return "\n" + m.list.View()
}
