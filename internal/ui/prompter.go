// Package ui holds the terminal prompts shown when namescrub needs an
// answer from the user.
package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/example/namescrub/internal/prompt"
)

// Modes offered by ChooseMode.
const (
	ModeFiles  = "files"
	ModeFolder = "folder"
)

// ErrAborted is returned when the user cancels a prompt. It wraps
// context.Canceled so batch runs stop instead of moving to the next file.
var ErrAborted = fmt.Errorf("prompt cancelled: %w", context.Canceled)

// TUI asks questions with Bubble Tea programs, one program per question.
type TUI struct {
	opts []tea.ProgramOption

	// BeforePrompt runs before each program takes over the terminal.
	BeforePrompt func()

	runProgram func(tea.Model) (tea.Model, error)
}

// NewTUI creates a TUI prompter. opts are passed to every tea.Program.
func NewTUI(opts ...tea.ProgramOption) *TUI {
	t := &TUI{opts: opts}
	t.runProgram = func(m tea.Model) (tea.Model, error) {
		return tea.NewProgram(m, t.opts...).Run()
	}
	return t
}

func (t *TUI) run(m tea.Model) (tea.Model, error) {
	if t.BeforePrompt != nil {
		t.BeforePrompt()
	}
	final, err := t.runProgram(m)
	if err != nil {
		return nil, fmt.Errorf("failed to run prompt: %w", err)
	}
	return final, nil
}

func (t *TUI) ask(title, placeholder string, check func(string) error) (string, error) {
	final, err := t.run(newInputModel(title, placeholder, check))
	if err != nil {
		return "", err
	}
	m, ok := final.(inputModel)
	if !ok {
		return "", errors.New("internal error: invalid model")
	}
	if m.aborted {
		return "", ErrAborted
	}
	return m.value, nil
}

func checkChoice(s string) error {
	_, err := prompt.ParseChoice(s)
	return err
}

// ConfirmManual asks whether to type a new name for file.
func (t *TUI) ConfirmManual(file string) (bool, error) {
	answer, err := t.ask(fmt.Sprintf("Edit the name of '%s' from the terminal? (y/n)", file), "y or n", checkChoice)
	if err != nil {
		return false, err
	}
	return prompt.ParseChoice(answer)
}

// AskName reads a replacement name. Validation is left to the caller so
// failures are reported the same way for every prompter.
func (t *TUI) AskName(file string) (string, error) {
	return t.ask(fmt.Sprintf("New name for '%s'", file), "letters, numbers and spaces", nil)
}

// ChooseMode lets the user pick ModeFiles or ModeFolder.
func (t *TUI) ChooseMode() (string, error) {
	final, err := t.run(newModeModel())
	if err != nil {
		return "", err
	}
	m, ok := final.(modeModel)
	if !ok {
		return "", errors.New("internal error: invalid model")
	}
	if m.aborted {
		return "", ErrAborted
	}
	return m.selected, nil
}

// AskFolder reads a folder path.
func (t *TUI) AskFolder() (string, error) {
	return t.ask("Folder path", "/path/to/folder", nil)
}

// AskFiles reads a comma separated list of file paths.
func (t *TUI) AskFiles() ([]string, error) {
	raw, err := t.ask("File paths, separated by commas", "a.txt, b.txt", nil)
	if err != nil {
		return nil, err
	}
	return prompt.SplitList(raw), nil
}
