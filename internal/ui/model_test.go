package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/example/namescrub/internal/prompt"
)

func typeText(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func pressEnter(m tea.Model) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestInputModelAcceptsValue(t *testing.T) {
	var m tea.Model = newInputModel("New name", "", nil)
	m = typeText(t, m, "holiday photos")
	m, cmd := pressEnter(m)

	im := m.(inputModel)
	if !im.done || im.value != "holiday photos" {
		t.Fatalf("Expected done with value, got %+v", im)
	}
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
}

func TestInputModelShowsValidationError(t *testing.T) {
	var m tea.Model = newInputModel("Edit?", "", checkChoice)
	m = typeText(t, m, "maybe")
	m, _ = pressEnter(m)

	im := m.(inputModel)
	if im.done {
		t.Fatal("Invalid answer should keep the prompt open")
	}
	var ce *prompt.ChoiceError
	if !errors.As(im.err, &ce) {
		t.Fatalf("Expected ChoiceError, got %v", im.err)
	}
	if !strings.Contains(im.View(), "Invalid choice") {
		t.Fatalf("Expected error in view, got:\n%s", im.View())
	}
	if im.input.Value() != "" {
		t.Fatalf("Expected input to be reset, got %q", im.input.Value())
	}

	m = typeText(t, im, "N")
	m, _ = pressEnter(m)
	im = m.(inputModel)
	if !im.done || im.value != "N" || im.err != nil {
		t.Fatalf("Expected valid answer to finish, got %+v", im)
	}
}

func TestInputModelEscAborts(t *testing.T) {
	var m tea.Model = newInputModel("Folder path", "", nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.(inputModel).aborted {
		t.Fatal("Expected aborted")
	}
}

func TestModeModelSelection(t *testing.T) {
	var m tea.Model = newModeModel()
	m, _ = pressEnter(m)
	if got := m.(modeModel).selected; got != ModeFiles {
		t.Fatalf("Expected %q, got %q", ModeFiles, got)
	}

	m = newModeModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = pressEnter(m)
	if got := m.(modeModel).selected; got != ModeFolder {
		t.Fatalf("Expected %q, got %q", ModeFolder, got)
	}
}

func TestModeModelQuit(t *testing.T) {
	var m tea.Model = newModeModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.(modeModel).aborted {
		t.Fatal("Expected aborted")
	}
}
