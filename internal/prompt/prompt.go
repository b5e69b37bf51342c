// Package prompt implements line-oriented terminal questions.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ChoiceError describes an answer that was not exactly "y" or "n".
type ChoiceError struct {
	Input   string
	Invalid []rune
}

func (e *ChoiceError) Error() string {
	if len(e.Invalid) == 0 {
		return fmt.Sprintf("Invalid choice: %q. Please enter exactly one of y or n.", e.Input)
	}
	quoted := make([]string, len(e.Invalid))
	for i, r := range e.Invalid {
		quoted[i] = fmt.Sprintf("%q", r)
	}
	return fmt.Sprintf("Invalid choice. Invalid character(s): %s. Please enter y or n.", strings.Join(quoted, ", "))
}

// ParseChoice accepts "y" or "n" in either case, surrounded by optional
// whitespace. Anything else is a *ChoiceError naming the distinct characters
// that are not y or n.
func ParseChoice(input string) (bool, error) {
	raw := strings.TrimSpace(input)
	switch strings.ToLower(raw) {
	case "y":
		return true, nil
	case "n":
		return false, nil
	}

	var invalid []rune
	for _, r := range raw {
		switch r {
		case 'y', 'Y', 'n', 'N':
			continue
		}
		if !containsRune(invalid, r) {
			invalid = append(invalid, r)
		}
	}
	return false, &ChoiceError{Input: raw, Invalid: invalid}
}

func containsRune(rs []rune, r rune) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

// Line asks questions over a plain reader/writer pair.
type Line struct {
	in  *bufio.Reader
	out io.Writer

	// BeforePrompt runs before each question is written.
	BeforePrompt func()
}

// NewLine returns a Line prompter.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

// Ask prints label and returns the trimmed answer.
func (l *Line) Ask(label string) (string, error) {
	if l.BeforePrompt != nil {
		l.BeforePrompt()
	}
	if _, err := fmt.Fprint(l.out, label); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := l.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// ConfirmManual asks whether the user wants to type a new name for file,
// repeating the question until the answer parses.
func (l *Line) ConfirmManual(file string) (bool, error) {
	for {
		answer, err := l.Ask("Do you want to edit the name from terminal? (y/n): ")
		if err != nil {
			return false, err
		}
		ok, err := ParseChoice(answer)
		if err == nil {
			return ok, nil
		}
		fmt.Fprintln(l.out, err)
	}
}

// AskName reads a replacement name for file.
func (l *Line) AskName(file string) (string, error) {
	return l.Ask("Enter the new name: ")
}

// ChooseMode asks whether to process a list of files or a folder.
func (l *Line) ChooseMode() (string, error) {
	mode, err := l.Ask("Type 'files' to enter file paths or 'folder' to enter a folder path: ")
	if err != nil {
		return "", err
	}
	return strings.ToLower(mode), nil
}

// AskFolder reads a folder path.
func (l *Line) AskFolder() (string, error) {
	return l.Ask("Enter folder path: ")
}

// AskFiles reads a comma separated list of file paths.
func (l *Line) AskFiles() ([]string, error) {
	raw, err := l.Ask("Enter file paths separated by commas: ")
	if err != nil {
		return nil, err
	}
	return SplitList(raw), nil
}

// SplitList splits a comma separated list, dropping blank items.
func SplitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
