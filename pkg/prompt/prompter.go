package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when input ends before an answer was read.
var ErrNoInput = errors.New("no more operator input")

// Confirmer asks the operator yes/no questions.
type Confirmer interface {
	// Ask prints question and returns the interpretation of the next line.
	Ask(question string) (Answer, error)
	// Confirm is a single-shot gate: only affirmative input returns true.
	Confirm(question string) (bool, error)
}

// Prompter reads answers line by line from an io.Reader.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading from in and writing questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) Ask(question string) (Answer, error) {
	if _, err := fmt.Fprintf(p.out, "%s (y/n): ", question); err != nil {
		return Invalid, fmt.Errorf("writing prompt: %w", err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) == "" {
				return Invalid, ErrNoInput
			}
		} else {
			return Invalid, fmt.Errorf("reading answer: %w", err)
		}
	}

	return Interpret(line), nil
}

func (p *Prompter) Confirm(question string) (bool, error) {
	a, err := p.Ask(question)
	if err != nil {
		return false, err
	}
	return a == Affirmative, nil
}
