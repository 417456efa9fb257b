package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Interactor asks the user for confirmations and selections. Commands take
// the interface so tests can script the answers.
type Interactor interface {
	// PromptYesNo asks a yes/no question; the default answer is no.
	PromptYesNo(question string) bool
	// PromptInt asks for a number, returning defaultValue on empty input.
	PromptInt(question string, defaultValue int) (int, error)
}

// StdioInteractor reads answers from stdin and writes prompts to stdout.
type StdioInteractor struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewInteractor() *StdioInteractor {
	return &StdioInteractor{reader: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (i *StdioInteractor) PromptYesNo(question string) bool {
	fmt.Fprintf(i.out, "%s (y/N): ", question)
	answer, err := i.reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}

func (i *StdioInteractor) PromptInt(question string, defaultValue int) (int, error) {
	fmt.Fprintf(i.out, "%s [%d]: ", question, defaultValue)
	answer, err := i.reader.ReadString('\n')
	if err != nil {
		return defaultValue, nil
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("invalid selection %q", answer)
	}
	return n, nil
}
