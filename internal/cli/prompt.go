package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// ErrNotInteractive is returned when a choice is missing and stdin is not a terminal.
var ErrNotInteractive = errors.New("stdin is not a terminal")

// isTerminal reports whether r is an interactive terminal.
var isTerminal = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// prompter asks for missing choices on the command's stdin.
type prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{
		in:          bufio.NewReader(cmd.InOrStdin()),
		out:         cmd.OutOrStdout(),
		interactive: isTerminal(cmd.InOrStdin()),
	}
}

// Select returns one of items. A single item is returned without asking.
// Answers are a 1-based index or the item itself; empty selects the first.
func (p *prompter) Select(label, flag string, items []string) (string, error) {
	switch len(items) {
	case 0:
		return "", fmt.Errorf("no %s to choose from", label)
	case 1:
		return items[0], nil
	}

	if !p.interactive {
		return "", fmt.Errorf("%w: pass --%s (one of: %s)", ErrNotInteractive, flag, strings.Join(items, ", "))
	}

	fmt.Fprintf(p.out, "Select %s:\n", label)
	for i, item := range items {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, item)
	}
	fmt.Fprint(p.out, "Choice [1]: ")

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return items[0], nil
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(items) {
		return items[n-1], nil
	}
	for _, item := range items {
		if item == answer {
			return item, nil
		}
	}
	return "", fmt.Errorf("invalid %s choice %q", label, answer)
}

// Confirm asks a yes/no question; anything but y or yes is no.
func (p *prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N] ", question)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
