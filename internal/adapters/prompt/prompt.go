// Package prompt reads input values from the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/tasks/internal/core/domain"
	"go.trai.ch/tasks/internal/core/ports"
	"go.trai.ch/tasks/internal/ui/output"
	"go.trai.ch/tasks/internal/ui/style"
	"go.trai.ch/zerr"
)

var _ ports.Prompter = (*Prompter)(nil)

// Prompter implements ports.Prompter over a line-oriented reader.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	index  lipgloss.Style
	prompt lipgloss.Style
}

// New creates a Prompter reading from in and writing prompts to out.
// Nil streams select stdin and stdout.
func New(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(output.ColorProfile())

	return &Prompter{
		in:     bufio.NewReader(in),
		out:    out,
		index:  r.NewStyle().Foreground(style.Cyan),
		prompt: r.NewStyle().Bold(true),
	}
}

// Prompt asks for free text.
func (p *Prompter) Prompt(description string) (string, error) {
	_, _ = fmt.Fprint(p.out, p.prompt.Render(description+":")+" ")
	return p.readLine()
}

// PromptChoice prints a zero-based menu and returns the typed index.
func (p *Prompter) PromptChoice(description string, options []string) (int, error) {
	_, _ = fmt.Fprintf(p.out, "Options for [%s]:\n", description)
	for i, opt := range options {
		_, _ = fmt.Fprintf(p.out, "%s %s\n", p.index.Render(strconv.Itoa(i)+"."), opt)
	}
	_, _ = fmt.Fprint(p.out, p.prompt.Render(description+" (option index):")+" ")

	line, err := p.readLine()
	if err != nil {
		return 0, err
	}

	idx, err := strconv.Atoi(line)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidSelection, "option index must be a number"), "value", line)
	}
	return idx, nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", zerr.Wrap(err, "failed to read input")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
