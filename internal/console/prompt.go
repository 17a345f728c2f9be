package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize is the longest answer Ask accepts. Longer lines end input.
const maxLineSize = 1 << 20

// Prompter reads one answer per line from the console.
type Prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

// NewPrompter reads answers from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Prompter{sc: sc, out: out}
}

// Ask prints label and returns the next line, trimmed. It returns io.EOF
// once input is exhausted.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.sc.Text()), nil
}
