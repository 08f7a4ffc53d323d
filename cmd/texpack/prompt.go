package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompt asks on the terminal before a source file is overwritten.
type prompt struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompt(in io.Reader, out io.Writer) *prompt {
	return &prompt{in: bufio.NewReader(in), out: out}
}

// Confirm returns true only for an explicit "y" answer.
func (p *prompt) Confirm(path string) bool {
	fmt.Fprintf(p.out, "[?] OVERWRITE SOURCE FILE: <%s> ?\n", path)
	fmt.Fprintln(p.out, " -> [Y] [ENTER] to overwrite")
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}
