package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"twitchCli/internal/domain"
)

// Prompter reads answers line by line from in. A closed input reads as an
// empty answer.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

type lineResult struct {
	line string
	err  error
}

func (p *Prompter) PromptLine(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, label)

	done := make(chan lineResult, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		done <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return "", fmt.Errorf("console: reading input: %w", res.err)
		}
		return strings.TrimRight(res.line, "\r\n"), nil
	}
}

var _ domain.Prompter = (*Prompter)(nil)
