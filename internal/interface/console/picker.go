package console

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"twitchCli/internal/domain"
)

// Picker asks the viewer to choose one of n entries. ok is false when nothing
// usable was chosen.
type Picker interface {
	Pick(ctx context.Context, label string, n int, item func(i int) string) (index int, ok bool, err error)
}

type NumberPicker struct {
	prompter domain.Prompter
}

func NewNumberPicker(prompter domain.Prompter) *NumberPicker {
	return &NumberPicker{prompter: prompter}
}

func (p *NumberPicker) Pick(ctx context.Context, label string, n int, _ func(int) string) (int, bool, error) {
	line, err := p.prompter.PromptLine(ctx, label)
	if err != nil {
		return 0, false, err
	}

	selection, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || selection < 1 || selection > n {
		return 0, false, nil
	}
	return selection - 1, true, nil
}

type findFunc func(ctx context.Context, label string, n int, item func(int) string) (int, error)

// FuzzyPicker lets the viewer filter the entries interactively.
type FuzzyPicker struct {
	find findFunc
}

func NewFuzzyPicker() *FuzzyPicker {
	return &FuzzyPicker{find: fuzzyFind}
}

func (p *FuzzyPicker) Pick(ctx context.Context, label string, n int, item func(int) string) (int, bool, error) {
	if n == 0 {
		return 0, false, nil
	}

	idx, err := p.find(ctx, label, n, item)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if idx < 0 || idx >= n {
		return 0, false, nil
	}
	return idx, true, nil
}

func fuzzyFind(ctx context.Context, label string, n int, item func(int) string) (int, error) {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return fuzzyfinder.Find(
		indices,
		func(i int) string { return item(i) },
		fuzzyfinder.WithPromptString(label),
		fuzzyfinder.WithContext(ctx),
	)
}
