package console

import (
	"context"
	"errors"
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedPrompter struct {
	line   string
	err    error
	labels []string
}

func (p *scriptedPrompter) PromptLine(_ context.Context, label string) (string, error) {
	p.labels = append(p.labels, label)
	return p.line, p.err
}

func TestNumberPicker(t *testing.T) {
	tests := []struct {
		name  string
		input string
		index int
		ok    bool
	}{
		{"first", "1", 0, true},
		{"last", "3", 2, true},
		{"padded", " 2 ", 1, true},
		{"zero", "0", 0, false},
		{"out of range", "4", 0, false},
		{"negative", "-1", 0, false},
		{"not a number", "abc", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompter := &scriptedPrompter{line: tt.input}
			picker := NewNumberPicker(prompter)

			index, ok, err := picker.Pick(context.Background(), "Stream ID: ", 3, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.index, index)
			assert.Equal(t, []string{"Stream ID: "}, prompter.labels)
		})
	}
}

func TestNumberPicker_PromptError(t *testing.T) {
	picker := NewNumberPicker(&scriptedPrompter{err: context.Canceled})

	_, ok, err := picker.Pick(context.Background(), "VOD ID: ", 3, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestFuzzyPicker(t *testing.T) {
	items := []string{"Alice", "Bob"}
	var seen []string

	picker := &FuzzyPicker{find: func(_ context.Context, label string, n int, item func(int) string) (int, error) {
		assert.Equal(t, "Stream: ", label)
		for i := 0; i < n; i++ {
			seen = append(seen, item(i))
		}
		return 1, nil
	}}

	index, ok, err := picker.Pick(context.Background(), "Stream: ", len(items), func(i int) string { return items[i] })
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, index)
	assert.Equal(t, items, seen)
}

func TestFuzzyPicker_Abort(t *testing.T) {
	picker := &FuzzyPicker{find: func(context.Context, string, int, func(int) string) (int, error) {
		return -1, fuzzyfinder.ErrAbort
	}}

	_, ok, err := picker.Pick(context.Background(), "", 2, func(int) string { return "" })
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFuzzyPicker_Error(t *testing.T) {
	picker := &FuzzyPicker{find: func(context.Context, string, int, func(int) string) (int, error) {
		return -1, errors.New("tty unavailable")
	}}

	_, ok, err := picker.Pick(context.Background(), "", 2, func(int) string { return "" })
	assert.EqualError(t, err, "tty unavailable")
	assert.False(t, ok)
}

func TestFuzzyPicker_NothingToPick(t *testing.T) {
	picker := &FuzzyPicker{find: func(context.Context, string, int, func(int) string) (int, error) {
		t.Fatal("finder must not open for an empty list")
		return 0, nil
	}}

	_, ok, err := picker.Pick(context.Background(), "", 0, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}
