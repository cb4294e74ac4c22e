package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		input string
		want  Answer
	}{
		{"y", Affirmative},
		{"Y", Affirmative},
		{"yes", Affirmative},
		{"YES", Affirmative},
		{"  yes\n", Affirmative},
		{"n", Negative},
		{"N", Negative},
		{"no", Negative},
		{"No\n", Negative},
		{"", Invalid},
		{"maybe", Invalid},
		{"yess", Invalid},
		{"nope", Invalid},
		{"y n", Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpret(tt.input))
		})
	}
}

func TestPrompter_AskSequence(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("maybe\ny\nn\n"), &out)

	a, err := p.Ask("ready?")
	require.NoError(t, err)
	assert.Equal(t, Invalid, a)

	a, err = p.Ask("ready?")
	require.NoError(t, err)
	assert.Equal(t, Affirmative, a)

	a, err = p.Ask("ready?")
	require.NoError(t, err)
	assert.Equal(t, Negative, a)

	_, err = p.Ask("ready?")
	assert.ErrorIs(t, err, ErrNoInput)

	assert.Equal(t, 4, strings.Count(out.String(), "ready? (y/n): "))
}

func TestPrompter_LastLineWithoutNewline(t *testing.T) {
	p := NewPrompter(strings.NewReader("yes"), &bytes.Buffer{})
	a, err := p.Ask("ready?")
	require.NoError(t, err)
	assert.Equal(t, Affirmative, a)
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"n\n", false},
		{"whatever\n", false},
	}
	for _, tt := range tests {
		p := NewPrompter(strings.NewReader(tt.input), &bytes.Buffer{})
		ok, err := p.Confirm("create unit?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "input %q", tt.input)
	}
}
