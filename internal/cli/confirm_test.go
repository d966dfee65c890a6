package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmer_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "y", input: "y\n", want: true},
		{name: "yes uppercase", input: "YES\n", want: true},
		{name: "n", input: "n\n", want: false},
		{name: "empty answer defaults to no", input: "\n", want: false},
		{name: "anything else is no", input: "sure\n", want: false},
		{name: "end of input is no", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewConfirmer(strings.NewReader(tt.input), &out)

			got, err := c.Confirm(context.Background(), "Delete it?")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete it?")
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}

func TestConfirmer_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewConfirmer(strings.NewReader("y\n"), &bytes.Buffer{})

	ok, err := c.Confirm(ctx, "Delete it?")

	assert.ErrorIs(t, err, ErrInputCancelled)
	assert.False(t, ok)
}
