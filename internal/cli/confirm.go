package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks yes/no questions on a terminal. Anything but y or yes is a no.
type Confirmer struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewConfirmer creates a confirmer reading answers from in and writing prompts to out.
func NewConfirmer(in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{reader: NewNonBlockingReader(in), writer: out}
}

// Confirm prints prompt with a [y/N] suffix and waits for an answer.
// End of input counts as no.
func (c *Confirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(c.writer, "%s [y/N]: ", FormatPrompt(prompt)); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := c.reader.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
