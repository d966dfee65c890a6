package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/tally/internal/common"
)

// Notifier prints notices as styled lines.
type Notifier struct {
	writer io.Writer
}

// NewNotifier creates a notifier writing to w, usually stderr.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{writer: w}
}

// Notify prints n.
func (n *Notifier) Notify(notice common.Notice) {
	var line string
	switch notice.Level {
	case common.NoticeSuccess:
		line = FormatSuccess(notice.Message)
	case common.NoticeWarning:
		line = FormatWarning(notice.Message)
	case common.NoticeError:
		line = FormatError(notice.Message)
	default:
		line = FormatInfo(notice.Message)
	}
	if _, err := fmt.Fprintln(n.writer, line); err != nil {
		slog.Warn("Failed to write notice", "error", err)
	}
}
