package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Veraticus/tally/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestNotifier_Notify(t *testing.T) {
	tests := []struct {
		name   string
		icon   string
		notice common.Notice
	}{
		{name: "error", notice: common.Notice{Message: "Invalid amount", Level: common.NoticeError}, icon: ErrorIcon},
		{name: "warning", notice: common.Notice{Message: "Error saving data", Level: common.NoticeWarning}, icon: WarningIcon},
		{name: "success", notice: common.Notice{Message: "Saved", Level: common.NoticeSuccess}, icon: SuccessIcon},
		{name: "info", notice: common.Notice{Message: "Canceled"}, icon: InfoIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			NewNotifier(&buf).Notify(tt.notice)

			out := buf.String()
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, tt.notice.Message)
			assert.Equal(t, 1, strings.Count(out, "\n"))
		})
	}
}
