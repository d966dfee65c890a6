package render

import (
	"bytes"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar draws pct (0 to 100) as a single-line text bar of the given width.
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		width = 30
	}
	pct = min(max(pct, 0), 100)

	var buf bytes.Buffer
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(&buf),
		progressbar.OptionSetWidth(width),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "",
			BarEnd:        "",
		}),
	)
	// The bar only draws whole percents.
	_ = bar.Set(int(pct))

	out := buf.String()
	if i := strings.LastIndex(out, "\r"); i >= 0 {
		out = out[i+1:]
	}
	return strings.TrimSpace(out)
}
