package engine

import "github.com/Veraticus/tally/internal/model"

// Theme names carried by Effect.Theme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Download is a file the presentation layer should hand to the user.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Effect tells the presentation layer what a handler did.
type Effect struct {
	Download *Download
	// Transaction is the transaction created or removed by the handler.
	Transaction *model.Transaction
	Theme       string
	// Updated names the settings that were applied.
	Updated []string
	// Refresh asks for the view to be re-rendered.
	Refresh bool
	// Unsaved means the change is in memory but the save failed (already reported).
	Unsaved  bool
	Canceled bool
}

// ThemeFor returns the theme name for a dark mode flag.
func ThemeFor(dark bool) string {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}
