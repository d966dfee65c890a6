package tui

// clearNoticeMsg hides the notice with the given sequence number if it is
// still the one on screen.
type clearNoticeMsg struct {
	seq int
}

// fileWrittenMsg reports the outcome of writing an export or chart.
type fileWrittenMsg struct {
	err    error
	path   string
	action string
}
