// Package themes holds the light and dark palettes shared by the terminal
// dashboard and the interactive UI.
package themes

import (
	"github.com/Veraticus/tally/internal/common"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the dashboard.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Faint         lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	RoundedBox    lipgloss.Style
	Income        lipgloss.Style
	Expense       lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Name          string
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Background    lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Info          lipgloss.Color
}

type palette struct {
	name       string
	primary    string
	secondary  string
	success    string
	warning    string
	errorColor string
	info       string
	background string
	foreground string
	border     string
	muted      string
	selectedFg string
}

func newTheme(p palette) Theme {
	return Theme{
		Name:       p.name,
		Primary:    lipgloss.Color(p.primary),
		Success:    lipgloss.Color(p.success),
		Warning:    lipgloss.Color(p.warning),
		Error:      lipgloss.Color(p.errorColor),
		Info:       lipgloss.Color(p.info),
		Background: lipgloss.Color(p.background),
		Foreground: lipgloss.Color(p.foreground),
		Border:     lipgloss.Color(p.border),
		Muted:      lipgloss.Color(p.muted),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.secondary)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.foreground)),
		Faint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.selectedFg)).
			Bold(true),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),

		Income: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)),
		Expense: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorColor)),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.warning)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorColor)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)).
			Bold(true),
	}
}

// Light is the default theme.
var Light = newTheme(palette{
	name:       "light",
	primary:    "#7c3aed",
	secondary:  "#6d28d9",
	success:    "#047857",
	warning:    "#b45309",
	errorColor: "#b91c1c",
	info:       "#1d4ed8",
	background: "#ffffff",
	foreground: "#1f2937",
	border:     "#d1d5db",
	muted:      "#6b7280",
	selectedFg: "#ffffff",
})

// Dark uses the Catppuccin Mocha palette.
var Dark = newTheme(palette{
	name:       "dark",
	primary:    "#cba6f7",
	secondary:  "#b4befe",
	success:    "#a6e3a1",
	warning:    "#f9e2af",
	errorColor: "#f38ba8",
	info:       "#89b4fa",
	background: "#1e1e2e",
	foreground: "#cdd6f4",
	border:     "#45475a",
	muted:      "#6c7086",
	selectedFg: "#1e1e2e",
})

// For returns the theme matching a dark mode flag.
func For(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

// Notice returns the style for a notice of the given level.
func (t Theme) Notice(level common.NoticeLevel) lipgloss.Style {
	switch level {
	case common.NoticeSuccess:
		return t.StatusSuccess
	case common.NoticeWarning:
		return t.StatusWarning
	case common.NoticeError:
		return t.StatusError
	default:
		return t.StatusInfo
	}
}
