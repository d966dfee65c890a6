package tui

import (
	"strings"

	"github.com/Veraticus/tally/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formKind int

const (
	formAdd formKind = iota
	formBank
	formSettings
)

type formField struct {
	label       string
	placeholder string
	value       string
}

// form is a small stack of text inputs submitted with Enter on the last field.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	kind   formKind
}

func newForm(kind formKind, title string, fields ...formField) form {
	f := form{kind: kind, title: title}
	for i, field := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = field.placeholder
		ti.CharLimit = 32
		ti.Width = 24
		ti.SetValue(field.value)
		if i == 0 {
			ti.Focus()
		}
		f.labels = append(f.labels, field.label)
		f.inputs = append(f.inputs, ti)
	}
	return f
}

func addForm() form {
	return newForm(formAdd, "Add transaction",
		formField{label: "Type", placeholder: "income, expense or savings"},
		formField{label: "Amount", placeholder: "0.00"},
		formField{label: "Category", placeholder: "food, transport, leisure, other..."},
	)
}

func bankForm() form {
	return newForm(formBank, "Bank transfer",
		formField{label: "Direction", placeholder: "deposit or withdraw"},
		formField{label: "Amount", placeholder: "0.00"},
	)
}

func settingsForm(allowance, target, goal string) form {
	return newForm(formSettings, "Settings",
		formField{label: "Daily allowance", value: allowance},
		formField{label: "Daily deposit", value: target},
		formField{label: "Savings goal", value: goal},
	)
}

// update feeds a key to the form. It reports true when the form was submitted.
func (f *form) update(msg tea.KeyMsg, keys KeyMap) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		if f.focus == len(f.inputs)-1 {
			return true, nil
		}
		return false, f.setFocus(f.focus + 1)
	case key.Matches(msg, keys.NextField):
		return false, f.setFocus((f.focus + 1) % len(f.inputs))
	case key.Matches(msg, keys.PrevField):
		return false, f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return false, cmd
}

func (f *form) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[f.focus].Focus()
}

func (f form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = in.Value()
	}
	return out
}

func (f form) view(theme themes.Theme) string {
	lines := []string{theme.Subtitle.Render(f.title)}
	for i, in := range f.inputs {
		label := theme.Faint.Width(18).Render(f.labels[i])
		if i == f.focus {
			label = theme.Bold.Width(18).Render("› " + f.labels[i])
		}
		lines = append(lines, label+in.View())
	}
	lines = append(lines, "", theme.Faint.Render("Enter next/submit · Tab move · Esc cancel"))
	return theme.RoundedBox.Render(strings.Join(lines, "\n"))
}
