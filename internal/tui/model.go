package tui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/render"
	"github.com/Veraticus/tally/internal/tui/themes"
	"github.com/Veraticus/tally/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the TUI.
type State int

const (
	// StateDashboard shows balances and the transaction list.
	StateDashboard State = iota
	// StateForm shows an input form under the dashboard.
	StateForm
	// StateConfirmDelete waits for a y/n answer.
	StateConfirmDelete
	// StateHelp shows every key binding.
	StateHelp
)

// Model holds the main TUI state.
type Model struct {
	ctx           context.Context
	engine        *engine.Engine
	notices       *common.NoticeRecorder
	formatter     *viewmodel.Formatter
	notice        *common.Notice
	help          help.Model
	theme         themes.Theme
	pendingDelete string
	outDir        string
	keymap        KeyMap
	dash          viewmodel.Dashboard
	form          form
	noticeSeq     int
	selected      int
	width         int
	height        int
	state         State
	quitting      bool
}

// New creates the model. Notices emitted by the engine must go to cfg.Notices.
func New(ctx context.Context, cfg Config) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	notices := cfg.Notices
	if notices == nil {
		notices = &common.NoticeRecorder{}
	}
	m := Model{
		ctx:       ctx,
		engine:    cfg.Engine,
		notices:   notices,
		formatter: cfg.Formatter,
		outDir:    cfg.OutputDir,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		width:     80,
		height:    24,
	}
	m.refresh()
	return m
}

// Init shows any notice raised while loading.
func (m Model) Init() tea.Cmd {
	return m.drainNotices()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil

	case fileWrittenMsg:
		if msg.err != nil {
			_ = common.Report(m.notices, msg.action, common.NewUserError("Error "+msg.action, msg.err))
			cmd := m.drainNotices()
			return m, cmd
		}
		cmd := m.showNotice(common.Notice{Level: common.NoticeSuccess, Message: "Saved " + msg.path})
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.state {
		case StateForm:
			return m.updateForm(msg)
		case StateConfirmDelete:
			return m.updateConfirm(msg)
		case StateHelp:
			if key.Matches(msg, m.keymap.Help, m.keymap.Cancel, m.keymap.Quit) {
				m.state = StateDashboard
				m.help.ShowAll = false
			}
			return m, nil
		default:
			return m.updateDashboard(msg)
		}
	}
	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.state = StateHelp
		m.help.ShowAll = true
	case key.Matches(msg, m.keymap.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keymap.Home):
		m.selected = 0
	case key.Matches(msg, m.keymap.End):
		m.selected = max(len(m.dash.Transactions)-1, 0)
	case key.Matches(msg, m.keymap.Add):
		return m.openForm(addForm())
	case key.Matches(msg, m.keymap.Bank):
		return m.openForm(bankForm())
	case key.Matches(msg, m.keymap.Settings):
		s := m.engine.Snapshot()
		return m.openForm(settingsForm(s.DailyAllowance.String(), s.DailyTarget.String(), s.SavingsGoal.String()))
	case key.Matches(msg, m.keymap.Deposit):
		eff, err := m.engine.DailyDeposit(m.ctx)
		cmd := m.afterAction(eff, err, "Daily deposit saved")
		return m, cmd
	case key.Matches(msg, m.keymap.Delete):
		if len(m.dash.Transactions) > 0 {
			m.pendingDelete = m.dash.Transactions[m.selected].ID
			m.state = StateConfirmDelete
		}
	case key.Matches(msg, m.keymap.Theme):
		eff, err := m.engine.ToggleTheme(m.ctx)
		cmd := m.afterAction(eff, err, "")
		return m, cmd
	case key.Matches(msg, m.keymap.Export):
		eff, err := m.engine.ExportCSV(m.ctx)
		cmd := m.afterAction(eff, err, "")
		return m, cmd
	case key.Matches(msg, m.keymap.Chart):
		cmd := m.drawChart()
		return m, cmd
	}
	return m, nil
}

func (m Model) openForm(f form) (tea.Model, tea.Cmd) {
	m.form = f
	m.state = StateForm
	return m, f.inputs[f.focus].Focus()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.state = StateDashboard
		return m, nil
	}

	submitted, cmd := m.form.update(msg, m.keymap)
	if !submitted {
		return m, cmd
	}

	v := m.form.values()
	var (
		eff     engine.Effect
		err     error
		success string
	)
	switch m.form.kind {
	case formAdd:
		eff, err = m.engine.AddTransaction(m.ctx, engine.TransactionInput{Kind: v[0], Amount: v[1], Category: v[2]})
		success = "Transaction added"
	case formBank:
		eff, err = m.engine.BankTransfer(m.ctx, v[0], v[1])
		success = "Transfer recorded"
	case formSettings:
		eff, err = m.engine.UpdateSettings(m.ctx, engine.SettingsInput{Allowance: v[0], Target: v[1], Goal: v[2]})
		success = "Settings updated"
		if err == nil && len(eff.Updated) == 0 {
			success = "No settings changed"
		}
	}

	// A rejected form stays open so the input can be corrected.
	if err == nil {
		m.state = StateDashboard
	}
	cmd = m.afterAction(eff, err, success)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		id := m.pendingDelete
		m.pendingDelete = ""
		m.state = StateDashboard
		eff, err := m.engine.DeleteTransaction(m.ctx, id, engine.Confirmed)
		cmd := m.afterAction(eff, err, "Transaction deleted")
		return m, cmd
	case key.Matches(msg, m.keymap.Cancel):
		m.pendingDelete = ""
		m.state = StateDashboard
	}
	return m, nil
}

// afterAction refreshes the view and turns a handler's outcome into notices
// and follow-up commands.
func (m *Model) afterAction(eff engine.Effect, err error, success string) tea.Cmd {
	if eff.Refresh {
		m.refresh()
	}

	cmds := []tea.Cmd{m.drainNotices()}
	if err == nil && !eff.Unsaved && !eff.Canceled && success != "" {
		cmds = append(cmds, m.showNotice(common.Notice{Level: common.NoticeSuccess, Message: success}))
	}
	if eff.Download != nil {
		cmds = append(cmds, m.writeFile(eff.Download.Filename, eff.Download.Data, "exporting data"))
	}
	return tea.Batch(cmds...)
}

func (m *Model) drawChart() tea.Cmd {
	var buf bytes.Buffer
	if err := render.SavingsChartPNG(&buf, m.dash.Series, m.dash.Cumulative); err != nil {
		_ = common.Report(m.notices, "drawing chart", err)
		return m.drainNotices()
	}
	return m.writeFile(render.ChartFilename(m.engine.Now()), buf.Bytes(), "drawing chart")
}

func (m Model) writeFile(name string, data []byte, action string) tea.Cmd {
	path := filepath.Join(m.outDir, name)
	return func() tea.Msg {
		err := os.WriteFile(path, data, 0o600)
		return fileWrittenMsg{path: path, err: err, action: action}
	}
}

// drainNotices shows the newest pending notice, if any.
func (m *Model) drainNotices() tea.Cmd {
	pending := m.notices.Notices()
	if len(pending) == 0 {
		return nil
	}
	m.notices.Reset()
	return m.showNotice(pending[len(pending)-1])
}

func (m *Model) showNotice(n common.Notice) tea.Cmd {
	m.noticeSeq++
	m.notice = &n
	seq := m.noticeSeq
	return tea.Tick(common.NoticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

func (m *Model) refresh() {
	snap := m.engine.Snapshot()
	m.dash = viewmodel.Build(snap, m.engine.Now(), m.formatter)
	m.theme = themes.For(snap.DarkMode)
	m.selected = min(m.selected, max(len(m.dash.Transactions)-1, 0))
}

func (m *Model) moveSelection(delta int) {
	n := len(m.dash.Transactions)
	if n == 0 {
		m.selected = 0
		return
	}
	m.selected = min(max(m.selected+delta, 0), n-1)
}

// Notice returns the notice on screen, or an empty string.
func (m Model) Notice() string {
	if m.notice == nil {
		return ""
	}
	return strings.TrimSpace(m.notice.Message)
}
