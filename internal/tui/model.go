// Package tui renders the customer page in a terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unclebandit/customer-admin/internal/page"
)

type stateMsg struct{ state page.State }

// doneMsg reports the end of an effect started by a key press.
type doneMsg struct {
	op  string
	err error
}

// StateChanged wraps a state pushed by page.Controller.OnChange so it
// can be sent to the running program.
func StateChanged(s page.State) tea.Msg {
	return stateMsg{state: s}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	errorAlert    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Padding(0, 1)
	successAlert  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")).Padding(0, 1)
	dialogStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	labelStyle    = lipgloss.NewStyle().Faint(true)
	focusedLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	helpStyle     = lipgloss.NewStyle().Faint(true).MarginTop(1)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	deleteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type Model struct {
	ctx  context.Context
	ctrl *page.Controller

	state  page.State
	cursor int

	fields []field
	inputs []textinput.Model
	focus  int

	status string
	width  int
}

func New(ctx context.Context, ctrl *page.Controller) Model {
	m := Model{ctx: ctx, ctrl: ctrl}
	m.setState(ctrl.Snapshot())
	return m
}

// Init fetches the collection, like the page does on mount.
func (m Model) Init() tea.Cmd {
	return m.run("load", m.ctrl.Load)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case stateMsg:
		// Snapshots arrive from concurrent senders; key presses already
		// adopt the result of their own Dispatch.
		if msg.state.Version <= m.state.Version {
			return m, nil
		}
		m.setState(msg.state)
		return m, nil

	case doneMsg:
		m.setState(m.ctrl.Snapshot())
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.op, msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.state.DialogOpen {
			return m.updateDialog(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Customers)-1 {
			m.cursor++
		}
	case "a":
		m.focus = 0
		m.setState(m.ctrl.Dispatch(page.OpenDialog{}))
	case "r":
		m.status = "loading…"
		return m, m.run("load", m.ctrl.Load)
	case "d":
		if len(m.state.Customers) == 0 {
			return m, nil
		}
		id := m.state.Customers[m.cursor].ID
		m.status = fmt.Sprintf("deleting customer %d…", id)
		return m, m.run("delete", func(ctx context.Context) error {
			return m.ctrl.Delete(ctx, id)
		})
	}
	return m, nil
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.setState(m.ctrl.Dispatch(page.CloseDialog{}))
		return m, nil
	case "tab", "down":
		m.focus = (m.focus + 1) % len(m.fields)
		m.setState(m.state)
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
		m.setState(m.state)
		return m, nil
	case "ctrl+n":
		m.setState(m.ctrl.Dispatch(page.AddSocialMedia{}))
		return m, nil
	case "ctrl+d":
		if f := m.fields[m.focus]; f.isSocialMedia() {
			m.setState(m.ctrl.Dispatch(page.RemoveSocialMedia{Index: f.row}))
		}
		return m, nil
	case "enter":
		m.status = "sending…"
		return m, m.run("create", m.ctrl.Submit)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	value := m.inputs[m.focus].Value()
	if f := m.fields[m.focus]; value != f.value(m.state.Draft) {
		m.setState(m.ctrl.Dispatch(f.action(value)))
	}
	return m, cmd
}

// run performs an effect off the event loop and reports back with doneMsg.
func (m Model) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		err := fn(ctx)
		if errors.Is(err, page.ErrMutationInFlight) {
			err = fmt.Errorf("still waiting for the previous request")
		}
		return doneMsg{op: op, err: err}
	}
}

// setState adopts s and brings the inputs in line with its draft.
func (m *Model) setState(s page.State) {
	m.state = s
	if m.cursor >= len(s.Customers) {
		m.cursor = max(len(s.Customers)-1, 0)
	}

	fields := formFields(s.Draft)
	if len(fields) != len(m.inputs) {
		m.inputs = make([]textinput.Model, len(fields))
		for i, f := range fields {
			m.inputs[i] = newInput(f)
		}
	}
	m.fields = fields
	if m.focus >= len(fields) {
		m.focus = len(fields) - 1
	}

	for i, f := range fields {
		m.inputs[i].Placeholder = f.label()
		if v := f.value(s.Draft); m.inputs[i].Value() != v {
			m.inputs[i].SetValue(v)
		}
		if s.DialogOpen && i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Customers"))
	b.WriteString("\n")

	if n := m.state.Notification; n.Visible {
		b.WriteString(alert(n))
		b.WriteString("\n\n")
	}

	if m.state.DialogOpen {
		b.WriteString(m.dialogView())
	} else {
		b.WriteString(RenderTable(m.state, m.cursor, m.width))
		b.WriteString(helpStyle.Render("[a] add data  [d] delete  [r] reload  [↑/↓] select  [q] quit"))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}
	return b.String()
}

func (m Model) dialogView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add Customer"))
	b.WriteString("\n")

	for i, f := range m.fields {
		if f.kind == fieldPlatform && f.row == 0 {
			b.WriteString("Social Media:\n")
		}
		label := labelStyle
		if i == m.focus {
			label = focusedLabel
		}
		b.WriteString(label.Render(f.label()))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("[tab] next  [ctrl+n] add social media  [ctrl+d] remove row  [enter] send  [esc] cancel"))
	return dialogStyle.Render(b.String())
}

func alert(n page.Notification) string {
	if n.Severity == page.SeveritySuccess {
		return successAlert.Render(n.Text())
	}
	return errorAlert.Render(n.Text())
}

// RenderTable draws the customer list. selected < 0 highlights nothing;
// width <= 0 lets the table size itself.
func RenderTable(s page.State, selected, width int) string {
	rows := page.Rows(s)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Name", "Email", "Social Media", "Description", "Action").
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Bold(true)
			case row == selected:
				return style.Inherit(selectedStyle)
			case col == 4:
				return style.Inherit(deleteStyle)
			}
			return style
		})
	if width > 0 {
		t = t.Width(width)
	}
	for _, r := range rows {
		t = t.Row(r.Name, r.Email, strings.Join(r.SocialMedia, "\n"), r.Description, "Delete")
	}
	return t.String() + "\n"
}
