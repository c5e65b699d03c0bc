package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anindyar/kasbon/internal/ledger"
)

// JournalModel browses the double-entry journal. The side panel shows the
// full debit and credit lines of the selected entry.
type JournalModel struct {
	CommonModel
	ledgerSvc *ledger.Service

	table   table.Model
	entries []ledger.JournalEntry

	loading bool
	err     error
	status  string
}

func NewJournalModel(ledgerSvc *ledger.Service) JournalModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 38},
		{Title: "Origin", Width: 11},
		{Title: "Amount", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(14),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return JournalModel{
		ledgerSvc: ledgerSvc,
		table:     t,
	}
}

func (m JournalModel) Title() string { return "Journal" }
func (m JournalModel) ShortHelp() string {
	return "Esc: back | x: delete | r: refresh"
}

func (m JournalModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case journalLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.entries = msg.entries
		m.refreshTable()

		return m, nil

	case journalDeleteMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "x":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.entries) {
				return m, m.deleteCmd(m.entries[idx].ID)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m JournalModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading journal...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	idx := m.table.Cursor()
	if idx >= 0 && idx < len(m.entries) {
		e := m.entries[idx]

		var detail strings.Builder

		detail.WriteString(fmt.Sprintf("%s  %s\n", e.ID, e.Type))
		if e.Reference != "" {
			detail.WriteString(fmt.Sprintf("Ref: %s\n", e.Reference))
		}

		detail.WriteString("\nDebit\n")
		for _, l := range e.Debit {
			detail.WriteString(fmt.Sprintf("  %-26s %s\n", l.Account, FormatRupiah(l.Amount)))
		}

		detail.WriteString("Credit\n")
		for _, l := range e.Credit {
			detail.WriteString(fmt.Sprintf("  %-26s %s\n", l.Account, FormatRupiah(l.Amount)))
		}

		if !e.Balanced() {
			detail.WriteString("\nUNBALANCED")
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(52).
			Render(detail.String())

		content = lipgloss.JoinHorizontal(lipgloss.Top, tableView, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *JournalModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		rows = append(rows, table.Row{
			FormatDate(e.Date),
			e.Description,
			string(e.Type),
			FormatRupiah(e.DebitTotal()),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type journalLoadMsg struct {
	entries []ledger.JournalEntry
	err     error
}

func (m JournalModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		entries, err := m.ledgerSvc.JournalEntries(ctx)

		return journalLoadMsg{entries: entries, err: err}
	}
}

type journalDeleteMsg struct {
	err error
}

func (m JournalModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		return journalDeleteMsg{err: m.ledgerSvc.DeleteJournalEntry(ctx, id)}
	}
}
