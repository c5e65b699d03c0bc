package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anindyar/kasbon/internal/ledger"
)

// SummaryModel shows the financial dashboard: profit and loss, proxy balance
// sheet figures and the account breakdown.
type SummaryModel struct {
	CommonModel
	ledgerSvc *ledger.Service

	summary  ledger.FinancialSummary
	accounts ledger.AccountsData

	loading bool
	err     error
}

func NewSummaryModel(ledgerSvc *ledger.Service) SummaryModel {
	return SummaryModel{ledgerSvc: ledgerSvc}
}

func (m SummaryModel) Title() string     { return "Summary" }
func (m SummaryModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.summary = msg.summary
		m.accounts = msg.accounts

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Calculating summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	s := m.summary
	gross, net := s.Margins()

	var pnl strings.Builder

	pnl.WriteString("Profit & Loss\n\n")
	pnl.WriteString(row("Revenue", s.TotalRevenue))
	pnl.WriteString(row("Cost of goods sold", -s.TotalCOGS))
	pnl.WriteString(row("Gross profit", s.GrossProfit))
	pnl.WriteString(row("Expenses", -s.TotalExpenses))
	pnl.WriteString(row("Net income", s.NetIncome))
	pnl.WriteString(fmt.Sprintf("\nGross margin %.1f%%  Net margin %.1f%%\n", gross, net))

	var balance strings.Builder

	balance.WriteString("Balance\n\n")
	balance.WriteString(row("Kas", m.accounts.Kas))
	balance.WriteString(row("Piutang", m.accounts.Piutang))
	balance.WriteString(row("Persediaan", m.accounts.Persediaan))
	balance.WriteString(row("Peralatan", m.accounts.Peralatan))
	balance.WriteString(row("Hutang usaha", -m.accounts.HutangUsaha))
	balance.WriteString(row("Hutang bank", -m.accounts.HutangBank))
	balance.WriteString(row("Modal", m.accounts.Modal))

	panelStyle := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(44)

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(pnl.String()),
		panelStyle.Render(balance.String()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func row(label string, amount int64) string {
	return fmt.Sprintf("%-22s %16s\n", label, FormatRupiah(amount))
}

// Messages

type summaryLoadMsg struct {
	summary  ledger.FinancialSummary
	accounts ledger.AccountsData
	err      error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		summary, err := m.ledgerSvc.Summary(ctx)
		if err != nil {
			return summaryLoadMsg{err: err}
		}

		accounts, err := m.ledgerSvc.Accounts(ctx)

		return summaryLoadMsg{summary: summary, accounts: accounts, err: err}
	}
}
