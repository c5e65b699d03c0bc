package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/anindyar/kasbon/internal/ledger"
)

type expensesState int

const (
	expensesStateBrowse expensesState = iota
	expensesStateForm
)

type ExpensesModel struct {
	CommonModel
	ledgerSvc *ledger.Service

	state    expensesState
	table    table.Model
	expenses []ledger.Expense
	form     *huh.Form

	loading bool
	err     error
	status  string

	formDesc     string
	formAmount   string
	formCategory string
	formStatus   string
}

func NewExpensesModel(ledgerSvc *ledger.Service) ExpensesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 34},
		{Title: "Amount", Width: 14},
		{Title: "Category", Width: 14},
		{Title: "Status", Width: 12},
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

	return ExpensesModel{
		ledgerSvc: ledgerSvc,
		table:     t,
	}
}

func (m ExpensesModel) Title() string { return "Expenses" }
func (m ExpensesModel) ShortHelp() string {
	if m.state == expensesStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | x: delete | r: refresh"
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expensesLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.expenses = msg.expenses
		m.refreshTable()

		return m, nil

	case expensesSaveMsg:
		m.state = expensesStateBrowse
		m.form = nil
		m.table.Focus()

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

	switch m.state {
	case expensesStateBrowse:
		return m.updateBrowse(msg)
	case expensesStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterForm()
		case "x":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.expenses) {
				return m, m.deleteCmd(m.expenses[idx].ID)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) enterForm() (tea.Model, tea.Cmd) {
	m.formDesc = ""
	m.formAmount = ""
	m.formCategory = string(ledger.CategoryOperational)
	m.formStatus = string(ledger.StatusPaid)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(func(s string) error {
					v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("enter a positive whole rupiah amount")
					}

					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(
					huh.NewOption("Operasional", string(ledger.CategoryOperational)),
					huh.NewOption("Administrasi", string(ledger.CategoryAdministrative)),
					huh.NewOption("Penjualan", string(ledger.CategorySales)),
					huh.NewOption("Lainnya", string(ledger.CategoryOther)),
				).
				Value(&m.formCategory),

			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("Lunas", string(ledger.StatusPaid)),
					huh.NewOption("Belum Lunas", string(ledger.StatusUnpaid)),
				).
				Value(&m.formStatus),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = expensesStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = expensesStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m ExpensesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state == expensesStateForm && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Add Expense\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ExpensesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.expenses))
	for _, e := range m.expenses {
		rows = append(rows, table.Row{
			FormatDate(e.Date),
			e.Description,
			FormatRupiah(e.Amount),
			string(e.Category),
			string(e.Status),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type expensesLoadMsg struct {
	expenses []ledger.Expense
	err      error
}

func (m ExpensesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		expenses, err := m.ledgerSvc.Expenses(ctx)

		return expensesLoadMsg{expenses: expenses, err: err}
	}
}

type expensesSaveMsg struct {
	err error
}

func (m ExpensesModel) saveCmd() tea.Cmd {
	amount, _ := strconv.ParseInt(strings.TrimSpace(m.formAmount), 10, 64)

	params := ledger.ExpenseParams{
		Description: strings.TrimSpace(m.formDesc),
		Amount:      amount,
		Category:    ledger.ExpenseCategory(m.formCategory),
		Status:      ledger.Status(m.formStatus),
	}

	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		_, err := m.ledgerSvc.AddExpense(ctx, params)

		return expensesSaveMsg{err: err}
	}
}

func (m ExpensesModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		return expensesSaveMsg{err: m.ledgerSvc.DeleteExpense(ctx, id)}
	}
}
