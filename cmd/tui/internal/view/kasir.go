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

type kasirState int

const (
	kasirStateBrowse kasirState = iota
	kasirStateCheckout
)

// KasirModel is the point-of-sale screen: pick products into a cart, then
// check out as a paid sale.
type KasirModel struct {
	CommonModel
	ledgerSvc *ledger.Service

	state    kasirState
	table    table.Model
	products []ledger.Product
	cart     []ledger.Item
	form     *huh.Form

	loading bool
	err     error
	status  string

	formCustomer string
	formCash     string
	formMethod   string
}

func NewKasirModel(ledgerSvc *ledger.Service) KasirModel {
	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Price", Width: 14},
		{Title: "Stock", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
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

	return KasirModel{
		ledgerSvc: ledgerSvc,
		table:     t,
	}
}

func (m KasirModel) Title() string { return "Kasir" }
func (m KasirModel) ShortHelp() string {
	if m.state == kasirStateCheckout {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: add to cart | c: checkout | x: clear cart | r: refresh"
}

func (m KasirModel) Init() tea.Cmd {
	return m.loadProductsCmd()
}

func (m KasirModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case kasirLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.products = msg.products
		m.refreshTable()

		return m, nil

	case kasirCheckoutMsg:
		m.state = kasirStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.cart = nil
		m.status = fmt.Sprintf("Sale %s recorded, change %s", msg.tx.ID, FormatRupiah(msg.tx.Change))

		return m, m.loadProductsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case kasirStateBrowse:
		return m.updateBrowse(msg)
	case kasirStateCheckout:
		return m.updateCheckout(msg)
	}

	return m, nil
}

func (m KasirModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadProductsCmd()
		case "enter":
			m.addToCart()
			return m, nil
		case "x":
			m.cart = nil
			m.status = ""

			return m, nil
		case "c":
			if len(m.cart) == 0 {
				m.status = "Cart is empty"
				return m, nil
			}

			return m.enterCheckout()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *KasirModel) addToCart() {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.products) {
		return
	}

	p := m.products[idx]

	for i, item := range m.cart {
		if item.ProductID == p.ID {
			m.cart[i].Quantity++
			return
		}
	}

	m.cart = append(m.cart, ledger.Item{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    1,
		Price:       p.Price,
	})
}

func (m KasirModel) cartTotal() int64 {
	var total int64
	for _, item := range m.cart {
		total += int64(item.Quantity) * item.Price
	}

	return total
}

func (m KasirModel) enterCheckout() (tea.Model, tea.Cmd) {
	m.formCustomer = ""
	m.formCash = ""
	m.formMethod = string(ledger.PaymentCash)

	total := m.cartTotal()

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("customer").
				Title("Customer").
				Placeholder("Umum").
				Value(&m.formCustomer),

			huh.NewSelect[string]().
				Key("method").
				Title("Payment").
				Options(
					huh.NewOption("Tunai", string(ledger.PaymentCash)),
					huh.NewOption("Transfer", string(ledger.PaymentTransfer)),
					huh.NewOption("Kredit", string(ledger.PaymentCredit)),
				).
				Value(&m.formMethod),

			huh.NewInput().
				Key("cash").
				Title("Cash received").
				Placeholder(strconv.FormatInt(total, 10)).
				Value(&m.formCash).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					cash, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil {
						return fmt.Errorf("enter a whole rupiah amount")
					}

					if cash < total {
						return fmt.Errorf("less than the total %s", FormatRupiah(total))
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = kasirStateCheckout
	m.table.Blur()

	return m, m.form.Init()
}

func (m KasirModel) updateCheckout(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = kasirStateBrowse
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

	return m, m.checkoutCmd()
}

func (m KasirModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading products...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	var cart strings.Builder

	cart.WriteString("Cart\n\n")

	if len(m.cart) == 0 {
		cart.WriteString("(empty)\n")
	}

	for _, item := range m.cart {
		cart.WriteString(fmt.Sprintf("%dx %s  %s\n",
			item.Quantity, item.ProductName, FormatRupiah(int64(item.Quantity)*item.Price)))
	}

	cart.WriteString(fmt.Sprintf("\nTotal: %s", FormatRupiah(m.cartTotal())))

	cartPanel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(36).
		Render(cart.String())

	content := lipgloss.JoinHorizontal(lipgloss.Top, tableView, cartPanel)

	if m.state == kasirStateCheckout && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content,
			lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("205")).
				Width(48).
				Render("Checkout\n\n"+m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *KasirModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.products))
	for _, p := range m.products {
		rows = append(rows, table.Row{
			p.Name,
			FormatRupiah(p.Price),
			strconv.Itoa(p.Stock),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type kasirLoadMsg struct {
	products []ledger.Product
	err      error
}

func (m KasirModel) loadProductsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		products, err := m.ledgerSvc.Products(ctx)

		return kasirLoadMsg{products: products, err: err}
	}
}

type kasirCheckoutMsg struct {
	tx  ledger.Transaction
	err error
}

func (m KasirModel) checkoutCmd() tea.Cmd {
	items := make([]ledger.Item, len(m.cart))
	copy(items, m.cart)

	total := m.cartTotal()
	customer := m.formCustomer
	method := ledger.PaymentMethod(m.formMethod)

	cash := total
	if s := strings.TrimSpace(m.formCash); s != "" {
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
			cash = parsed
		}
	}

	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		tx, err := m.ledgerSvc.AddTransaction(ctx, ledger.TransactionParams{
			Customer:      customer,
			Type:          ledger.TypeSale,
			Amount:        total,
			Description:   fmt.Sprintf("Penjualan kasir (%d item)", len(items)),
			Status:        ledger.StatusPaid,
			Items:         items,
			PaymentMethod: method,
			CashReceived:  cash,
			Change:        cash - total,
		})

		return kasirCheckoutMsg{tx: tx, err: err}
	}
}
