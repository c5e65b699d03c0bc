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

type productsState int

const (
	productsStateBrowse productsState = iota
	productsStateForm
)

// ProductsModel manages the catalog: browse, add, edit and delete products.
// Rows at or under their reorder threshold are marked.
type ProductsModel struct {
	CommonModel
	ledgerSvc *ledger.Service

	state    productsState
	table    table.Model
	products []ledger.Product
	form     *huh.Form
	editID   string

	loading bool
	err     error
	status  string

	formName     string
	formCategory string
	formPrice    string
	formCost     string
	formStock    string
	formMinStock string
	formSupplier string
}

func NewProductsModel(ledgerSvc *ledger.Service) ProductsModel {
	columns := []table.Column{
		{Title: "Name", Width: 26},
		{Title: "Category", Width: 14},
		{Title: "Price", Width: 13},
		{Title: "Cost", Width: 13},
		{Title: "Stock", Width: 9},
		{Title: "Supplier", Width: 18},
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

	return ProductsModel{
		ledgerSvc: ledgerSvc,
		table:     t,
	}
}

func (m ProductsModel) Title() string { return "Products" }
func (m ProductsModel) ShortHelp() string {
	if m.state == productsStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | x: delete | r: refresh"
}

func (m ProductsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ProductsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.products = msg.products
		m.refreshTable()

		return m, nil

	case productsSaveMsg:
		m.state = productsStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case productsStateBrowse:
		return m.updateBrowse(msg)
	case productsStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m ProductsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterForm(nil)
		case "e":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.products) {
				return m.enterForm(&m.products[idx])
			}

			return m, nil
		case "x":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.products) {
				return m, m.deleteCmd(m.products[idx].ID)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ProductsModel) enterForm(p *ledger.Product) (tea.Model, tea.Cmd) {
	if p != nil {
		m.editID = p.ID
		m.formName = p.Name
		m.formCategory = p.Category
		m.formPrice = strconv.FormatInt(p.Price, 10)
		m.formCost = strconv.FormatInt(p.Cost, 10)
		m.formStock = strconv.Itoa(p.Stock)
		m.formMinStock = strconv.Itoa(p.MinStock)
		m.formSupplier = p.Supplier
	} else {
		m.editID = ""
		m.formName = ""
		m.formCategory = ""
		m.formPrice = "0"
		m.formCost = "0"
		m.formStock = "0"
		m.formMinStock = "0"
		m.formSupplier = ""
	}

	requireInt := func(s string) error {
		if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
			return fmt.Errorf("enter a whole number")
		}

		return nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}

					return nil
				}),

			huh.NewInput().Key("category").Title("Category").Value(&m.formCategory),
			huh.NewInput().Key("price").Title("Price").Value(&m.formPrice).Validate(requireInt),
			huh.NewInput().Key("cost").Title("Cost").Value(&m.formCost).Validate(requireInt),
			huh.NewInput().Key("stock").Title("Stock").Value(&m.formStock).Validate(requireInt),
			huh.NewInput().Key("min_stock").Title("Minimum stock").Value(&m.formMinStock).Validate(requireInt),
			huh.NewInput().Key("supplier").Title("Supplier").Value(&m.formSupplier),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = productsStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProductsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = productsStateBrowse
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

func (m ProductsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading products...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state == productsStateForm && m.form != nil {
		title := "Add Product"
		if m.editID != "" {
			title = "Edit Product"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ProductsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.products))

	for _, p := range m.products {
		stock := strconv.Itoa(p.Stock)
		if p.LowStock() {
			stock += " !"
		}

		rows = append(rows, table.Row{
			p.Name,
			p.Category,
			FormatRupiah(p.Price),
			FormatRupiah(p.Cost),
			stock,
			p.Supplier,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type productsLoadMsg struct {
	products []ledger.Product
	err      error
}

func (m ProductsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		products, err := m.ledgerSvc.Products(ctx)

		return productsLoadMsg{products: products, err: err}
	}
}

type productsSaveMsg struct {
	err error
}

func (m ProductsModel) saveCmd() tea.Cmd {
	parseInt64 := func(s string) int64 {
		v, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return v
	}

	editID := m.editID
	params := ledger.ProductParams{
		Name:     strings.TrimSpace(m.formName),
		Category: strings.TrimSpace(m.formCategory),
		Price:    parseInt64(m.formPrice),
		Cost:     parseInt64(m.formCost),
		Stock:    int(parseInt64(m.formStock)),
		MinStock: int(parseInt64(m.formMinStock)),
		Supplier: strings.TrimSpace(m.formSupplier),
	}

	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		if editID == "" {
			_, err := m.ledgerSvc.AddProduct(ctx, params)
			return productsSaveMsg{err: err}
		}

		_, err := m.ledgerSvc.UpdateProduct(ctx, editID, ledger.ProductUpdate{
			Name:     &params.Name,
			Category: &params.Category,
			Price:    &params.Price,
			Cost:     &params.Cost,
			Stock:    &params.Stock,
			MinStock: &params.MinStock,
			Supplier: &params.Supplier,
		})

		return productsSaveMsg{err: err}
	}
}

func (m ProductsModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		return productsSaveMsg{err: m.ledgerSvc.DeleteProduct(ctx, id)}
	}
}
