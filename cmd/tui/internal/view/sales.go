package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/darcyvale/vitrine/internal/catalog"
	"github.com/darcyvale/vitrine/internal/client"
	"github.com/darcyvale/vitrine/internal/pricing"
	"github.com/darcyvale/vitrine/internal/sale"
)

type salesState int

const (
	salesStateBrowse salesState = iota
	salesStateForm
	salesStateConfirmDelete
)

type SalesModel struct {
	CommonModel
	saleService    *sale.Service
	clientService  *client.Service
	catalogService *catalog.Service

	state   salesState
	table   table.Model
	sales   []*sale.Sale
	clients []*client.Client
	form    *huh.Form
	editing *sale.Sale

	statusFilterIdx int

	filter  sale.ListFilter
	loading bool
	err     error
	status  string

	// Form bindings
	formRef        string
	formModel      string
	formNet        string
	formInst1      string
	formInst2      string
	formSaleAmount string
	formCost       string
	formClientID   string
	formCategoryID string
	formDate       string
	formNotes      string
}

func NewSalesModel(saleSvc *sale.Service, clientSvc *client.Service, catalogSvc *catalog.Service) SalesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Ref", Width: 10},
		{Title: "Model", Width: 20},
		{Title: "Total", Width: 14},
		{Title: "Debt", Width: 14},
		{Title: "Status", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return SalesModel{
		saleService:    saleSvc,
		clientService:  clientSvc,
		catalogService: catalogSvc,
		table:          t,
		filter:         sale.ListFilter{},
	}
}

func (m SalesModel) Title() string { return "Sales" }
func (m SalesModel) ShortHelp() string {
	switch m.state {
	case salesStateForm:
		return "Navigate form | Esc: cancel"
	case salesStateConfirmDelete:
		return "y: delete | n: keep"
	}
	return "Esc: back | n: new | e: edit | x: delete | s: status filter | r: refresh"
}

func (m SalesModel) Init() tea.Cmd {
	return m.loadSalesCmd()
}

func (m SalesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSalesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.sales = msg.sales
		m.clients = msg.clients
		m.refreshTable()
		return m, nil

	case saleSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Saved."
		}
		m.state = salesStateBrowse
		m.form = nil
		m.editing = nil
		m.table.Focus()
		return m, m.loadSalesCmd()

	case saleDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = "Deleted."
		}
		m.state = salesStateBrowse
		m.table.Focus()
		return m, m.loadSalesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case salesStateBrowse:
		return m.updateBrowse(msg)
	case salesStateForm:
		return m.updateForm(msg)
	case salesStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m SalesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadSalesCmd()
		case "n":
			return m.enterForm(nil)
		case "e":
			if sl := m.selectedSale(); sl != nil {
				return m.enterForm(sl)
			}
			return m, nil
		case "x":
			if m.selectedSale() != nil {
				m.state = salesStateConfirmDelete
				m.table.Blur()
			}
			return m, nil
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 4
			m.applyFilter()
			return m, m.loadSalesCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m SalesModel) selectedSale() *sale.Sale {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.sales) {
		return nil
	}

	return m.sales[idx]
}

func (m SalesModel) enterForm(sl *sale.Sale) (tea.Model, tea.Cmd) {
	m.editing = sl

	if sl == nil {
		m.formRef = ""
		m.formModel = ""
		m.formNet = ""
		m.formInst1 = ""
		m.formInst2 = ""
		m.formSaleAmount = ""
		m.formCost = ""
		m.formClientID = ""
		m.formCategoryID = ""
		m.formDate = FormatDate(time.Now())
		m.formNotes = ""
	} else {
		m.formRef = sl.Ref
		m.formModel = sl.Model
		m.formNet = FormatAmount(sl.Net)
		m.formInst1 = FormatAmount(sl.Installment1)
		m.formInst2 = FormatAmount(sl.Installment2)
		m.formSaleAmount = ""
		if sl.SaleAmountOverride != nil {
			m.formSaleAmount = FormatAmount(*sl.SaleAmountOverride)
		}
		m.formCost = ""
		if sl.Cost != nil {
			m.formCost = FormatAmount(*sl.Cost)
		}
		m.formClientID = sl.ClientID.String()
		m.formCategoryID = sl.CategoryID
		m.formDate = FormatDate(sl.Date)
		m.formNotes = sl.Notes
	}

	clientOpts := make([]huh.Option[string], 0, len(m.clients))
	for _, c := range m.clients {
		clientOpts = append(clientOpts, huh.NewOption(c.Name, c.ID.String()))
	}

	ctx, cancel := StoreCtx()
	defer cancel()

	categories, err := m.catalogService.Categories(ctx)
	if err != nil {
		m.status = fmt.Sprintf("Error loading categories: %v", err)
		return m, nil
	}

	categoryOpts := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		categoryOpts = append(categoryOpts, huh.NewOption(c.Name, c.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("ref").
				Title("Ref").
				Value(&m.formRef).
				Validate(required("ref")),

			huh.NewInput().
				Key("model").
				Title("Model").
				Value(&m.formModel).
				Validate(required("model")),

			huh.NewInput().
				Key("net").
				Title("Net").
				Value(&m.formNet).
				Validate(validAmount),

			huh.NewInput().
				Key("installment1").
				Title("Installment 1").
				Value(&m.formInst1).
				Validate(validAmount),

			huh.NewInput().
				Key("installment2").
				Title("Installment 2").
				Value(&m.formInst2).
				Validate(validAmount),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("sale_amount").
				Title("Sale amount (blank = total)").
				Value(&m.formSaleAmount).
				Validate(validAmount),

			huh.NewInput().
				Key("cost").
				Title("Cost (optional)").
				Value(&m.formCost).
				Validate(validAmount),

			huh.NewSelect[string]().
				Key("client").
				Title("Client").
				Options(clientOpts...).
				Value(&m.formClientID),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOpts...).
				Value(&m.formCategoryID),

			huh.NewInput().
				Key("date").
				Title("Date (YYYY-MM-DD)").
				Value(&m.formDate).
				Validate(validDate),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = salesStateForm
	m.table.Blur()
	return m, m.form.Init()
}

func (m SalesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = salesStateBrowse
			m.form = nil
			m.editing = nil
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

func (m SalesModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		sl := m.selectedSale()
		if sl == nil {
			m.state = salesStateBrowse
			m.table.Focus()
			return m, nil
		}
		return m, m.deleteCmd(sl.ID)
	case "n", "esc":
		m.state = salesStateBrowse
		m.table.Focus()
	}

	return m, nil
}

func (m SalesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading sales...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Paid", "Partial", "Unpaid"}

	header := fmt.Sprintf("Filter: [s] Status: %s", activeStyle(statusLabels[m.statusFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	switch m.state {
	case salesStateForm:
		if m.form != nil {
			title := "New Sale"
			if m.editing != nil {
				title = "Edit Sale"
			}

			panel := lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Width(54).
				Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

			content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
		}
	case salesStateConfirmDelete:
		if sl := m.selectedSale(); sl != nil {
			prompt := lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Render(fmt.Sprintf("Delete sale %s (%s)? [y/n]", sl.Ref, sl.Model))

			content = lipgloss.JoinVertical(lipgloss.Left, content, prompt)
		}
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *SalesModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		m.filter.Status = new(pricing.StatusPaid)
	case 2:
		m.filter.Status = new(pricing.StatusPartial)
	case 3:
		m.filter.Status = new(pricing.StatusUnpaid)
	default:
		m.filter.Status = nil
	}
}

func (m *SalesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.sales))
	for _, sl := range m.sales {
		rows = append(rows, table.Row{
			FormatDate(sl.Date),
			sl.Ref,
			sl.Model,
			FormatAmount(sl.Total),
			FormatAmount(sl.Debt),
			string(sl.Status),
		})
	}
	m.table.SetRows(rows)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func validAmount(s string) error {
	_, err := ParseAmount(s)
	return err
}

func validDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}
	return nil
}

// Messages

type loadSalesMsg struct {
	sales   []*sale.Sale
	clients []*client.Client
	err     error
}

func (m SalesModel) loadSalesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		sales, err := m.saleService.List(ctx, m.filter)
		if err != nil {
			return loadSalesMsg{err: err}
		}

		clients, err := m.clientService.List(ctx)
		return loadSalesMsg{sales: sales, clients: clients, err: err}
	}
}

type saleSavedMsg struct {
	err error
}

func (m SalesModel) saveCmd() tea.Cmd {
	net, _ := ParseAmount(m.formNet)
	inst1, _ := ParseAmount(m.formInst1)
	inst2, _ := ParseAmount(m.formInst2)
	date, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.formDate))

	var saleAmount, cost *int64

	if strings.TrimSpace(m.formSaleAmount) != "" {
		v, _ := ParseAmount(m.formSaleAmount)
		saleAmount = &v
	}

	if strings.TrimSpace(m.formCost) != "" {
		v, _ := ParseAmount(m.formCost)
		cost = &v
	}

	clientID, err := uuid.Parse(m.formClientID)
	if err != nil {
		return func() tea.Msg { return saleSavedMsg{err: fmt.Errorf("select a client")} }
	}

	ref := m.formRef
	model := m.formModel
	categoryID := m.formCategoryID
	notes := m.formNotes
	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if editing == nil {
			_, err := m.saleService.Create(ctx, sale.CreateParams{
				Ref:          ref,
				Model:        model,
				Net:          net,
				Installment1: inst1,
				Installment2: inst2,
				SaleAmount:   saleAmount,
				Cost:         cost,
				ClientID:     clientID,
				CategoryID:   categoryID,
				Date:         date,
				Notes:        notes,
			})
			return saleSavedMsg{err: err}
		}

		_, err := m.saleService.Update(ctx, editing.ID, sale.UpdateParams{
			Ref:          &ref,
			Model:        &model,
			Net:          &net,
			Installment1: &inst1,
			Installment2: &inst2,
			SaleAmount:   saleAmount,
			Cost:         cost,
			ClientID:     &clientID,
			CategoryID:   &categoryID,
			Date:         &date,
			Notes:        &notes,
		})
		return saleSavedMsg{err: err}
	}
}

type saleDeletedMsg struct {
	err error
}

func (m SalesModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return saleDeletedMsg{err: m.saleService.Delete(ctx, id)}
	}
}
