package view

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/darcyvale/vitrine/internal/catalog"
)

type catalogState int

const (
	catalogStateBrowse catalogState = iota
	catalogStateForm
	catalogStateConfirmDelete
)

type CatalogModel struct {
	CommonModel
	catalogService *catalog.Service

	state      catalogState
	table      table.Model
	models     []*catalog.Model
	categories []*catalog.Category
	form       *huh.Form
	editing    *catalog.Model

	loading bool
	err     error
	status  string

	// Form bindings
	formRef        string
	formName       string
	formCost       string
	formPrice      string
	formCategoryID string
}

func NewCatalogModel(catalogSvc *catalog.Service) CatalogModel {
	columns := []table.Column{
		{Title: "Ref", Width: 10},
		{Title: "Name", Width: 25},
		{Title: "Cost", Width: 14},
		{Title: "Price", Width: 14},
		{Title: "Category", Width: 12},
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

	return CatalogModel{
		catalogService: catalogSvc,
		table:          t,
	}
}

func (m CatalogModel) Title() string { return "Catalog" }
func (m CatalogModel) ShortHelp() string {
	switch m.state {
	case catalogStateForm:
		return "Navigate form | Esc: cancel"
	case catalogStateConfirmDelete:
		return "y: delete | n: keep"
	}
	return "Esc: back | n: new | e: edit | x: delete | r: refresh"
}

func (m CatalogModel) Init() tea.Cmd {
	return m.loadCatalogCmd()
}

func (m CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCatalogMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.models = msg.models
		m.categories = msg.categories
		m.refreshTable()
		return m, nil

	case modelSavedMsg:
		switch {
		case errors.Is(msg.err, catalog.ErrPriceBelowCost):
			m.status = "Suggested price must be above base cost."
		case msg.err != nil:
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		default:
			m.status = "Saved."
		}
		m.state = catalogStateBrowse
		m.form = nil
		m.editing = nil
		m.table.Focus()
		return m, m.loadCatalogCmd()

	case modelDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = "Deleted."
		}
		m.state = catalogStateBrowse
		m.table.Focus()
		return m, m.loadCatalogCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case catalogStateBrowse:
		return m.updateBrowse(msg)
	case catalogStateForm:
		return m.updateForm(msg)
	case catalogStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m CatalogModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCatalogCmd()
		case "n":
			return m.enterForm(nil)
		case "e":
			if md := m.selectedModel(); md != nil {
				return m.enterForm(md)
			}
			return m, nil
		case "x":
			if m.selectedModel() != nil {
				m.state = catalogStateConfirmDelete
				m.table.Blur()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m CatalogModel) selectedModel() *catalog.Model {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.models) {
		return nil
	}

	return m.models[idx]
}

func (m CatalogModel) enterForm(md *catalog.Model) (tea.Model, tea.Cmd) {
	m.editing = md

	if md == nil {
		m.formRef = ""
		m.formName = ""
		m.formCost = ""
		m.formPrice = ""
		m.formCategoryID = ""
	} else {
		m.formRef = md.Ref
		m.formName = md.Name
		m.formCost = FormatAmount(md.BaseCost)
		m.formPrice = FormatAmount(md.SuggestedPrice)
		m.formCategoryID = md.CategoryID
	}

	categoryOpts := make([]huh.Option[string], 0, len(m.categories))
	for _, c := range m.categories {
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
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(required("name")),

			huh.NewInput().
				Key("base_cost").
				Title("Base cost").
				Value(&m.formCost).
				Validate(validAmount),

			huh.NewInput().
				Key("suggested_price").
				Title("Suggested price").
				Value(&m.formPrice).
				Validate(validAmount),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOpts...).
				Value(&m.formCategoryID),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = catalogStateForm
	m.table.Blur()
	return m, m.form.Init()
}

func (m CatalogModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = catalogStateBrowse
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

func (m CatalogModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		md := m.selectedModel()
		if md == nil {
			m.state = catalogStateBrowse
			m.table.Focus()
			return m, nil
		}
		return m, m.deleteCmd(md.ID)
	case "n", "esc":
		m.state = catalogStateBrowse
		m.table.Focus()
	}

	return m, nil
}

func (m CatalogModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading catalog...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	switch m.state {
	case catalogStateForm:
		if m.form != nil {
			title := "New Model"
			if m.editing != nil {
				title = "Edit Model"
			}

			panel := lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Width(48).
				Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

			content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
		}
	case catalogStateConfirmDelete:
		if md := m.selectedModel(); md != nil {
			prompt := lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Render(fmt.Sprintf("Delete model %s (%s)? [y/n]", md.Ref, md.Name))

			content = lipgloss.JoinVertical(lipgloss.Left, content, prompt)
		}
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CatalogModel) refreshTable() {
	names := make(map[string]string, len(m.categories))
	for _, c := range m.categories {
		names[c.ID] = c.Name
	}

	rows := make([]table.Row, 0, len(m.models))
	for _, md := range m.models {
		rows = append(rows, table.Row{
			md.Ref,
			md.Name,
			FormatAmount(md.BaseCost),
			FormatAmount(md.SuggestedPrice),
			names[md.CategoryID],
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadCatalogMsg struct {
	models     []*catalog.Model
	categories []*catalog.Category
	err        error
}

func (m CatalogModel) loadCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		models, err := m.catalogService.Models(ctx)
		if err != nil {
			return loadCatalogMsg{err: err}
		}

		categories, err := m.catalogService.Categories(ctx)
		return loadCatalogMsg{models: models, categories: categories, err: err}
	}
}

type modelSavedMsg struct {
	err error
}

func (m CatalogModel) saveCmd() tea.Cmd {
	cost, _ := ParseAmount(m.formCost)
	price, _ := ParseAmount(m.formPrice)

	params := catalog.ModelParams{
		Ref:            m.formRef,
		Name:           m.formName,
		BaseCost:       cost,
		SuggestedPrice: price,
		CategoryID:     m.formCategoryID,
	}
	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if editing == nil {
			_, err := m.catalogService.CreateModel(ctx, params)
			return modelSavedMsg{err: err}
		}

		_, err := m.catalogService.UpdateModel(ctx, editing.ID, params)
		return modelSavedMsg{err: err}
	}
}

type modelDeletedMsg struct {
	err error
}

func (m CatalogModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return modelDeletedMsg{err: m.catalogService.DeleteModel(ctx, id)}
	}
}
