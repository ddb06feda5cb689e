package view

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/darcyvale/vitrine/internal/client"
)

type clientsState int

const (
	clientsStateBrowse clientsState = iota
	clientsStateForm
	clientsStateConfirmDelete
)

type ClientsModel struct {
	CommonModel
	clientService *client.Service

	state   clientsState
	table   table.Model
	clients []*client.Client
	form    *huh.Form
	editing *client.Client

	loading bool
	err     error
	status  string

	// Form bindings
	formName     string
	formPhone    string
	formDocument string
	formEmail    string
	formAddress  string
}

func NewClientsModel(clientSvc *client.Service) ClientsModel {
	columns := []table.Column{
		{Title: "Name", Width: 25},
		{Title: "Phone", Width: 15},
		{Title: "Document", Width: 14},
		{Title: "Email", Width: 25},
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

	return ClientsModel{
		clientService: clientSvc,
		table:         t,
	}
}

func (m ClientsModel) Title() string { return "Clients" }
func (m ClientsModel) ShortHelp() string {
	switch m.state {
	case clientsStateForm:
		return "Navigate form | Esc: cancel"
	case clientsStateConfirmDelete:
		return "y: delete | n: keep"
	}
	return "Esc: back | n: new | e: edit | x: delete | r: refresh"
}

func (m ClientsModel) Init() tea.Cmd {
	return m.loadClientsCmd()
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadClientsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.clients = msg.clients
		m.refreshTable()
		return m, nil

	case clientSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Saved."
		}
		m.state = clientsStateBrowse
		m.form = nil
		m.editing = nil
		m.table.Focus()
		return m, m.loadClientsCmd()

	case clientDeletedMsg:
		switch {
		case errors.Is(msg.err, client.ErrHasSales):
			m.status = "Client has sales and cannot be deleted."
		case msg.err != nil:
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		default:
			m.status = "Deleted."
		}
		m.state = clientsStateBrowse
		m.table.Focus()
		return m, m.loadClientsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case clientsStateBrowse:
		return m.updateBrowse(msg)
	case clientsStateForm:
		return m.updateForm(msg)
	case clientsStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m ClientsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadClientsCmd()
		case "n":
			return m.enterForm(nil)
		case "e":
			if c := m.selectedClient(); c != nil {
				return m.enterForm(c)
			}
			return m, nil
		case "x":
			if m.selectedClient() != nil {
				m.state = clientsStateConfirmDelete
				m.table.Blur()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ClientsModel) selectedClient() *client.Client {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.clients) {
		return nil
	}

	return m.clients[idx]
}

func (m ClientsModel) enterForm(c *client.Client) (tea.Model, tea.Cmd) {
	m.editing = c

	if c == nil {
		m.formName = ""
		m.formPhone = ""
		m.formDocument = ""
		m.formEmail = ""
		m.formAddress = ""
	} else {
		m.formName = c.Name
		m.formPhone = c.Phone
		m.formDocument = c.Document
		m.formEmail = c.Email
		m.formAddress = c.Address
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(required("name")),

			huh.NewInput().
				Key("phone").
				Title("Phone").
				Value(&m.formPhone),

			huh.NewInput().
				Key("document").
				Title("Document").
				Value(&m.formDocument),

			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.formEmail),

			huh.NewInput().
				Key("address").
				Title("Address").
				Value(&m.formAddress),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = clientsStateForm
	m.table.Blur()
	return m, m.form.Init()
}

func (m ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = clientsStateBrowse
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

func (m ClientsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		c := m.selectedClient()
		if c == nil {
			m.state = clientsStateBrowse
			m.table.Focus()
			return m, nil
		}
		return m, m.deleteCmd(c.ID)
	case "n", "esc":
		m.state = clientsStateBrowse
		m.table.Focus()
	}

	return m, nil
}

func (m ClientsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading clients...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	switch m.state {
	case clientsStateForm:
		if m.form != nil {
			title := "New Client"
			if m.editing != nil {
				title = "Edit Client"
			}

			panel := lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Width(48).
				Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

			content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
		}
	case clientsStateConfirmDelete:
		if c := m.selectedClient(); c != nil {
			prompt := lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Render(fmt.Sprintf("Delete client %s? [y/n]", c.Name))

			content = lipgloss.JoinVertical(lipgloss.Left, content, prompt)
		}
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ClientsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.clients))
	for _, c := range m.clients {
		rows = append(rows, table.Row{c.Name, c.Phone, c.Document, c.Email})
	}
	m.table.SetRows(rows)
}

// Messages

type loadClientsMsg struct {
	clients []*client.Client
	err     error
}

func (m ClientsModel) loadClientsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		clients, err := m.clientService.List(ctx)
		return loadClientsMsg{clients: clients, err: err}
	}
}

type clientSavedMsg struct {
	err error
}

func (m ClientsModel) saveCmd() tea.Cmd {
	name := m.formName
	phone := m.formPhone
	document := m.formDocument
	email := m.formEmail
	address := m.formAddress
	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if editing == nil {
			_, err := m.clientService.Create(ctx, client.CreateParams{
				Name:     name,
				Phone:    phone,
				Document: document,
				Email:    email,
				Address:  address,
			})
			return clientSavedMsg{err: err}
		}

		_, err := m.clientService.Update(ctx, editing.ID, client.UpdateParams{
			Name:     &name,
			Phone:    &phone,
			Document: &document,
			Email:    &email,
			Address:  &address,
		})
		return clientSavedMsg{err: err}
	}
}

type clientDeletedMsg struct {
	err error
}

func (m ClientsModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return clientDeletedMsg{err: m.clientService.Delete(ctx, id)}
	}
}
