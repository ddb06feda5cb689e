package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/darcyvale/vitrine/internal/catalog"
	"github.com/darcyvale/vitrine/internal/client"
	"github.com/darcyvale/vitrine/internal/pricing"
	"github.com/darcyvale/vitrine/internal/sale"
)

var (
	dashLabelStyle = lipgloss.NewStyle().Faint(true).Width(14)
	dashValueStyle = lipgloss.NewStyle().Bold(true)
	dashBoxStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

type DashboardModel struct {
	CommonModel
	saleService    *sale.Service
	clientService  *client.Service
	catalogService *catalog.Service

	summary     *sale.Summary
	clientNames map[uuid.UUID]string
	categories  []*catalog.Category

	categoryFilterIdx int

	loading bool
	err     error
}

func NewDashboardModel(saleSvc *sale.Service, clientSvc *client.Service, catalogSvc *catalog.Service) DashboardModel {
	return DashboardModel{
		saleService:    saleSvc,
		clientService:  clientSvc,
		catalogService: catalogSvc,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | c: category filter | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadSummaryCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSummaryMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.summary = msg.summary
		m.clientNames = msg.clientNames
		m.categories = msg.categories
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadSummaryCmd()
		case "c":
			m.categoryFilterIdx = (m.categoryFilterIdx + 1) % (len(m.categories) + 1)
			m.loading = true
			return m, m.loadSummaryCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading || m.summary == nil {
		return lipgloss.NewStyle().Padding(2).Render("Loading summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	s := m.summary

	var totals strings.Builder
	totals.WriteString(dashLabelStyle.Render("Sales") + dashValueStyle.Render(fmt.Sprintf("%d", s.Count)) + "\n")
	totals.WriteString(dashLabelStyle.Render("Total sold") + dashValueStyle.Render(FormatAmount(s.TotalSold)) + "\n")
	totals.WriteString(dashLabelStyle.Render("Total profit") + dashValueStyle.Render(FormatAmount(s.TotalProfit)) + "\n")
	totals.WriteString(dashLabelStyle.Render("Open debt") + dashValueStyle.Render(FormatAmount(s.TotalDebt)))

	var byStatus strings.Builder
	byStatus.WriteString(dashLabelStyle.Render("Paid") + fmt.Sprintf("%d", s.CountByStatus[pricing.StatusPaid]) + "\n")
	byStatus.WriteString(dashLabelStyle.Render("Partial") + fmt.Sprintf("%d", s.CountByStatus[pricing.StatusPartial]) + "\n")
	byStatus.WriteString(dashLabelStyle.Render("Unpaid") + fmt.Sprintf("%d", s.CountByStatus[pricing.StatusUnpaid]))

	var topClients strings.Builder
	if len(s.TopClients) == 0 {
		topClients.WriteString(lipgloss.NewStyle().Faint(true).Render("No sales yet."))
	}
	for i, ct := range s.TopClients {
		name := m.clientNames[ct.ClientID]
		if name == "" {
			name = ct.ClientID.String()
		}

		topClients.WriteString(fmt.Sprintf("%d. %-25s %s", i+1, name, FormatAmount(ct.Total)))

		if i < len(s.TopClients)-1 {
			topClients.WriteString("\n")
		}
	}

	header := fmt.Sprintf("Filter: [c] Category: %s", activeStyle(m.categoryLabel()))

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		dashBoxStyle.Render("Totals\n\n"+totals.String()),
		dashBoxStyle.Render("By status\n\n"+byStatus.String()),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		row,
		dashBoxStyle.Render("Top clients\n\n"+topClients.String()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m DashboardModel) categoryLabel() string {
	if m.categoryFilterIdx == 0 || m.categoryFilterIdx > len(m.categories) {
		return "All"
	}

	return m.categories[m.categoryFilterIdx-1].Name
}

// Messages

type loadSummaryMsg struct {
	summary     *sale.Summary
	clientNames map[uuid.UUID]string
	categories  []*catalog.Category
	err         error
}

func (m DashboardModel) loadSummaryCmd() tea.Cmd {
	idx := m.categoryFilterIdx
	categories := m.categories

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if categories == nil {
			var err error

			categories, err = m.catalogService.Categories(ctx)
			if err != nil {
				return loadSummaryMsg{err: err}
			}
		}

		filter := sale.ListFilter{}
		if idx > 0 && idx <= len(categories) {
			filter.CategoryID = &categories[idx-1].ID
		}

		summary, err := m.saleService.Summarize(ctx, filter)
		if err != nil {
			return loadSummaryMsg{err: err}
		}

		clients, err := m.clientService.List(ctx)
		if err != nil {
			return loadSummaryMsg{err: err}
		}

		names := make(map[uuid.UUID]string, len(clients))
		for _, c := range clients {
			names[c.ID] = c.Name
		}

		return loadSummaryMsg{summary: summary, clientNames: names, categories: categories}
	}
}
