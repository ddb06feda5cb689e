package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/darcyvale/vitrine/cmd/tui/internal/view"
	"github.com/darcyvale/vitrine/internal/catalog"
	"github.com/darcyvale/vitrine/internal/client"
	"github.com/darcyvale/vitrine/internal/config"
	"github.com/darcyvale/vitrine/internal/database"
	"github.com/darcyvale/vitrine/internal/sale"
	"github.com/darcyvale/vitrine/internal/snapshot"
	"github.com/darcyvale/vitrine/internal/store"
)

type model struct {
	saleService    *sale.Service
	clientService  *client.Service
	catalogService *catalog.Service

	currentView View

	salesView     view.SalesModel
	clientsView   view.ClientsModel
	catalogView   view.CatalogModel
	dashboardView view.DashboardModel
}

type View int

const (
	ViewMenu      View = 0
	ViewSales     View = 1
	ViewClients   View = 2
	ViewCatalog   View = 3
	ViewDashboard View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	snap, err := newSnapshotStore(cfg)
	if err != nil {
		slog.Error("failed to open snapshot backend", "error", err)
		os.Exit(1)
	}

	st, err := store.New(context.Background(), snap)
	if err != nil {
		slog.Error("failed to load state", "error", err)
		os.Exit(1)
	}

	saleSvc := sale.NewService(st)
	clientSvc := client.NewService(st)
	catalogSvc := catalog.NewService(st)

	return model{
		saleService:    saleSvc,
		clientService:  clientSvc,
		catalogService: catalogSvc,
		currentView:    ViewMenu,
		salesView:      view.NewSalesModel(saleSvc, clientSvc, catalogSvc),
		clientsView:    view.NewClientsModel(clientSvc),
		catalogView:    view.NewCatalogModel(catalogSvc),
		dashboardView:  view.NewDashboardModel(saleSvc, clientSvc, catalogSvc),
	}
}

func newSnapshotStore(cfg *config.Config) (snapshot.Store, error) {
	switch cfg.Snapshot.Backend {
	case config.BackendPostgres:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, err
		}

		return snapshot.NewPostgresStore(db, cfg.Snapshot.Slot), nil
	case config.BackendFile:
		return snapshot.NewFileStore(cfg.Snapshot.Path), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend: %s", cfg.Snapshot.Backend)
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewSales
				m.salesView = view.NewSalesModel(m.saleService, m.clientService, m.catalogService)

				return m, m.salesView.Init()
			case "2":
				m.currentView = ViewClients
				m.clientsView = view.NewClientsModel(m.clientService)

				return m, m.clientsView.Init()
			case "3":
				m.currentView = ViewCatalog
				m.catalogView = view.NewCatalogModel(m.catalogService)

				return m, m.catalogView.Init()
			case "4":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.saleService, m.clientService, m.catalogService)

				return m, m.dashboardView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewSales:
		var newModel tea.Model
		newModel, cmd = m.salesView.Update(msg)
		m.salesView = newModel.(view.SalesModel)
	case ViewClients:
		var newModel tea.Model
		newModel, cmd = m.clientsView.Update(msg)
		m.clientsView = newModel.(view.ClientsModel)
	case ViewCatalog:
		var newModel tea.Model
		newModel, cmd = m.catalogView.Update(msg)
		m.catalogView = newModel.(view.CatalogModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Vitrine TUI\n\n" +
				"1. Sales\n" +
				"2. Clients\n" +
				"3. Catalog\n" +
				"4. Dashboard\n\n" +
				"q. Quit",
		)
	case ViewSales:
		return m.salesView.View()
	case ViewClients:
		return m.clientsView.View()
	case ViewCatalog:
		return m.catalogView.View()
	case ViewDashboard:
		return m.dashboardView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
