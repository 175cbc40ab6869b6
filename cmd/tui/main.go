package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/rfm/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/rfm/internal/config"
	"github.com/MrJamesThe3rd/rfm/internal/database"
	"github.com/MrJamesThe3rd/rfm/internal/importer"
	"github.com/MrJamesThe3rd/rfm/internal/retail/store"
	"github.com/MrJamesThe3rd/rfm/internal/rfm"
)

type model struct {
	cfg           *config.Config
	importService *importer.Service
	dbSource      rfm.Source

	// screen is nil while the menu is shown.
	screen view.View
	width  int
	height int
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	m := model{
		cfg:           cfg,
		importService: importer.NewService(),
	}

	if cfg.DB.DSN == "" {
		return m
	}

	ctx, cancel := view.RunCtx()
	defer cancel()

	m.dbSource, err = openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	return m
}

func openStore(ctx context.Context, cfg *config.Config) (rfm.Source, error) {
	db, err := database.New(ctx, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	st, err := store.New(db, cfg.DB.Table)
	if err != nil {
		db.Close()
		return nil, err
	}

	return st, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(screen view.View) (tea.Model, tea.Cmd) {
	m.screen = screen
	return m, screen.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.screen == nil {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(view.NewFileRunModel(m.importService, *m.cfg))
			case "2":
				if m.dbSource != nil {
					return m.open(view.NewDBRunModel(m.dbSource, *m.cfg))
				}
			case "3":
				return m.open(view.NewRulesModel())
			}

			return m, nil
		}
	case view.RunCompletedMsg:
		return m.open(view.NewResultModel(msg))
	case view.BackMsg:
		m.screen = nil
		return m, nil
	}

	if m.screen == nil {
		return m, nil
	}

	next, cmd := m.screen.Update(msg)
	if v, ok := next.(view.View); ok {
		m.screen = v
	}

	return m, cmd
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	helpStyle  = lipgloss.NewStyle().Faint(true).PaddingLeft(1)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func (m model) View() string {
	if m.screen != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingLeft(1).Render(titleStyle.Render(m.screen.Title())),
			m.screen.View(),
			helpStyle.Render(m.screen.ShortHelp()),
		)
	}

	dbEntry := "2. Segment Database Ledger"
	if m.dbSource == nil {
		dbEntry = faintStyle.Render(dbEntry + " (set DB_DSN)")
	}

	return lipgloss.NewStyle().Padding(2).Render(
		titleStyle.Render("RFM Segmentation") + "\n\n" +
			"1. Segment Ledger File\n" +
			dbEntry + "\n" +
			"3. Segment Rules\n\n" +
			"q. Quit",
	)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
