package app

import (
	"fmt"
	"log"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriRoast/internal/catalog"
	"github.com/Rorical/RoriRoast/internal/client"
	"github.com/Rorical/RoriRoast/internal/config"
	"github.com/Rorical/RoriRoast/internal/core"
	"github.com/Rorical/RoriRoast/internal/eventbus"
	"github.com/Rorical/RoriRoast/internal/update"
)

// Options tune a single application run
type Options struct {
	InitialTool string
}

// Application manages the complete application lifecycle
type Application struct {
	config   *config.Config
	catalog  *catalog.Catalog
	eventBus *eventbus.EventBus
	service  *core.GenerationService
	model    *Model
}

func NewApplication(opts Options) (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tool catalog: %w", err)
	}
	if opts.InitialTool != "" && cat.Index(opts.InitialTool) < 0 {
		return nil, fmt.Errorf("unknown tool %q", opts.InitialTool)
	}

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		log.Printf("event bus: %v", e)
	})

	backend := client.New(cfg.GetBaseURL(), cfg.GetAPIKey(), nil)
	service := core.NewGenerationService(backend, eb)

	session := update.NewSession(cat, eb, update.Options{
		StrictOrdering: cfg.StrictOrdering,
		InitialTool:    opts.InitialTool,
		Clipboard:      clipboard.WriteAll,
	})

	return &Application{
		config:   cfg,
		catalog:  cat,
		eventBus: eb,
		service:  service,
		model:    &Model{session: session, eventBus: eb},
	}, nil
}

func (app *Application) Start() error {
	// the program owns the terminal; keep diagnostics off the screen
	logFile, err := tea.LogToFile(app.config.GetLogPath(), "roriroast")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	log.Printf("starting with backend %s (profile %s)", app.config.GetBaseURL(), app.config.ActiveProfile)
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.eventBus.Close()
}
