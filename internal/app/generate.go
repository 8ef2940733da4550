package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rorical/RoriRoast/internal/attachment"
	"github.com/Rorical/RoriRoast/internal/catalog"
	"github.com/Rorical/RoriRoast/internal/client"
	"github.com/Rorical/RoriRoast/internal/config"
	"github.com/Rorical/RoriRoast/internal/core"
	"github.com/Rorical/RoriRoast/internal/dispatcher"
	"github.com/Rorical/RoriRoast/internal/eventbus"
	"github.com/Rorical/RoriRoast/internal/language"
	"github.com/Rorical/RoriRoast/internal/models"
)

var errBusClosed = errors.New("event bus closed")

// GenerateRequest is a single submission made outside the TUI
type GenerateRequest struct {
	Tool      string
	Language  string
	ImagePath string
	Text      string
}

// Generate submits one request against the active profile's backend and
// returns the tool's surface once it holds a terminal outcome.
func Generate(ctx context.Context, cfg *config.Config, req GenerateRequest) (*models.Surface, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tool catalog: %w", err)
	}
	backend := client.New(cfg.GetBaseURL(), cfg.GetAPIKey(), nil)
	return RunOnce(ctx, cat, backend, req)
}

// RunOnce drives the same dispatcher, stager and core service the TUI uses,
// waiting on the event bus instead of a program loop.
func RunOnce(ctx context.Context, cat *catalog.Catalog, gen core.Generator, req GenerateRequest) (*models.Surface, error) {
	tool, ok := cat.Find(req.Tool)
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", req.Tool)
	}
	binding := tool.Binding()

	langs := language.NewSelector()
	langs.AddGroup(binding.LanguageGroup, tool.Languages, tool.DefaultLanguage)
	if req.Language != "" && !langs.Activate(binding.LanguageGroup, req.Language) {
		return nil, fmt.Errorf("tool %q does not offer language %q", req.Tool, req.Language)
	}

	eb := eventbus.NewEventBus()
	defer eb.Close()
	service := core.NewGenerationService(gen, eb)
	service.Start()
	defer service.Stop()

	sink := &oneShot{bus: eb}
	stager := attachment.NewStager(sink, sink)

	var d *dispatcher.Dispatcher
	if binding.AcceptsImage {
		d = dispatcher.NewRoast(binding, langs, eb, stager)
	} else {
		d = dispatcher.New(binding, langs, eb)
	}

	if req.ImagePath != "" {
		if !binding.AcceptsImage {
			return nil, fmt.Errorf("tool %q does not accept images", req.Tool)
		}
		if err := stageImage(ctx, eb, stager, sink, req.ImagePath); err != nil {
			return nil, err
		}
	}

	if !d.Submit(req.Text) {
		return d.Surface(), nil
	}

	for {
		event, err := nextEvent(ctx, eb)
		if err != nil {
			return nil, err
		}
		if e, ok := event.(eventbus.OutcomeEvent); ok && d.Resolve(e.Token, e.Outcome) {
			return d.Surface(), nil
		}
	}
}

func stageImage(ctx context.Context, eb *eventbus.EventBus, stager *attachment.Stager, sink *oneShot, path string) error {
	if !stager.Pick(path) {
		return sink.failure()
	}
	for {
		event, err := nextEvent(ctx, eb)
		if err != nil {
			return err
		}
		e, ok := event.(eventbus.DecodedEvent)
		if !ok {
			continue
		}
		if stager.Decoded(e.Token, e.Preview, e.Err) {
			return nil
		}
		if sink.alert != "" {
			return sink.failure()
		}
	}
}

func nextEvent(ctx context.Context, eb *eventbus.EventBus) (eventbus.CoreEvent, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case event, ok := <-eb.CoreToUI():
		if !ok {
			return nil, errBusClosed
		}
		return event, nil
	}
}

// oneShot turns stager alerts into errors and forwards decodes to the core
type oneShot struct {
	bus   *eventbus.EventBus
	alert string
}

func (o *oneShot) Alert(message string) {
	o.alert = message
}

func (o *oneShot) RequestDecode(token uint64, file attachment.File) error {
	return o.bus.SendToCore(eventbus.DecodeEvent{Token: token, File: file})
}

func (o *oneShot) failure() error {
	if o.alert == "" {
		return errors.New("image was not staged")
	}
	return errors.New(o.alert)
}
