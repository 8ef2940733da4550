package core

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/Rorical/RoriRoast/internal/attachment"
	"github.com/Rorical/RoriRoast/internal/client"
	"github.com/Rorical/RoriRoast/internal/eventbus"
	"github.com/Rorical/RoriRoast/internal/models"
)

// Generator performs one backend generation request
type Generator interface {
	Generate(ctx context.Context, req client.Request) (client.Reply, error)
}

// GenerationService runs network requests and image decodes off the UI loop
// and reports results back over the event bus.
type GenerationService struct {
	generator Generator
	decode    func(attachment.File) (attachment.Preview, error)
	state     *RequestState
	eventBus  *eventbus.EventBus
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewGenerationService(generator Generator, eb *eventbus.EventBus) *GenerationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &GenerationService{
		generator: generator,
		decode:    attachment.Decode,
		state:     NewRequestState(),
		eventBus:  eb,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start runs the core logic in a goroutine
func (gs *GenerationService) Start() {
	gs.wg.Add(1)
	go gs.eventLoop()
}

// Stop cancels outstanding work and waits for every worker to return.
func (gs *GenerationService) Stop() {
	gs.cancel()
	gs.wg.Wait()
}

func (gs *GenerationService) State() *RequestState {
	return gs.state
}

func (gs *GenerationService) eventLoop() {
	defer gs.wg.Done()
	for {
		select {
		case <-gs.ctx.Done():
			return
		case event, ok := <-gs.eventBus.UIToCore():
			if !ok {
				return
			}
			gs.handleUIEvent(event)
		}
	}
}

func (gs *GenerationService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitEvent:
		gs.state.Begin(e.Tool)
		gs.wg.Add(1)
		go gs.runSubmission(e)
	case eventbus.DecodeEvent:
		gs.wg.Add(1)
		go gs.runDecode(e)
	}
}

// runSubmission never cancels on its own; a request runs until it
// resolves or the transport fails.
func (gs *GenerationService) runSubmission(e eventbus.SubmitEvent) {
	defer gs.wg.Done()

	reply, err := gs.generator.Generate(gs.ctx, e.Request)
	switch {
	case err != nil:
		log.Printf("[%s] request %s to %s failed: %v", e.Tool, e.Request.ID, e.Request.Endpoint, err)
	case reply.OK() && !reply.HasResponse:
		log.Printf("[%s] request %s: %d reply has no response field", e.Tool, e.Request.ID, reply.Status)
	}
	outcome := OutcomeFor(reply, err)
	remaining := gs.state.Finish(e.Tool, err)

	if gs.ctx.Err() != nil {
		return
	}
	gs.push(eventbus.OutcomeEvent{
		Tool:     e.Tool,
		Token:    e.Token,
		Outcome:  outcome,
		InFlight: remaining,
	})
}

func (gs *GenerationService) runDecode(e eventbus.DecodeEvent) {
	defer gs.wg.Done()

	preview, err := gs.decode(e.File)
	if gs.ctx.Err() != nil {
		return
	}
	gs.push(eventbus.DecodedEvent{Token: e.Token, Preview: preview, Err: err})
}

// push blocks until the UI takes the event; every submission and decode
// must reach the UI unless the service is stopping.
func (gs *GenerationService) push(event eventbus.CoreEvent) {
	if err := gs.eventBus.SendToUIContext(gs.ctx, event); err != nil {
		log.Printf("Error sending event to UI: %v", err)
	}
}

// OutcomeFor maps a backend reply, or the absence of one, to the outcome
// shown on the tool's surface.
func OutcomeFor(reply client.Reply, err error) models.Outcome {
	switch {
	case errors.Is(err, client.ErrImageUnreadable):
		return models.ErrorOutcome(models.ImageErrorMessage)
	case err != nil:
		return models.ErrorOutcome(models.NetworkErrorMessage)
	case reply.OK():
		// a 2xx always takes the success path, even with no text
		return models.SuccessOutcome(reply.Response)
	case reply.Error != "":
		return models.ErrorOutcome("Error: " + reply.Error)
	default:
		return models.ErrorOutcome("Error: " + models.FallbackErrorMessage)
	}
}
