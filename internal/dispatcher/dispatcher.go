package dispatcher

import (
	"log"
	"strings"

	"github.com/Rorical/RoriRoast/internal/client"
	"github.com/Rorical/RoriRoast/internal/eventbus"
	"github.com/Rorical/RoriRoast/internal/language"
	"github.com/Rorical/RoriRoast/internal/models"
	"github.com/Rorical/RoriRoast/internal/render"
)

// Submitter hands a submission to the core. *eventbus.EventBus satisfies it.
type Submitter interface {
	SendToCore(event eventbus.UIEvent) error
}

// payloadPolicy is what distinguishes one kind of tool from another:
// what counts as valid input and what rides along with the text.
type payloadPolicy interface {
	validate(text string) (message string, ok bool)
	attach(req *client.Request)
}

type textOnly struct{}

func (textOnly) validate(text string) (string, bool) {
	if text == "" {
		return models.EmptyTextMessage, false
	}
	return "", true
}

func (textOnly) attach(*client.Request) {}

// Dispatcher drives one tool through its submit-to-render lifecycle.
// It is owned by the UI loop and is not safe for concurrent use.
type Dispatcher struct {
	binding   models.ToolBinding
	languages *language.Selector
	bus       Submitter
	policy    payloadPolicy
	strict    bool
	issued    uint64 // token of the latest submission
}

type Option func(*Dispatcher)

// WithStrictOrdering discards outcomes of submissions that were superseded
// by a later one on the same surface. Without it the last response to
// arrive is what stays on screen.
func WithStrictOrdering(strict bool) Option {
	return func(d *Dispatcher) {
		d.strict = strict
	}
}

// New creates a dispatcher for a text-only tool.
func New(binding models.ToolBinding, languages *language.Selector, bus Submitter, opts ...Option) *Dispatcher {
	return newDispatcher(binding, languages, bus, textOnly{}, opts)
}

func newDispatcher(binding models.ToolBinding, languages *language.Selector, bus Submitter, policy payloadPolicy, opts []Option) *Dispatcher {
	d := &Dispatcher{
		binding:   binding,
		languages: languages,
		bus:       bus,
		policy:    policy,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) Binding() models.ToolBinding {
	return d.binding
}

func (d *Dispatcher) Surface() *models.Surface {
	return d.binding.Surface
}

// Language returns the language the next submission would carry
func (d *Dispatcher) Language() string {
	return d.languages.Active(d.binding.LanguageGroup)
}

// Submit validates input and, when valid, renders Loading and hands exactly
// one request to the core. It reports whether a request was issued.
func (d *Dispatcher) Submit(input string) bool {
	text := strings.TrimSpace(input)

	if message, ok := d.policy.validate(text); !ok {
		render.Render(d.binding.Surface, models.ErrorOutcome(message))
		return false
	}

	render.Render(d.binding.Surface, models.LoadingOutcome())
	d.issued++

	req := client.Request{
		ID:        client.NewRequestID(),
		Endpoint:  d.binding.Endpoint,
		Encoding:  d.binding.Encoding,
		UserInput: text,
		Language:  d.Language(),
	}
	d.policy.attach(&req)

	err := d.bus.SendToCore(eventbus.SubmitEvent{
		Tool:    d.binding.ID,
		Token:   d.issued,
		Request: req,
	})
	if err != nil {
		log.Printf("[%s] failed to hand request %s to core: %v", d.binding.ID, req.ID, err)
		render.Render(d.binding.Surface, models.ErrorOutcome(models.NetworkErrorMessage))
		return false
	}
	return true
}

// Resolve renders the terminal outcome of the submission identified by
// token. It reports whether the outcome was rendered.
func (d *Dispatcher) Resolve(token uint64, outcome models.Outcome) bool {
	if token == 0 || token > d.issued {
		return false
	}
	if d.strict && token != d.issued {
		return false
	}
	render.Render(d.binding.Surface, outcome)
	return true
}
