package update

import (
	"log"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriRoast/internal/attachment"
	"github.com/Rorical/RoriRoast/internal/catalog"
	"github.com/Rorical/RoriRoast/internal/dispatcher"
	"github.com/Rorical/RoriRoast/internal/eventbus"
	"github.com/Rorical/RoriRoast/internal/language"
	"github.com/Rorical/RoriRoast/internal/models"
)

// Tool is one tool page: its dispatcher plus the input control bound to it
type Tool struct {
	Dispatcher *dispatcher.Dispatcher
	Input      textinput.Model
	Copied     bool
	copySeq    int
}

func (t *Tool) Binding() models.ToolBinding {
	return t.Dispatcher.Binding()
}

// Session is all UI-loop state of a running program.
type Session struct {
	App       models.AppModel
	Tools     []*Tool
	Languages *language.Selector
	Stager    *attachment.Stager
	DropZone  *attachment.DropZone
	Picker    filepicker.Model
	Spinner   spinner.Model

	bus       *eventbus.EventBus
	clipboard func(string) error
}

type Options struct {
	StrictOrdering bool
	InitialTool    string
	Clipboard      func(string) error
}

// NewSession builds one tool page per catalog entry. Only image-capable
// tools share the attachment stager.
func NewSession(cat *catalog.Catalog, eb *eventbus.EventBus, opts Options) *Session {
	s := &Session{
		App:       models.AppModel{Status: "Ready"},
		Languages: language.NewSelector(),
		Picker:    filepicker.New(),
		Spinner:   spinner.New(),
		bus:       eb,
		clipboard: opts.Clipboard,
	}
	s.Stager = attachment.NewStager(s, s)
	s.DropZone = attachment.NewDropZone(s.Stager)

	s.Spinner.Spinner = spinner.Dot
	s.Spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	if wd, err := os.Getwd(); err == nil {
		s.Picker.CurrentDirectory = wd
	}

	dispatchOpts := []dispatcher.Option{dispatcher.WithStrictOrdering(opts.StrictOrdering)}
	for _, t := range cat.Tools {
		binding := t.Binding()
		s.Languages.AddGroup(binding.LanguageGroup, t.Languages, t.DefaultLanguage)

		var d *dispatcher.Dispatcher
		if binding.AcceptsImage {
			d = dispatcher.NewRoast(binding, s.Languages, eb, s.Stager, dispatchOpts...)
		} else {
			d = dispatcher.New(binding, s.Languages, eb, dispatchOpts...)
		}

		in := textinput.New()
		in.Placeholder = binding.Placeholder
		in.Prompt = "› "
		in.CharLimit = 0
		in.Width = 60

		s.Tools = append(s.Tools, &Tool{Dispatcher: d, Input: in})
	}

	if idx := cat.Index(opts.InitialTool); idx >= 0 {
		s.App.ActiveTool = idx
	}
	if tool := s.ActiveTool(); tool != nil {
		tool.Input.Focus()
	}
	return s
}

func (s *Session) ActiveTool() *Tool {
	if s.App.ActiveTool < 0 || s.App.ActiveTool >= len(s.Tools) {
		return nil
	}
	return s.Tools[s.App.ActiveTool]
}

func (s *Session) toolByID(id string) *Tool {
	for _, t := range s.Tools {
		if t.Binding().ID == id {
			return t
		}
	}
	return nil
}

// Alert implements attachment.Alerter
func (s *Session) Alert(message string) {
	log.Printf("alert: %s", message)
	s.App.Alert = &models.Alert{Message: message}
}

// RequestDecode implements attachment.Decoder by handing the file to the core
func (s *Session) RequestDecode(token uint64, file attachment.File) error {
	return s.bus.SendToCore(eventbus.DecodeEvent{Token: token, File: file})
}
