package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriRoast/internal/eventbus"
	"github.com/Rorical/RoriRoast/internal/models"
	"github.com/Rorical/RoriRoast/internal/update"
	"github.com/Rorical/RoriRoast/ui/components"
	"github.com/Rorical/RoriRoast/ui/styles"
)

const helpText = "tab switch tool • enter submit • ctrl+l/ctrl+k language • ctrl+y copy • ctrl+c quit"

const imageHelpText = "ctrl+o browse • ctrl+x remove image"

// Model adapts the update session to the bubbletea program
type Model struct {
	session  *update.Session
	eventBus *eventbus.EventBus
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.session.Spinner.Tick,
		update.ListenForCoreEvents(m.eventBus),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// keep listening after every core event
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(m.session, coreEvent)
		return m, tea.Batch(cmd, update.ListenForCoreEvents(m.eventBus))
	}

	return m, update.HandleUpdate(m.session, msg)
}

func (m *Model) View() string {
	s := m.session
	width := s.App.Width
	if width == 0 {
		width = 80
	}

	tool := s.ActiveTool()
	if tool == nil {
		return components.RenderStatus("No tools configured", 0, width)
	}

	if s.App.Alert != nil && s.App.Height > 0 {
		return components.RenderAlert(s.App.Alert, width, s.App.Height)
	}

	var b strings.Builder
	bindings := make([]models.ToolBinding, len(s.Tools))
	for i, t := range s.Tools {
		bindings[i] = t.Binding()
	}
	b.WriteString(components.RenderTabs(bindings, s.App.ActiveTool))
	b.WriteString("\n")

	group := tool.Binding().LanguageGroup
	b.WriteString(components.RenderLanguages(s.Languages.Buttons(group), func(lang string) bool {
		return s.Languages.IsActive(group, lang)
	}))
	b.WriteString("\n\n")

	b.WriteString(components.RenderInput(tool.Input.View(), width))
	b.WriteString("\n")

	if tool.Binding().AcceptsImage {
		if s.App.PickingFile {
			b.WriteString(s.Picker.View())
		} else {
			b.WriteString(components.RenderDropZone(s.Stager, s.DropZone, width))
		}
		b.WriteString("\n")
	}

	b.WriteString(components.RenderSurface(tool.Dispatcher.Surface(), s.Spinner.View(), tool.Copied, width))
	b.WriteString("\n")

	if s.App.Alert != nil {
		b.WriteString(components.RenderAlert(s.App.Alert, width, 0))
		b.WriteString("\n")
	}

	b.WriteString(components.RenderStatus(s.App.Status, s.App.InFlight, width))
	b.WriteString("\n")
	help := helpText
	if tool.Binding().AcceptsImage {
		help += " • " + imageHelpText
	}
	b.WriteString(styles.HelpStyle().Render(help))

	return b.String()
}
