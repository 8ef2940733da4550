package update

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriRoast/internal/eventbus"
)

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// ListenForCoreEvents waits for the next core event. It must be re-issued
// after every CoreEventMsg.
func ListenForCoreEvents(eb *eventbus.EventBus) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-eb.CoreToUI()
		if !ok {
			return nil
		}
		return CoreEventMsg{Event: event}
	}
}

func HandleUpdate(s *Session, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(s, msg)
	case tea.WindowSizeMsg:
		return HandleWindowSizeMsg(s, msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.Spinner, cmd = s.Spinner.Update(msg)
		return cmd
	case CoreEventMsg:
		return HandleCoreEvent(s, msg)
	case copyResetMsg:
		handleCopyReset(s, msg)
		return nil
	}

	if s.App.PickingFile {
		return updatePicker(s, msg)
	}
	return nil
}
