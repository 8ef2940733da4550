package update

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriRoast/internal/attachment"
	"github.com/Rorical/RoriRoast/internal/eventbus"
	"github.com/Rorical/RoriRoast/internal/utils"
)

const copyFeedback = 1500 * time.Millisecond

type copyResetMsg struct {
	tool int
	seq  int
}

// HandleKeyMsg routes a key press. An open alert blocks every other key.
func HandleKeyMsg(s *Session, keyMsg tea.KeyMsg) tea.Cmd {
	if keyMsg.String() == "ctrl+c" {
		return tea.Quit
	}

	if s.App.Alert != nil {
		switch keyMsg.String() {
		case "enter", "esc", " ":
			s.App.Alert = nil
		}
		return nil
	}

	if s.App.PickingFile {
		if keyMsg.String() == "esc" {
			s.App.PickingFile = false
			return nil
		}
		return updatePicker(s, keyMsg)
	}

	tool := s.ActiveTool()
	if tool == nil {
		return nil
	}

	if keyMsg.Paste && tool.Binding().AcceptsImage {
		if files := droppedFiles(string(keyMsg.Runes)); len(files) > 0 {
			s.DropZone.Handle(attachment.DragEvent{Kind: attachment.DragEnter})
			s.DropZone.Handle(attachment.DragEvent{Kind: attachment.Drop, Files: files})
			return nil
		}
	}

	switch keyMsg.String() {
	case "tab":
		return switchTool(s, 1)
	case "shift+tab":
		return switchTool(s, -1)
	case "enter":
		return submit(s, tool)
	case "ctrl+l":
		lang := s.Languages.Next(tool.Binding().LanguageGroup)
		s.App.Status = "Language: " + lang
		return nil
	case "ctrl+k":
		lang := s.Languages.Prev(tool.Binding().LanguageGroup)
		s.App.Status = "Language: " + lang
		return nil
	case "ctrl+o":
		if !tool.Binding().AcceptsImage {
			return nil
		}
		s.App.PickingFile = true
		return s.Picker.Init()
	case "ctrl+x":
		if tool.Binding().AcceptsImage {
			s.Stager.Clear()
			s.App.Status = "Image removed"
		}
		return nil
	case "ctrl+y":
		return copyOutput(s, tool)
	}

	var cmd tea.Cmd
	tool.Input, cmd = tool.Input.Update(keyMsg)
	return cmd
}

func submit(s *Session, tool *Tool) tea.Cmd {
	tool.Copied = false
	if tool.Dispatcher.Submit(tool.Input.Value()) {
		s.App.InFlight++
		s.App.Status = fmt.Sprintf("Generating (%s)", tool.Dispatcher.Language())
	}
	return nil
}

func switchTool(s *Session, delta int) tea.Cmd {
	n := len(s.Tools)
	if n == 0 {
		return nil
	}
	s.ActiveTool().Input.Blur()
	s.App.ActiveTool = (s.App.ActiveTool + delta + n) % n
	return s.ActiveTool().Input.Focus()
}

func copyOutput(s *Session, tool *Tool) tea.Cmd {
	text, ok := tool.Dispatcher.Surface().CopyText()
	if !ok || s.clipboard == nil {
		return nil
	}

	if err := s.clipboard(utils.StripMarkdown(text)); err != nil {
		log.Printf("Failed to copy text: %v", err)
		s.Alert("Failed to copy text.")
		return nil
	}

	tool.Copied = true
	tool.copySeq++
	msg := copyResetMsg{tool: s.App.ActiveTool, seq: tool.copySeq}
	return tea.Tick(copyFeedback, func(time.Time) tea.Msg { return msg })
}

func handleCopyReset(s *Session, msg copyResetMsg) {
	if msg.tool < 0 || msg.tool >= len(s.Tools) {
		return
	}
	if t := s.Tools[msg.tool]; t.copySeq == msg.seq {
		t.Copied = false
	}
}

func updatePicker(s *Session, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.Picker, cmd = s.Picker.Update(msg)

	if selected, path := s.Picker.DidSelectFile(msg); selected {
		s.App.PickingFile = false
		s.Stager.Pick(path)
	}
	return cmd
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(s *Session, msg CoreEventMsg) tea.Cmd {
	switch event := msg.Event.(type) {
	case eventbus.OutcomeEvent:
		tool := s.toolByID(event.Tool)
		if tool == nil {
			return nil
		}
		if tool.Dispatcher.Resolve(event.Token, event.Outcome) {
			tool.Copied = false
		}
		s.App.InFlight = event.InFlight
		if event.InFlight == 0 {
			s.App.Status = "Ready"
		}
	case eventbus.DecodedEvent:
		s.Stager.Decoded(event.Token, event.Preview, event.Err)
	}
	return nil
}

func HandleWindowSizeMsg(s *Session, sizeMsg tea.WindowSizeMsg) tea.Cmd {
	s.App.Width = sizeMsg.Width
	s.App.Height = sizeMsg.Height
	for _, t := range s.Tools {
		t.Input.Width = max(sizeMsg.Width-10, 10)
	}

	var cmd tea.Cmd
	s.Picker, cmd = s.Picker.Update(sizeMsg)
	return cmd
}
