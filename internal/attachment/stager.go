package attachment

import (
	"log"
	"strings"
)

const (
	RejectMessage     = "Please upload an image file."
	UnreadableMessage = "Could not read the selected image."
)

// Alerter shows a blocking notice outside any submission lifecycle
type Alerter interface {
	Alert(message string)
}

// Decoder starts an asynchronous decode of file. The result must come back
// through Stager.Decoded with the same token.
type Decoder interface {
	RequestDecode(token uint64, file File) error
}

// Stager holds at most one pending image attachment.
// It is driven from the UI loop only and is not safe for concurrent use.
type Stager struct {
	alerter Alerter
	decoder Decoder
	input   FileInput

	pending *File
	preview *Preview
	token   uint64
}

func NewStager(alerter Alerter, decoder Decoder) *Stager {
	return &Stager{
		alerter: alerter,
		decoder: decoder,
	}
}

// Stage replaces the pending attachment with file when it is an image.
// Non-image files are rejected through the alerter and leave all state as is.
func (s *Stager) Stage(file File) bool {
	if !file.IsImage() {
		s.alerter.Alert(RejectMessage)
		return false
	}

	s.token++
	f := file
	s.pending = &f

	if err := s.decoder.RequestDecode(s.token, f); err != nil {
		// no decode will arrive; never keep an attachment without a preview
		log.Printf("attachment: decode request for %s failed: %v", f.Name, err)
		s.Clear()
		s.alerter.Alert(UnreadableMessage)
		return false
	}
	return true
}

// Pick is the file picker channel. Like a browser file input it only
// fires when the selection differs from the control's current value.
// Only the first path is staged.
func (s *Stager) Pick(paths ...string) bool {
	if len(paths) == 0 {
		return false
	}
	if !s.input.Set(strings.Join(paths, "\n")) {
		return false
	}

	file, err := Open(paths[0])
	if err != nil {
		log.Printf("attachment: %v", err)
		s.alerter.Alert(UnreadableMessage)
		return false
	}
	return s.Stage(file)
}

// Decoded applies a finished decode. Results for a staging that was
// replaced or cleared in the meantime are dropped.
func (s *Stager) Decoded(token uint64, preview Preview, err error) bool {
	if s.pending == nil || token != s.token {
		return false
	}
	if err != nil {
		log.Printf("attachment: decode of %s failed: %v", s.pending.Name, err)
		s.Clear()
		s.alerter.Alert(UnreadableMessage)
		return false
	}

	p := preview
	s.preview = &p
	return true
}

// Clear drops the pending attachment, resets the picker so the same file
// can be chosen again and restores the prompt. Safe to call repeatedly.
func (s *Stager) Clear() {
	s.token++
	s.pending = nil
	s.preview = nil
	s.input.Reset()
}

// Pending returns the staged file, if any
func (s *Stager) Pending() (File, bool) {
	if s.pending == nil {
		return File{}, false
	}
	return *s.pending, true
}

// Preview returns the decoded preview. While it is nil the prompt is shown.
func (s *Stager) Preview() (Preview, bool) {
	if s.preview == nil {
		return Preview{}, false
	}
	return *s.preview, true
}

func (s *Stager) PromptVisible() bool {
	return s.preview == nil
}

// InputValue exposes the picker control's value
func (s *Stager) InputValue() string {
	return s.input.Value()
}
