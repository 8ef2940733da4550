package language

import (
	"slices"
	"sync"
)

// Fallback is reported for a group with no active button.
const Fallback = "English"

// Selector holds one exclusive choice per selector group.
type Selector struct {
	mu      sync.RWMutex
	buttons map[string][]string
	active  map[string]string
}

func NewSelector() *Selector {
	return &Selector{
		buttons: make(map[string][]string),
		active:  make(map[string]string),
	}
}

// AddGroup registers the buttons of a group. An empty initial value leaves
// the group without an active button.
func (s *Selector) AddGroup(group string, buttons []string, initial string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buttons[group] = append([]string(nil), buttons...)
	delete(s.active, group)
	if initial != "" && slices.Index(buttons, initial) >= 0 {
		s.active[group] = initial
	}
}

// Activate marks value active in group and deactivates its siblings.
// Values that are not buttons of the group are ignored.
func (s *Selector) Activate(group, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Index(s.buttons[group], value) < 0 {
		return false
	}
	s.active[group] = value
	return true
}

// Active returns the active value of group, or Fallback.
func (s *Selector) Active(group string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.active[group]; ok {
		return v
	}
	return Fallback
}

// IsActive reports whether value is the active button of group
func (s *Selector) IsActive(group, value string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.active[group]
	return ok && v == value
}

func (s *Selector) Buttons(group string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.buttons[group]...)
}

// Next activates the button after the active one, wrapping around.
func (s *Selector) Next(group string) string {
	return s.step(group, 1)
}

// Prev activates the button before the active one, wrapping around.
func (s *Selector) Prev(group string) string {
	return s.step(group, -1)
}

func (s *Selector) step(group string, delta int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	buttons := s.buttons[group]
	if len(buttons) == 0 {
		return Fallback
	}

	idx := slices.Index(buttons, s.active[group])
	if idx < 0 {
		// nothing active: move relative to the fallback's position
		idx = slices.Index(buttons, Fallback)
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(buttons) - 1
	default:
		idx = (idx + delta + len(buttons)) % len(buttons)
	}

	s.active[group] = buttons[idx]
	return buttons[idx]
}
