package common

import "sync"

// InputState tracks which keys are currently held. Window callbacks write it and the frame
// update reads it; both may run on different goroutines on some platforms.
type InputState struct {
	mu   sync.RWMutex
	down map[KeyCode]bool
}

// NewInputState creates an InputState with no keys held.
func NewInputState() *InputState {
	return &InputState{down: make(map[KeyCode]bool)}
}

// Press marks a key as held.
func (s *InputState) Press(key KeyCode) {
	s.mu.Lock()
	s.down[key] = true
	s.mu.Unlock()
}

// Release marks a key as no longer held.
func (s *InputState) Release(key KeyCode) {
	s.mu.Lock()
	delete(s.down, key)
	s.mu.Unlock()
}

// Down reports whether a key is held.
func (s *InputState) Down(key KeyCode) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.down[key]
}

// Clear releases every key, e.g. when the window loses focus.
func (s *InputState) Clear() {
	s.mu.Lock()
	s.down = make(map[KeyCode]bool)
	s.mu.Unlock()
}
