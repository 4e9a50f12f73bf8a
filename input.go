package learn

// Key represents a keyboard key the sample reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyF1
	KeyCount
)

// InputState holds keyboard state for the current frame.
// Backends populate it once per frame, before the loop processes input.
type InputState struct {
	keyDown    [KeyCount]bool
	keyPressed [KeyCount]bool // True on the frame the key went down
	keyUp      [KeyCount]bool // True on the frame the key was released
}

// NewInputState creates a new InputState.
func NewInputState() *InputState {
	return &InputState{}
}

// Reset clears per-frame edges. Held keys stay held.
func (s *InputState) Reset() {
	for i := range s.keyPressed {
		s.keyPressed[i] = false
	}
	for i := range s.keyUp {
		s.keyUp[i] = false
	}
}

// SetKey sets key state.
func (s *InputState) SetKey(key Key, down bool) {
	if key <= KeyNone || key >= KeyCount {
		return
	}

	wasDown := s.keyDown[key]
	s.keyDown[key] = down

	if down && !wasDown {
		s.keyPressed[key] = true
	}
	if !down && wasDown {
		s.keyUp[key] = true
	}
}

// KeyDown returns true if a key is currently held.
func (s *InputState) KeyDown(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyDown[key]
}

// KeyPressed returns true if a key was just pressed (pressed this frame).
func (s *InputState) KeyPressed(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyPressed[key]
}

// KeyReleased returns true if a key was just released.
func (s *InputState) KeyReleased(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyUp[key]
}

// String returns a human-readable name for a key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "--"
	case KeyEscape:
		return "Esc"
	case KeyF1:
		return "F1"
	default:
		return "?"
	}
}
