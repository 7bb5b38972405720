package state

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	ProductMode    Mode = iota // Product page, no overlay
	ReviewFormMode             // Review editor modal
	SignupFormMode             // Signup modal
	HelpMode                   // Key binding overlay
)

func (m Mode) String() string {
	switch m {
	case ProductMode:
		return "product"
	case ReviewFormMode:
		return "review"
	case SignupFormMode:
		return "signup"
	case HelpMode:
		return "help"
	}
	return "unknown"
}

// UIState manages terminal dimensions and the current interaction mode.
type UIState struct {
	width  int
	height int
	mode   Mode
}

// NewUIState creates a UIState on the product page
func NewUIState() *UIState {
	return &UIState{mode: ProductMode}
}

// Width returns the terminal width in characters
func (s *UIState) Width() int {
	return s.width
}

// Height returns the terminal height in characters
func (s *UIState) Height() int {
	return s.height
}

// SetSize records the terminal dimensions
func (s *UIState) SetSize(width, height int) {
	s.width = max(width, 0)
	s.height = max(height, 0)
}

// Mode returns the current interaction mode
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode switches the interaction mode
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// ModalWidth is the width a centered form overlay should use
func (s *UIState) ModalWidth() int {
	const preferred = 64
	if s.width == 0 {
		return preferred
	}
	return max(min(preferred, s.width-4), 20)
}
