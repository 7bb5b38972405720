package fields

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tienda/internal/forms"
	"github.com/thenoetrevino/tienda/internal/models"
	"github.com/thenoetrevino/tienda/internal/tui/theme"
)

const (
	starFilled = "★"
	starEmpty  = "☆"
)

// StarKeys are the bindings the star picker reacts to while focused
type StarKeys struct {
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
}

// Stars renders a forms.RatingSelector and drives it from the keyboard.
// Moving with the arrow keys is a hover; enter or a digit commits; losing
// focus is the pointer leaving the widget.
type Stars struct {
	sel     *forms.RatingSelector
	keys    StarKeys
	focused bool
}

// NewStars wraps sel
func NewStars(sel *forms.RatingSelector, keys StarKeys) *Stars {
	return &Stars{sel: sel, keys: keys}
}

// Update handles a key press while the picker is focused
func (s *Stars) Update(msg tea.Msg) {
	if !s.focused {
		return
	}
	k, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return
	}

	switch {
	case key.Matches(k, s.keys.Left):
		s.move(-1)
	case key.Matches(k, s.keys.Right):
		s.move(1)
	case key.Matches(k, s.keys.Select):
		if s.sel.Hovering() {
			s.sel.Select(s.sel.Preview())
		}
	default:
		if v, ok := digit(k.String()); ok {
			s.sel.Select(v)
		}
	}
}

func digit(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '0'+models.MaxRating {
		return 0, false
	}
	return int(s[0] - '0'), true
}

func (s *Stars) move(delta int) {
	cur := s.sel.Committed()
	if s.sel.Hovering() {
		cur = s.sel.Preview()
	}
	next := min(max(cur+delta, models.MinRating), models.MaxRating)
	s.sel.Enter(next)
}

// Hover moves the pointer over star v
func (s *Stars) Hover(v int) {
	s.sel.Enter(v)
}

// Focus focuses the picker
func (s *Stars) Focus() tea.Cmd {
	s.focused = true
	return nil
}

// Blur removes focus, which discards any preview
func (s *Stars) Blur() {
	s.focused = false
	s.sel.Leave()
}

// Focused returns whether the picker is focused
func (s *Stars) Focused() bool {
	return s.focused
}

// Row renders just the five stars
func (s *Stars) Row() string {
	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.StarFilled))
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.StarEmpty))

	var b strings.Builder
	for i := models.MinRating; i <= models.MaxRating; i++ {
		if i > models.MinRating {
			b.WriteString(" ")
		}
		if s.sel.Filled(i) {
			b.WriteString(filled.Render(starFilled))
		} else {
			b.WriteString(empty.Render(starEmpty))
		}
	}
	return b.String()
}

// View renders the title, stars, caption and error line
func (s *Stars) View(errMsg string, width int) string {
	// the row follows Displayed, the caption names what enter would commit
	caption := "No rating selected"
	if s.sel.Hovering() {
		caption = fmt.Sprintf("select %d of %d (enter)", s.sel.Preview(), models.MaxRating)
	} else if v := s.sel.Committed(); v > 0 {
		caption = fmt.Sprintf("%d of %d", v, models.MaxRating)
	}

	header := titleStyle(s.focused).Render("Rating")
	row := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(borderColor(s.focused, errMsg != ""))).
		Padding(0, 1).
		Render(s.Row())
	line := lipgloss.JoinHorizontal(lipgloss.Center, row, "  ",
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render(caption))

	parts := []string{header, line}
	if errMsg != "" {
		parts = append(parts, RenderError(errMsg, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
