package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tienda/internal/tui/components"
	"github.com/thenoetrevino/tienda/internal/tui/notifications"
	"github.com/thenoetrevino/tienda/internal/tui/state"
	"github.com/thenoetrevino/tienda/internal/tui/theme"
)

// View renders the product page with any open modal and notifications layered on top
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	// Wait for terminal size to be initialized
	if m.uiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	base := lipgloss.JoinVertical(lipgloss.Left, m.page.View(), m.statusBar())
	layers := []*lipgloss.Layer{lipgloss.NewLayer(base)}

	if modal := m.overlayView(); modal != "" {
		layers = append(layers, centeredLayer(modal, m.uiState.Width(), m.uiState.Height()))
	}
	layers = append(layers, m.notifyState.GetLayers(notifications.Render)...)

	view.Content = lipgloss.NewCanvas(layers...).Render()
	return view
}

// refreshPage re-renders the product page into the scrolling viewport
func (m *Model) refreshPage() {
	m.page.SetContent(m.pageContent())
}

func (m Model) pageContent() string {
	width := max(m.uiState.Width()-2, 20)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Italic(true)

	switch {
	case m.product != nil:
		userID, _ := m.currentUserID()
		return components.RenderProduct(components.ProductPageProps{
			Detail:        m.product,
			Width:         width,
			CurrentUserID: userID,
		})
	case m.loadErr != nil:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Danger)).
			Render(describeError("Could not load the product", m.loadErr))
	case m.loading:
		return muted.Render("Loading product...")
	}
	return muted.Render("No product selected. Run tienda browse <product-id>.")
}

func (m Model) statusBar() string {
	hint := "press ? for help"
	switch m.uiState.Mode() {
	case state.ReviewFormMode, state.SignupFormMode:
		hint = m.keys.Submit.Help().Key + " submit · " + m.keys.CloseForm.Help().Key + " close"
	case state.HelpMode:
		hint = m.keys.CloseForm.Help().Key + " close help"
	}

	return components.RenderStatusBar(components.StatusBarProps{
		Width:    m.uiState.Width(),
		Username: m.currentUsername(),
		Hint:     hint,
	})
}

func (m Model) overlayView() string {
	width := m.uiState.ModalWidth()
	switch m.uiState.Mode() {
	case state.ReviewFormMode:
		if m.review != nil {
			return m.review.view(width)
		}
	case state.SignupFormMode:
		if m.signup != nil {
			return m.signup.view(width)
		}
	case state.HelpMode:
		return m.helpView(width)
	}
	return ""
}

func (m Model) helpView(width int) string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Accent)).Width(12)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Normal))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title))

	var b strings.Builder
	for i, section := range m.keys.helpSections() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(section.title) + "\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n")
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		Padding(0, 1).
		Width(width).
		Render(strings.TrimRight(b.String(), "\n"))
}

// centeredLayer positions content at the center of the screen
func centeredLayer(content string, screenWidth, screenHeight int) *lipgloss.Layer {
	x := max((screenWidth-lipgloss.Width(content))/2, 0)
	y := max((screenHeight-lipgloss.Height(content))/2, 0)
	return lipgloss.NewLayer(content).X(x).Y(y)
}
