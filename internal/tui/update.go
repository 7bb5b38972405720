package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/tui/state"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case productLoadedMsg:
		return m.handleProductLoaded(msg)

	case reviewLoadedMsg:
		return m.handleReviewLoaded(msg)

	case reviewSubmittedMsg:
		return m.handleReviewSubmitted(msg)

	case signupSubmittedMsg:
		return m.handleSignupSubmitted(msg)

	case favoriteToggledMsg:
		return m.handleFavoriteToggled(msg)

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// cursor blinks and the like go to whatever is focused
	switch {
	case m.review != nil && m.uiState.Mode() == state.ReviewFormMode:
		return m, m.review.update(msg)
	case m.signup != nil && m.uiState.Mode() == state.SignupFormMode:
		return m, m.signup.update(msg)
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.uiState.SetSize(width, height)
	m.notifyState.SetWindowSize(width, height)

	m.page.SetWidth(width)
	m.page.SetHeight(max(height-1, 1))
	m.refreshPage()

	inner := m.uiState.ModalWidth() - 4
	if m.review != nil {
		m.review.setWidth(inner)
	}
	if m.signup != nil {
		m.signup.setWidth(inner)
	}
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	m.notifyState.Clear()

	switch m.uiState.Mode() {
	case state.ReviewFormMode:
		if m.review != nil {
			return m.updateReviewForm(msg)
		}
	case state.SignupFormMode:
		if m.signup != nil {
			return m.updateSignupForm(msg)
		}
	case state.HelpMode:
		if key.Matches(msg, m.keys.Help, m.keys.CloseForm, m.keys.Quit) {
			m.uiState.SetMode(state.ProductMode)
		}
		return m, nil
	}

	m.uiState.SetMode(state.ProductMode)
	return m.updateProductPage(msg)
}

func (m Model) updateProductPage(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.uiState.SetMode(state.HelpMode)
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.productID == 0 {
			return m, nil
		}
		m.loading = true
		return m, m.loadProduct(m.productID)

	case key.Matches(msg, m.keys.Signup):
		if name := m.currentUsername(); name != "" {
			m.notifyState.Add(state.LevelInfo, fmt.Sprintf("Already signed in as %s. Run tienda logout to switch accounts.", name))
			return m, nil
		}
		cmd := m.openSignup()
		return m, cmd

	case key.Matches(msg, m.keys.EditReview):
		return m.editMyReview()

	case key.Matches(msg, m.keys.Favorite):
		return m.toggleFavorite()
	}

	// anything else scrolls the page
	var cmd tea.Cmd
	*m.page, cmd = m.page.Update(msg)
	return m, cmd
}

func (m Model) editMyReview() (tea.Model, tea.Cmd) {
	userID, ok := m.currentUserID()
	if !ok {
		m.notifyState.Add(state.LevelError, "Sign in to edit your review")
		return m, nil
	}
	if m.product == nil {
		return m, nil
	}

	rv := m.product.ReviewByUser(userID)
	if rv == nil {
		m.notifyState.Add(state.LevelInfo, "You have not reviewed this product yet")
		return m, nil
	}
	cmd := m.openReview(rv)
	return m, cmd
}

func (m Model) toggleFavorite() (tea.Model, tea.Cmd) {
	userID, ok := m.currentUserID()
	if !ok {
		m.notifyState.Add(state.LevelError, "Sign in to save favorites")
		return m, nil
	}
	if m.product == nil {
		return m, nil
	}
	return m, m.setFavorite(m.product.ID, userID, !m.product.FavoritedBy(userID))
}

func (m Model) handleProductLoaded(msg productLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.productID != m.productID {
		return m, nil
	}
	m.loading = false

	if msg.err != nil {
		slog.Error("failed to load product", "product_id", msg.productID, "error", msg.err)
		m.loadErr = msg.err
		m.notifyState.Add(state.LevelError, describeError("Could not load the product", msg.err))
		m.refreshPage()
		return m, nil
	}

	m.product = msg.detail
	m.loadErr = nil
	m.refreshPage()
	return m, nil
}

func (m Model) handleReviewLoaded(msg reviewLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		slog.Error("failed to load review", "review_id", m.opts.ReviewID, "error", msg.err)
		m.loading = false
		m.loadErr = msg.err
		m.notifyState.Add(state.LevelError, describeError("Could not load the review", msg.err))
		m.refreshPage()
		return m, nil
	}

	m.productID = msg.review.ProductID
	m.loading = true
	focus := m.openReview(msg.review)
	return m, batch(focus, m.loadProduct(m.productID))
}

func (m Model) handleFavoriteToggled(msg favoriteToggledMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err != nil:
		slog.Error("failed to update favorite", "product_id", msg.productID, "error", msg.err)
		m.notifyState.Add(state.LevelError, describeError("Could not update favorites", msg.err))
		return m, nil
	case !msg.outcome.OK():
		m.notifyState.Add(state.LevelError, msg.outcome.Errors[dispatch.ErrorKeyServer])
		return m, nil
	}

	if msg.favorite {
		m.notifyState.Add(state.LevelInfo, "Added to favorites")
	} else {
		m.notifyState.Add(state.LevelInfo, "Removed from favorites")
	}

	if msg.productID != m.productID {
		return m, nil
	}
	m.loading = true
	return m, m.loadProduct(msg.productID)
}

// describeError turns a store error into a one-line notification
func describeError(prefix string, err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, dispatch.ErrNotFound):
		return prefix + ": not found"
	case errors.Is(err, dispatch.ErrRateLimited):
		return prefix + ": too many requests"
	case errors.Is(err, context.DeadlineExceeded):
		return prefix + ": the store took too long to respond"
	case errors.Is(err, dispatch.ErrConnectionLost), errors.As(err, &netErr):
		return prefix + ". " + dispatch.ClassifyDaemonError(err).Error()
	}
	return prefix + ": " + err.Error()
}
