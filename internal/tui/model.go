package tui

import (
	"context"
	"slices"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/tienda/internal/config"
	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/forms"
	"github.com/thenoetrevino/tienda/internal/models"
	"github.com/thenoetrevino/tienda/internal/session"
	"github.com/thenoetrevino/tienda/internal/tui/state"
	"github.com/thenoetrevino/tienda/internal/tui/theme"
)

// defaultTimeout bounds store calls when the config does not set one
const defaultTimeout = 10 * time.Second

// Session is the signed in user as the TUI sees it
type Session interface {
	forms.Identity
	forms.SessionWriter
	Current() *session.Session
}

// Options selects what the TUI shows on start
type Options struct {
	ProductID int  // product page to show
	ReviewID  int  // open the review editor for this review
	Signup    bool // open the signup form
}

// Model represents the application state for the TUI
type Model struct {
	ctx     context.Context
	store   dispatch.Store
	session Session
	cfg     *config.Config
	keys    KeyMap
	opts    Options

	uiState     *state.UIState
	notifyState *state.NotificationState
	reloads     *reloadQueue
	page        *viewport.Model

	productID int
	product   *models.ProductDetail
	loadErr   error
	loading   bool

	review *reviewModal
	signup *signupModal

	// exitOnClose quits once the start-up form closes and there is no page behind it
	exitOnClose bool
}

// New creates the TUI model. The store must already be connected.
func New(ctx context.Context, store dispatch.Store, sess Session, cfg *config.Config, opts Options) Model {
	theme.Init(cfg.ColorScheme)

	page := viewport.New()

	m := Model{
		ctx:         ctx,
		store:       store,
		session:     sess,
		cfg:         cfg,
		keys:        NewKeyMap(cfg.KeyMappings),
		opts:        opts,
		uiState:     state.NewUIState(),
		notifyState: state.NewNotificationState(),
		reloads:     &reloadQueue{},
		page:        &page,
		productID:   opts.ProductID,
		loading:     opts.ProductID > 0 || opts.ReviewID > 0,
		exitOnClose: opts.Signup && opts.ProductID == 0 && opts.ReviewID == 0,
	}

	if opts.Signup {
		m.openSignup()
	}
	return m
}

// Init initializes the Bubble Tea application
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	switch {
	case m.opts.ReviewID > 0:
		cmds = append(cmds, m.loadReview(m.opts.ReviewID))
	case m.productID > 0:
		cmds = append(cmds, m.loadProduct(m.productID))
	}
	if m.signup != nil {
		cmds = append(cmds, m.signup.focusCurrent())
	}
	return batch(cmds...)
}

func (m Model) timeout() time.Duration {
	if m.cfg.SubmitTimeout > 0 {
		return m.cfg.SubmitTimeout
	}
	return defaultTimeout
}

// currentUsername returns the signed in username, or "" when signed out
func (m Model) currentUsername() string {
	if m.session == nil {
		return ""
	}
	if cur := m.session.Current(); cur != nil {
		return cur.Username
	}
	return ""
}

func (m Model) currentUserID() (int, bool) {
	if m.session == nil {
		return 0, false
	}
	return m.session.CurrentUserID()
}

func (m Model) loadProduct(productID int) tea.Cmd {
	ctx, store, timeout := m.ctx, m.store, m.timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		detail, err := store.GetProduct(ctx, productID)
		return productLoadedMsg{productID: productID, detail: detail, err: err}
	}
}

func (m Model) loadReview(reviewID int) tea.Cmd {
	ctx, store, timeout := m.ctx, m.store, m.timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		rv, err := store.GetReview(ctx, reviewID)
		return reviewLoadedMsg{review: rv, err: err}
	}
}

func (m Model) setFavorite(productID, userID int, favorite bool) tea.Cmd {
	ctx, store, timeout := m.ctx, m.store, m.timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		outcome, err := store.SetFavorite(ctx, productID, dispatch.FavoritePayload{
			UserID:   userID,
			Favorite: favorite,
		})
		return favoriteToggledMsg{productID: productID, favorite: favorite, outcome: outcome, err: err}
	}
}

// drainReloads turns queued reload requests for the page on screen into commands
func (m *Model) drainReloads() []tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.reloads.drain() {
		if id != m.productID {
			continue
		}
		m.loading = true
		cmds = append(cmds, m.loadProduct(id))
	}
	return cmds
}

// batch drops nil commands and avoids wrapping a single command
func batch(cmds ...tea.Cmd) tea.Cmd {
	cmds = slices.DeleteFunc(cmds, func(c tea.Cmd) bool { return c == nil })
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}
