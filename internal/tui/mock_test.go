package tui

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tienda/internal/config"
	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/models"
	"github.com/thenoetrevino/tienda/internal/session"
)

// MockStore is a dispatch.Store that serves canned records and records mutations
type MockStore struct {
	mu sync.Mutex

	Products map[int]*models.ProductDetail
	Reviews  map[int]*models.Review

	EditOutcome   dispatch.Outcome
	SignupOutcome dispatch.Outcome
	Err           error

	Edits     []dispatch.ReviewPayload
	Signups   []dispatch.SignupPayload
	Favorites []dispatch.FavoritePayload
	Loads     int
}

func (s *MockStore) Connect(ctx context.Context) error { return nil }
func (s *MockStore) Close() error                      { return nil }

func (s *MockStore) SubmitEdit(ctx context.Context, review dispatch.ReviewPayload, reviewID int) (dispatch.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Edits = append(s.Edits, review)
	return s.EditOutcome, s.Err
}

func (s *MockStore) SubmitSignup(ctx context.Context, signup dispatch.SignupPayload) (dispatch.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Signups = append(s.Signups, signup)
	return s.SignupOutcome, s.Err
}

func (s *MockStore) Login(ctx context.Context, login dispatch.LoginPayload) (dispatch.Outcome, error) {
	return dispatch.Outcome{}, nil
}

func (s *MockStore) SetFavorite(ctx context.Context, productID int, fav dispatch.FavoritePayload) (dispatch.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Favorites = append(s.Favorites, fav)
	return dispatch.Outcome{}, s.Err
}

func (s *MockStore) GetReview(ctx context.Context, reviewID int) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rv, ok := s.Reviews[reviewID]
	if !ok {
		return nil, dispatch.ErrNotFound
	}
	return rv, nil
}

func (s *MockStore) GetProduct(ctx context.Context, productID int) (*models.ProductDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Loads++
	if s.Err != nil {
		return nil, s.Err
	}
	d, ok := s.Products[productID]
	if !ok {
		return nil, dispatch.ErrNotFound
	}
	return d, nil
}

func (s *MockStore) Stats(ctx context.Context) (*dispatch.Stats, error) {
	return &dispatch.Stats{}, nil
}

// ============================================================================
// Test Helpers
// ============================================================================

const (
	testUserID    = 7
	testProductID = 1
	testReviewID  = 3
)

func newMockStore() *MockStore {
	rv := &models.Review{
		ID:        testReviewID,
		UserID:    testUserID,
		Username:  "marta",
		ProductID: testProductID,
		Body:      "Pours beautifully",
		Rating:    4,
	}
	return &MockStore{
		Products: map[int]*models.ProductDetail{
			testProductID: {
				Product:       models.Product{ID: testProductID, Name: "Kettle", Price: 42},
				Reviews:       []*models.Review{rv},
				AverageRating: 4,
				ReviewCount:   1,
			},
		},
		Reviews: map[int]*models.Review{testReviewID: rv},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		SubmitTimeout: time.Second,
		KeyMappings:   config.DefaultKeyMappings(),
		ColorScheme:   config.DefaultColorScheme(),
	}
}

func newTestSession(t *testing.T, signedIn bool) *session.Store {
	t.Helper()
	sess, err := session.Open(filepath.Join(t.TempDir(), "session.yaml"))
	require.NoError(t, err)
	if signedIn {
		require.NoError(t, sess.SignIn(&models.User{ID: testUserID, Username: "marta"}))
	}
	return sess
}

// newTestModel builds a sized model and feeds it the start-up product load
func newTestModel(t *testing.T, store *MockStore, sess *session.Store, opts Options) Model {
	t.Helper()
	m := New(context.Background(), store, sess, testConfig(), opts)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if opts.ProductID > 0 {
		m = update(t, m, m.loadProduct(opts.ProductID)())
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)
	return model
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)
	return model, cmd
}

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "esc":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
	case "tab":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab})
	case "shift+tab":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift})
	case "enter":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
	case "left":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyLeft})
	case "right":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyRight})
	case "backspace":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyBackspace})
	case "ctrl+s":
		return tea.KeyPressMsg(tea.Key{Code: 's', Mod: tea.ModCtrl})
	case "ctrl+c":
		return tea.KeyPressMsg(tea.Key{Code: 'c', Mod: tea.ModCtrl})
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg(tea.Key{Code: r, Text: s})
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = update(t, m, keyPress(string(r)))
	}
	return m
}

// runCmd executes a command that must produce exactly one message
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}
