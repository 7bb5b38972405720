package tui

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/tui/state"
)

func TestInit_LoadsProduct(t *testing.T) {
	store := newMockStore()
	m := New(context.Background(), store, newTestSession(t, false), testConfig(), Options{ProductID: testProductID})
	assert.True(t, m.loading)

	msg := runCmd(t, m.Init())
	loaded, ok := msg.(productLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, testProductID, loaded.productID)

	m = update(t, m, msg)
	assert.False(t, m.loading)
	require.NotNil(t, m.product)
	assert.Equal(t, "Kettle", m.product.Name)
}

func TestInit_NothingToLoad(t *testing.T) {
	m := New(context.Background(), newMockStore(), newTestSession(t, false), testConfig(), Options{})
	assert.Nil(t, m.Init())
	assert.Contains(t, m.pageContent(), "No product selected")
}

func TestProductLoad_Failure(t *testing.T) {
	store := newMockStore()
	store.Err = dispatch.ErrConnectionLost
	m := newTestModel(t, store, newTestSession(t, false), Options{ProductID: testProductID})

	assert.Nil(t, m.product)
	assert.ErrorIs(t, m.loadErr, dispatch.ErrConnectionLost)
	require.True(t, m.notifyState.HasAny())
	assert.Equal(t, state.LevelError, m.notifyState.All()[0].Level)
}

func TestProductLoad_IgnoresOtherProducts(t *testing.T) {
	store := newMockStore()
	m := newTestModel(t, store, newTestSession(t, false), Options{ProductID: testProductID})

	m = update(t, m, productLoadedMsg{productID: 99, err: errors.New("boom")})
	assert.NotNil(t, m.product)
	assert.NoError(t, m.loadErr)
}

func TestReload_FetchesAgain(t *testing.T) {
	store := newMockStore()
	m := newTestModel(t, store, newTestSession(t, false), Options{ProductID: testProductID})

	m, cmd := updateCmd(t, m, keyPress("r"))
	assert.True(t, m.loading)
	m = update(t, m, runCmd(t, cmd))
	assert.False(t, m.loading)
	assert.Equal(t, 2, store.Loads)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, newMockStore(), newTestSession(t, false), Options{ProductID: testProductID})

	_, cmd := updateCmd(t, m, keyPress("q"))
	assert.IsType(t, tea.QuitMsg{}, runCmd(t, cmd))

	_, cmd = updateCmd(t, m, keyPress("ctrl+c"))
	assert.IsType(t, tea.QuitMsg{}, runCmd(t, cmd))
}

func TestHelp_Toggle(t *testing.T) {
	m := newTestModel(t, newMockStore(), newTestSession(t, false), Options{ProductID: testProductID})

	m = update(t, m, keyPress("?"))
	assert.Equal(t, state.HelpMode, m.uiState.Mode())
	assert.Contains(t, m.overlayView(), "edit my review")

	// q closes help instead of quitting
	m, cmd := updateCmd(t, m, keyPress("q"))
	assert.Nil(t, cmd)
	assert.Equal(t, state.ProductMode, m.uiState.Mode())
}

func TestEditMyReview(t *testing.T) {
	t.Run("signed out", func(t *testing.T) {
		m := newTestModel(t, newMockStore(), newTestSession(t, false), Options{ProductID: testProductID})
		m = update(t, m, keyPress("e"))

		assert.Equal(t, state.ProductMode, m.uiState.Mode())
		require.True(t, m.notifyState.HasAny())
		assert.Equal(t, "Sign in to edit your review", m.notifyState.All()[0].Message)
	})

	t.Run("no review by this user", func(t *testing.T) {
		store := newMockStore()
		store.Products[testProductID].Reviews = nil
		m := newTestModel(t, store, newTestSession(t, true), Options{ProductID: testProductID})
		m = update(t, m, keyPress("e"))

		assert.Equal(t, state.ProductMode, m.uiState.Mode())
		assert.Nil(t, m.review)
	})

	t.Run("opens editor seeded with the review", func(t *testing.T) {
		m := newTestModel(t, newMockStore(), newTestSession(t, true), Options{ProductID: testProductID})
		m = update(t, m, keyPress("e"))

		assert.Equal(t, state.ReviewFormMode, m.uiState.Mode())
		require.NotNil(t, m.review)
		assert.Equal(t, "Pours beautifully", m.review.form.Body())
		assert.Equal(t, 4, m.review.form.Rating().Committed())
		assert.Equal(t, testReviewID, m.review.form.ReviewID())
	})
}

func TestOpenReviewByID(t *testing.T) {
	store := newMockStore()
	m := New(context.Background(), store, newTestSession(t, true), testConfig(), Options{ReviewID: testReviewID})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	msg := runCmd(t, m.Init())
	require.IsType(t, reviewLoadedMsg{}, msg)

	m = update(t, m, msg)
	assert.Equal(t, testProductID, m.productID)
	assert.Equal(t, state.ReviewFormMode, m.uiState.Mode())
	require.NotNil(t, m.review)
	assert.Equal(t, "Pours beautifully", m.review.form.Body())
}

func TestOpenReviewByID_NotFound(t *testing.T) {
	m := New(context.Background(), newMockStore(), newTestSession(t, true), testConfig(), Options{ReviewID: 404})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, runCmd(t, m.Init()))

	assert.Nil(t, m.review)
	assert.ErrorIs(t, m.loadErr, dispatch.ErrNotFound)
	assert.Equal(t, "Could not load the review: not found", m.notifyState.All()[0].Message)
}

func TestToggleFavorite(t *testing.T) {
	store := newMockStore()
	m := newTestModel(t, store, newTestSession(t, true), Options{ProductID: testProductID})

	m, cmd := updateCmd(t, m, keyPress("f"))
	msg := runCmd(t, cmd)
	require.Len(t, store.Favorites, 1)
	assert.Equal(t, dispatch.FavoritePayload{UserID: testUserID, Favorite: true}, store.Favorites[0])

	m, cmd = updateCmd(t, m, msg)
	assert.Equal(t, "Added to favorites", m.notifyState.All()[0].Message)
	assert.IsType(t, productLoadedMsg{}, runCmd(t, cmd))
}

func TestToggleFavorite_SignedOut(t *testing.T) {
	store := newMockStore()
	m := newTestModel(t, store, newTestSession(t, false), Options{ProductID: testProductID})

	m, cmd := updateCmd(t, m, keyPress("f"))
	assert.Nil(t, cmd)
	assert.Empty(t, store.Favorites)
	assert.Equal(t, "Sign in to save favorites", m.notifyState.All()[0].Message)
}

func TestNotificationsClearOnKeyPress(t *testing.T) {
	m := newTestModel(t, newMockStore(), newTestSession(t, false), Options{ProductID: testProductID})
	m = update(t, m, keyPress("e"))
	require.True(t, m.notifyState.HasAny())

	m = update(t, m, keyPress("j"))
	assert.False(t, m.notifyState.HasAny())
}

func TestView(t *testing.T) {
	m := New(context.Background(), newMockStore(), newTestSession(t, true), testConfig(), Options{ProductID: testProductID})
	assert.Equal(t, "Loading...", m.View().Content)

	m = newTestModel(t, newMockStore(), newTestSession(t, true), Options{ProductID: testProductID})
	view := m.View()
	assert.True(t, view.AltScreen)
	assert.Contains(t, view.Content, "Kettle")
	assert.Contains(t, view.Content, "signed in as marta")
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", dispatch.ErrNotFound, "Load: not found"},
		{"rate limited", dispatch.ErrRateLimited, "Load: too many requests"},
		{"timeout", context.DeadlineExceeded, "Load: the store took too long to respond"},
		{"connection lost", dispatch.ErrConnectionLost, "Load. Store not running. Start the store: tienda daemon"},
		{"other", errors.New("store error: boom"), "Load: store error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeError("Load", tt.err))
		})
	}
}
