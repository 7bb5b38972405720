package forms

import (
	"context"
	"sync"

	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/models"
)

// MockDispatcher records outbound calls and answers with a canned outcome.
type MockDispatcher struct {
	mu sync.Mutex

	Outcome dispatch.Outcome
	Err     error

	// Block, when set, holds every call until it is closed
	Block chan struct{}

	Edits     []dispatch.ReviewPayload
	ReviewIDs []int
	Signups   []dispatch.SignupPayload
}

func (m *MockDispatcher) SubmitEdit(ctx context.Context, review dispatch.ReviewPayload, reviewID int) (dispatch.Outcome, error) {
	m.mu.Lock()
	m.Edits = append(m.Edits, review)
	m.ReviewIDs = append(m.ReviewIDs, reviewID)
	m.mu.Unlock()
	return m.answer(ctx)
}

func (m *MockDispatcher) SubmitSignup(ctx context.Context, signup dispatch.SignupPayload) (dispatch.Outcome, error) {
	m.mu.Lock()
	m.Signups = append(m.Signups, signup)
	m.mu.Unlock()
	return m.answer(ctx)
}

func (m *MockDispatcher) answer(ctx context.Context) (dispatch.Outcome, error) {
	if m.Block != nil {
		select {
		case <-m.Block:
		case <-ctx.Done():
			return dispatch.Outcome{}, ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Outcome, m.Err
}

func (m *MockDispatcher) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Edits) + len(m.Signups)
}

// MockHost stands in for the modal host, the product page and the session.
type MockHost struct {
	mu sync.Mutex

	Closed   int
	Reloaded []int
	SignedIn []*models.User

	UserID   int
	LoggedIn bool
}

func (m *MockHost) CloseForm() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed++
}

func (m *MockHost) ReloadProduct(productID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reloaded = append(m.Reloaded, productID)
}

func (m *MockHost) CurrentUserID() (int, bool) {
	return m.UserID, m.LoggedIn
}

func (m *MockHost) SignIn(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SignedIn = append(m.SignedIn, user)
	return nil
}
