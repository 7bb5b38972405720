package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tienda/internal/cli"
	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/forms"
	"github.com/thenoetrevino/tienda/internal/models"
)

type fakeStore struct {
	review  *models.Review
	outcome dispatch.Outcome
	err     error

	edits []dispatch.ReviewPayload
	ids   []int
}

func (s *fakeStore) GetReview(ctx context.Context, reviewID int) (*models.Review, error) {
	if s.review == nil || s.review.ID != reviewID {
		return nil, dispatch.ErrNotFound
	}
	return s.review, nil
}

func (s *fakeStore) SubmitEdit(ctx context.Context, review dispatch.ReviewPayload, reviewID int) (dispatch.Outcome, error) {
	s.edits = append(s.edits, review)
	s.ids = append(s.ids, reviewID)
	return s.outcome, s.err
}

type identity struct {
	id int
}

func (i identity) CurrentUserID() (int, bool) { return i.id, i.id > 0 }

func newFakeStore() *fakeStore {
	return &fakeStore{review: &models.Review{
		ID:        3,
		UserID:    7,
		ProductID: 1,
		Body:      "Pours beautifully",
		Rating:    4,
	}}
}

func strPtr(s string) *string { return &s }

func TestSubmit_BodyOnly(t *testing.T) {
	store := newFakeStore()

	res, err := Submit(context.Background(), store, identity{7}, time.Second,
		SubmitInput{ReviewID: 3, Body: strPtr("Holds temperature for an hour.")})
	require.NoError(t, err)

	want := []dispatch.ReviewPayload{{
		Body:      "Holds temperature for an hour.",
		Rating:    4,
		ProductID: 1,
		UserID:    7,
	}}
	if diff := cmp.Diff(want, store.edits); diff != "" {
		t.Errorf("edits mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{3}, store.ids)
	assert.Equal(t, &SubmitResult{ReviewID: 3, ProductID: 1, Body: "Holds temperature for an hour.", Rating: 4}, res)
	assert.Equal(t, 3, res.GetID())
}

func TestSubmit_RatingOnly(t *testing.T) {
	store := newFakeStore()

	res, err := Submit(context.Background(), store, identity{7}, time.Second,
		SubmitInput{ReviewID: 3, Rating: 2})
	require.NoError(t, err)
	require.Len(t, store.edits, 1)
	assert.Equal(t, "Pours beautifully", store.edits[0].Body)
	assert.Equal(t, 2, store.edits[0].Rating)
	assert.Equal(t, 2, res.Rating)
}

func TestSubmit_InvalidDraftSendsNothing(t *testing.T) {
	store := newFakeStore()

	_, err := Submit(context.Background(), store, identity{7}, time.Second,
		SubmitInput{ReviewID: 3, Body: strPtr("meh")})
	require.ErrorIs(t, err, forms.ErrInvalidDraft)
	assert.Empty(t, store.edits)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	want := forms.ErrorSet{forms.FieldBody: forms.MsgBodyTooShort}
	if diff := cmp.Diff(want, submitErr.Fields); diff != "" {
		t.Errorf("field errors mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
}

func TestSubmit_NotSignedIn(t *testing.T) {
	store := newFakeStore()

	_, err := Submit(context.Background(), store, identity{}, time.Second,
		SubmitInput{ReviewID: 3, Rating: 5})
	require.ErrorIs(t, err, forms.ErrNotSignedIn)
	assert.Empty(t, store.edits)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, forms.MsgNotSignedIn, submitErr.FieldErrors()[forms.FieldServer])
}

func TestSubmit_ReviewNotFound(t *testing.T) {
	_, err := Submit(context.Background(), newFakeStore(), identity{7}, time.Second,
		SubmitInput{ReviewID: 404, Rating: 5})
	require.ErrorIs(t, err, dispatch.ErrNotFound)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestSubmit_StoreRejects(t *testing.T) {
	store := newFakeStore()
	store.outcome = dispatch.Outcome{
		Code:   dispatch.CodeUnauthorized,
		Errors: map[string]string{dispatch.ErrorKeyServer: "You can only edit your own reviews"},
	}

	_, err := Submit(context.Background(), store, identity{8}, time.Second,
		SubmitInput{ReviewID: 3, Rating: 5})
	require.ErrorIs(t, err, forms.ErrRejected)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, forms.MsgReviewFailed, submitErr.Fields[forms.FieldServer])
}

func TestSubmit_TransportFailure(t *testing.T) {
	store := newFakeStore()
	store.err = dispatch.ErrConnectionLost

	_, err := Submit(context.Background(), store, identity{7}, time.Second,
		SubmitInput{ReviewID: 3, Rating: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dispatch.ErrConnectionLost))

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, forms.MsgUnreachable, submitErr.Fields[forms.FieldServer])
}
