package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tienda/internal/models"
)

func TestUserRepo_CreateAndLookup(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	user := createTestUser(t, repo, "ada")
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byName, err := repo.GetUserByCredential(ctx, "ADA")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.GetUserByCredential(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetUserByCredential(ctx, "nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = repo.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserRepo_Conflicts(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	createTestUser(t, repo, "ada")

	tests := []struct {
		name   string
		user   models.User
		column string
	}{
		{
			name:   "duplicate email",
			user:   models.User{FirstName: "A", LastName: "B", Email: "ADA@example.com", Username: "other", PasswordHash: "x"},
			column: "email",
		},
		{
			name:   "duplicate username",
			user:   models.User{FirstName: "A", LastName: "B", Email: "new@example.com", Username: "Ada", PasswordHash: "x"},
			column: "username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.CreateUser(ctx, &tt.user)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrConflict)

			var conflict *ConflictError
			require.True(t, errors.As(err, &conflict))
			assert.Equal(t, tt.column, conflict.Column)
		})
	}
}

func TestReviewRepo_CRUD(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	owner := createTestUser(t, repo, "owner")
	author := createTestUser(t, repo, "author")
	product := createTestProduct(t, repo, owner.ID)

	review, err := repo.CreateReview(ctx, author.ID, product.ID, "Boils fast and quietly", 4)
	require.NoError(t, err)
	assert.Equal(t, "author", review.Username)
	assert.Equal(t, 4, review.Rating)

	_, err = repo.CreateReview(ctx, author.ID, product.ID, "Second opinion", 2)
	assert.ErrorIs(t, err, models.ErrConflict)

	require.NoError(t, repo.UpdateReview(ctx, review.ID, "Boils fast, a bit loud", 3))
	got, err := repo.GetReviewByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, "Boils fast, a bit loud", got.Body)
	assert.Equal(t, 3, got.Rating)

	assert.ErrorIs(t, repo.UpdateReview(ctx, 999, "nothing here", 3), models.ErrNotFound)

	require.NoError(t, repo.DeleteReview(ctx, review.ID))
	_, err = repo.GetReviewByID(ctx, review.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestReviewRepo_RatingConstraint(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	owner := createTestUser(t, repo, "owner")
	product := createTestProduct(t, repo, owner.ID)

	_, err := repo.CreateReview(ctx, owner.ID, product.ID, "Six stars is not a thing", 6)
	assert.Error(t, err)
}

func TestProductRepo_Detail(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	owner := createTestUser(t, repo, "owner")
	a := createTestUser(t, repo, "alice")
	b := createTestUser(t, repo, "bob")
	product := createTestProduct(t, repo, owner.ID)

	empty, err := repo.GetProductDetail(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.ReviewCount)
	assert.Zero(t, empty.AverageRating)
	assert.Empty(t, empty.Reviews)

	_, err = repo.CreateReview(ctx, a.ID, product.ID, "Lovely kettle overall", 5)
	require.NoError(t, err)
	_, err = repo.CreateReview(ctx, b.ID, product.ID, "Handle gets warm", 2)
	require.NoError(t, err)

	require.NoError(t, repo.AddFavorite(ctx, a.ID, product.ID))
	require.NoError(t, repo.AddFavorite(ctx, a.ID, product.ID))
	require.NoError(t, repo.AddFavorite(ctx, b.ID, product.ID))
	require.NoError(t, repo.RemoveFavorite(ctx, b.ID, product.ID))

	detail, err := repo.GetProductDetail(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kettle", detail.Name)
	assert.Equal(t, 2, detail.ReviewCount)
	assert.InDelta(t, 3.5, detail.AverageRating, 0.001)
	assert.Equal(t, 1, detail.FavoriteCount)
	assert.True(t, detail.FavoritedBy(a.ID))
	assert.False(t, detail.FavoritedBy(b.ID))
	require.NotNil(t, detail.ReviewByUser(b.ID))
	assert.Equal(t, "Handle gets warm", detail.ReviewByUser(b.ID).Body)
	assert.Nil(t, detail.ReviewByUser(owner.ID))

	_, err = repo.GetProductDetail(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	all, err := repo.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestInitDB_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.db")

	db, err := InitDB(ctx, path)
	require.NoError(t, err)

	repo := NewRepository(db)
	user := createTestUser(t, repo, "persisted")
	require.NoError(t, db.Close())

	// reopening keeps the data and does not fail on the existing schema
	db, err = InitDB(ctx, path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	got, err := NewRepository(db).GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Username)
}

func TestUniqueColumn(t *testing.T) {
	assert.Equal(t, "email", uniqueColumn(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)")))
	assert.Equal(t, "user_id", uniqueColumn(errors.New("UNIQUE constraint failed: reviews.user_id, reviews.product_id")))
	assert.Equal(t, "", uniqueColumn(errors.New("disk full")))
}
