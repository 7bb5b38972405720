package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/tienda/internal/models"
	productservice "github.com/thenoetrevino/tienda/internal/services/product"
	reviewservice "github.com/thenoetrevino/tienda/internal/services/review"
	userservice "github.com/thenoetrevino/tienda/internal/services/user"
)

// DemoPassword is the password every seeded account gets
const DemoPassword = "tienda123"

// SeedResult lists what Seed created
type SeedResult struct {
	Users    []*models.User
	Products []*models.Product
	Reviews  []*models.Review
}

var demoUsers = []userservice.SignupRequest{
	{FirstName: "Marta", LastName: "Ruiz", Email: "marta@example.com", Username: "marta"},
	{FirstName: "Jonas", LastName: "Berg", Email: "jonas@example.com", Username: "jonas"},
	{FirstName: "Priya", LastName: "Nair", Email: "priya@example.com", Username: "priya"},
}

var demoProducts = []productservice.CreateProductRequest{
	{Name: "Gooseneck Kettle", Description: "Variable temperature pour-over kettle with a **1 litre** capacity.", Price: 64.90},
	{Name: "Burr Grinder", Description: "Conical steel burrs, 40 grind settings.", Price: 129.00},
}

var demoReviews = []struct {
	user, product int
	body          string
	rating        int
}{
	{1, 0, "Pours slowly and precisely, holds temperature well.", 5},
	{2, 0, "Lid rattles a little but otherwise great.", 4},
	{0, 1, "Consistent grind, a bit loud in the morning.", 3},
}

// Seed fills an empty store with demo accounts, products and reviews.
// Running it twice fails on the duplicate accounts and creates nothing new.
func (a *App) Seed(ctx context.Context) (*SeedResult, error) {
	res := &SeedResult{}

	for _, req := range demoUsers {
		req.Password = DemoPassword
		u, err := a.UserService.Signup(ctx, req)
		if err != nil {
			var verr *userservice.ValidationError
			if errors.As(err, &verr) {
				return nil, fmt.Errorf("store already seeded: %w", err)
			}
			return nil, fmt.Errorf("failed to seed user %s: %w", req.Username, err)
		}
		res.Users = append(res.Users, u)
	}

	for _, req := range demoProducts {
		req.OwnerID = res.Users[0].ID
		p, err := a.ProductService.CreateProduct(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to seed product %s: %w", req.Name, err)
		}
		res.Products = append(res.Products, p)
	}

	for _, d := range demoReviews {
		rv, err := a.ReviewService.CreateReview(ctx, reviewservice.CreateReviewRequest{
			UserID:    res.Users[d.user].ID,
			ProductID: res.Products[d.product].ID,
			Body:      d.body,
			Rating:    d.rating,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed review: %w", err)
		}
		res.Reviews = append(res.Reviews, rv)
	}

	slog.Info("store seeded", "users", len(res.Users), "products", len(res.Products), "reviews", len(res.Reviews))
	return res, nil
}
