package domain

import "context"

// RecipeService is the remote API surface the screens consume. The
// production implementation is api.Client; tests swap in fakes.
type RecipeService interface {
	List(ctx context.Context) ([]Recipe, error)
	Filter(ctx context.Context, c Criteria) ([]Recipe, error)
	Get(ctx context.Context, id int) (*Recipe, error)
	AverageRating(ctx context.Context, id int) (RatingSummary, error)
	Create(ctx context.Context, d Draft) (*Recipe, error)
	Update(ctx context.Context, id int, d Draft) (*Recipe, error)
	Delete(ctx context.Context, id int) error
	Rate(ctx context.Context, id, rating int) error
	Login(ctx context.Context, username, password string) (string, error)
	SignUp(ctx context.Context, username, password string) error
	AverageRatingReport(ctx context.Context, c Criteria) (RatingSummary, error)
	MostActiveDayReport(ctx context.Context, c Criteria) (*DayReport, error)
}

// Vault persists the bearer token between runs. Implementations can be
// file-based or in-memory (tests).
type Vault interface {
	Get() (string, error)
	Set(token string) error
	Remove() error
}
