package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/mnajar/platebook/internal/domain"
	"github.com/mnajar/platebook/internal/logger"
	"github.com/mnajar/platebook/internal/session"
)

var (
	errTest     = errors.New("boom")
	fakeCreated = domain.Recipe{ID: 42, Name: "Pancakes"}
)

// fakeService implements domain.RecipeService with overridable
// behavior per test.
type fakeService struct {
	listFn   func() ([]domain.Recipe, error)
	getFn    func(id int) (*domain.Recipe, error)
	ratingFn func(id int) (domain.RatingSummary, error)
	rateFn   func(id, rating int) error
	deletes  int
}

func (f *fakeService) List(ctx context.Context) ([]domain.Recipe, error) {
	if f.listFn != nil {
		return f.listFn()
	}
	return []domain.Recipe{}, nil
}

func (f *fakeService) Filter(ctx context.Context, c domain.Criteria) ([]domain.Recipe, error) {
	return f.List(ctx)
}

func (f *fakeService) Get(ctx context.Context, id int) (*domain.Recipe, error) {
	if f.getFn != nil {
		return f.getFn(id)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeService) AverageRating(ctx context.Context, id int) (domain.RatingSummary, error) {
	if f.ratingFn != nil {
		return f.ratingFn(id)
	}
	return domain.RatingSummary{}, nil
}

func (f *fakeService) Create(ctx context.Context, d domain.Draft) (*domain.Recipe, error) {
	return &domain.Recipe{ID: 1, Name: d.Name, Instructions: d.Instructions, Ingredients: d.Ingredients}, nil
}

func (f *fakeService) Update(ctx context.Context, id int, d domain.Draft) (*domain.Recipe, error) {
	return &domain.Recipe{ID: id, Name: d.Name, Instructions: d.Instructions, Ingredients: d.Ingredients}, nil
}

func (f *fakeService) Delete(ctx context.Context, id int) error {
	f.deletes++
	return nil
}

func (f *fakeService) Rate(ctx context.Context, id, rating int) error {
	if f.rateFn != nil {
		return f.rateFn(id, rating)
	}
	return nil
}

func (f *fakeService) Login(ctx context.Context, username, password string) (string, error) {
	return "fake-token", nil
}

func (f *fakeService) SignUp(ctx context.Context, username, password string) error {
	return nil
}

func (f *fakeService) AverageRatingReport(ctx context.Context, c domain.Criteria) (domain.RatingSummary, error) {
	return domain.RatingSummary{}, nil
}

func (f *fakeService) MostActiveDayReport(ctx context.Context, c domain.Criteria) (*domain.DayReport, error) {
	return nil, nil
}

func testDeps(t *testing.T, svc domain.RecipeService) deps {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	store := session.NewStore(session.NewMemVault(), log)
	if err := store.Hydrate(); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	return deps{svc: svc, store: store, log: log}
}

func loginDeps(t *testing.T, d deps) deps {
	t.Helper()
	if err := d.store.Login("test-token"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return d
}
