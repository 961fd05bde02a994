package ui

import (
	"errors"
	"testing"

	"github.com/mnajar/platebook/internal/domain"
)

func TestParseCriteria(t *testing.T) {
	tests := []struct {
		name      string
		minRating string
		start     string
		end       string
		wantZero  bool
		wantErr   bool
	}{
		{"all empty", "", "", "", true, false},
		{"whitespace only", "  ", " ", "", true, false},
		{"valid full", "4", "2024-01-01", "2024-01-31", false, false},
		{"decimal rating", "3.5", "", "", false, false},
		{"rating not a number", "high", "", "", false, true},
		{"rating out of range", "7", "", "", false, true},
		{"bad start date", "", "01/02/2024", "", false, true},
		{"bad end date", "", "", "yesterday", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crit, err := parseCriteria(tt.minRating, tt.start, tt.end)
			if tt.wantErr {
				var verr *domain.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if crit.IsZero() != tt.wantZero {
				t.Fatalf("IsZero() = %v, want %v", crit.IsZero(), tt.wantZero)
			}
		})
	}
}

func TestListStaleResponseDiscarded(t *testing.T) {
	m := newListModel(testDeps(t, &fakeService{}))
	m.seq = 2 // a second fetch is in flight

	// The first fetch's response arrives after the second was issued.
	updated, _ := m.Update(recipesLoadedMsg{seq: 1, recipes: []domain.Recipe{{ID: 1, Name: "Stale"}}})
	m = updated.(listModel)
	if m.status == statusLoaded || len(m.recipes) != 0 {
		t.Fatalf("stale response must be discarded, got status=%d recipes=%v", m.status, m.recipes)
	}

	updated, _ = m.Update(recipesLoadedMsg{seq: 2, recipes: []domain.Recipe{{ID: 2, Name: "Fresh"}}})
	m = updated.(listModel)
	if m.status != statusLoaded || len(m.recipes) != 1 || m.recipes[0].Name != "Fresh" {
		t.Fatalf("latest response must win, got status=%d recipes=%v", m.status, m.recipes)
	}
}

func TestListFailureClearsRecipes(t *testing.T) {
	m := newListModel(testDeps(t, &fakeService{}))

	updated, _ := m.Update(recipesLoadedMsg{seq: 1, recipes: []domain.Recipe{{ID: 1, Name: "Soup"}}})
	m = updated.(listModel)
	if len(m.recipes) != 1 {
		t.Fatalf("setup: expected 1 recipe, got %d", len(m.recipes))
	}

	m.seq = 2
	updated, _ = m.Update(recipesFailedMsg{seq: 2, err: errors.New("boom")})
	m = updated.(listModel)
	if m.status != statusFailed {
		t.Fatalf("expected failed status, got %d", m.status)
	}
	if len(m.recipes) != 0 {
		t.Fatal("stale data must not be shown alongside an error")
	}
	if m.errMsg == "" {
		t.Fatal("expected a user-visible error message")
	}
}

func TestListRatingBadgeDegrades(t *testing.T) {
	m := newListModel(testDeps(t, &fakeService{}))

	updated, _ := m.Update(recipesLoadedMsg{seq: 1, recipes: []domain.Recipe{{ID: 5, Name: "Pie"}}})
	m = updated.(listModel)

	updated, _ = m.Update(recipeRatingMsg{seq: 1, id: 5, err: errors.New("boom")})
	m = updated.(listModel)
	if got := m.ratings[5]; !got.Degraded {
		t.Fatalf("failed badge fetch should degrade, got %+v", got)
	}
	if m.status != statusLoaded {
		t.Fatal("a badge failure must not fail the list")
	}
}
