package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mnajar/platebook/internal/domain"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDetailIndependentStatuses(t *testing.T) {
	m := newDetailModel(testDeps(t, &fakeService{}), 1)

	// The recipe load fails but the rating load succeeds; each keeps
	// its own status.
	updated, _ := m.Update(detailLoadedMsg{err: errors.New("boom")})
	m = updated.(detailModel)
	updated, _ = m.Update(detailRatingMsg{summary: domain.RatingSummary{Value: 4.5}})
	m = updated.(detailModel)

	if m.recipeStatus != statusFailed {
		t.Fatalf("recipe status = %d, want failed", m.recipeStatus)
	}
	if m.ratingStatus != statusLoaded || m.rating.Value != 4.5 {
		t.Fatalf("rating status = %d value = %v", m.ratingStatus, m.rating)
	}
}

func TestDetailCanSubmitRating(t *testing.T) {
	d := testDeps(t, &fakeService{})
	m := newDetailModel(d, 1)

	if m.canSubmitRating() {
		t.Fatal("no token, no stars: must be disabled")
	}
	m.stars = 4
	if m.canSubmitRating() {
		t.Fatal("no token: must be disabled")
	}

	m.deps = loginDeps(t, d)
	if !m.canSubmitRating() {
		t.Fatal("token and stars present: must be enabled")
	}
	m.stars = 0
	if m.canSubmitRating() {
		t.Fatal("no star chosen: must be disabled")
	}
}

func TestDetailRatingSuccessRefreshesAggregateOnly(t *testing.T) {
	svc := &fakeService{
		ratingFn: func(id int) (domain.RatingSummary, error) {
			return domain.RatingSummary{Value: 3.8}, nil
		},
	}
	m := newDetailModel(loginDeps(t, testDeps(t, svc)), 1)
	m.stars = 4

	updated, cmd := m.Update(ratingSubmittedMsg{})
	m = updated.(detailModel)
	if !m.submitted {
		t.Fatal("expected submitted flag")
	}
	if m.ratingStatus != statusLoading {
		t.Fatal("aggregate should be re-fetching")
	}
	if cmd == nil {
		t.Fatal("expected a re-fetch command")
	}

	// The command must fetch the aggregate, not the recipe.
	msg := cmd()
	rmsg, ok := msg.(detailRatingMsg)
	if !ok {
		t.Fatalf("expected detailRatingMsg, got %T", msg)
	}
	if rmsg.summary.Value != 3.8 {
		t.Fatalf("summary = %+v", rmsg.summary)
	}
}

func TestDetailRatingFailureKeepsSelection(t *testing.T) {
	m := newDetailModel(loginDeps(t, testDeps(t, &fakeService{})), 1)
	m.stars = 3

	updated, _ := m.Update(ratingSubmittedMsg{err: errors.New("boom")})
	m = updated.(detailModel)
	if m.stars != 3 {
		t.Fatal("the chosen star value must stay selectable for retry")
	}
	if m.submitErr == "" {
		t.Fatal("expected an inline error")
	}
	if m.submitted {
		t.Fatal("must not report success")
	}
}

func TestDetailDeleteConfirmation(t *testing.T) {
	svc := &fakeService{}
	m := newDetailModel(loginDeps(t, testDeps(t, svc)), 1)
	m.recipe = &domain.Recipe{ID: 1, Name: "Soup"}
	m.recipeStatus = statusLoaded

	// "d" opens the confirmation with cancel focused by default.
	updated, _ := m.Update(keyMsg("d"))
	m = updated.(detailModel)
	if !m.confirming {
		t.Fatal("expected confirmation step")
	}
	if m.confirmDelete {
		t.Fatal("the destructive choice must not be the default focus")
	}

	// Enter on the default cancels: nothing is deleted.
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(detailModel)
	if m.confirming || cmd != nil {
		t.Fatal("enter on cancel should just close the confirmation")
	}
	if svc.deletes != 0 {
		t.Fatalf("delete was issued %d times", svc.deletes)
	}

	// Confirming for real issues the delete and navigates away.
	updated, _ = m.Update(keyMsg("d"))
	m = updated.(detailModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(detailModel)
	if !m.confirmDelete {
		t.Fatal("tab should move focus to delete")
	}
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(detailModel)
	if cmd == nil {
		t.Fatal("expected the delete command")
	}
	if _, ok := cmd().(recipeDeletedMsg); !ok {
		t.Fatal("expected recipeDeletedMsg")
	}
	if svc.deletes != 1 {
		t.Fatalf("delete issued %d times, want 1", svc.deletes)
	}

	updated, cmd = m.Update(recipeDeletedMsg{})
	m = updated.(detailModel)
	if cmd == nil {
		t.Fatal("expected navigation away from the deleted recipe")
	}
	if _, ok := cmd().(showListMsg); !ok {
		t.Fatal("expected navigation to the list")
	}
}

func TestDetailDeleteFailureStays(t *testing.T) {
	m := newDetailModel(loginDeps(t, testDeps(t, &fakeService{})), 1)
	m.recipe = &domain.Recipe{ID: 1, Name: "Soup"}

	updated, cmd := m.Update(recipeDeletedMsg{err: errors.New("boom")})
	m = updated.(detailModel)
	if cmd != nil {
		t.Fatal("failed delete must not navigate away")
	}
	if m.deleteErr == "" {
		t.Fatal("expected an inline error")
	}
}
