package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mnajar/platebook/internal/domain"
)

// detailModel is the detail/rating screen. The recipe and its aggregate
// rating load independently, each with its own status, so one failing
// never blocks the other's display.
type detailModel struct {
	deps
	id int

	recipeStatus fetchStatus
	recipe       *domain.Recipe
	recipeErr    string

	ratingStatus fetchStatus
	rating       domain.RatingSummary
	ratingErr    string

	stars      int // chosen star value, 0 = none
	submitting bool
	submitErr  string
	submitted  bool

	confirming    bool
	confirmDelete bool // false = cancel focused (the default)
	deleteErr     string
}

// ── Messages ─────────────────────────────────────────────────────

type detailLoadedMsg struct {
	recipe *domain.Recipe
	err    error
}

type detailRatingMsg struct {
	summary domain.RatingSummary
	err     error
}

type ratingSubmittedMsg struct{ err error }

type recipeDeletedMsg struct{ err error }

func newDetailModel(d deps, id int) detailModel {
	return detailModel{deps: d, id: id}
}

func (m detailModel) Init() tea.Cmd {
	// Two independent loads; one failing must not block the other.
	return tea.Batch(m.fetchRecipe(), m.fetchRating())
}

func (m detailModel) fetchRecipe() tea.Cmd {
	svc, id := m.svc, m.id
	return func() tea.Msg {
		recipe, err := svc.Get(context.Background(), id)
		return detailLoadedMsg{recipe: recipe, err: err}
	}
}

func (m detailModel) fetchRating() tea.Cmd {
	svc, id := m.svc, m.id
	return func() tea.Msg {
		summary, err := svc.AverageRating(context.Background(), id)
		return detailRatingMsg{summary: summary, err: err}
	}
}

func (m detailModel) submitRating() tea.Cmd {
	svc, id, stars := m.svc, m.id, m.stars
	return func() tea.Msg {
		return ratingSubmittedMsg{err: svc.Rate(context.Background(), id, stars)}
	}
}

func (m detailModel) deleteRecipe() tea.Cmd {
	svc, id := m.svc, m.id
	return func() tea.Msg {
		return recipeDeletedMsg{err: svc.Delete(context.Background(), id)}
	}
}

func (m detailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		if msg.err != nil {
			m.recipeStatus = statusFailed
			m.recipeErr = errorText(msg.err)
			return m, nil
		}
		m.recipeStatus = statusLoaded
		m.recipe = msg.recipe
		return m, nil

	case detailRatingMsg:
		if msg.err != nil {
			m.ratingStatus = statusFailed
			m.ratingErr = errorText(msg.err)
			return m, nil
		}
		m.ratingStatus = statusLoaded
		m.rating = msg.summary
		return m, nil

	case ratingSubmittedMsg:
		m.submitting = false
		if msg.err != nil {
			// The chosen star value stays selectable for retry.
			m.submitErr = errorText(msg.err)
			return m, nil
		}
		m.submitted = true
		m.submitErr = ""
		// Only the aggregate is refreshed, not the full recipe.
		m.ratingStatus = statusLoading
		return m, m.fetchRating()

	case recipeDeletedMsg:
		m.confirming = false
		if msg.err != nil {
			m.deleteErr = errorText(msg.err)
			return m, nil
		}
		// The detail view is now invalid; leave it.
		return m, navigate(showListMsg{})

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		switch msg.String() {
		case "left", "right", "tab":
			m.confirmDelete = !m.confirmDelete
		case "enter":
			if m.confirmDelete {
				return m, m.deleteRecipe()
			}
			m.confirming = false
		case "esc":
			m.confirming = false
		}
		return m, nil
	}

	switch msg.String() {
	case "1", "2", "3", "4", "5":
		m.stars = int(msg.String()[0] - '0')
		m.submitted = false
		return m, nil
	case "enter":
		if !m.canSubmitRating() || m.submitting {
			return m, nil
		}
		m.submitting = true
		m.submitErr = ""
		return m, m.submitRating()
	case "e":
		if m.recipe != nil {
			return m, navigate(showFormMsg{recipe: m.recipe})
		}
	case "d":
		if m.recipe != nil && m.store.Current().Authenticated {
			m.confirming = true
			m.confirmDelete = false // destructive choice is never the default
			m.deleteErr = ""
		}
	case "esc", "b":
		return m, navigate(showListMsg{})
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// canSubmitRating reports whether the submit affordance is enabled: a
// token must be present and a star value chosen.
func (m detailModel) canSubmitRating() bool {
	return m.store.Current().Authenticated && m.stars >= 1 && m.stars <= 5
}

func (m detailModel) View() string {
	var b strings.Builder

	switch m.recipeStatus {
	case statusIdle, statusLoading:
		b.WriteString(secondaryStyle.Render("Loading recipe..."))
		b.WriteString("\n")
	case statusFailed:
		b.WriteString(errorStyle.Render(m.recipeErr))
		b.WriteString("\n")
	case statusLoaded:
		r := m.recipe
		b.WriteString(titleStyle.Render(r.Name))
		b.WriteString("\n")
		b.WriteString(secondaryStyle.Render("created " + r.DateCreated))
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("Ingredients"))
		b.WriteString("\n")
		for _, line := range strings.Split(r.Ingredients, "\n") {
			b.WriteString(primaryStyle.Render("  - " + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Instructions"))
		b.WriteString("\n")
		b.WriteString(primaryStyle.Render(r.Instructions))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Average rating: "))
	switch m.ratingStatus {
	case statusIdle, statusLoading:
		b.WriteString(secondaryStyle.Render("loading..."))
	case statusFailed:
		b.WriteString(secondaryStyle.Render("N/A"))
	case statusLoaded:
		if m.rating.Degraded {
			b.WriteString(secondaryStyle.Render("N/A"))
		} else {
			b.WriteString(starStyle.Render(fmt.Sprintf("%.1f", m.rating.Value)))
		}
	}
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Your rating: "))
	b.WriteString(starRow(m.stars))
	if m.submitting {
		b.WriteString(secondaryStyle.Render("  submitting..."))
	} else if m.submitted {
		b.WriteString(noticeStyle.Render("  Thank you for your rating!"))
	} else if !m.canSubmitRating() {
		if !m.store.Current().Authenticated {
			b.WriteString(secondaryStyle.Render("  (log in to rate)"))
		} else {
			b.WriteString(secondaryStyle.Render("  (press 1-5, then enter)"))
		}
	}
	b.WriteString("\n")
	if m.submitErr != "" {
		b.WriteString(errorStyle.Render(m.submitErr))
		b.WriteString("\n")
	}
	if m.deleteErr != "" {
		b.WriteString(errorStyle.Render(m.deleteErr))
		b.WriteString("\n")
	}

	if m.confirming {
		b.WriteString("\n")
		b.WriteString(dangerStyle.Render("Delete this recipe?"))
		b.WriteString("  ")
		if m.confirmDelete {
			b.WriteString(secondaryStyle.Render("[ cancel ]") + "  " + dangerStyle.Render("[ DELETE ]"))
		} else {
			b.WriteString(selectedStyle.Render("[ cancel ]") + "  " + secondaryStyle.Render("[ delete ]"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("1-5 pick stars · enter rate · e edit · d delete · esc back"))
	return b.String()
}
