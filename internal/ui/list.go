package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mnajar/platebook/internal/domain"
)

// Filter input indexes. focusNone means the recipe list has focus.
const (
	focusNone = iota - 1
	focusMinRating
	focusStartDate
	focusEndDate
	filterInputCount = 3
)

// listModel is the list/filter screen. Fetches are tagged with a
// monotonically increasing sequence number; responses for anything but
// the latest issued fetch are discarded, so rapid apply/reset never
// shows an older result that arrived later.
type listModel struct {
	deps

	status  fetchStatus
	recipes []domain.Recipe
	ratings map[int]domain.RatingSummary
	errMsg  string
	seq     int

	inputs [filterInputCount]textinput.Model
	focus  int
	cursor int
}

// ── Messages ─────────────────────────────────────────────────────

type recipesLoadedMsg struct {
	seq     int
	recipes []domain.Recipe
}

type recipesFailedMsg struct {
	seq int
	err error
}

type recipeRatingMsg struct {
	seq     int
	id      int
	summary domain.RatingSummary
	err     error
}

func newListModel(d deps) listModel {
	m := listModel{
		deps:    d,
		ratings: map[int]domain.RatingSummary{},
		focus:   focusNone,
		seq:     1, // matches the fetch issued by Init
	}

	minRating := textinput.New()
	minRating.Placeholder = "min rating"
	minRating.CharLimit = 4
	minRating.Width = 12

	start := textinput.New()
	start.Placeholder = "start yyyy-mm-dd"
	start.CharLimit = 10
	start.Width = 16

	end := textinput.New()
	end.Placeholder = "end yyyy-mm-dd"
	end.CharLimit = 10
	end.Width = 16

	m.inputs[focusMinRating] = minRating
	m.inputs[focusStartDate] = start
	m.inputs[focusEndDate] = end
	return m
}

func (m listModel) Init() tea.Cmd {
	return m.fetch(1, nil)
}

// fetch issues a list or filter request tagged with seq. A nil crit
// means the unfiltered listing.
func (m listModel) fetch(seq int, crit *domain.Criteria) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx := context.Background()
		var (
			recipes []domain.Recipe
			err     error
		)
		if crit == nil {
			recipes, err = svc.List(ctx)
		} else {
			recipes, err = svc.Filter(ctx, *crit)
		}
		if err != nil {
			return recipesFailedMsg{seq: seq, err: err}
		}
		return recipesLoadedMsg{seq: seq, recipes: recipes}
	}
}

// fetchRating loads one recipe's aggregate badge for the list.
func (m listModel) fetchRating(seq, id int) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		summary, err := svc.AverageRating(context.Background(), id)
		return recipeRatingMsg{seq: seq, id: id, summary: summary, err: err}
	}
}

// parseCriteria reads the filter inputs. Empty inputs mean
// unconstrained; malformed input is a local validation error.
func parseCriteria(minRating, startDate, endDate string) (domain.Criteria, error) {
	var crit domain.Criteria

	if s := strings.TrimSpace(minRating); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return crit, &domain.ValidationError{Field: "min rating", Reason: "must be a number"}
		}
		if v < 0 || v > 5 {
			return crit, &domain.ValidationError{Field: "min rating", Reason: "must be between 0 and 5"}
		}
		crit.MinRating = &v
	}
	if s := strings.TrimSpace(startDate); s != "" {
		d, err := time.Parse(domain.DateLayout, s)
		if err != nil {
			return crit, &domain.ValidationError{Field: "start date", Reason: "use yyyy-mm-dd"}
		}
		crit.StartDate = &d
	}
	if s := strings.TrimSpace(endDate); s != "" {
		d, err := time.Parse(domain.DateLayout, s)
		if err != nil {
			return crit, &domain.ValidationError{Field: "end date", Reason: "use yyyy-mm-dd"}
		}
		crit.EndDate = &d
	}
	return crit, nil
}

func (m listModel) currentCriteria() (domain.Criteria, error) {
	return parseCriteria(
		m.inputs[focusMinRating].Value(),
		m.inputs[focusStartDate].Value(),
		m.inputs[focusEndDate].Value(),
	)
}

// startFetch moves to Loading under a fresh sequence number.
func (m listModel) startFetch(crit *domain.Criteria) (listModel, tea.Cmd) {
	m.seq++
	m.status = statusLoading
	m.errMsg = ""
	return m, m.fetch(m.seq, crit)
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recipesLoadedMsg:
		if msg.seq != m.seq {
			// Stale response from an earlier fetch.
			return m, nil
		}
		m.status = statusLoaded
		m.recipes = msg.recipes
		m.ratings = map[int]domain.RatingSummary{}
		if m.cursor >= len(m.recipes) {
			m.cursor = 0
		}
		cmds := make([]tea.Cmd, 0, len(m.recipes))
		for _, r := range m.recipes {
			cmds = append(cmds, m.fetchRating(m.seq, r.ID))
		}
		return m, tea.Batch(cmds...)

	case recipesFailedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.status = statusFailed
		m.errMsg = errorText(msg.err)
		// Never show stale data next to an error.
		m.recipes = nil
		m.ratings = map[int]domain.RatingSummary{}
		return m, nil

	case recipeRatingMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			// Badge degrades to N/A; the list itself is unaffected.
			m.ratings[msg.id] = domain.RatingSummary{Degraded: true}
			return m, nil
		}
		m.ratings[msg.id] = msg.summary
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m listModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Keys that work regardless of focus.
	switch msg.Type {
	case tea.KeyTab:
		m.focus++
		if m.focus >= filterInputCount {
			m.focus = focusNone
		}
		return m.applyFocus()
	case tea.KeyEsc:
		if m.focus != focusNone {
			m.focus = focusNone
			return m.applyFocus()
		}
		return m, nil
	case tea.KeyEnter:
		if m.focus != focusNone {
			return m.apply()
		}
		if len(m.recipes) > 0 {
			return m, navigate(showDetailMsg{id: m.recipes[m.cursor].ID})
		}
		return m, nil
	}

	if m.focus != focusNone {
		return m.updateInputs(msg)
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.recipes)-1 {
			m.cursor++
		}
	case "a":
		return m.apply()
	case "r":
		return m.reset()
	case "n":
		return m, navigate(showFormMsg{})
	case "s":
		crit, err := m.currentCriteria()
		if err != nil {
			m.errMsg = errorText(err)
			return m, nil
		}
		return m, navigate(showStatsMsg{crit: crit})
	case "l":
		if m.store.Current().Authenticated {
			if err := m.store.Logout(); err != nil {
				m.log.Warn("logout: %v", err)
			}
			return m, nil
		}
		return m, navigate(showLoginMsg{})
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// apply re-fetches with the current criteria.
func (m listModel) apply() (tea.Model, tea.Cmd) {
	crit, err := m.currentCriteria()
	if err != nil {
		m.errMsg = errorText(err)
		return m, nil
	}
	return m.startFetch(&crit)
}

// reset clears every filter field and behaves exactly like the initial
// unfiltered load.
func (m listModel) reset() (tea.Model, tea.Cmd) {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	return m.startFetch(nil)
}

func (m listModel) applyFocus() (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, filterInputCount)
	for i := range m.inputs {
		if i == m.focus {
			cmds = append(cmds, m.inputs[i].Focus())
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, tea.Batch(cmds...)
}

func (m listModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus == focusNone {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m listModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Platebook · Recipes"))
	b.WriteString("  ")
	if m.store.Current().Authenticated {
		b.WriteString(secondaryStyle.Render("logged in"))
	} else {
		b.WriteString(secondaryStyle.Render("logged out"))
	}
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Filters: "))
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("  ")
	}
	b.WriteString("\n\n")

	switch m.status {
	case statusLoading, statusIdle:
		b.WriteString(secondaryStyle.Render("Loading recipes..."))
	case statusFailed:
		b.WriteString(errorStyle.Render(m.errMsg))
	case statusLoaded:
		if len(m.recipes) == 0 {
			b.WriteString(secondaryStyle.Render("No recipes found matching your criteria."))
		}
		for i, r := range m.recipes {
			line := fmt.Sprintf("%s  %s", r.Name, m.ratingBadge(r.ID))
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString(primaryStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter open · n new · s stats · tab filters · a apply · r reset · l login/logout · q quit"))
	return b.String()
}

func (m listModel) ratingBadge(id int) string {
	summary, ok := m.ratings[id]
	if !ok {
		return secondaryStyle.Render("…")
	}
	if summary.Degraded {
		return secondaryStyle.Render("N/A")
	}
	return starStyle.Render(fmt.Sprintf("%.1f★", summary.Value))
}
