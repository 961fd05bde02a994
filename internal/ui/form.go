package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/mnajar/platebook/internal/domain"
)

// ingredientEntry is one confirmed row of the structured ingredient
// helper. The id is client-generated and ephemeral, used only to render
// a removable list; it is never sent to the server.
type ingredientEntry struct {
	id     string
	amount string
	unit   string
	name   string
}

// line serializes the entry as one line of the ingredients text.
func (e ingredientEntry) line() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.amount, e.unit, e.name} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// appendIngredient appends the entry's line to the free text. The text
// field stays the single source of truth for submission.
func appendIngredient(text string, e ingredientEntry) string {
	line := e.line()
	if line == "" {
		return text
	}
	if strings.TrimSpace(text) == "" {
		return line
	}
	return strings.TrimRight(text, "\n") + "\n" + line
}

// rebuildText renders the whole ingredients text from the structured
// entries alone. Manual edits typed directly into the text since the
// last structured addition are discarded. Known limitation of the
// helper.
func rebuildText(entries []ingredientEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if l := e.line(); l != "" {
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n")
}

// Form focus slots, in tab order.
const (
	formFocusName = iota
	formFocusIngredients
	formFocusInstructions
	formFocusAmount
	formFocusUnit
	formFocusIngName
	formFocusEntries
	formFocusCount
)

// formModel is the create/edit screen. It holds a draft recipe plus the
// structured ingredient helper layered on top of the ingredients text.
type formModel struct {
	deps
	existing *domain.Recipe // nil = create

	name         textinput.Model
	ingredients  textarea.Model
	instructions textarea.Model
	amount       textinput.Model
	unit         textinput.Model
	ingName      textinput.Model

	entries     []ingredientEntry
	entryCursor int

	// Display-only aggregate shown while editing.
	ratingStatus fetchStatus
	rating       domain.RatingSummary

	focus      int
	submitting bool
	errMsg     string
}

type formSavedMsg struct {
	recipe *domain.Recipe
	err    error
}

type formRatingMsg struct {
	summary domain.RatingSummary
	err     error
}

func newFormModel(d deps, existing *domain.Recipe) formModel {
	m := formModel{deps: d, existing: existing}

	m.name = textinput.New()
	m.name.Placeholder = "recipe name"
	m.name.CharLimit = 255
	m.name.Width = 40

	m.ingredients = textarea.New()
	m.ingredients.Placeholder = "one ingredient per line"
	m.ingredients.SetHeight(5)
	m.ingredients.SetWidth(60)

	m.instructions = textarea.New()
	m.instructions.Placeholder = "step-by-step instructions"
	m.instructions.SetHeight(8)
	m.instructions.SetWidth(60)

	m.amount = textinput.New()
	m.amount.Placeholder = "amount"
	m.amount.Width = 8
	m.unit = textinput.New()
	m.unit.Placeholder = "unit"
	m.unit.Width = 10
	m.ingName = textinput.New()
	m.ingName.Placeholder = "ingredient"
	m.ingName.Width = 20

	if existing != nil {
		m.name.SetValue(existing.Name)
		m.ingredients.SetValue(existing.Ingredients)
		m.instructions.SetValue(existing.Instructions)
	}

	m.focus = formFocusName
	return m
}

func (m formModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.name.Focus()}
	if m.existing != nil {
		svc, id := m.svc, m.existing.ID
		cmds = append(cmds, func() tea.Msg {
			summary, err := svc.AverageRating(context.Background(), id)
			return formRatingMsg{summary: summary, err: err}
		})
	}
	return tea.Batch(cmds...)
}

// addEntry confirms the helper inputs as a structured entry and appends
// its line to the ingredients text.
func (m formModel) addEntry() formModel {
	e := ingredientEntry{
		id:     uuid.NewString(),
		amount: m.amount.Value(),
		unit:   m.unit.Value(),
		name:   m.ingName.Value(),
	}
	if e.line() == "" {
		return m
	}
	m.entries = append(m.entries, e)
	m.ingredients.SetValue(appendIngredient(m.ingredients.Value(), e))
	m.amount.Reset()
	m.unit.Reset()
	m.ingName.Reset()
	return m
}

// removeEntry drops the selected structured entry and rebuilds the
// ingredients text from the remaining entries.
func (m formModel) removeEntry() formModel {
	if m.entryCursor < 0 || m.entryCursor >= len(m.entries) {
		return m
	}
	m.entries = append(m.entries[:m.entryCursor], m.entries[m.entryCursor+1:]...)
	if m.entryCursor >= len(m.entries) && m.entryCursor > 0 {
		m.entryCursor--
	}
	m.ingredients.SetValue(rebuildText(m.entries))
	return m
}

func (m formModel) draft() domain.Draft {
	return domain.Draft{
		Name:         strings.TrimSpace(m.name.Value()),
		Instructions: m.instructions.Value(),
		Ingredients:  m.ingredients.Value(),
	}
}

func (m formModel) save() tea.Cmd {
	svc := m.svc
	draft := m.draft()
	var id int
	if m.existing != nil {
		id = m.existing.ID
	}
	return func() tea.Msg {
		ctx := context.Background()
		var (
			recipe *domain.Recipe
			err    error
		)
		if id != 0 {
			recipe, err = svc.Update(ctx, id, draft)
		} else {
			recipe, err = svc.Create(ctx, draft)
		}
		return formSavedMsg{recipe: recipe, err: err}
	}
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		// Navigate with the identifier the server returned; the client
		// never invents or reuses a stale one.
		return m, navigate(showDetailMsg{id: msg.recipe.ID})

	case formRatingMsg:
		if msg.err != nil || msg.summary.Degraded {
			// Display-only; degrade quietly to N/A.
			m.ratingStatus = statusFailed
			return m, nil
		}
		m.ratingStatus = statusLoaded
		m.rating = msg.summary
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab:
			m.focus = (m.focus + 1) % formFocusCount
			return m.applyFocus()
		case tea.KeyShiftTab:
			m.focus--
			if m.focus < 0 {
				m.focus = formFocusCount - 1
			}
			return m.applyFocus()
		case tea.KeyEsc:
			if m.existing != nil {
				return m, navigate(showDetailMsg{id: m.existing.ID})
			}
			return m, navigate(showListMsg{})
		case tea.KeyCtrlS:
			return m.submit()
		case tea.KeyEnter:
			// Enter confirms the helper inputs; in the text areas it
			// just inserts a newline, handled below.
			switch m.focus {
			case formFocusAmount, formFocusUnit, formFocusIngName:
				m = m.addEntry()
				return m, nil
			}
		}

		if m.focus == formFocusEntries {
			switch msg.String() {
			case "up", "k":
				if m.entryCursor > 0 {
					m.entryCursor--
				}
			case "down", "j":
				if m.entryCursor < len(m.entries)-1 {
					m.entryCursor++
				}
			case "x", "backspace", "delete":
				m = m.removeEntry()
			}
			return m, nil
		}
	}

	return m.updateInputs(msg)
}

func (m formModel) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	if !m.store.Current().Authenticated {
		m.errMsg = "You must be logged in to save recipes."
		return m, nil
	}
	if err := m.draft().Validate(); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.submitting = true
	m.errMsg = ""
	return m, m.save()
}

func (m formModel) applyFocus() (tea.Model, tea.Cmd) {
	m.name.Blur()
	m.ingredients.Blur()
	m.instructions.Blur()
	m.amount.Blur()
	m.unit.Blur()
	m.ingName.Blur()

	var cmd tea.Cmd
	switch m.focus {
	case formFocusName:
		cmd = m.name.Focus()
	case formFocusIngredients:
		cmd = m.ingredients.Focus()
	case formFocusInstructions:
		cmd = m.instructions.Focus()
	case formFocusAmount:
		cmd = m.amount.Focus()
	case formFocusUnit:
		cmd = m.unit.Focus()
	case formFocusIngName:
		cmd = m.ingName.Focus()
	}
	return m, cmd
}

func (m formModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case formFocusName:
		m.name, cmd = m.name.Update(msg)
	case formFocusIngredients:
		m.ingredients, cmd = m.ingredients.Update(msg)
	case formFocusInstructions:
		m.instructions, cmd = m.instructions.Update(msg)
	case formFocusAmount:
		m.amount, cmd = m.amount.Update(msg)
	case formFocusUnit:
		m.unit, cmd = m.unit.Update(msg)
	case formFocusIngName:
		m.ingName, cmd = m.ingName.Update(msg)
	}
	return m, cmd
}

func (m formModel) View() string {
	var b strings.Builder

	if m.existing != nil {
		b.WriteString(titleStyle.Render("Edit Recipe"))
		b.WriteString("  ")
		switch m.ratingStatus {
		case statusLoaded:
			b.WriteString(starStyle.Render(fmt.Sprintf("%.1f★", m.rating.Value)))
		case statusFailed:
			b.WriteString(secondaryStyle.Render("N/A"))
		}
	} else {
		b.WriteString(titleStyle.Render("Create New Recipe"))
	}
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(labelStyle.Render("Name"))
	b.WriteString("\n")
	b.WriteString(m.name.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Ingredients"))
	b.WriteString("\n")
	b.WriteString(m.ingredients.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Instructions"))
	b.WriteString("\n")
	b.WriteString(m.instructions.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Add ingredient: "))
	b.WriteString(m.amount.View())
	b.WriteString(" ")
	b.WriteString(m.unit.View())
	b.WriteString(" ")
	b.WriteString(m.ingName.View())
	b.WriteString("\n")

	if len(m.entries) > 0 {
		b.WriteString("\n")
		for i, e := range m.entries {
			line := e.line()
			if m.focus == formFocusEntries && i == m.entryCursor {
				b.WriteString(selectedStyle.Render("> " + line + "  (x removes)"))
			} else {
				b.WriteString(secondaryStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	if m.submitting {
		b.WriteString("\n")
		b.WriteString(secondaryStyle.Render("Saving..."))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab next field · enter add ingredient · ctrl+s save · esc back"))
	return b.String()
}
