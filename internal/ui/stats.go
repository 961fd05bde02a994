package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mnajar/platebook/internal/domain"
)

// statsModel shows the two report figures for the criteria the list
// screen was filtered by. The reports load in parallel and fail
// independently.
type statsModel struct {
	deps
	crit domain.Criteria

	avgStatus fetchStatus
	avg       domain.RatingSummary
	avgErr    string

	dayStatus fetchStatus
	day       *domain.DayReport
	dayErr    string
}

type avgReportMsg struct {
	summary domain.RatingSummary
	err     error
}

type dayReportMsg struct {
	report *domain.DayReport
	err    error
}

func newStatsModel(d deps, crit domain.Criteria) statsModel {
	return statsModel{deps: d, crit: crit}
}

func (m statsModel) Init() tea.Cmd {
	svc, crit := m.svc, m.crit
	avgCmd := func() tea.Msg {
		summary, err := svc.AverageRatingReport(context.Background(), crit)
		return avgReportMsg{summary: summary, err: err}
	}
	dayCmd := func() tea.Msg {
		report, err := svc.MostActiveDayReport(context.Background(), crit)
		return dayReportMsg{report: report, err: err}
	}
	return tea.Batch(avgCmd, dayCmd)
}

func (m statsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case avgReportMsg:
		if msg.err != nil {
			m.avgStatus = statusFailed
			m.avgErr = errorText(msg.err)
			return m, nil
		}
		m.avgStatus = statusLoaded
		m.avg = msg.summary
		return m, nil

	case dayReportMsg:
		if msg.err != nil {
			m.dayStatus = statusFailed
			m.dayErr = errorText(msg.err)
			return m, nil
		}
		m.dayStatus = statusLoaded
		m.day = msg.report
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "b", "enter":
			return m, navigate(showListMsg{})
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m statsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Recipe Statistics"))
	b.WriteString("\n")
	b.WriteString(secondaryStyle.Render(describeCriteria(m.crit)))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Average rating: "))
	switch m.avgStatus {
	case statusIdle, statusLoading:
		b.WriteString(secondaryStyle.Render("loading..."))
	case statusFailed:
		b.WriteString(errorStyle.Render(m.avgErr))
	case statusLoaded:
		if m.avg.Degraded {
			b.WriteString(secondaryStyle.Render("N/A"))
		} else {
			b.WriteString(starStyle.Render(fmt.Sprintf("%.1f / 5", m.avg.Value)))
		}
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Most active day: "))
	switch m.dayStatus {
	case statusIdle, statusLoading:
		b.WriteString(secondaryStyle.Render("loading..."))
	case statusFailed:
		b.WriteString(errorStyle.Render(m.dayErr))
	case statusLoaded:
		if m.day == nil {
			b.WriteString(secondaryStyle.Render("no recipes in range"))
		} else {
			b.WriteString(primaryStyle.Render(fmt.Sprintf("%s (%d recipes)", m.day.Day, m.day.Count)))
		}
	}
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("esc back"))
	return b.String()
}

// describeCriteria summarizes the active filters for the header line.
func describeCriteria(c domain.Criteria) string {
	if c.IsZero() {
		return "all recipes"
	}
	parts := []string{}
	if c.MinRating != nil {
		parts = append(parts, fmt.Sprintf("rating ≥ %.1f", *c.MinRating))
	}
	if c.StartDate != nil {
		parts = append(parts, "from "+c.StartDate.Format(domain.DateLayout))
	}
	if c.EndDate != nil {
		parts = append(parts, "until "+c.EndDate.Format(domain.DateLayout))
	}
	return strings.Join(parts, ", ")
}
