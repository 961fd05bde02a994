// Package ui implements the terminal screens using Bubble Tea. Each
// screen owns its own state exclusively and talks to the remote API
// through commands whose results come back as messages, so the single
// Bubble Tea event loop is the only scheduler. In-flight requests are
// never cancelled; screens ignore results that arrive late.
package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mnajar/platebook/internal/api"
	"github.com/mnajar/platebook/internal/domain"
	"github.com/mnajar/platebook/internal/logger"
	"github.com/mnajar/platebook/internal/session"
)

// fetchStatus tracks one logical asynchronous load.
type fetchStatus int

const (
	statusIdle fetchStatus = iota
	statusLoading
	statusLoaded
	statusFailed
)

// deps is the dependency bundle shared by every screen.
type deps struct {
	svc   domain.RecipeService
	store *session.Store
	log   *logger.Logger
}

// ── Navigation messages ──────────────────────────────────────────

type showListMsg struct{}

type showDetailMsg struct{ id int }

// showFormMsg opens the create form (recipe nil) or the edit form.
type showFormMsg struct{ recipe *domain.Recipe }

// showLoginMsg switches to the login screen; notice is shown above the
// form (e.g. after a successful sign-up).
type showLoginMsg struct{ notice string }

type showSignUpMsg struct{}

type showStatsMsg struct{ crit domain.Criteria }

// ── App ──────────────────────────────────────────────────────────

// App routes between screens. It is the top-level Bubble Tea model.
type App struct {
	deps
	screen tea.Model
	width  int
	height int
}

// NewApp creates the application model starting on the list screen.
// The session store must already be hydrated.
func NewApp(svc domain.RecipeService, store *session.Store, log *logger.Logger) App {
	d := deps{svc: svc, store: store, log: log}
	return App{deps: d, screen: newListModel(d)}
}

func (a App) Init() tea.Cmd {
	return a.screen.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Fall through to the screen so it can resize its inputs.

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case showListMsg:
		a.screen = newListModel(a.deps)
		return a, a.screen.Init()
	case showDetailMsg:
		a.screen = newDetailModel(a.deps, msg.id)
		return a, a.screen.Init()
	case showFormMsg:
		a.screen = newFormModel(a.deps, msg.recipe)
		return a, a.screen.Init()
	case showLoginMsg:
		a.screen = newLoginModel(a.deps, modeLogin, msg.notice)
		return a, a.screen.Init()
	case showSignUpMsg:
		a.screen = newLoginModel(a.deps, modeSignUp, "")
		return a, a.screen.Init()
	case showStatsMsg:
		a.screen = newStatsModel(a.deps, msg.crit)
		return a, a.screen.Init()
	}

	var cmd tea.Cmd
	a.screen, cmd = a.screen.Update(msg)
	return a, cmd
}

func (a App) View() string {
	return a.screen.View()
}

// navigate wraps a navigation message in a command.
func navigate(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// errorText converts any client error into the message a screen shows.
// Every screen calls this at its boundary; no error propagates further.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	var rerr *api.RemoteError
	if errors.As(err, &rerr) {
		return rerr.Message
	}
	var nerr *api.NetworkError
	if errors.As(err, &nerr) {
		return "Could not reach the server. Is it running?"
	}
	if errors.Is(err, domain.ErrUnauthenticated) {
		return "You must be logged in to do that."
	}
	if errors.Is(err, domain.ErrNotFound) {
		return "Recipe not found."
	}
	return err.Error()
}
