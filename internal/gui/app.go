// Package gui is the Fyne shell over the screening client's controllers. It
// holds no workflow logic of its own: every button hands off to a controller
// and re-renders from its state.
package gui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/hireova/screening-desk/internal/auth"
	"github.com/hireova/screening-desk/internal/config"
	"github.com/hireova/screening-desk/internal/evaluate"
	"github.com/hireova/screening-desk/internal/mis"
	"github.com/hireova/screening-desk/internal/preview"
	"github.com/hireova/screening-desk/internal/session"
)

// App represents the main GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	config     *config.Config

	sessions *session.Store
	workflow *auth.Workflow
	batch    *evaluate.Controller
	summary  *mis.Aggregator
	previews *preview.Controller

	recoveryToken string

	// per-tab refresh hooks, set when the tab is built
	evaluateRefresh func()
	summaryRefresh  func()
}

// NewApp creates the GUI over already-constructed controllers. recoveryToken,
// when non-empty, routes startup through reset-token verification.
func NewApp(cfg *config.Config, sessions *session.Store, workflow *auth.Workflow,
	batch *evaluate.Controller, summary *mis.Aggregator, previews *preview.Controller,
	recoveryToken string) *App {

	a := app.New()
	w := a.NewWindow("Resume Screening")
	w.Resize(fyne.NewSize(1100, 750))

	guiApp := &App{
		fyneApp:       a,
		mainWindow:    w,
		config:        cfg,
		sessions:      sessions,
		workflow:      workflow,
		batch:         batch,
		summary:       summary,
		previews:      previews,
		recoveryToken: recoveryToken,
	}

	// A held preview resource must not outlive the window.
	w.SetOnClosed(func() {
		previews.Close()
	})

	workflow.OnChange(func(auth.State) {
		fyne.Do(guiApp.render)
	})

	return guiApp
}

// Run starts the GUI application.
func (a *App) Run() {
	a.render()

	if a.recoveryToken != "" {
		token := a.recoveryToken
		a.recoveryToken = "" // consumed, cannot replay
		go a.workflow.Start(context.Background(), token)
	} else {
		go a.workflow.Start(context.Background(), "")
	}

	a.mainWindow.ShowAndRun()
}

// render swaps the window content to match the workflow state. Auth forms
// are rebuilt from scratch, so switching modes never carries field values or
// messages over.
func (a *App) render() {
	state := a.workflow.State()

	switch state.Phase {
	case auth.PhaseLoggedIn:
		a.mainWindow.SetContent(a.mainScreen())
	case auth.PhaseVerifyingToken:
		a.mainWindow.SetContent(container.NewCenter(container.NewVBox(
			widget.NewLabel("Checking your reset link..."),
			widget.NewProgressBarInfinite(),
		)))
	default:
		a.mainWindow.SetContent(a.authScreen(state))
	}
}

// mainScreen is the authenticated layout: identity bar on top, the two
// work tabs below.
func (a *App) mainScreen() fyne.CanvasObject {
	identity := widget.NewLabel("Logged in as " + a.sessions.RecruiterName())
	logoutBtn := widget.NewButton("Logout", func() {
		a.workflow.Logout()
	})
	topBar := container.NewBorder(nil, nil, identity, logoutBtn)

	tabs := container.NewAppTabs(
		container.NewTabItem("Evaluate", a.createEvaluateTab()),
		container.NewTabItem("MIS Summary", a.createSummaryTab()),
	)

	return container.NewBorder(topBar, nil, nil, nil, tabs)
}

// showServiceError routes a failed service call: an auth rejection ends the
// session and the workflow re-renders to the login form, anything else is
// shown in place.
func (a *App) showServiceError(err error) {
	if a.workflow.SessionExpired(err) {
		return
	}
	dialog.ShowError(err, a.mainWindow)
}
