// Package auth drives the authentication workflow: login, registration,
// forgot-password and token-based password reset.
package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/hireova/screening-desk/internal/api"
	"github.com/hireova/screening-desk/internal/logger"
	"github.com/hireova/screening-desk/internal/models"
	"github.com/hireova/screening-desk/internal/session"
)

// Phase is the coarse position in the workflow.
type Phase int

const (
	PhaseLoggedOut Phase = iota
	PhaseVerifyingToken
	PhaseLoggedIn
)

// Mode selects which form is active while logged out.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
	ModeForgotPassword
	ModeResetPassword
)

// MinPasswordLength is enforced locally before any reset call reaches the
// service.
const MinPasswordLength = 6

// forgotPasswordMessage is fixed client-side so the outcome of a forgot
// request reveals nothing about whether the address exists.
const forgotPasswordMessage = "If an account exists for that email, a reset link has been sent. Check your inbox."

// Banner is a transient message shown with the active form.
type Banner struct {
	Text    string
	IsError bool
}

// State is an observable snapshot of the workflow.
type State struct {
	Phase      Phase
	Mode       Mode
	Busy       bool
	Banner     Banner
	ResetEmail string // bound for display while resetting a password
}

// Service is the slice of the API client the workflow needs. Narrowed to an
// interface so tests can count and fail calls.
type Service interface {
	Login(ctx context.Context, username, password string) (models.LoginResponse, error)
	Register(ctx context.Context, username, email, password string) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	VerifyResetToken(ctx context.Context, token string) (email string, err error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// Workflow is the authentication state machine. It is the only writer of the
// session store; everything else reads.
type Workflow struct {
	mu       sync.Mutex
	svc      Service
	sessions *session.Store

	state      State
	resetToken string

	onChange func(State)
	onLogout func()
}

// NewWorkflow creates a workflow over the given service and session store.
// When the store already holds a restored session the workflow starts logged
// in.
func NewWorkflow(svc Service, sessions *session.Store) *Workflow {
	w := &Workflow{svc: svc, sessions: sessions}
	if sessions.Authenticated() {
		w.state.Phase = PhaseLoggedIn
	}
	return w
}

// OnChange registers a listener notified after every state transition.
func (w *Workflow) OnChange(fn func(State)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// OnLogout registers the reset hook fired when the session ends, so dependent
// controllers can drop one recruiter's data before another logs in.
func (w *Workflow) OnLogout(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onLogout = fn
}

// State returns the current snapshot.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// ExtractRecoveryToken pulls a recovery token from either a bare token string
// or a full pasted reset link of the form ...?token=<token>.
func ExtractRecoveryToken(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if u, err := url.Parse(s); err == nil && u.Scheme != "" {
		return u.Query().Get("token")
	}
	return s
}

// Start enters the workflow. A non-empty recovery token routes through
// verification; otherwise the login form is shown. The token is consumed
// here: after Start it exists only inside the workflow and is discarded once
// the reset completes or the mode changes, so it cannot be replayed.
func (w *Workflow) Start(ctx context.Context, recoveryToken string) {
	if w.State().Phase == PhaseLoggedIn {
		return
	}
	if recoveryToken == "" {
		w.transition(func(s *State) {
			s.Phase = PhaseLoggedOut
			s.Mode = ModeLogin
		})
		return
	}

	w.transition(func(s *State) {
		s.Phase = PhaseVerifyingToken
		s.Busy = true
	})

	email, err := w.svc.VerifyResetToken(ctx, recoveryToken)
	if err != nil {
		logger.Get().Info().Err(err).Msg("reset token rejected")
		w.transition(func(s *State) {
			s.Phase = PhaseLoggedOut
			s.Mode = ModeForgotPassword
			s.Busy = false
			s.Banner = Banner{Text: "This reset link is invalid or has expired. Request a new one below.", IsError: true}
		})
		return
	}

	w.mu.Lock()
	w.resetToken = recoveryToken
	w.mu.Unlock()
	w.transition(func(s *State) {
		s.Phase = PhaseLoggedOut
		s.Mode = ModeResetPassword
		s.Busy = false
		s.ResetEmail = email
	})
}

// SwitchMode changes the active form. Banners and any pending reset token are
// dropped so nothing leaks across modes.
func (w *Workflow) SwitchMode(mode Mode) {
	w.mu.Lock()
	if w.state.Busy {
		w.mu.Unlock()
		return
	}
	if mode != ModeResetPassword {
		w.resetToken = ""
	}
	w.mu.Unlock()

	w.transition(func(s *State) {
		s.Mode = mode
		s.Banner = Banner{}
		if mode != ModeResetPassword {
			s.ResetEmail = ""
		}
	})
}

// SubmitLogin exchanges credentials for a session. On success the session
// store is set and the workflow becomes logged in.
func (w *Workflow) SubmitLogin(ctx context.Context, username, password string) {
	if username == "" || password == "" {
		w.fail("Enter your username and password.")
		return
	}
	if !w.begin() {
		return
	}

	resp, err := w.svc.Login(ctx, username, password)
	if err != nil {
		w.finishErr(err)
		return
	}
	if err := w.sessions.Set(resp.AccessToken, resp.RecruiterName); err != nil {
		w.finishErr(fmt.Errorf("could not store session: %w", err))
		return
	}
	w.transition(func(s *State) {
		s.Phase = PhaseLoggedIn
		s.Busy = false
		s.Banner = Banner{}
	})
	logger.Get().Info().Str("recruiter", resp.RecruiterName).Msg("logged in")
}

// SubmitRegister creates an account and returns to the login form on success.
func (w *Workflow) SubmitRegister(ctx context.Context, username, email, password string) {
	if username == "" || email == "" || password == "" {
		w.fail("All fields are required.")
		return
	}
	if len(password) < MinPasswordLength {
		w.fail(fmt.Sprintf("Password must be at least %d characters.", MinPasswordLength))
		return
	}
	if !w.begin() {
		return
	}

	if err := w.svc.Register(ctx, username, email, password); err != nil {
		w.finishErr(err)
		return
	}
	w.transition(func(s *State) {
		s.Mode = ModeLogin
		s.Busy = false
		s.Banner = Banner{Text: "Registration successful. You can log in now."}
	})
}

// SubmitForgotPassword requests a reset mail. The shown message is the same
// fixed text regardless of what the service answered, as long as the request
// itself succeeded.
func (w *Workflow) SubmitForgotPassword(ctx context.Context, email string) {
	if email == "" {
		w.fail("Enter your email address.")
		return
	}
	if !w.begin() {
		return
	}

	if _, err := w.svc.ForgotPassword(ctx, email); err != nil {
		w.finishErr(err)
		return
	}
	w.transition(func(s *State) {
		s.Busy = false
		s.Banner = Banner{Text: forgotPasswordMessage}
	})
}

// SubmitResetPassword validates locally, then consumes the recovery token.
// Validation failures never reach the service.
func (w *Workflow) SubmitResetPassword(ctx context.Context, newPassword, confirmPassword string) {
	if len(newPassword) < MinPasswordLength {
		w.fail(fmt.Sprintf("Password must be at least %d characters.", MinPasswordLength))
		return
	}
	if newPassword != confirmPassword {
		w.fail("Passwords do not match.")
		return
	}

	w.mu.Lock()
	token := w.resetToken
	w.mu.Unlock()
	if token == "" {
		w.fail("This reset session is no longer valid. Request a new link.")
		return
	}
	if !w.begin() {
		return
	}

	if err := w.svc.ResetPassword(ctx, token, newPassword); err != nil {
		w.finishErr(err)
		return
	}

	w.mu.Lock()
	w.resetToken = ""
	w.mu.Unlock()
	w.transition(func(s *State) {
		s.Mode = ModeLogin
		s.Busy = false
		s.Banner = Banner{Text: "Password updated. Log in with your new password."}
		s.ResetEmail = ""
	})
}

// Logout ends the session: the store is cleared, dependent controllers are
// reset through the logout hook, and the login form is shown.
func (w *Workflow) Logout() {
	w.sessions.Clear()

	w.mu.Lock()
	hook := w.onLogout
	w.resetToken = ""
	w.mu.Unlock()
	if hook != nil {
		hook()
	}

	w.transition(func(s *State) {
		s.Phase = PhaseLoggedOut
		s.Mode = ModeLogin
		s.Busy = false
		s.Banner = Banner{}
		s.ResetEmail = ""
	})
	logger.Get().Info().Msg("logged out")
}

// SessionExpired forces a logout when err is an auth rejection from the
// service while logged in: the stored token is no longer honored, so keeping
// the session would only repeat the failure. Reports whether the session was
// ended.
func (w *Workflow) SessionExpired(err error) bool {
	if !api.IsAuthError(err) || w.State().Phase != PhaseLoggedIn {
		return false
	}
	logger.Get().Info().Err(err).Msg("session rejected by service, logging out")

	w.sessions.Clear()

	w.mu.Lock()
	hook := w.onLogout
	w.mu.Unlock()
	if hook != nil {
		hook()
	}

	w.transition(func(s *State) {
		s.Phase = PhaseLoggedOut
		s.Mode = ModeLogin
		s.Busy = false
		s.Banner = Banner{Text: "Your session has expired. Please log in again.", IsError: true}
		s.ResetEmail = ""
	})
	return true
}

// begin marks a submission in flight. A second submission while busy is a
// no-op, not a queued retry.
func (w *Workflow) begin() bool {
	w.mu.Lock()
	if w.state.Busy {
		w.mu.Unlock()
		return false
	}
	w.state.Busy = true
	w.state.Banner = Banner{}
	snapshot := w.state
	listener := w.onChange
	w.mu.Unlock()

	if listener != nil {
		listener(snapshot)
	}
	return true
}

func (w *Workflow) fail(msg string) {
	w.transition(func(s *State) {
		s.Banner = Banner{Text: msg, IsError: true}
	})
}

func (w *Workflow) finishErr(err error) {
	w.transition(func(s *State) {
		s.Busy = false
		s.Banner = Banner{Text: err.Error(), IsError: true}
	})
}

// transition applies a mutation and notifies the listener outside the lock.
func (w *Workflow) transition(mutate func(*State)) {
	w.mu.Lock()
	mutate(&w.state)
	snapshot := w.state
	listener := w.onChange
	w.mu.Unlock()

	if listener != nil {
		listener(snapshot)
	}
}
