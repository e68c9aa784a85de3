package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireova/screening-desk/internal/api"
	"github.com/hireova/screening-desk/internal/models"
	"github.com/hireova/screening-desk/internal/session"
)

// fakeService records calls and returns scripted results.
type fakeService struct {
	calls map[string]int

	loginResp   models.LoginResponse
	loginErr    error
	registerErr error
	forgotErr   error
	verifyEmail string
	verifyErr   error
	resetErr    error
}

func newFakeService() *fakeService {
	return &fakeService{calls: map[string]int{}}
}

func (f *fakeService) Login(_ context.Context, _, _ string) (models.LoginResponse, error) {
	f.calls["login"]++
	return f.loginResp, f.loginErr
}

func (f *fakeService) Register(_ context.Context, _, _, _ string) error {
	f.calls["register"]++
	return f.registerErr
}

func (f *fakeService) ForgotPassword(_ context.Context, _ string) (string, error) {
	f.calls["forgot"]++
	return "server message", f.forgotErr
}

func (f *fakeService) VerifyResetToken(_ context.Context, _ string) (string, error) {
	f.calls["verify"]++
	return f.verifyEmail, f.verifyErr
}

func (f *fakeService) ResetPassword(_ context.Context, _, _ string) error {
	f.calls["reset"]++
	return f.resetErr
}

func newWorkflow(t *testing.T, svc Service) (*Workflow, *session.Store) {
	t.Helper()
	store := session.NewStore(t.TempDir())
	return NewWorkflow(svc, store), store
}

func TestStart_WithoutTokenShowsLogin(t *testing.T) {
	svc := newFakeService()
	w, _ := newWorkflow(t, svc)

	w.Start(context.Background(), "")

	state := w.State()
	assert.Equal(t, PhaseLoggedOut, state.Phase)
	assert.Equal(t, ModeLogin, state.Mode)
	assert.Zero(t, svc.calls["verify"])
}

func TestStart_ValidTokenEntersResetMode(t *testing.T) {
	svc := newFakeService()
	svc.verifyEmail = "asha@example.com"
	w, _ := newWorkflow(t, svc)

	w.Start(context.Background(), "tok-abc")

	state := w.State()
	assert.Equal(t, PhaseLoggedOut, state.Phase)
	assert.Equal(t, ModeResetPassword, state.Mode)
	assert.Equal(t, "asha@example.com", state.ResetEmail)
	assert.False(t, state.Busy)
}

func TestStart_ExpiredTokenFallsBackToForgot(t *testing.T) {
	svc := newFakeService()
	svc.verifyErr = errors.New("token expired")
	w, _ := newWorkflow(t, svc)

	w.Start(context.Background(), "tok-old")

	state := w.State()
	assert.Equal(t, ModeForgotPassword, state.Mode)
	assert.True(t, state.Banner.IsError)
	assert.Contains(t, state.Banner.Text, "expired")
}

func TestSubmitLogin_Success(t *testing.T) {
	svc := newFakeService()
	svc.loginResp = models.LoginResponse{AccessToken: "tok-1", RecruiterName: "Asha"}
	w, store := newWorkflow(t, svc)
	w.Start(context.Background(), "")

	w.SubmitLogin(context.Background(), "asha", "secret123")

	assert.Equal(t, PhaseLoggedIn, w.State().Phase)
	assert.Equal(t, "tok-1", store.Token())
	assert.Equal(t, "Asha", store.RecruiterName())
}

func TestSubmitLogin_FailureStaysLoggedOut(t *testing.T) {
	svc := newFakeService()
	svc.loginErr = errors.New("Invalid username or password")
	w, store := newWorkflow(t, svc)
	w.Start(context.Background(), "")

	w.SubmitLogin(context.Background(), "asha", "wrong")

	state := w.State()
	assert.Equal(t, PhaseLoggedOut, state.Phase)
	assert.Equal(t, ModeLogin, state.Mode)
	assert.True(t, state.Banner.IsError)
	assert.Equal(t, "Invalid username or password", state.Banner.Text)
	assert.False(t, store.Authenticated())
}

func TestSubmitLogin_EmptyFieldsNoNetworkCall(t *testing.T) {
	svc := newFakeService()
	w, _ := newWorkflow(t, svc)
	w.Start(context.Background(), "")

	w.SubmitLogin(context.Background(), "", "")

	assert.Zero(t, svc.calls["login"])
	assert.True(t, w.State().Banner.IsError)
}

func TestSubmitRegister_SuccessReturnsToLogin(t *testing.T) {
	svc := newFakeService()
	w, _ := newWorkflow(t, svc)
	w.Start(context.Background(), "")
	w.SwitchMode(ModeRegister)

	w.SubmitRegister(context.Background(), "asha", "asha@example.com", "secret123")

	state := w.State()
	assert.Equal(t, ModeLogin, state.Mode)
	assert.False(t, state.Banner.IsError)
	assert.Contains(t, state.Banner.Text, "Registration successful")
}

func TestSubmitRegister_FailureStaysInRegister(t *testing.T) {
	svc := newFakeService()
	svc.registerErr = errors.New("Username already registered")
	w, _ := newWorkflow(t, svc)
	w.Start(context.Background(), "")
	w.SwitchMode(ModeRegister)

	w.SubmitRegister(context.Background(), "asha", "asha@example.com", "secret123")

	state := w.State()
	assert.Equal(t, ModeRegister, state.Mode)
	assert.True(t, state.Banner.IsError)
}

func TestSubmitForgotPassword_GenericMessage(t *testing.T) {
	svc := newFakeService()
	w, _ := newWorkflow(t, svc)
	w.Start(context.Background(), "")
	w.SwitchMode(ModeForgotPassword)

	w.SubmitForgotPassword(context.Background(), "asha@example.com")
	first := w.State().Banner

	// A second address that the server has never seen yields the same text.
	w.SubmitForgotPassword(context.Background(), "nobody@example.com")
	second := w.State().Banner

	assert.Equal(t, first, second)
	assert.False(t, first.IsError)
	// The client shows a fixed message, not whatever the server answered.
	assert.NotEqual(t, "server message", first.Text)
}

func TestSubmitResetPassword_ShortPasswordNoNetworkCall(t *testing.T) {
	svc := newFakeService()
	svc.verifyEmail = "asha@example.com"
	w, _ := newWorkflow(t, svc)
	w.Start(context.Background(), "tok-abc")

	w.SubmitResetPassword(context.Background(), "abc12", "abc12")

	assert.Zero(t, svc.calls["reset"])
	state := w.State()
	assert.True(t, state.Banner.IsError)
	assert.Contains(t, state.Banner.Text, "at least 6")
	assert.Equal(t, ModeResetPassword, state.Mode)
}

func TestSubmitResetPassword_MismatchNoNetworkCall(t *testing.T) {
	svc := newFakeService()
	svc.verifyEmail = "asha@example.com"
	w, _ := newWorkflow(t, svc)
	w.Start(context.Background(), "tok-abc")

	w.SubmitResetPassword(context.Background(), "secret123", "secret124")

	assert.Zero(t, svc.calls["reset"])
	assert.True(t, w.State().Banner.IsError)
}

func TestSubmitResetPassword_SuccessDiscardsToken(t *testing.T) {
	svc := newFakeService()
	svc.verifyEmail = "asha@example.com"
	w, _ := newWorkflow(t, svc)
	w.Start(context.Background(), "tok-abc")

	w.SubmitResetPassword(context.Background(), "secret123", "secret123")

	state := w.State()
	assert.Equal(t, ModeLogin, state.Mode)
	assert.False(t, state.Banner.IsError)
	assert.Empty(t, state.ResetEmail)

	// The token was consumed: re-entering reset mode cannot replay it.
	w.SwitchMode(ModeResetPassword)
	w.SubmitResetPassword(context.Background(), "secret123", "secret123")
	assert.Equal(t, 1, svc.calls["reset"])
	assert.True(t, w.State().Banner.IsError)
}

func TestSwitchMode_ClearsBanner(t *testing.T) {
	svc := newFakeService()
	svc.loginErr = errors.New("bad credentials")
	w, _ := newWorkflow(t, svc)
	w.Start(context.Background(), "")

	w.SubmitLogin(context.Background(), "asha", "wrong")
	require.NotEmpty(t, w.State().Banner.Text)

	w.SwitchMode(ModeRegister)
	assert.Empty(t, w.State().Banner.Text)
}

func TestLogout_ClearsSessionAndFiresHook(t *testing.T) {
	svc := newFakeService()
	svc.loginResp = models.LoginResponse{AccessToken: "tok-1", RecruiterName: "Asha"}
	w, store := newWorkflow(t, svc)
	w.Start(context.Background(), "")
	w.SubmitLogin(context.Background(), "asha", "secret123")
	require.True(t, store.Authenticated())

	hookFired := false
	w.OnLogout(func() { hookFired = true })

	w.Logout()

	assert.True(t, hookFired)
	assert.False(t, store.Authenticated())
	state := w.State()
	assert.Equal(t, PhaseLoggedOut, state.Phase)
	assert.Equal(t, ModeLogin, state.Mode)
}

func TestSessionExpired_AuthRejectionForcesLogout(t *testing.T) {
	svc := newFakeService()
	svc.loginResp = models.LoginResponse{AccessToken: "tok-1", RecruiterName: "Asha"}
	w, store := newWorkflow(t, svc)
	w.Start(context.Background(), "")
	w.SubmitLogin(context.Background(), "asha", "secret123")
	require.True(t, store.Authenticated())

	hookFired := false
	w.OnLogout(func() { hookFired = true })

	require.True(t, w.SessionExpired(&api.Error{Status: 401, Detail: "token expired"}))

	assert.True(t, hookFired)
	assert.False(t, store.Authenticated())
	state := w.State()
	assert.Equal(t, PhaseLoggedOut, state.Phase)
	assert.Equal(t, ModeLogin, state.Mode)
	assert.True(t, state.Banner.IsError)
	assert.Contains(t, state.Banner.Text, "expired")
}

func TestSessionExpired_OtherErrorsKeepSession(t *testing.T) {
	svc := newFakeService()
	svc.loginResp = models.LoginResponse{AccessToken: "tok-1", RecruiterName: "Asha"}
	w, store := newWorkflow(t, svc)
	w.Start(context.Background(), "")
	w.SubmitLogin(context.Background(), "asha", "secret123")

	assert.False(t, w.SessionExpired(&api.Error{Status: 500}))
	assert.False(t, w.SessionExpired(errors.New("connection refused")))
	assert.True(t, store.Authenticated())
	assert.Equal(t, PhaseLoggedIn, w.State().Phase)
}

func TestRestoredSessionStartsLoggedIn(t *testing.T) {
	dir := t.TempDir()
	seed := session.NewStore(dir)
	require.NoError(t, seed.Set("tok-1", "Asha"))

	store := session.NewStore(dir)
	store.Restore()
	w := NewWorkflow(newFakeService(), store)

	assert.Equal(t, PhaseLoggedIn, w.State().Phase)
}

func TestExtractRecoveryToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Bare token", input: "tok-abc", want: "tok-abc"},
		{name: "Full link", input: "http://localhost:5173/?token=tok-abc", want: "tok-abc"},
		{name: "Link without token", input: "http://localhost:5173/", want: ""},
		{name: "Whitespace trimmed", input: "  tok-abc \n", want: "tok-abc"},
		{name: "Empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRecoveryToken(tt.input))
		})
	}
}
