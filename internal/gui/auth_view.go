package gui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/hireova/screening-desk/internal/auth"
)

// authScreen builds the logged-out screen for the active mode. Entries are
// created fresh on every render: leaving a mode discards whatever was typed
// into it.
func (a *App) authScreen(state auth.State) fyne.CanvasObject {
	var form fyne.CanvasObject
	switch state.Mode {
	case auth.ModeRegister:
		form = a.registerForm(state)
	case auth.ModeForgotPassword:
		form = a.forgotPasswordForm(state)
	case auth.ModeResetPassword:
		form = a.resetPasswordForm(state)
	default:
		form = a.loginForm(state)
	}

	title := widget.NewLabelWithStyle("Resume Screening", fyne.TextAlignCenter,
		fyne.TextStyle{Bold: true})

	card := container.NewVBox(title, a.bannerLabel(state), form)
	return container.NewCenter(container.NewGridWrap(fyne.NewSize(420, 0), card))
}

func (a *App) bannerLabel(state auth.State) fyne.CanvasObject {
	if state.Banner.Text == "" {
		return widget.NewLabel("")
	}
	lbl := widget.NewLabel(state.Banner.Text)
	lbl.Wrapping = fyne.TextWrapWord
	if state.Banner.IsError {
		lbl.Importance = widget.DangerImportance
	} else {
		lbl.Importance = widget.SuccessImportance
	}
	return lbl
}

func (a *App) loginForm(state auth.State) fyne.CanvasObject {
	username := widget.NewEntry()
	username.SetPlaceHolder("Username")
	password := widget.NewPasswordEntry()
	password.SetPlaceHolder("Password")

	submit := widget.NewButtonWithIcon("Login", theme.LoginIcon(), func() {
		go a.workflow.SubmitLogin(context.Background(), username.Text, password.Text)
	})
	submit.Importance = widget.HighImportance
	if state.Busy {
		submit.Disable()
	}
	password.OnSubmitted = func(string) { submit.OnTapped() }

	toRegister := widget.NewButton("Create an account", func() {
		a.workflow.SwitchMode(auth.ModeRegister)
	})
	toForgot := widget.NewButton("Forgot password?", func() {
		a.workflow.SwitchMode(auth.ModeForgotPassword)
	})
	resetLink := widget.NewButton("Have a reset link?", a.promptRecoveryToken)

	return container.NewVBox(username, password, submit,
		container.NewGridWithColumns(2, toRegister, toForgot), resetLink)
}

func (a *App) registerForm(state auth.State) fyne.CanvasObject {
	username := widget.NewEntry()
	username.SetPlaceHolder("Username")
	email := widget.NewEntry()
	email.SetPlaceHolder("Email")
	password := widget.NewPasswordEntry()
	password.SetPlaceHolder("Password")

	submit := widget.NewButton("Register", func() {
		go a.workflow.SubmitRegister(context.Background(), username.Text, email.Text, password.Text)
	})
	submit.Importance = widget.HighImportance
	if state.Busy {
		submit.Disable()
	}

	back := widget.NewButton("Back to login", func() {
		a.workflow.SwitchMode(auth.ModeLogin)
	})

	return container.NewVBox(username, email, password, submit, back)
}

func (a *App) forgotPasswordForm(state auth.State) fyne.CanvasObject {
	email := widget.NewEntry()
	email.SetPlaceHolder("Email")

	submit := widget.NewButton("Send reset link", func() {
		go a.workflow.SubmitForgotPassword(context.Background(), email.Text)
	})
	submit.Importance = widget.HighImportance
	if state.Busy {
		submit.Disable()
	}
	email.OnSubmitted = func(string) { submit.OnTapped() }

	back := widget.NewButton("Back to login", func() {
		a.workflow.SwitchMode(auth.ModeLogin)
	})

	return container.NewVBox(email, submit, back)
}

func (a *App) resetPasswordForm(state auth.State) fyne.CanvasObject {
	who := widget.NewLabel("Resetting password for " + state.ResetEmail)
	who.Wrapping = fyne.TextWrapWord

	password := widget.NewPasswordEntry()
	password.SetPlaceHolder("New password")
	confirm := widget.NewPasswordEntry()
	confirm.SetPlaceHolder("Confirm new password")

	submit := widget.NewButton("Reset password", func() {
		go a.workflow.SubmitResetPassword(context.Background(), password.Text, confirm.Text)
	})
	submit.Importance = widget.HighImportance
	if state.Busy {
		submit.Disable()
	}

	back := widget.NewButton("Back to login", func() {
		a.workflow.SwitchMode(auth.ModeLogin)
	})

	return container.NewVBox(who, password, confirm, submit, back)
}

// promptRecoveryToken is the desktop stand-in for opening a reset link in the
// browser: the user pastes the emailed link (or the bare token) and the
// workflow verifies it as if the app had been launched with it.
func (a *App) promptRecoveryToken() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Paste the reset link or token from your email")

	d := dialog.NewForm("Password Reset", "Verify", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Reset link", entry)},
		func(ok bool) {
			if !ok {
				return
			}
			token := auth.ExtractRecoveryToken(entry.Text)
			if token == "" {
				dialog.ShowError(fmt.Errorf("no reset token found in the pasted text"), a.mainWindow)
				return
			}
			go a.workflow.Start(context.Background(), token)
		}, a.mainWindow)
	d.Resize(fyne.NewSize(500, 0))
	d.Show()
}
