package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/yeshlogin/internal/client/models"
	"github.com/dmitrijs2005/yeshlogin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for email and password and submits them through the login
// controller. On success the controller navigates to the dashboard; on
// failure the form message is printed once. The password buffer is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	if st := a.store.State(); st.Authenticated() {
		a.warnf("Already logged in. Use 'logout' first.")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.email = email
	a.reported = false
	if err := a.controller.Submit(ctx, models.Credentials{Email: email, Password: string(password)}); err != nil {
		// Failures that reached the store were already reported through
		// onSessionChange.
		if !a.reported {
			_, msg := a.controller.Status()
			a.errorf("%s", msg)
		}
		return err
	}
	return nil
}

// Logout forgets the token and returns to the login view. A storage failure
// is reported but the in-memory session is cleared anyway.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.warnf("Not logged in.")
		return common.ErrNotLoggedIn
	}

	err := a.store.Logout(ctx)
	if err != nil {
		a.errorf("Logged out, but the stored token could not be removed: %v", err)
	}
	a.email = ""
	a.Navigate(common.LoginRoute)
	return err
}
