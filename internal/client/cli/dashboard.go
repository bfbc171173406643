package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/yeshlogin/internal/common"
)

func (a *App) requireSession() error {
	if a.isLoggedIn() {
		return nil
	}
	a.warnf("Not logged in. Type 'login' to sign in.")
	return common.ErrNotLoggedIn
}

// Dashboard shows the dashboard view.
func (a *App) Dashboard(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	a.Navigate(common.DashboardRoute)
	return nil
}

func (a *App) renderDashboard() {
	st := a.store.State()

	fmt.Fprintln(a.out, "Dashboard")
	if st.User == nil {
		a.warnf("Profile not loaded. Type 'refresh' to load it.")
		return
	}

	a.field("ID", st.User.ID)
	a.field("Name", st.User.Name)
	a.field("Email", st.User.Email)
	if st.User.IsFallback {
		a.warnf("Your profile could not be loaded from the server; these details are a placeholder. Type 'refresh' to try again.")
	}
}

// Refresh looks the user up again and redraws the dashboard.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	email := a.email
	if st := a.store.State(); email == "" && st.User != nil {
		email = st.User.Email
	}

	if a.store.RefreshUserInfo(ctx, email) {
		a.successf("Profile refreshed.")
	} else {
		a.warnf("Could not refresh the profile.")
	}
	a.Navigate(common.DashboardRoute)
	return nil
}

// Validate probes the stored token against the identity API.
func (a *App) Validate(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	v := a.identity.ValidateToken(ctx, *a.store.State().Token)
	switch {
	case v.Err != nil:
		a.errorf("Token check failed: %v", v.Err)
		return v.Err
	case v.Valid:
		a.successf("Token is valid (%s).", v.Status)
	default:
		a.warnf("Token was rejected (%s).", v.Status)
	}
	return nil
}

// Status prints the session state.
func (a *App) Status(ctx context.Context) error {
	st := a.store.State()

	a.field("View", a.route)
	a.field("Auth", fmt.Sprintf("%t", st.Authenticated()))
	if st.User != nil {
		a.field("User", st.User.Name)
	}
	if st.Error != nil {
		a.field("Error", *st.Error)
	}
	return nil
}
