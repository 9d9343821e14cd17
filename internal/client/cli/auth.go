package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/smartmeet/internal/client/client"
	"github.com/dmitrijs2005/smartmeet/internal/client/models"
	"github.com/dmitrijs2005/smartmeet/internal/client/output"
	"github.com/dmitrijs2005/smartmeet/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, full name and password, creates the account
// and logs into it. If the account is created but the login fails the user
// is told the account exists and to log in manually.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	reg := models.Registration{Email: email, FullName: fullName, Password: string(password)}
	err = a.session.Register(ctx, reg)
	switch {
	case errors.Is(err, session.ErrRegisteredLoginFailed):
		a.logger.Debug(ctx, "login after registration failed", "err", err)
		fmt.Fprintln(a.out, "Account created; please log in with 'login'.")
		fmt.Fprintf(a.out, "Automatic login failed: %s\n", loginFailureReason(err))
		return err
	case err != nil:
		a.report(ctx, "Registration", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", a.displayName())
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in; use 'logout' first.")
		return nil
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, models.Credentials{Identifier: email, Secret: string(password)}); err != nil {
		a.report(ctx, "Login", err)
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", a.displayName())
	return nil
}

// Logout ends the local session. No request is sent to the server.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.report(ctx, "Logout", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the current user.
func (a *App) WhoAmI(_ context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	return a.print(output.UserView(*u))
}

func (a *App) displayName() string {
	u := a.session.CurrentUser()
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// loginFailureReason extracts the server's detail from a chained login error.
func loginFailureReason(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case client.IsUnavailable(err):
		return "server unavailable"
	}
	return err.Error()
}
