package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/client/view"
	"github.com/dmitrijs2005/newsdigest/internal/common"
)

// Login prompts for credentials and signs in. A rejected login returns the
// backend's message and leaves the user signed out.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	return a.signedIn(ctx, s)
}

// Signup creates an account and signs it in.
func (a *App) Signup(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.session.Signup(ctx, email, string(password), name)
	if err != nil {
		return err
	}
	return a.signedIn(ctx, s)
}

func (a *App) signedIn(ctx context.Context, s models.Session) error {
	prefs := a.prefs.OnLogin(ctx, s)
	if _, err := a.orch.Dispatch(ctx, view.LoggedIn{Session: s, Preferences: prefs, Stored: a.prefs.Stored()}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", displayName(s.Identity))
	a.afterTransition(ctx)
	return nil
}

// Logout signs out locally even when the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.feed.Reset()
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// Whoami prints the signed-in identity.
func (a *App) Whoami(ctx context.Context) error {
	s := a.session.Current()
	if !s.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", displayName(s.Identity), s.Identity.Email)
	renderPreferences(a.out, a.prefs.Current())
	return nil
}

func displayName(u *models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
