package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/client/view"
)

var (
	ErrNoArticleOpen  = errors.New("open an article first ('read <n>')")
	ErrBadArticleRef  = errors.New("no such article number")
	ErrMissingArgs    = errors.New("missing argument")
	ErrInputAbandoned = errors.New("input ended")
)

// afterTransition prints whatever the current state calls for and runs the
// onboarding prompts when that screen is up.
func (a *App) afterTransition(ctx context.Context) {
	st := a.orch.State()

	switch st.Route.Kind {
	case view.RouteShared:
		renderShared(a.out, view.SharedResult{State: view.SharedLoading})
		renderShared(a.out, a.shared.Load(ctx, st.Route.ShareID))
		return
	case view.RouteLogin:
		fmt.Fprintln(a.out, "Sign in with 'login' or create an account with 'signup'.")
		return
	}

	if st.Screen.Kind == view.ScreenOnboarding {
		if err := a.runOnboarding(ctx); err != nil {
			a.printError(err)
			return
		}
		st = a.orch.State()
	}
	if st.Screen.Kind == view.ScreenDashboard {
		if err := a.refresh(ctx, false); err != nil {
			a.printError(err)
		}
	}
}

// refresh reloads the dashboard when its feed key changed since the last
// successful load, or always when force is set; otherwise it reprints the
// feed's last result.
func (a *App) refresh(ctx context.Context, force bool) error {
	st := a.orch.State()
	key := view.KeyFor(st)

	if latest, ok := a.feed.Latest(); ok && latest.Err == nil && latest.Key == key && !force {
		renderHeadlines(a.out, st.ActiveCategory, latest.Articles)
		return nil
	}

	articles, err := a.feed.Load(ctx, key)
	if errors.Is(err, view.ErrSuperseded) {
		return nil
	}
	if err != nil {
		return err
	}

	renderHeadlines(a.out, st.ActiveCategory, articles)
	return nil
}

func (a *App) runOnboarding(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome! Let's set up your digest.")
	fmt.Fprintf(a.out, "Available categories: %s\n", strings.Join(models.KnownCategories, ", "))
	for {
		p, err := a.promptPreferences(a.orch.State().Preferences)
		if err != nil {
			return err
		}
		if _, err := a.orch.Dispatch(ctx, view.OnboardingCompleted{Preferences: p}); err != nil {
			a.printError(err)
			continue
		}
		fmt.Fprintln(a.out, "All set.")
		return nil
	}
}

func (a *App) promptPreferences(cur models.Preferences) (models.Preferences, error) {
	cats, err := GetList(a.reader, "Categories (comma separated)", cur.Categories, a.out)
	if err != nil {
		return models.Preferences{}, fmt.Errorf("%w: %w", ErrInputAbandoned, err)
	}
	theme, err := GetTextWithDefault(a.reader, "Theme (light/dark)", string(cur.Theme), a.out)
	if err != nil {
		return models.Preferences{}, fmt.Errorf("%w: %w", ErrInputAbandoned, err)
	}
	lang, err := GetTextWithDefault(a.reader, "Language", cur.Language, a.out)
	if err != nil {
		return models.Preferences{}, fmt.Errorf("%w: %w", ErrInputAbandoned, err)
	}
	return models.Preferences{Categories: cats, Theme: models.Theme(theme), Language: lang}, nil
}

// News reloads the dashboard.
func (a *App) News(ctx context.Context) error {
	if _, err := a.orch.Dispatch(ctx, view.BackToDashboard{}); err != nil {
		return err
	}
	return a.refresh(ctx, true)
}

// Category switches the dashboard filter.
func (a *App) Category(ctx context.Context, name string) error {
	if name == "" {
		fmt.Fprintf(a.out, "Your categories: %s\n", strings.Join(a.orch.State().Preferences.Categories, ", "))
		return ErrMissingArgs
	}
	if _, err := a.orch.Dispatch(ctx, view.CategoryChanged{Category: name}); err != nil {
		return err
	}
	if a.orch.State().Screen.Kind != view.ScreenDashboard {
		return nil
	}
	return a.refresh(ctx, false)
}

// visibleArticles is the list that 'read <n>' and 'unsave <n>' index.
func (a *App) visibleArticles(ctx context.Context, st view.ViewState) []models.Article {
	base := st.Screen.Kind
	if base.IsOverlay() {
		base = st.Screen.Base
	}
	if base == view.ScreenSavedArticles {
		return a.local.SavedArticles(ctx)
	}
	if latest, ok := a.feed.Latest(); ok && latest.Err == nil {
		return latest.Articles
	}
	return nil
}

func pick(list []models.Article, arg string) (models.Article, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(list) {
		return models.Article{}, ErrBadArticleRef
	}
	return list[n-1], nil
}

// Read opens an article and counts it towards the reading stats.
func (a *App) Read(ctx context.Context, arg string) error {
	st := a.orch.State()
	article, err := pick(a.visibleArticles(ctx, st), arg)
	if err != nil {
		return err
	}
	if _, err := a.orch.Dispatch(ctx, view.ArticleSelected{Article: article}); err != nil {
		return err
	}
	if err := a.local.RecordRead(ctx, now()); err != nil {
		a.log.Warn(ctx, "could not record read", "error", err)
	}
	renderArticle(a.out, article)
	fmt.Fprintln(a.out, "Type 'share', 'save' or 'back'.")
	return nil
}

// Back closes the open overlay and reprints what was under it.
func (a *App) Back(ctx context.Context) error {
	st, err := a.orch.Dispatch(ctx, view.OverlayClosed{})
	if err != nil {
		return err
	}
	return a.showBase(ctx, st)
}

func (a *App) showBase(ctx context.Context, st view.ViewState) error {
	switch st.Screen.Kind {
	case view.ScreenSavedArticles:
		renderSaved(a.out, a.local.SavedArticles(ctx))
	case view.ScreenDashboard:
		if st.Ready() {
			return a.refresh(ctx, false)
		}
	}
	return nil
}

func (a *App) openArticle() (models.Article, error) {
	st := a.orch.State()
	if st.Screen.Kind != view.ScreenArticleDetail || st.Screen.Article == nil {
		return models.Article{}, ErrNoArticleOpen
	}
	return *st.Screen.Article, nil
}

// Share publishes the open article and prints its public link.
func (a *App) Share(ctx context.Context) error {
	article, err := a.openArticle()
	if err != nil {
		return err
	}
	res, err := a.gw.ShareArticle(ctx, article)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Share link: %s\n", res.ShareURL)
	return nil
}

// Save bookmarks the open article on this device.
func (a *App) Save(ctx context.Context) error {
	article, err := a.openArticle()
	if err != nil {
		return err
	}
	if err := a.local.SaveArticle(ctx, article, now()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved.")
	return nil
}

// Saved switches to the saved-articles list.
func (a *App) Saved(ctx context.Context) error {
	if _, err := a.orch.Dispatch(ctx, view.SavedArticlesOpened{}); err != nil {
		return err
	}
	renderSaved(a.out, a.local.SavedArticles(ctx))
	return nil
}

// Unsave removes a bookmark by its number in the saved list.
func (a *App) Unsave(ctx context.Context, arg string) error {
	if a.orch.State().Screen.Kind != view.ScreenSavedArticles {
		if err := a.Saved(ctx); err != nil {
			return err
		}
	}
	article, err := pick(a.local.SavedArticles(ctx), arg)
	if err != nil {
		return err
	}
	if _, err := a.local.RemoveSavedArticle(ctx, article.Key()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Removed.")
	renderSaved(a.out, a.local.SavedArticles(ctx))
	return nil
}

// Dashboard leaves the saved-articles list.
func (a *App) Dashboard(ctx context.Context) error {
	st, err := a.orch.Dispatch(ctx, view.BackToDashboard{})
	if err != nil {
		return err
	}
	return a.showBase(ctx, st)
}

// Settings edits preferences. Cancelling input or a rejected value closes
// the settings screen without changes.
func (a *App) Settings(ctx context.Context) error {
	st, err := a.orch.Dispatch(ctx, view.SettingsOpened{})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Available categories: %s\n", strings.Join(models.KnownCategories, ", "))

	p, err := a.promptPreferences(st.Preferences)
	if err == nil {
		_, err = a.orch.Dispatch(ctx, view.SettingsSaved{Preferences: p})
	}
	if err != nil {
		if _, cerr := a.orch.Dispatch(ctx, view.OverlayClosed{}); cerr != nil {
			a.log.Error(ctx, "could not close settings", "error", cerr)
		}
		return err
	}

	fmt.Fprintln(a.out, "Preferences saved.")
	st = a.orch.State()
	return a.showBase(ctx, st)
}

// Stats prints the reading streak and today's count.
func (a *App) Stats(ctx context.Context) error {
	t := now()
	renderStats(a.out, a.local.ReadingStreak(ctx, t), a.local.DailyReads(ctx, t))
	return nil
}

// Open navigates to a client path such as /shared/<id> or /dashboard.
func (a *App) Open(ctx context.Context, path string) error {
	if path == "" {
		return ErrMissingArgs
	}
	if _, err := a.orch.Dispatch(ctx, view.Navigated{Route: view.ParseRoute(path)}); err != nil {
		return err
	}
	a.afterTransition(ctx)
	return nil
}
