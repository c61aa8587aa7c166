package view

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
)

var (
	ErrNotSignedIn   = errors.New("sign in first")
	ErrUnknownEvent  = errors.New("unknown event")
	ErrEmptyCategory = errors.New("category is empty")
)

// PreferenceCommitter persists preferences and returns the stored form.
type PreferenceCommitter interface {
	Commit(ctx context.Context, prefs models.Preferences, session models.Session) (models.Preferences, error)
}

// ViewState is the UI-visible state. RefreshToken carries no meaning beyond
// its changes: every change asks the dashboard to refetch. PreferencesStored
// tells whether this device ever saved preferences.
type ViewState struct {
	Route             Route
	Session           models.Session
	Preferences       models.Preferences
	PreferencesStored bool
	ActiveCategory    string
	Screen            Screen
	RefreshToken      uint64
}

// Ready reports whether the authenticated area may be shown.
func (s ViewState) Ready() bool {
	return s.Route.Kind == RouteDashboard && s.Session.IsAuthenticated()
}

// Orchestrator applies events to ViewState one at a time.
type Orchestrator struct {
	prefs PreferenceCommitter
	log   logging.Logger

	mu    sync.Mutex
	state ViewState
}

// NewOrchestrator starts on route with the session still unknown.
func NewOrchestrator(prefs PreferenceCommitter, route Route, log logging.Logger) *Orchestrator {
	defaults := models.DefaultPreferences()
	return &Orchestrator{
		prefs: prefs,
		log:   log,
		state: ViewState{
			Route:          route,
			Session:        models.Session{State: models.SessionUnknown},
			Preferences:    defaults,
			ActiveCategory: defaults.Categories[0],
			Screen:         Dashboard(),
		},
	}
}

// State returns a snapshot.
func (o *Orchestrator) State() ViewState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshot()
}

func (o *Orchestrator) snapshot() ViewState {
	s := o.state
	s.Preferences = s.Preferences.Clone()
	return s
}

// Dispatch applies ev and returns the resulting state. On error the state
// is unchanged.
func (o *Orchestrator) Dispatch(ctx context.Context, ev Event) (ViewState, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next := o.state
	var err error

	switch e := ev.(type) {
	case AppStarted:
		next = o.started(next, e)
	case LoggedIn:
		next = o.loggedIn(next, e)
	case LoggedOut:
		next.Session = models.Anonymous()
		next.Screen = Dashboard()
		next.Route = Route{Kind: RouteLogin}
	case Navigated:
		next = o.navigate(next, e.Route)
	case OnboardingCompleted:
		next, err = o.commit(ctx, next, e.Preferences, ScreenOnboarding)
	case SettingsSaved:
		next, err = o.commit(ctx, next, e.Preferences, ScreenSettings)
	case SettingsOpened:
		if err = requireDashboard(next); err == nil {
			next.Screen = Overlay(ScreenSettings, next.Screen)
		}
	case ArticleSelected:
		if err = requireDashboard(next); err == nil {
			next.Screen = ArticleDetail(e.Article, next.Screen)
		}
	case OverlayClosed:
		next.Screen = next.Screen.Closed()
	case CategoryChanged:
		cat := strings.ToLower(strings.TrimSpace(e.Category))
		if cat == "" {
			err = ErrEmptyCategory
		} else {
			next.ActiveCategory = cat
		}
	case SavedArticlesOpened:
		if err = requireDashboard(next); err == nil {
			next.Screen = SavedArticles()
		}
	case BackToDashboard:
		next.Screen = Dashboard()
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}

	if err != nil {
		return o.snapshot(), err
	}

	o.log.Debug(ctx, "view event", "event", ev.eventName(), "route", next.Route, "screen", next.Screen,
		"category", next.ActiveCategory, "refresh", next.RefreshToken)
	o.state = next
	return o.snapshot(), nil
}

func requireDashboard(s ViewState) error {
	if !s.Ready() {
		return ErrNotSignedIn
	}
	return nil
}

func (o *Orchestrator) started(s ViewState, e AppStarted) ViewState {
	s.Session = e.Session
	s = withPreferences(s, e.Preferences)
	s.ActiveCategory = s.Preferences.Categories[0]
	s.Screen = Dashboard()
	s.PreferencesStored = e.Stored
	return o.gate(s)
}

func (o *Orchestrator) loggedIn(s ViewState, e LoggedIn) ViewState {
	s.Session = e.Session
	if len(e.Preferences.Categories) > 0 && !e.Preferences.Equal(s.Preferences) {
		s = withPreferences(s, e.Preferences)
		if !s.Preferences.HasCategory(s.ActiveCategory) {
			s.ActiveCategory = s.Preferences.Categories[0]
		}
		s.RefreshToken++
	}
	// signing in from a shared link lands on the dashboard
	if s.Route.Kind == RouteLogin || s.Route.Kind == RouteShared {
		s.Route = Route{Kind: RouteDashboard}
	}
	s.Screen = Dashboard()
	s.PreferencesStored = e.Stored
	return o.gate(s)
}

// gate applies the session to the route and opens onboarding for a signed
// in user on a device that never saved preferences. The shared route is
// left alone; gate runs again once it is left.
func (o *Orchestrator) gate(s ViewState) ViewState {
	if s.Route.Kind == RouteShared {
		return s
	}
	if !s.Session.IsAuthenticated() {
		s.Route = Route{Kind: RouteLogin}
		s.Screen = Dashboard()
		return s
	}
	if s.Route.Kind == RouteLogin {
		s.Route = Route{Kind: RouteDashboard}
	}
	if !s.PreferencesStored && s.Screen.Kind != ScreenOnboarding {
		s.Screen = Overlay(ScreenOnboarding, s.Screen)
	}
	return s
}

func (o *Orchestrator) navigate(s ViewState, r Route) ViewState {
	s.Route = r
	if r.Kind == RouteShared {
		return s
	}
	s.Screen = s.Screen.Closed()
	if !s.Session.IsAuthenticated() {
		s.Screen = Dashboard()
	}
	return o.gate(s)
}

// commit writes prefs through the committer, then re-seeds the active
// category when the selection changed or no longer contains it, closes the
// preferences overlay and bumps the refresh token.
func (o *Orchestrator) commit(ctx context.Context, s ViewState, prefs models.Preferences, closing ScreenKind) (ViewState, error) {
	if err := requireDashboard(s); err != nil {
		return s, err
	}
	saved, err := o.prefs.Commit(ctx, prefs, s.Session)
	if err != nil {
		return s, err
	}

	changed := !slices.Equal(saved.Categories, s.Preferences.Categories)
	s = withPreferences(s, saved)
	s.PreferencesStored = true
	if changed || !s.Preferences.HasCategory(s.ActiveCategory) {
		s.ActiveCategory = s.Preferences.Categories[0]
	}
	if s.Screen.Kind == closing {
		s.Screen = s.Screen.Closed()
	}
	s.RefreshToken++
	return s, nil
}

// withPreferences stores p, falling back to the defaults when it has no
// categories so the dashboard always has one to show.
func withPreferences(s ViewState, p models.Preferences) ViewState {
	if len(p.Categories) == 0 {
		p = models.DefaultPreferences()
	}
	s.Preferences = p.Clone()
	return s
}
