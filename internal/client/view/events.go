package view

import "github.com/dmitrijs2005/newsdigest/internal/client/models"

// Event is a discrete input to the Orchestrator.
type Event interface {
	eventName() string
}

// AppStarted carries the startup snapshot once identity has resolved.
// Stored reports whether this device had preferences saved.
type AppStarted struct {
	Preferences models.Preferences
	Session     models.Session
	Stored      bool
}

// LoggedIn follows a successful login or signup. Preferences and Stored
// reflect the reconciliation done for the new session.
type LoggedIn struct {
	Session     models.Session
	Preferences models.Preferences
	Stored      bool
}

type LoggedOut struct{}

type OnboardingCompleted struct{ Preferences models.Preferences }

type SettingsSaved struct{ Preferences models.Preferences }

type SettingsOpened struct{}

type ArticleSelected struct{ Article models.Article }

type OverlayClosed struct{}

type CategoryChanged struct{ Category string }

type SavedArticlesOpened struct{}

type BackToDashboard struct{}

// Navigated switches to another client path, e.g. a pasted share link.
type Navigated struct{ Route Route }

func (AppStarted) eventName() string          { return "app-started" }
func (LoggedIn) eventName() string            { return "logged-in" }
func (LoggedOut) eventName() string           { return "logged-out" }
func (OnboardingCompleted) eventName() string { return "onboarding-completed" }
func (SettingsSaved) eventName() string       { return "settings-saved" }
func (SettingsOpened) eventName() string      { return "settings-opened" }
func (ArticleSelected) eventName() string     { return "article-selected" }
func (OverlayClosed) eventName() string       { return "overlay-closed" }
func (CategoryChanged) eventName() string     { return "category-changed" }
func (SavedArticlesOpened) eventName() string { return "saved-articles-opened" }
func (BackToDashboard) eventName() string     { return "back-to-dashboard" }
func (Navigated) eventName() string           { return "navigated" }
