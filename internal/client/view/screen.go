package view

import "github.com/dmitrijs2005/newsdigest/internal/client/models"

// ScreenKind enumerates everything the authenticated area can show.
type ScreenKind int

const (
	ScreenDashboard ScreenKind = iota
	ScreenSavedArticles
	ScreenOnboarding
	ScreenSettings
	ScreenArticleDetail
)

func (k ScreenKind) String() string {
	switch k {
	case ScreenDashboard:
		return "dashboard"
	case ScreenSavedArticles:
		return "saved-articles"
	case ScreenOnboarding:
		return "onboarding"
	case ScreenSettings:
		return "settings"
	case ScreenArticleDetail:
		return "article-detail"
	}
	return "unknown"
}

// IsOverlay reports whether k is shown above a base screen.
func (k ScreenKind) IsOverlay() bool {
	return k == ScreenOnboarding || k == ScreenSettings || k == ScreenArticleDetail
}

// Screen is what is shown right now. Overlays remember the base screen they
// cover (Dashboard or SavedArticles) so closing returns there. Article is
// set only for ScreenArticleDetail.
type Screen struct {
	Kind    ScreenKind
	Base    ScreenKind
	Article *models.Article
}

func Dashboard() Screen     { return Screen{Kind: ScreenDashboard, Base: ScreenDashboard} }
func SavedArticles() Screen { return Screen{Kind: ScreenSavedArticles, Base: ScreenSavedArticles} }

// Overlay opens kind above the base of from.
func Overlay(kind ScreenKind, from Screen) Screen {
	return Screen{Kind: kind, Base: from.base()}
}

// ArticleDetail opens a above the base of from.
func ArticleDetail(a models.Article, from Screen) Screen {
	return Screen{Kind: ScreenArticleDetail, Base: from.base(), Article: &a}
}

func (s Screen) base() ScreenKind {
	if s.Kind.IsOverlay() {
		return s.Base
	}
	return s.Kind
}

// Closed returns the base screen under s; a base screen is returned as is.
func (s Screen) Closed() Screen {
	if s.base() == ScreenSavedArticles {
		return SavedArticles()
	}
	return Dashboard()
}

func (s Screen) String() string {
	if s.Kind.IsOverlay() {
		return s.Kind.String() + " over " + s.Base.String()
	}
	return s.Kind.String()
}
