package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Theme is the UI colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var (
	ErrNoCategories    = errors.New("at least one category is required")
	ErrUnknownTheme    = errors.New("unknown theme")
	ErrInvalidLanguage = errors.New("invalid language code")
)

// Categories understood by the news backend.
var KnownCategories = []string{
	"general", "business", "entertainment", "health", "science", "sports", "technology",
}

// Preferences are the user's reading settings. Categories is ordered; the
// first entry seeds the dashboard's active category.
type Preferences struct {
	Categories []string `json:"categories"`
	Theme      Theme    `json:"theme"`
	Language   string   `json:"language"`
}

// DefaultPreferences returns the compiled-in defaults used on first run and
// whenever the stored record is unusable.
func DefaultPreferences() Preferences {
	return Preferences{
		Categories: []string{"general"},
		Theme:      ThemeLight,
		Language:   "en",
	}
}

// Equal reports whether p and o hold the same values.
func (p Preferences) Equal(o Preferences) bool {
	return p.Theme == o.Theme && p.Language == o.Language && slices.Equal(p.Categories, o.Categories)
}

// IsDefault reports whether p equals the compiled-in defaults.
func (p Preferences) IsDefault() bool {
	return p.Equal(DefaultPreferences())
}

// Clone returns a deep copy so callers never share the Categories slice.
func (p Preferences) Clone() Preferences {
	p.Categories = slices.Clone(p.Categories)
	return p
}

// Normalize trims and lower-cases categories, drops blanks and duplicates
// (keeping the first occurrence), and canonicalises the language tag when it
// parses.
func (p Preferences) Normalize() Preferences {
	seen := make(map[string]struct{}, len(p.Categories))
	cats := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		cats = append(cats, c)
	}
	p.Categories = cats
	p.Theme = Theme(strings.ToLower(strings.TrimSpace(string(p.Theme))))
	if tag, err := language.Parse(strings.TrimSpace(p.Language)); err == nil {
		p.Language = tag.String()
	}
	return p
}

// Validate checks the semantic invariants the dashboard relies on.
func (p Preferences) Validate() error {
	if len(p.Categories) == 0 {
		return ErrNoCategories
	}
	if p.Theme != ThemeLight && p.Theme != ThemeDark {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, p.Theme)
	}
	if _, err := language.Parse(p.Language); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, p.Language)
	}
	return nil
}

// HasCategory reports whether c is one of the selected categories.
func (p Preferences) HasCategory(c string) bool {
	return slices.Contains(p.Categories, c)
}
