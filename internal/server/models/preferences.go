package models

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

var (
	ErrNoCategories    = errors.New("at least one category is required")
	ErrUnknownTheme    = errors.New("unknown theme")
	ErrInvalidLanguage = errors.New("invalid language code")
)

// Preferences are stored per user exactly as the client sent them, after
// validation.
type Preferences struct {
	Categories []string `json:"categories"`
	Theme      string   `json:"theme"`
	Language   string   `json:"language"`
}

// Validate checks the fields every client relies on.
func (p Preferences) Validate() error {
	n := 0
	for _, c := range p.Categories {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	if n == 0 {
		return ErrNoCategories
	}
	if p.Theme != "light" && p.Theme != "dark" {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, p.Theme)
	}
	if _, err := language.Parse(p.Language); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, p.Language)
	}
	return nil
}
