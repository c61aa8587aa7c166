package models

import "time"

// Article is a headline as served to clients. Fields beyond Title and URL
// are optional.
type Article struct {
	ID                    string `json:"id,omitempty"`
	Title                 string `json:"title"`
	TranslatedTitle       string `json:"translatedTitle,omitempty"`
	Description           string `json:"description,omitempty"`
	TranslatedDescription string `json:"translatedDescription,omitempty"`
	URLToImage            string `json:"urlToImage,omitempty"`
	Summary               string `json:"summary,omitempty"`
	URL                   string `json:"url"`
	ShareID               string `json:"shareId,omitempty"`
	Source                string `json:"source,omitempty"`
	PublishedAt           string `json:"publishedAt,omitempty"`
}

// Share is a published snapshot of an article.
type Share struct {
	ID        string    `json:"-"`
	Article   Article   `json:"article"`
	CreatedAt time.Time `json:"created_at"`
	Views     int64     `json:"views"`
}
