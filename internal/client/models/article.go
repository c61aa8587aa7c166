package models

import "strings"

// Article is read-only display data produced by the backend. Summary and the
// translated fields are computed server-side and passed through verbatim.
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

// DisplayTitle prefers the translated title.
func (a Article) DisplayTitle() string {
	if a.TranslatedTitle != "" {
		return a.TranslatedTitle
	}
	return a.Title
}

// DisplayDescription prefers the translated description.
func (a Article) DisplayDescription() string {
	if a.TranslatedDescription != "" {
		return a.TranslatedDescription
	}
	return a.Description
}

// KeyPoints splits the newline-delimited summary, dropping blank lines.
func (a Article) KeyPoints() []string {
	if a.Summary == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(a.Summary, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Key identifies the article for local bookkeeping: the ID when present,
// otherwise the share ID, otherwise the URL.
func (a Article) Key() string {
	switch {
	case a.ID != "":
		return a.ID
	case a.ShareID != "":
		return a.ShareID
	default:
		return a.URL
	}
}

// ShareResult is what the backend returns when an article is shared.
type ShareResult struct {
	ShareID  string `json:"shareId"`
	ShareURL string `json:"shareUrl"`
}
