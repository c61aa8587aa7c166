package cli

import (
	"bytes"
	"testing"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/client/view"
	"github.com/stretchr/testify/assert"
)

func TestRenderHeadlines(t *testing.T) {
	var buf bytes.Buffer
	renderHeadlines(&buf, "tech", []models.Article{
		{Title: "Original", TranslatedTitle: "Übersetzt", Source: "Wire"},
		{Title: "Second"},
	})
	out := buf.String()
	assert.Contains(t, out, "== TECH ==")
	assert.Contains(t, out, " 1. Übersetzt")
	assert.Contains(t, out, "    Wire")
	assert.Contains(t, out, " 2. Second")

	buf.Reset()
	renderHeadlines(&buf, "tech", nil)
	assert.Contains(t, buf.String(), "No articles right now.")
}

func TestRenderArticle(t *testing.T) {
	var buf bytes.Buffer
	renderArticle(&buf, models.Article{
		Title:       "T",
		Description: "D",
		Summary:     "- first\n\n• second\n",
		URL:         "https://x/1",
	})
	out := buf.String()
	assert.Contains(t, out, "Key points:\n  - first\n  - second\n")
	assert.Contains(t, out, "Read the full article: https://x/1")
	assert.NotContains(t, out, "Image:")
}

func TestRenderShared(t *testing.T) {
	var buf bytes.Buffer
	renderShared(&buf, view.SharedResult{State: view.SharedNotFound})
	assert.Contains(t, buf.String(), "Article Not Found")

	buf.Reset()
	renderShared(&buf, view.SharedResult{State: view.SharedFound, Article: &models.Article{Title: "Shared!", URL: "u"}})
	assert.Contains(t, buf.String(), "Shared!")
}

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	renderStats(&buf, 1, 3)
	assert.Equal(t, "Reading streak: 1 day\nRead today: 3\n", buf.String())
}

func TestHelpText(t *testing.T) {
	assert.Contains(t, helpText(false), "login")
	assert.NotContains(t, helpText(false), "settings")
	assert.Contains(t, helpText(true), "settings")
}
