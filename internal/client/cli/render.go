package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/client/view"
)

const rule = "----------------------------------------"

func renderHeadlines(w io.Writer, category string, articles []models.Article) {
	fmt.Fprintf(w, "== %s ==\n", strings.ToUpper(category))
	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles right now.")
		return
	}
	for i, a := range articles {
		fmt.Fprintf(w, "%2d. %s\n", i+1, a.DisplayTitle())
		if a.Source != "" {
			fmt.Fprintf(w, "    %s\n", a.Source)
		}
	}
	fmt.Fprintln(w, "Type 'read <n>' to open an article.")
}

func renderArticle(w io.Writer, a models.Article) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, a.DisplayTitle())
	if d := a.DisplayDescription(); d != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, d)
	}
	if points := a.KeyPoints(); len(points) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Key points:")
		for _, p := range points {
			fmt.Fprintf(w, "  - %s\n", strings.TrimLeft(p, "-•* "))
		}
	}
	if a.URLToImage != "" {
		fmt.Fprintf(w, "\nImage: %s\n", a.URLToImage)
	}
	fmt.Fprintf(w, "\nRead the full article: %s\n", a.URL)
	fmt.Fprintln(w, rule)
}

func renderShared(w io.Writer, res view.SharedResult) {
	switch res.State {
	case view.SharedLoading:
		fmt.Fprintln(w, "Loading shared article...")
	case view.SharedFound:
		renderArticle(w, *res.Article)
	default:
		fmt.Fprintln(w, "Article Not Found")
		fmt.Fprintln(w, "The shared article could not be found.")
	}
}

func renderSaved(w io.Writer, articles []models.Article) {
	fmt.Fprintln(w, "== SAVED ARTICLES ==")
	if len(articles) == 0 {
		fmt.Fprintln(w, "Nothing saved yet. Open an article and type 'save'.")
		return
	}
	for i, a := range articles {
		fmt.Fprintf(w, "%2d. %s\n", i+1, a.DisplayTitle())
	}
	fmt.Fprintln(w, "Type 'read <n>' to open, 'unsave <n>' to remove, 'dashboard' to go back.")
}

func renderStats(w io.Writer, streak, today int) {
	days := "days"
	if streak == 1 {
		days = "day"
	}
	fmt.Fprintf(w, "Reading streak: %d %s\nRead today: %d\n", streak, days, today)
}

func renderPreferences(w io.Writer, p models.Preferences) {
	fmt.Fprintf(w, "Categories: %s\nTheme: %s\nLanguage: %s\n", strings.Join(p.Categories, ", "), p.Theme, p.Language)
}

func helpText(loggedIn bool) string {
	if loggedIn {
		return "Available commands: news, category <name>, read <n>, back, share, save, saved, unsave <n>, dashboard, settings, stats, open <path>, whoami, logout, exit"
	}
	return "Available commands: login, signup, open <path>, exit"
}
