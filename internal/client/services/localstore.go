package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
)

const (
	keyPreferences   = "preferences"
	keyDailyReads    = "stats:daily_reads"
	keySavedArticles = "saved_articles"

	dayLayout = "2006-01-02"
	// keepDays bounds the daily-read history; older days cannot affect a
	// displayed streak in practice.
	keepDays = 400
)

// LocalStore is the fast, offline source of truth for this device. Reads
// never fail: absent or malformed records fall back to defaults and are
// logged at warn level.
type LocalStore struct {
	mu   sync.Mutex
	repo metadata.Repository
	log  logging.Logger
}

func NewLocalStore(repo metadata.Repository, log logging.Logger) *LocalStore {
	return &LocalStore{repo: repo, log: log}
}

// Snapshot returns the stored preferences and whether a usable record
// exists. Without one it returns the defaults and false.
func (s *LocalStore) Snapshot(ctx context.Context) (models.Preferences, bool) {
	var p models.Preferences
	found, err := metadata.GetJSON(ctx, s.repo, keyPreferences, &p)
	if err != nil {
		s.log.Warn(ctx, "stored preferences unreadable, using defaults", "error", err)
		return models.DefaultPreferences(), false
	}
	if !found {
		return models.DefaultPreferences(), false
	}
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		s.log.Warn(ctx, "stored preferences malformed, using defaults", "error", err)
		return models.DefaultPreferences(), false
	}
	return p, true
}

// Load returns the stored preferences or the defaults.
func (s *LocalStore) Load(ctx context.Context) models.Preferences {
	p, _ := s.Snapshot(ctx)
	return p
}

// Stored reports whether this device holds a usable preferences record.
func (s *LocalStore) Stored(ctx context.Context) bool {
	_, ok := s.Snapshot(ctx)
	return ok
}

// Save overwrites the preferences record.
func (s *LocalStore) Save(ctx context.Context, p models.Preferences) error {
	return metadata.SetJSON(ctx, s.repo, keyPreferences, p)
}

func (s *LocalStore) dailyReads(ctx context.Context, repo metadata.Repository) map[string]int {
	counts := map[string]int{}
	if _, err := metadata.GetJSON(ctx, repo, keyDailyReads, &counts); err != nil {
		s.log.Warn(ctx, "reading counters unreadable, starting over", "error", err)
		return map[string]int{}
	}
	return counts
}

// RecordRead counts one article read on now's calendar day.
func (s *LocalStore) RecordRead(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Update(ctx, func(ctx context.Context, repo metadata.Repository) error {
		counts := s.dailyReads(ctx, repo)
		counts[now.Format(dayLayout)]++

		cutoff := now.AddDate(0, 0, -keepDays).Format(dayLayout)
		for day := range counts {
			if day < cutoff {
				delete(counts, day)
			}
		}
		return metadata.SetJSON(ctx, repo, keyDailyReads, counts)
	})
}

// DailyReads is the number of articles read on now's calendar day.
func (s *LocalStore) DailyReads(ctx context.Context, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dailyReads(ctx, s.repo)[now.Format(dayLayout)]
}

// ReadingStreak counts consecutive days with at least one read, ending
// today. A day without reads yet does not break a streak that ran through
// yesterday.
func (s *LocalStore) ReadingStreak(ctx context.Context, now time.Time) int {
	s.mu.Lock()
	counts := s.dailyReads(ctx, s.repo)
	s.mu.Unlock()

	day := now
	if counts[day.Format(dayLayout)] == 0 {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for counts[day.Format(dayLayout)] > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

type savedArticle struct {
	Article models.Article `json:"article"`
	SavedAt time.Time      `json:"savedAt"`
}

func (s *LocalStore) savedArticles(ctx context.Context, repo metadata.Repository) []savedArticle {
	var list []savedArticle
	if _, err := metadata.GetJSON(ctx, repo, keySavedArticles, &list); err != nil {
		s.log.Warn(ctx, "saved articles unreadable, starting over", "error", err)
		return nil
	}
	return list
}

// SaveArticle bookmarks a; saving an already saved article moves it to the
// front.
func (s *LocalStore) SaveArticle(ctx context.Context, a models.Article, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Update(ctx, func(ctx context.Context, repo metadata.Repository) error {
		list := s.savedArticles(ctx, repo)
		out := make([]savedArticle, 0, len(list)+1)
		out = append(out, savedArticle{Article: a, SavedAt: now})
		for _, sa := range list {
			if sa.Article.Key() != a.Key() {
				out = append(out, sa)
			}
		}
		return metadata.SetJSON(ctx, repo, keySavedArticles, out)
	})
}

// SavedArticles lists bookmarks, most recently saved first.
func (s *LocalStore) SavedArticles(ctx context.Context) []models.Article {
	s.mu.Lock()
	list := s.savedArticles(ctx, s.repo)
	s.mu.Unlock()

	sort.SliceStable(list, func(i, j int) bool { return list[i].SavedAt.After(list[j].SavedAt) })
	out := make([]models.Article, len(list))
	for i, sa := range list {
		out[i] = sa.Article
	}
	return out
}

// RemoveSavedArticle deletes the bookmark with the given key and reports
// whether one existed.
func (s *LocalStore) RemoveSavedArticle(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	err := s.repo.Update(ctx, func(ctx context.Context, repo metadata.Repository) error {
		list := s.savedArticles(ctx, repo)
		out := list[:0]
		for _, sa := range list {
			if sa.Article.Key() == key {
				removed = true
				continue
			}
			out = append(out, sa)
		}
		if !removed {
			return nil
		}
		return metadata.SetJSON(ctx, repo, keySavedArticles, out)
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
