package view

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
)

// ErrSuperseded is returned to a Load whose response arrived after a newer
// Load had started.
var ErrSuperseded = errors.New("superseded by a newer request")

// SourceLanguage is the language articles are requested in before the
// backend translates them for the reader.
const SourceLanguage = "en"

// NewsFetcher is the slice of the gateway the feed needs.
type NewsFetcher interface {
	FetchNews(ctx context.Context, category, uiLanguage, userLanguage string) ([]models.Article, error)
}

// FeedKey identifies a dashboard fetch. A change in any field asks for new
// data.
type FeedKey struct {
	Category     string
	Language     string
	RefreshToken uint64
}

// KeyFor derives the feed key for a view state.
func KeyFor(s ViewState) FeedKey {
	return FeedKey{Category: s.ActiveCategory, Language: s.Preferences.Language, RefreshToken: s.RefreshToken}
}

// FeedResult is the last applied response.
type FeedResult struct {
	Key        FeedKey
	Generation uint64
	Articles   []models.Article
	Err        error
}

// Feed loads dashboard articles. Each Load is stamped with a generation;
// starting a Load cancels the one in flight, and a response that is no
// longer the latest generation is discarded rather than applied.
type Feed struct {
	src NewsFetcher
	log logging.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	latest *FeedResult
}

func NewFeed(src NewsFetcher, log logging.Logger) *Feed {
	return &Feed{src: src, log: log}
}

// Load fetches articles for key. It returns ErrSuperseded when a newer Load
// started before this one finished.
func (f *Feed) Load(ctx context.Context, key FeedKey) ([]models.Article, error) {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.gen++
	gen := f.gen
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()
	defer cancel()

	articles, err := f.src.FetchNews(ctx, key.Category, SourceLanguage, key.Language)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		f.log.Debug(ctx, "discarding stale feed response", "category", key.Category, "generation", gen, "latest", f.gen)
		return nil, ErrSuperseded
	}
	f.cancel = nil
	f.latest = &FeedResult{Key: key, Generation: gen, Articles: articles, Err: err}
	if err != nil {
		f.log.Error(ctx, "feed load failed", "category", key.Category, "error", err)
		return nil, err
	}
	return articles, nil
}

// Latest returns the last applied result, if any.
func (f *Feed) Latest() (FeedResult, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.latest == nil {
		return FeedResult{}, false
	}
	return *f.latest, true
}

// Stop cancels the request in flight, if any.
func (f *Feed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stop()
}

// Reset is Stop that also forgets the last result.
func (f *Feed) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stop()
	f.latest = nil
}

func (f *Feed) stop() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.gen++
}
