package view

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
)

// SharedState is the public article page's state.
type SharedState int

const (
	SharedLoading SharedState = iota
	SharedFound
	SharedNotFound
)

func (s SharedState) String() string {
	switch s {
	case SharedLoading:
		return "loading"
	case SharedFound:
		return "found"
	}
	return "not-found"
}

// SharedResult is a snapshot of the page. Err keeps the underlying failure
// for diagnostics; any failure renders as not found.
type SharedResult struct {
	ShareID string
	State   SharedState
	Article *models.Article
	Err     error
}

// SharedArticleFetcher is the slice of the gateway the page needs.
type SharedArticleFetcher interface {
	GetSharedArticle(ctx context.Context, shareID string) (*models.Article, error)
}

// SharedArticleView renders a shared article without consulting the
// session or preferences.
type SharedArticleView struct {
	src SharedArticleFetcher
	log logging.Logger

	mu     sync.Mutex
	result SharedResult
}

func NewSharedArticleView(src SharedArticleFetcher, log logging.Logger) *SharedArticleView {
	return &SharedArticleView{src: src, log: log, result: SharedResult{State: SharedLoading}}
}

// Result returns the current snapshot.
func (v *SharedArticleView) Result() SharedResult {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.result
}

// Load fetches the article behind shareID. The view is Loading until the
// fetch returns. A result for an id other than the latest requested one is
// dropped.
func (v *SharedArticleView) Load(ctx context.Context, shareID string) SharedResult {
	v.mu.Lock()
	v.result = SharedResult{ShareID: shareID, State: SharedLoading}
	v.mu.Unlock()

	res := SharedResult{ShareID: shareID}
	a, err := v.src.GetSharedArticle(ctx, shareID)
	switch {
	case err == nil && a != nil:
		res.State = SharedFound
		res.Article = a
	case err == nil || errors.Is(err, api.ErrNotFound):
		res.State = SharedNotFound
		res.Err = api.ErrNotFound
		v.log.Info(ctx, "shared article not found", "share_id", shareID)
	default:
		res.State = SharedNotFound
		res.Err = err
		v.log.Error(ctx, "shared article fetch failed", "share_id", shareID, "error", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.result.ShareID == shareID {
		v.result = res
	}
	return res
}
