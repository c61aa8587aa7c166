package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/newsdigest/internal/common"
	"github.com/dmitrijs2005/newsdigest/internal/dbx"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"github.com/dmitrijs2005/newsdigest/internal/server/models"
	"github.com/dmitrijs2005/newsdigest/internal/server/repositories/repomanager"
	"github.com/microcosm-cc/bluemonday"
)

const shareIDAttempts = 3

// ShareResult is what a client gets back for a new share.
type ShareResult struct {
	ShareID  string `json:"shareId"`
	ShareURL string `json:"shareUrl"`
}

// ShareService publishes article snapshots under short random IDs.
type ShareService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	policy      *bluemonday.Policy
	log         logging.Logger

	// newID is replaced in tests.
	newID func() (string, error)
}

func NewShareService(db dbx.DBTX, m repomanager.RepositoryManager, log logging.Logger) *ShareService {
	return &ShareService{
		db:          db,
		repomanager: m,
		policy:      bluemonday.StrictPolicy(),
		log:         log,
		newID:       func() (string, error) { return common.MakeRandHexString(common.ShareIDBytes) },
	}
}

// Share stores a sanitized copy of article and returns its public link under
// baseURL.
func (s *ShareService) Share(ctx context.Context, article models.Article, baseURL string) (*ShareResult, error) {
	article = s.sanitize(article)
	if article.Title == "" && article.URL == "" {
		return nil, fmt.Errorf("%w: no article data provided", common.ErrorValidation)
	}

	repo := s.repomanager.Shares(s.db)
	for attempt := 0; attempt < shareIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return nil, common.ErrorInternal
		}
		a := article
		a.ShareID = id

		err = repo.Create(ctx, &models.Share{ID: id, Article: a})
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.log.Warn(ctx, "share id collision", "share_id", id)
			continue
		}
		if err != nil {
			s.log.Error(ctx, "error storing share", "error", err)
			return nil, common.ErrorInternal
		}

		s.log.Info(ctx, "article shared", "share_id", id)
		return &ShareResult{ShareID: id, ShareURL: strings.TrimRight(baseURL, "/") + "/shared/" + id}, nil
	}
	return nil, common.ErrorInternal
}

// View returns the share and counts the read.
func (s *ShareService) View(ctx context.Context, id string) (*models.Share, error) {
	return s.repomanager.Shares(s.db).View(ctx, id)
}

// sanitize strips markup from every text field. Entities are decoded again
// since clients render the fields as plain text.
func (s *ShareService) sanitize(a models.Article) models.Article {
	clean := func(v string) string { return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v))) }
	return models.Article{
		ID:                    clean(a.ID),
		Title:                 clean(a.Title),
		TranslatedTitle:       clean(a.TranslatedTitle),
		Description:           clean(a.Description),
		TranslatedDescription: clean(a.TranslatedDescription),
		URLToImage:            safeURL(a.URLToImage),
		Summary:               clean(a.Summary),
		URL:                   safeURL(a.URL),
		Source:                clean(a.Source),
		PublishedAt:           clean(a.PublishedAt),
	}
}

// safeURL keeps absolute http(s) links only.
func safeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return u.String()
}
