package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/common"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"github.com/dmitrijs2005/newsdigest/internal/server/models"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	pageSize     = 20
	maxCached    = 2000
	maxErrorBody = 4 << 10
)

var (
	ErrNewsNotConfigured = errors.New("news API key is not configured")
	ErrUpstream          = errors.New("news provider error")
)

// Headlines is one page of top headlines for a category.
type Headlines struct {
	Articles     []models.Article
	Category     string
	TotalResults int
	Timestamp    time.Time
}

// NewsService proxies NewsAPI top headlines. Each article gets an ID derived
// from its URL and is remembered so it can be served again by ID.
// Concurrent requests for the same page share one upstream call.
type NewsService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	log     logging.Logger

	group singleflight.Group

	mu    sync.Mutex
	byID  map[string]models.Article
	order []string
}

func NewNewsService(client *http.Client, baseURL, apiKey string, log logging.Logger) *NewsService {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &NewsService{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		log:     log,
		byID:    map[string]models.Article{},
	}
}

// ArticleID is the stable identifier of the article at rawURL.
func ArticleID(rawURL string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(rawURL)).String()
}

// TopHeadlines returns up to one page of headlines. userLanguage is accepted
// for the API contract; articles are returned untranslated.
func (s *NewsService) TopHeadlines(ctx context.Context, category, language, userLanguage string) (*Headlines, error) {
	if s.apiKey == "" {
		return nil, ErrNewsNotConfigured
	}

	key := category + "|" + language
	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx), category, language)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.log.Debug(ctx, "joined in-flight headline request", "category", category, "language", language)
	}

	h := *v.(*Headlines)
	h.Articles = append([]models.Article(nil), h.Articles...)
	return &h, nil
}

// Article returns a previously served article.
func (s *NewsService) Article(id string) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

type newsAPIResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

func (s *NewsService) fetch(ctx context.Context, category, language string) (*Headlines, error) {
	q := url.Values{}
	q.Set("category", category)
	q.Set("language", language)
	q.Set("pageSize", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/top-headlines?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	var body newsAPIResponse
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &body) == nil && body.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrUpstream, body.Message)
		}
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrUpstream, err)
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, body.Message)
	}

	h := &Headlines{Category: category, TotalResults: body.TotalResults, Timestamp: time.Now()}
	for _, a := range body.Articles {
		// NewsAPI marks withdrawn items this way
		if a.URL == "" || a.Title == "[Removed]" {
			continue
		}
		h.Articles = append(h.Articles, models.Article{
			ID:          ArticleID(a.URL),
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			URLToImage:  a.URLToImage,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}
	s.remember(h.Articles)

	s.log.Info(ctx, "fetched headlines", "category", category, "language", language, "count", len(h.Articles))
	return h, nil
}

func (s *NewsService) remember(articles []models.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range articles {
		if _, ok := s.byID[a.ID]; !ok {
			s.order = append(s.order, a.ID)
		}
		s.byID[a.ID] = a
	}
	for len(s.order) > maxCached {
		delete(s.byID, s.order[0])
		s.order = s.order[1:]
	}
}
