package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	cookies *CookieStore
	log     logging.Logger
}

// NewHTTPClient returns a client for the backend at baseURL. timeout bounds
// each request; zero means no limit beyond the caller's context. cookies may
// be nil, in which case an in-memory jar is used.
func NewHTTPClient(baseURL string, timeout time.Duration, cookies *CookieStore, log logging.Logger) (*HTTPClient, error) {
	u, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if cookies == nil {
		cookies, _ = NewCookieStore(context.Background(), u, nil, log)
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout, Jar: cookies},
		cookies: cookies,
		log:     log,
	}, nil
}

// ParseBaseURL validates an absolute http(s) URL.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: want http(s)://host[:port]", raw)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

// do sends one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded 2xx response.
func (c *HTTPClient) do(ctx context.Context, method string, segments []string, query url.Values, body, out any) error {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u := c.baseURL.JoinPath(escaped...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	path := u.EscapedPath()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug(ctx, "request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Method: method, Path: path, Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		return payload.Message
	}
	return strings.TrimSpace(string(raw))
}

type newsResponse struct {
	Articles     []models.Article `json:"articles"`
	Category     string           `json:"category"`
	TotalResults int              `json:"totalResults"`
	Error        string           `json:"error"`
}

func (c *HTTPClient) FetchNews(ctx context.Context, category, uiLanguage, userLanguage string) ([]models.Article, error) {
	q := url.Values{}
	q.Set("category", category)
	q.Set("language", uiLanguage)
	q.Set("userLanguage", userLanguage)

	var resp newsResponse
	if err := c.do(ctx, http.MethodGet, []string{"api", "news"}, q, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		c.log.Warn(ctx, "news backend reported a problem", "category", category, "error", resp.Error)
	}
	return resp.Articles, nil
}

type articleEnvelope struct {
	Article *models.Article `json:"article"`
}

func (c *HTTPClient) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	var resp articleEnvelope
	if err := c.do(ctx, http.MethodGet, []string{"api", "article", id}, nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Article == nil {
		return nil, fmt.Errorf("article %s: %w", id, ErrNotFound)
	}
	return resp.Article, nil
}

func (c *HTTPClient) ShareArticle(ctx context.Context, article models.Article) (models.ShareResult, error) {
	var resp models.ShareResult
	err := c.do(ctx, http.MethodPost, []string{"api", "share"}, nil, articleEnvelope{Article: &article}, &resp)
	return resp, err
}

func (c *HTTPClient) GetSharedArticle(ctx context.Context, shareID string) (*models.Article, error) {
	var resp articleEnvelope
	if err := c.do(ctx, http.MethodGet, []string{"api", "shared", shareID}, nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Article == nil {
		return nil, fmt.Errorf("shared article %s: %w", shareID, ErrNotFound)
	}
	if resp.Article.ShareID == "" {
		resp.Article.ShareID = shareID
	}
	return resp.Article, nil
}

func (c *HTTPClient) FetchUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, []string{"auth", "user"}, nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) GetUser(ctx context.Context) *models.User {
	u, err := c.FetchUser(ctx)
	switch {
	case err == nil:
		c.log.Debug(ctx, "user authenticated", "email", u.Email)
		return u
	case errors.Is(err, ErrUnauthorized):
		c.log.Info(ctx, "user not authenticated")
	default:
		c.log.Error(ctx, "identity check failed", "error", err)
	}
	return nil
}

type authResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

func (c *HTTPClient) authenticate(ctx context.Context, action string, body any) (*models.User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, []string{"auth", action}, nil, body, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("%s: response carries no user", action)
	}
	return resp.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	return c.authenticate(ctx, "login", map[string]string{"email": email, "password": password})
}

func (c *HTTPClient) Signup(ctx context.Context, email, password, name string) (*models.User, error) {
	return c.authenticate(ctx, "signup", map[string]string{"email": email, "password": password, "name": name})
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, []string{"auth", "logout"}, nil, nil, nil)
	if cerr := c.cookies.Clear(ctx); cerr != nil {
		c.log.Warn(ctx, "failed to drop stored cookies", "error", cerr)
	}
	return err
}

func (c *HTTPClient) SavePreferences(ctx context.Context, prefs models.Preferences) error {
	return c.do(ctx, http.MethodPost, []string{"api", "preferences"}, nil, prefs, nil)
}

func (c *HTTPClient) GetPreferences(ctx context.Context) (*models.Preferences, error) {
	var p models.Preferences
	if err := c.do(ctx, http.MethodGet, []string{"api", "preferences"}, nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, []string{"api", "health"}, nil, nil, nil)
}
