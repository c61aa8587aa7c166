package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/newsdigest/internal/client/store"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient(srv.URL, 2*time.Second, nil, logging.Nop())
	require.NoError(t, err)
	return c, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestParseBaseURL(t *testing.T) {
	u, err := ParseBaseURL("http://localhost:5000")
	require.NoError(t, err)
	assert.Equal(t, "/", u.Path)

	for _, bad := range []string{"", "localhost:5000", "ftp://h", "http://"} {
		_, err := ParseBaseURL(bad)
		assert.Error(t, err, bad)
	}
}

func TestFetchNews_SendsQueryAndDecodes(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/news", r.URL.Path)
		assert.Equal(t, "technology", r.URL.Query().Get("category"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, "de", r.URL.Query().Get("userLanguage"))
		writeJSON(w, 200, map[string]any{
			"articles":     []map[string]any{{"id": "a1", "title": "T", "url": "https://x"}},
			"category":     "technology",
			"totalResults": 1,
		})
	}))

	got, err := c.FetchNews(context.Background(), "technology", "en", "de")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].ID)
}

func TestRequestError_MapsStatusAndMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/shared/missing":
			writeJSON(w, 404, map[string]string{"error": "Article not found"})
		case "/api/preferences":
			writeJSON(w, 401, map[string]string{"error": "Not authenticated"})
		default:
			http.Error(w, "boom", 500)
		}
	}))
	ctx := context.Background()

	_, err := c.GetSharedArticle(ctx, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	var re *RequestError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 404, re.Status)
	assert.Equal(t, "Article not found", re.Message)
	assert.Equal(t, "Article not found", Message(err))

	err = c.SavePreferences(ctx, models.DefaultPreferences())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = c.FetchNews(ctx, "general", "en", "en")
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 500, re.Status)
	assert.Equal(t, "boom", re.Message)
}

func TestUnreachableServer_IsErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, err := NewHTTPClient(addr, time.Second, nil, logging.Nop())
	require.NoError(t, err)

	err = c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "the server is unreachable, try again later", Message(err))
}

func TestCancelledContext_IsDistinguishable(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchNews(ctx, "general", "en", "en")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetUser_NilFor401AndFailure(t *testing.T) {
	var status atomic.Int32
	status.Store(401)
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := int(status.Load())
		if code == 200 {
			writeJSON(w, 200, models.User{ID: "u1", Name: "Ann", Email: "ann@x.io"})
			return
		}
		writeJSON(w, code, map[string]string{"error": "Not authenticated"})
	}))
	ctx := context.Background()

	assert.Nil(t, c.GetUser(ctx))

	status.Store(503)
	assert.Nil(t, c.GetUser(ctx))

	status.Store(200)
	u := c.GetUser(ctx)
	require.NotNil(t, u)
	assert.Equal(t, "ann@x.io", u.Email)

	dead, err := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond, nil, logging.Nop())
	require.NoError(t, err)
	assert.Nil(t, dead.GetUser(ctx))
}

func TestFetchUser_Strict(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 401, map[string]string{"error": "Not authenticated"})
	}))
	_, err := c.FetchUser(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginCarriesCookieToLaterCalls(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			assert.Equal(t, http.MethodPost, r.Method)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if body["password"] != "pw" {
				writeJSON(w, 401, map[string]string{"error": "Invalid email or password"})
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "tok", Path: "/", HttpOnly: true})
			writeJSON(w, 200, map[string]any{"message": "Login successful", "user": models.User{ID: "u1", Email: body["email"]}})
		case "/auth/user":
			if ck, err := r.Cookie("session"); err == nil && ck.Value == "tok" {
				writeJSON(w, 200, models.User{ID: "u1"})
				return
			}
			writeJSON(w, 401, map[string]string{"error": "Not authenticated"})
		case "/auth/logout":
			writeJSON(w, 200, map[string]string{"message": "Logged out successfully"})
		}
	}))
	ctx := context.Background()

	_, err := c.Login(ctx, "a@b.c", "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", Message(err))

	u, err := c.Login(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", u.Email)

	require.NotNil(t, c.GetUser(ctx))

	require.NoError(t, c.Logout(ctx))
	assert.Nil(t, c.GetUser(ctx), "logout drops the local cookie")
}

func TestShareArticle_PostsEnvelope(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body struct {
			Article models.Article `json:"article"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://x/1", body.Article.URL)
		writeJSON(w, 200, models.ShareResult{ShareID: "abc123abc123", ShareURL: "http://h/shared/abc123abc123"})
	}))

	res, err := c.ShareArticle(context.Background(), models.Article{Title: "T", URL: "https://x/1"})
	require.NoError(t, err)
	assert.Equal(t, "abc123abc123", res.ShareID)
}

func TestGetSharedArticle_FillsShareID(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"article": models.Article{Title: "T", URL: "u"}, "created_at": "now", "views": 3})
	}))
	a, err := c.GetSharedArticle(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", a.ShareID)
}

func TestGetArticle_EscapesID(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/article/a%2Fb", r.URL.EscapedPath())
		writeJSON(w, 200, map[string]any{"article": models.Article{ID: "a/b"}})
	}))
	a, err := c.GetArticle(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "a/b", a.ID)
}

func TestGetPreferences(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, models.Preferences{Categories: []string{"science"}, Theme: models.ThemeDark, Language: "fr"})
	}))
	p, err := c.GetPreferences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"science"}, p.Categories)
}

func TestCookieStore_PersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := metadata.NewSQLiteRepository(db)

	base, _ := url.Parse("http://localhost:5000/")
	first, err := NewCookieStore(ctx, base, repo, logging.Nop())
	require.NoError(t, err)
	first.SetCookies(base, []*http.Cookie{{Name: "session", Value: "tok", Path: "/", MaxAge: 3600}})

	second, err := NewCookieStore(ctx, base, repo, logging.Nop())
	require.NoError(t, err)
	got := second.Cookies(base)
	require.Len(t, got, 1)
	assert.Equal(t, "tok", got[0].Value)

	second.SetCookies(base, []*http.Cookie{{Name: "session", Value: "", Path: "/", MaxAge: -1}})
	rows, err := repo.List(ctx, cookieKeyPrefix)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCookieStore_DropsExpiredAndForeign(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := metadata.NewSQLiteRepository(db)

	require.NoError(t, metadata.SetJSON(ctx, repo, cookieKeyPrefix+"old", storedCookie{Name: "old", Value: "v", Expires: time.Now().Add(-time.Hour)}))
	require.NoError(t, repo.Set(ctx, cookieKeyPrefix+"junk", []byte("{")))

	base, _ := url.Parse("http://localhost:5000/")
	s, err := NewCookieStore(ctx, base, repo, logging.Nop())
	require.NoError(t, err)
	assert.Empty(t, s.Cookies(base))

	other, _ := url.Parse("http://elsewhere.test/")
	s.SetCookies(other, []*http.Cookie{{Name: "tracker", Value: "x"}})

	rows, err := repo.List(ctx, cookieKeyPrefix)
	require.NoError(t, err)
	assert.Empty(t, rows)

	s.SetCookies(base, []*http.Cookie{{Name: "session", Value: "tok"}})
	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Cookies(base))
	rows, err = repo.List(ctx, cookieKeyPrefix)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetUser_LogDistinguishesNoSessionFromFailure(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewText(&buf, slog.LevelInfo)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 401, map[string]string{"error": "Not authenticated"})
	}))
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient(srv.URL, time.Second, nil, log)
	require.NoError(t, err)
	require.Nil(t, c.GetUser(context.Background()))
	assert.Contains(t, buf.String(), "level=INFO")
	assert.NotContains(t, buf.String(), "level=ERROR")

	buf.Reset()
	dead, err := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond, nil, log)
	require.NoError(t, err)
	require.Nil(t, dead.GetUser(context.Background()))
	assert.Contains(t, buf.String(), "level=ERROR")
}
