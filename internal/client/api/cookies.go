package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"golang.org/x/net/publicsuffix"
)

const cookieKeyPrefix = "cookie:"

type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// CookieStore is an http.CookieJar for a single backend whose cookies are
// mirrored into the metadata table. A nil repository keeps cookies in memory
// only.
type CookieStore struct {
	mu   sync.Mutex
	jar  *cookiejar.Jar
	base *url.URL
	repo metadata.Repository
	log  logging.Logger
}

func newJar() *cookiejar.Jar {
	// cookiejar.New never returns a non-nil error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return jar
}

// NewCookieStore builds the jar and restores cookies saved by an earlier run.
// Expired records are deleted on the way.
func NewCookieStore(ctx context.Context, base *url.URL, repo metadata.Repository, log logging.Logger) (*CookieStore, error) {
	s := &CookieStore{jar: newJar(), base: base, repo: repo, log: log}
	if repo == nil {
		return s, nil
	}

	rows, err := repo.List(ctx, cookieKeyPrefix)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var restored []*http.Cookie
	for key, raw := range rows {
		var sc storedCookie
		if err := json.Unmarshal(raw, &sc); err != nil || (!sc.Expires.IsZero() && sc.Expires.Before(now)) {
			_ = repo.Delete(ctx, key)
			continue
		}
		restored = append(restored, &http.Cookie{Name: sc.Name, Value: sc.Value, Path: sc.Path, Expires: sc.Expires})
	}
	if len(restored) > 0 {
		s.jar.SetCookies(base, restored)
		log.Debug(ctx, "restored cookies", "count", len(restored))
	}
	return s, nil
}

func (s *CookieStore) Cookies(u *url.URL) []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jar.Cookies(u)
}

// SetCookies stores cookies in the jar and mirrors those for the backend
// host. A cookie with MaxAge < 0 or a past expiry removes the saved copy.
func (s *CookieStore) SetCookies(u *url.URL, cookies []*http.Cookie) {
	s.mu.Lock()
	s.jar.SetCookies(u, cookies)
	s.mu.Unlock()

	if s.repo == nil || !strings.EqualFold(u.Hostname(), s.base.Hostname()) {
		return
	}

	ctx := context.Background()
	now := time.Now()
	for _, c := range cookies {
		key := cookieKeyPrefix + c.Name
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(now)) {
			if err := s.repo.Delete(ctx, key); err != nil {
				s.log.Warn(ctx, "failed to forget cookie", "name", c.Name, "error", err)
			}
			continue
		}
		expires := c.Expires
		if c.MaxAge > 0 {
			expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}
		if err := metadata.SetJSON(ctx, s.repo, key, storedCookie{Name: c.Name, Value: c.Value, Path: c.Path, Expires: expires}); err != nil {
			s.log.Warn(ctx, "failed to persist cookie", "name", c.Name, "error", err)
		}
	}
}

// Clear drops every cookie, in memory and on disk.
func (s *CookieStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.jar = newJar()
	s.mu.Unlock()

	if s.repo == nil {
		return nil
	}
	rows, err := s.repo.List(ctx, cookieKeyPrefix)
	if err != nil {
		return err
	}
	for key := range rows {
		if err := s.repo.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
