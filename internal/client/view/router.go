package view

import (
	"net/url"
	"strings"
)

// RouteKind names the client paths.
type RouteKind int

const (
	RouteDashboard RouteKind = iota
	RouteLogin
	RouteShared
)

// Route is a parsed client path. ShareID is set for RouteShared.
type Route struct {
	Kind    RouteKind
	ShareID string
}

func (r Route) Path() string {
	switch r.Kind {
	case RouteLogin:
		return "/login"
	case RouteShared:
		return "/shared/" + url.PathEscape(r.ShareID)
	}
	return "/dashboard"
}

func (r Route) String() string { return r.Path() }

// ParseRoute maps a path to a route. "/" redirects to the dashboard, as
// does any path it does not know; "/shared/" without an id is treated the
// same way. A full URL is accepted and only its path is used, so a pasted
// share link works.
func ParseRoute(raw string) Route {
	p := strings.TrimSpace(raw)
	if u, err := url.Parse(p); err == nil && u.Scheme != "" {
		p = u.Path
	}
	p = "/" + strings.Trim(p, "/")

	switch {
	case p == "/login":
		return Route{Kind: RouteLogin}
	case strings.HasPrefix(p, "/shared/"):
		id := strings.TrimPrefix(p, "/shared/")
		if i := strings.IndexByte(id, '/'); i >= 0 {
			id = id[:i]
		}
		if unescaped, err := url.PathUnescape(id); err == nil {
			id = unescaped
		}
		if id != "" {
			return Route{Kind: RouteShared, ShareID: id}
		}
	}
	return Route{Kind: RouteDashboard}
}
