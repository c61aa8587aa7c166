// Package api is the client's only network boundary: a typed facade over the
// NewsDigest backend HTTP/JSON surface.
//
// # Overview
//
// Client is the transport-agnostic contract consumed by the services and the
// views. HTTPClient implements it with net/http. Credentials are never
// handled by callers: the backend issues a session cookie which lives in a
// CookieStore, a cookie jar mirrored into the local database so a restart
// keeps the server session.
//
// # Error Handling
//
// Every non-2xx response becomes a *RequestError carrying the status and the
// backend's "error" message. Common conditions match sentinel errors with
// errors.Is:
//
//   - ErrUnauthorized: HTTP 401
//   - ErrNotFound:     HTTP 404
//   - ErrUnavailable:  the request never produced a response (dial failure,
//     timeout, cancelled context)
//
// GetUser is the one lenient call: it reports "no session" and "could not
// tell" alike as a nil user, distinguishable only in the log.
package api
