// Package models defines the client-side data model: identities, reading
// preferences, articles and the session value handed to views.
package models

// User is the server-issued identity. The client treats it as opaque
// display data.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionState is the client's belief about authentication.
type SessionState string

const (
	SessionUnknown       SessionState = "unknown"
	SessionAnonymous     SessionState = "anonymous"
	SessionAuthenticated SessionState = "authenticated"
)

// Session is an immutable snapshot of the authentication state. Identity is
// non-nil exactly when State is SessionAuthenticated.
type Session struct {
	State    SessionState
	Identity *User
}

// Anonymous returns the initial/post-logout session.
func Anonymous() Session {
	return Session{State: SessionAnonymous}
}

// Authenticated returns a session bound to u.
func Authenticated(u *User) Session {
	return Session{State: SessionAuthenticated, Identity: u}
}

func (s Session) IsAuthenticated() bool {
	return s.State == SessionAuthenticated && s.Identity != nil
}
