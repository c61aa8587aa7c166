// Package view holds the UI-visible state of the client and the rules that
// move it.
//
// The Orchestrator owns ViewState (route, active category, the single
// Screen and a refresh token) and changes it only in response to Event
// values passed to Dispatch. Session and preference state are owned
// elsewhere; the orchestrator receives snapshots in events and forwards
// preference writes to a PreferenceCommitter.
//
// Router parses client paths, SharedArticleView is the session-independent
// public article page, and Feed loads dashboard articles, discarding
// responses that a newer request has superseded.
package view
