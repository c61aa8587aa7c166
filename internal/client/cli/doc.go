// Package cli is the interactive NewsDigest terminal client.
//
// It wires configuration, the local database, the backend gateway and the
// client core (session, preferences, view orchestration) behind a small
// read-eval-print loop. The REPL is presentation only: every command turns
// into a call on a service or an event for the view orchestrator, and the
// resulting view state decides what is printed.
//
// Startup loads local preferences and checks the server session in
// parallel; nothing behind the login is shown until the session check has
// finished. A path given with -r (for example /shared/<id>) opens the
// public shared-article page without signing in.
//
// The loop is started with App.Run, which blocks until the user exits.
package cli
