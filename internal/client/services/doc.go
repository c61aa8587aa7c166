// Package services holds the client's stateful core below the views:
//
//   - LocalStore: device-local preferences, reading counters and saved
//     articles over the metadata table.
//   - SessionController: the authentication state machine
//     (unknown, anonymous, authenticated) and its observers.
//   - Reconciler: local-first preference writes with a best-effort remote
//     mirror and the login-time reconciliation policy.
//
// Each component is the sole writer of its state; everything else receives
// snapshots.
package services
