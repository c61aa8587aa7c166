// Package services contains the server's business logic: accounts and
// sessions, the headline proxy, article sharing and stored preferences.
// Services depend on repository interfaces vended by a
// repomanager.RepositoryManager and never touch HTTP.
package services
