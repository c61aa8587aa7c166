// Package models defines the server's stored records.
package models

import "time"

// User is an account. Salt and Verifier hold the argon2 password verifier;
// the password itself is never stored.
type User struct {
	ID        string
	Email     string
	Name      string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}

// Identity is the public part of a user, as sent to clients and carried in
// the session cookie.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name}
}
