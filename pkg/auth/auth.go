// Package auth implements the demo login gate and its session store.
// Credentials are the fixed demo accounts; there is no user database.
package auth

import (
	"errors"
	"time"
)

// Role separates the back office from the customer site.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Session is the authenticated state kept server-side and keyed by the
// session cookie.
type Session struct {
	Role  Role      `json:"role"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	At    time.Time `json:"at"`
}

var (
	// ErrInvalidCredentials indicates the email/password pair does not
	// match the requested role's account.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoSession indicates the request carries no live session.
	ErrNoSession = errors.New("no session")
)

// account is one fixed demo login.
type account struct {
	email    string
	password string
	name     string
}

var accounts = map[Role]account{
	RoleAdmin: {email: "admin@app.com", password: "admin123", name: "Admin"},
	RoleUser:  {email: "user@app.com", password: "user123", name: "User"},
}

// Login checks the demo credentials for the requested role and returns
// a fresh session on success.
func Login(role Role, email, password string) (Session, error) {
	acct, ok := accounts[role]
	if !ok || acct.email != email || acct.password != password {
		return Session{}, ErrInvalidCredentials
	}
	return Session{Role: role, Email: acct.email, Name: acct.name, At: time.Now()}, nil
}
