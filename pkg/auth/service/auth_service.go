package service

import "github.com/lcorrigan704/client-management-system/entities"

type AuthService interface {
	// Login verifies credentials and opens a session, returning the
	// opaque session token handed to the client.
	Login(email, password string) (string, *entities.User, error)
	// Logout revokes the session behind the token. Unknown tokens are a
	// no-op.
	Logout(token string) error
	// Authenticate resolves a session token to its active user.
	Authenticate(token string) (*entities.User, error)
	// SeedAdmin ensures an admin account exists for the given
	// credentials. Existing accounts are left untouched.
	SeedAdmin(email, password string) error
	SearchUsers(query string) ([]entities.User, error)
}
