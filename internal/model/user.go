// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account. The email is the unique identity
// key used for login; PasswordHash holds the argon2id digest, never the
// plaintext credential.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile bundles a user together with the posts they own.
// This is the expanded view rendered on /profile.
type Profile struct {
	User  *User   `json:"user"`
	Posts []*Post `json:"posts"`
}
