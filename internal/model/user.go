// Package model defines domain entities for the application.
package model

// User is an account identified by a unique email. It owns zero or more posts.
type User struct {
	ID    int64   `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}
