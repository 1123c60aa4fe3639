package model

import "time"

// Roles a user can hold. Catalog mutations require RoleAdmin; everything
// else is available to RoleUser as well.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application user record as stored in the `users`
// table. Emails are normalized to lower case before insert so uniqueness
// is case-insensitive. The PasswordHash field carries the bcrypt hash and
// must never be serialized; handlers build explicit summary DTOs for
// responses and the json tag here is a second line of defense.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique, lower-cased email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – "user" or "admin".
//  Interests    – interest tags from the user_interests table, used by the
//                 recommendation selector for tag intersection.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    `json:"id"`    // users.id
	Name         string    `json:"name"`  // users.name
	Email        string    `json:"email"` // users.email
	PasswordHash string    `json:"-"`     // users.password_hash (never exposed)
	Role         string    `json:"role"`  // users.role
	Interests    []string  `json:"interests"`
	CreatedAt    time.Time `json:"created_at"` // users.created_at
}

// ValidRole reports whether a client-supplied role string is one of the
// accepted role values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
