package model

import "time"

// Role enumerates the closed set of roles a user account may hold.
// Authorization decisions compare against these constants rather than
// free-form claim strings, so an unknown role value never passes a check.
type Role string

const (
	RoleUser  Role = "user"  // regular account: browse catalog, place orders
	RoleAdmin Role = "admin" // administrative account: mutate catalog, read reports
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User represents an application user record as stored in the `users`
// table. Each field corresponds to a column in the database. The json
// tags are omitted here because these structs are used internally by
// the repository layer; handlers define separate response types with
// appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – account role (user or admin).
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         Role      // users.role
	CreatedAt    time.Time // users.created_at
}
