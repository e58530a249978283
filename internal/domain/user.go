package domain

import "time"

// Role determines what a caller may do. Roles are fixed at registration;
// there is no role-change endpoint.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ValidRole reports whether the value is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the domain model for anyone who can sign in: ticket submitters
// and administrators alike.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the externally visible projection of a User. It never
// carries the password hash.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Public strips credential material from a user record.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
