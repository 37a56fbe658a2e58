package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID            uuid.UUID `db:"id"             json:"id"`
	Name          string    `db:"name"           json:"name"`
	Email         string    `db:"email"          json:"email"`
	PasswordHash  string    `db:"password_hash"  json:"-"`
	Roles         []string  `db:"roles"          json:"roles"`
	IsAdmin       bool      `db:"is_admin"       json:"isAdmin"`
	FilesUploaded int       `db:"files_uploaded" json:"filesUploaded"`
	CreatedAt     time.Time `db:"created_at"     json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updatedAt"`
}

// IsAdministrator mirrors the access rule used by the admin surface: either
// the roles list carries "admin" or the legacy is_admin flag is set.
func (u *User) IsAdministrator() bool {
	return u.IsAdmin || slices.Contains(u.Roles, RoleAdmin)
}
