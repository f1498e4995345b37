package user

import (
	"time"

	"propmatch/internal/common"
)

type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleManager       Role = "manager"
	RoleStudent       Role = "student"
	RoleCompany       Role = "company"
)

// Privileged reports whether the role bypasses proposal moderation.
func (r Role) Privileged() bool {
	return r == RoleAdministrator || r == RoleManager
}

type User struct {
	ID                 common.UUID `json:"id"`
	Name               string      `json:"name"`
	InstitutionalEmail string      `json:"institutional_email"`
	PersonalEmail      string      `json:"personal_email,omitempty"`
	PasswordHash       string      `json:"-"`
	Role               Role        `json:"role"`
	Active             bool        `json:"active"`
	CreatedAt          time.Time   `json:"created_at"`
}
