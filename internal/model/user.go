package model

import "time"

type UserRole string

const (
	UserRoleAdmin        UserRole = "admin"
	UserRoleDentist      UserRole = "dentist"
	UserRoleHygienist    UserRole = "hygienist"
	UserRoleReceptionist UserRole = "receptionist"
	UserRoleStaff        UserRole = "staff"
)

// Valid reports whether the role belongs to the closed set enforced by
// the users table CHECK constraint.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleDentist, UserRoleHygienist, UserRoleReceptionist, UserRoleStaff:
		return true
	}
	return false
}

type User struct {
	Base
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	Email        string     `json:"email" db:"email"`
	Role         UserRole   `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=64"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role" binding:"omitempty,oneof=admin dentist hygienist receptionist staff"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Role      *string `json:"role" binding:"omitempty,oneof=admin dentist hygienist receptionist staff"`
}

type UserFilters struct {
	Role       UserRole
	ActiveOnly bool
}
