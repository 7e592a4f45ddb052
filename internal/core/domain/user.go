package domain

import (
	"errors"
	"time"
)

// Role is the closed set of account roles. Values outside the set are
// rejected at the boundary, never stored.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleInventoryManager Role = "inventory-manager"
	RoleSupplier         Role = "supplier"
	RoleManager          Role = "manager"
	RoleFinance          Role = "finance"
	RoleMarketing        Role = "marketing"
	RoleEmployee         Role = "employee"
)

// staffRoles are the roles an explicit signup request may ask for.
// Admin accounts are never created through signup.
var staffRoles = map[Role]struct{}{
	RoleEmployee:  {},
	RoleFinance:   {},
	RoleManager:   {},
	RoleMarketing: {},
}

var allRoles = map[Role]struct{}{
	RoleAdmin:            {},
	RoleInventoryManager: {},
	RoleSupplier:         {},
	RoleManager:          {},
	RoleFinance:          {},
	RoleMarketing:        {},
	RoleEmployee:         {},
}

var ErrValidation = errors.New("invalid input")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrForbidden = errors.New("access forbidden")
var ErrRoleNotAllowed = errors.New("invalid role or unauthorized access")

// ParseRole validates a raw role string against the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := allRoles[r]; !ok {
		return "", ErrRoleNotAllowed
	}
	return r, nil
}

// IsStaff reports whether the role may be requested at signup time.
func (r Role) IsStaff() bool {
	_, ok := staffRoles[r]
	return ok
}

// User models an account in the system. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	DateOfBirth  string    `json:"date_of_birth,omitempty"`
	Nationality  string    `json:"nationality,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
