package domain

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleAgent   Role = "agent"
)

// Permissions is agent ⊂ manager ⊂ admin.
var rolePermissions = map[Role][]string{
	RoleAgent: {
		"reservations:read", "reservations:write",
		"clients:read", "clients:write",
		"vehicles:read", "contracts:read", "quotes:read", "payments:read",
	},
	RoleManager: {
		"contracts:write", "quotes:write", "payments:write",
		"maintenances:read", "maintenances:write", "vehicles:write",
	},
	RoleAdmin: {
		"agencies:write", "settings:write", "users:write",
	},
}

// PermissionsFor returns the flattened permission list for a role.
func PermissionsFor(role Role) []string {
	var perms []string
	switch role {
	case RoleAdmin:
		perms = append(perms, rolePermissions[RoleAdmin]...)
		fallthrough
	case RoleManager:
		perms = append(perms, rolePermissions[RoleManager]...)
		fallthrough
	case RoleAgent:
		perms = append(perms, rolePermissions[RoleAgent]...)
	}
	// Everyone authenticated can read agencies and settings.
	perms = append(perms, "agencies:read", "settings:read")
	return perms
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}
