// Package authz holds the identity carried by a session and the ownership
// checks applied before a resource is mutated.
package authz

import (
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/apperror"
)

// Identity is the authenticated caller as resolved from a session.
type Identity struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (i Identity) HasRole(role string) bool {
	return role != "" && i.Role == role
}

// RequireOwnerOrRole allows the caller when they own the resource or hold role.
// It must be evaluated against freshly loaded resource state.
func RequireOwnerOrRole(ownerID uint, id Identity, role string) error {
	if id.ID != 0 && ownerID == id.ID {
		return nil
	}
	if id.HasRole(role) {
		return nil
	}
	return apperror.Forbidden("you do not have permission to modify this resource")
}

// RequireOwner is RequireOwnerOrRole without any role bypass.
func RequireOwner(ownerID uint, id Identity) error {
	return RequireOwnerOrRole(ownerID, id, "")
}

// RequireAdmin is the admin bypass exposed as a standalone capability.
func RequireAdmin(ownerID uint, id Identity) error {
	return RequireOwnerOrRole(ownerID, id, entity.RoleAdmin)
}
