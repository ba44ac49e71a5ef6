package authz

import (
	"errors"
	"testing"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/apperror"
)

func TestRequireOwnerOrRole(t *testing.T) {
	alice := Identity{ID: 1, Role: entity.RoleUser}
	bob := Identity{ID: 2, Role: entity.RoleUser}
	admin := Identity{ID: 3, Role: entity.RoleAdmin}

	cases := []struct {
		name    string
		owner   uint
		id      Identity
		role    string
		allowed bool
	}{
		{"owner", 1, alice, entity.RoleAdmin, true},
		{"other user", 1, bob, entity.RoleAdmin, false},
		{"admin bypass", 1, admin, entity.RoleAdmin, true},
		{"admin without bypass role", 1, admin, "", false},
		{"anonymous never owns", 0, Identity{}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := RequireOwnerOrRole(tc.owner, tc.id, tc.role)
			if tc.allowed && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tc.allowed && !errors.Is(err, apperror.ErrForbidden) {
				t.Fatalf("expected forbidden, got %v", err)
			}
		})
	}
}

func TestRequireOwnerHasNoBypass(t *testing.T) {
	admin := Identity{ID: 9, Role: entity.RoleAdmin}
	if err := RequireOwner(1, admin); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("RequireOwner() = %v, want forbidden", err)
	}
	if err := RequireAdmin(1, admin); err != nil {
		t.Fatalf("RequireAdmin() = %v, want allow", err)
	}
}
