package bootstrap_test

import (
	"testing"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/bootstrap"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/testutil"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedAdminUserIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	log := zerolog.Nop()

	for i := 0; i < 2; i++ {
		if err := bootstrap.SeedAdminUser(db, "admin@jokes.test", "adminpass", bcrypt.MinCost, log); err != nil {
			t.Fatalf("SeedAdminUser() run %d error = %v", i, err)
		}
	}

	var users []entity.User
	if err := db.Find(&users).Error; err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 {
		t.Fatalf("expected one admin, got %d users", len(users))
	}
	if users[0].Role != entity.RoleAdmin {
		t.Fatalf("role = %q", users[0].Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(users[0].PasswordHash), []byte("adminpass")) != nil {
		t.Fatal("stored hash does not match password")
	}
}

func TestSeedAdminUserRequiresCredentials(t *testing.T) {
	db := testutil.NewDB(t)
	if err := bootstrap.SeedAdminUser(db, "", "", bcrypt.MinCost, zerolog.Nop()); err == nil {
		t.Fatal("expected error without credentials")
	}
}
