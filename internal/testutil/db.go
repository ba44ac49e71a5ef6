// Package testutil opens throwaway SQLite databases for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/bootstrap"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated database in a temp dir with foreign keys enforced.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// One connection keeps the pragma and avoids SQLITE_BUSY between writers.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user whose password is "secret1".
func CreateUser(t *testing.T, db *gorm.DB, username, email, role string) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &entity.User{Username: username, Email: email, PasswordHash: string(hash), Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func CreateJoke(t *testing.T, db *gorm.DB, userID uint, title, content string) *entity.Joke {
	t.Helper()

	joke := &entity.Joke{UserID: userID, Title: title, Content: content}
	if err := db.Create(joke).Error; err != nil {
		t.Fatalf("create joke: %v", err)
	}
	return joke
}
