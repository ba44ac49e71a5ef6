package bootstrap

import (
	"errors"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Session{},
		&entity.Joke{},
		&entity.Comment{},
		&entity.Like{},
	)
}

// SeedAdminUser creates the admin account if no user holds the email yet.
func SeedAdminUser(db *gorm.DB, email, password string, cost int, log zerolog.Logger) error {
	if email == "" || password == "" {
		return errors.New("admin email and password are required")
	}

	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Debug().Str("email", email).Msg("admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}

	adminUser := entity.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: string(hashedPasswordBytes),
		Role:         entity.RoleAdmin,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Info().Str("email", email).Msg("admin user seeded")
	return nil
}
