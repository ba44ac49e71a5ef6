package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options configures the Postgres connection and its pool.
type Options struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

func (o Options) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		o.Host,
		o.User,
		o.Password,
		o.Name,
		o.Port,
		valueOrDefault(o.SSLMode, "disable"),
	)
}

// Connect opens the Postgres pool. Driver errors are translated by gorm so
// unique and foreign key violations surface as gorm sentinels.
func Connect(opts Options, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(opts.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Configure(db, opts); err != nil {
		return nil, err
	}

	log.Info().
		Str("host", opts.Host).
		Str("database", opts.Name).
		Int("max_open", opts.MaxOpen).
		Msg("database connected")

	return db, nil
}

// Configure applies pool limits to an open gorm handle.
func Configure(db *gorm.DB, opts Options) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	if opts.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpen)
	}
	if opts.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdle)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	return nil
}

func valueOrDefault(val, fallback string) string {
	if val != "" {
		return val
	}
	return fallback
}
