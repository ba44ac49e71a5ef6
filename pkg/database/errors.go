package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// IsTransient reports whether err comes from the connection layer rather than
// from the query itself: pool wait deadlines, refused dials, dropped
// connections and Postgres class 08 / 57P0x errors.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08":
			return true
		case pgErr.Code == "57P01", pgErr.Code == "57P02", pgErr.Code == "57P03":
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// TranslateError converts a store error into the application taxonomy.
// notFound is returned for gorm.ErrRecordNotFound; nil leaves it as is.
func TranslateError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if notFound != nil {
			return notFound
		}
		return apperror.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Conflict("resource already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperror.NotFound("referenced resource not found")
	case IsTransient(err):
		return apperror.Transient(err)
	}
	return err
}
