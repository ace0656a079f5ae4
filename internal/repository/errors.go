package repository

import (
	"errors"
	"fmt"
	"strings"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes for integrity violations
const (
	pgUniqueViolation     = "23505"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
)

// translateError maps driver and gorm errors onto the store's error
// taxonomy. Errors it does not recognise pass through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domainRepo.ErrNotFound) || errors.Is(err, domainRepo.ErrConstraintViolation) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainRepo.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", domainRepo.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrCheckConstraintViolated),
		errors.Is(err, entity.ErrInvalidEnum):
		return fmt.Errorf("%w: %v", domainRepo.ErrConstraintViolation, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgNotNullViolation, pgCheckViolation:
			return fmt.Errorf("%w: %s", domainRepo.ErrConstraintViolation, pgErr.Message)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", domainRepo.ErrNotFound, pgErr.Message)
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %s", domainRepo.ErrNotFound, msg)
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "NOT NULL constraint failed"),
		strings.Contains(msg, "CHECK constraint failed"):
		return fmt.Errorf("%w: %s", domainRepo.ErrConstraintViolation, msg)
	}

	return err
}
