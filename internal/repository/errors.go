// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"

	"chirp/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Constraint violations are the idempotency and integrity mechanism: writes
// are attempted directly and the database verdict is translated here, rather
// than checked ahead of time. TranslateError on the gorm config covers most
// drivers; the SQLSTATE fallback covers raw pgx errors.
func translateConstraintError(err error, duplicateMsg, referenceMsg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewDuplicateInteractionError(duplicateMsg)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &models.AppError{Code: models.CodeReferenceNotFound, Message: referenceMsg}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return models.NewDuplicateInteractionError(duplicateMsg)
		case "23503":
			return &models.AppError{Code: models.CodeReferenceNotFound, Message: referenceMsg}
		}
	}

	return models.NewInternalError(err)
}
