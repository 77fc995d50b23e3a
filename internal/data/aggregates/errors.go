package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/mthstanley/stockpot/internal/domain/aggregates"
)

// ValidationError tags caller input as invalid.
func ValidationError(msg string) error {
	return domainagg.NewError(domainagg.CodeValidation, "", msg, nil)
}

// ConflictError tags an error as conflict failure.
func ConflictError(msg string) error {
	return domainagg.NewError(domainagg.CodeConflict, "", msg, nil)
}

// NotFoundError tags a missing row with a caller-facing message.
func NotFoundError(msg string) error {
	return domainagg.NewError(domainagg.CodeNotFound, "", msg, nil)
}

// MapError maps infrastructure/domain failures into aggregate error codes.
// Aggregate errors pass through; an empty Op is filled with op.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		if strings.TrimSpace(aggErr.Op) != "" {
			return err
		}
		out := *aggErr
		out.Op = strings.TrimSpace(op)
		return &out
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainagg.Wrap(domainagg.CodeNotFound, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domainagg.Wrap(domainagg.CodeRetryable, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return domainagg.Wrap(domainagg.CodeConflict, op, err) // unique_violation
		case "23503":
			return domainagg.Wrap(domainagg.CodePreconditionFailed, op, err) // foreign_key_violation
		case "40001", "40P01", "55P03":
			return domainagg.Wrap(domainagg.CodeRetryable, op, err) // serialization/deadlock/lock_not_available
		}
	}

	// sqlite reports constraint failures only through the message text.
	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "unique constraint"):
		return domainagg.Wrap(domainagg.CodeConflict, op, err)
	case strings.Contains(msg, "foreign key constraint"):
		return domainagg.Wrap(domainagg.CodePreconditionFailed, op, err)
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "temporar"):
		return domainagg.Wrap(domainagg.CodeRetryable, op, err)
	default:
		return domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
}
