package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/campusgrid/timetable-backend/internal/model"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres error codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgExclusionViolation  = "23P01"
)

// uniqueFields maps unique constraints to the request field they guard.
var uniqueFields = map[string]string{
	"faculty_email_key":            "email",
	"rooms_department_name_key":    "name",
	"subjects_department_code_key": "code",
	"departments_code_key":         "code",
}

var uniqueMessages = map[string]string{
	"faculty_email_key":            "A faculty member with this email already exists.",
	"rooms_department_name_key":    "A room with this name already exists in this department.",
	"subjects_department_code_key": "A subject with this code already exists in this department.",
}

// mapError converts pgx and Postgres errors into model errors. Unknown
// errors are returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		field, ok := uniqueFields[pgErr.ConstraintName]
		if !ok {
			field = "detail"
		}
		msg, ok := uniqueMessages[pgErr.ConstraintName]
		if !ok {
			msg = "This value already exists."
		}
		return &model.FieldError{Field: field, Message: msg, Err: model.ErrDuplicateKey}
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s", model.ErrNotFound, pgErr.ConstraintName)
	case pgExclusionViolation:
		switch pgErr.ConstraintName {
		case "timetable_entries_room_overlap":
			return &model.ConflictError{Kind: model.RoomConflict}
		case "timetable_entries_faculty_overlap":
			return &model.ConflictError{Kind: model.FacultyConflict}
		}
	case pgCheckViolation:
		if pgErr.ConstraintName == "timetable_entries_interval_check" {
			return &model.FieldError{Field: "end_time", Message: "End time must be after start time.", Err: model.ErrInvalidInterval}
		}
		return fmt.Errorf("%w: %s", model.ErrValidation, pgErr.ConstraintName)
	}
	return err
}

func clockParam(c model.Clock) pgtype.Time {
	return pgtype.Time{Microseconds: c.Micros(), Valid: true}
}
