package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/timetable-backend/internal/database"
	"github.com/campusgrid/timetable-backend/internal/model"
	"github.com/campusgrid/timetable-backend/internal/schedule"
)

// TimetableRepository handles timetable entry data access.
type TimetableRepository struct {
	pool *pgxpool.Pool
}

// NewTimetableRepository creates a new TimetableRepository.
func NewTimetableRepository(pool *pgxpool.Pool) *TimetableRepository {
	return &TimetableRepository{pool: pool}
}

// entrySelect reads entries together with the records they reference.
const entrySelect = `
	SELECT e.id, e.department_id, e.day_of_week, e.start_time, e.end_time,
	       e.faculty_id, e.subject_id, e.room_id, e.semester, e.section, e.academic_year,
	       e.created_at, e.updated_at,
	       f.id, f.department_id, f.name, f.email, f.designation, f.created_at, f.updated_at,
	       s.id, s.department_id, s.name, s.code, s.credits, s.created_at, s.updated_at,
	       r.id, r.department_id, r.name, r.capacity, r.room_type, r.created_at, r.updated_at
	FROM timetable_entries e
	JOIN faculty f ON f.id = e.faculty_id
	JOIN subjects s ON s.id = e.subject_id
	JOIN rooms r ON r.id = e.room_id`

func scanEntry(row pgx.Row) (*model.TimetableEntry, error) {
	var (
		e          model.TimetableEntry
		f          model.Faculty
		s          model.Subject
		rm         model.Room
		start, end pgtype.Time
	)
	err := row.Scan(
		&e.ID, &e.DepartmentID, &e.DayOfWeek, &start, &end,
		&e.FacultyID, &e.SubjectID, &e.RoomID, &e.Semester, &e.Section, &e.AcademicYear,
		&e.CreatedAt, &e.UpdatedAt,
		&f.ID, &f.DepartmentID, &f.Name, &f.Email, &f.Designation, &f.CreatedAt, &f.UpdatedAt,
		&s.ID, &s.DepartmentID, &s.Name, &s.Code, &s.Credits, &s.CreatedAt, &s.UpdatedAt,
		&rm.ID, &rm.DepartmentID, &rm.Name, &rm.Capacity, &rm.Type, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.StartTime = model.ClockFromMicros(start.Microseconds)
	e.EndTime = model.ClockFromMicros(end.Microseconds)
	e.FacultyDetails = &f
	e.SubjectDetails = &s
	e.RoomDetails = &rm
	return &e, nil
}

// List returns the department's entries ordered by day, start time and room.
func (r *TimetableRepository) List(ctx context.Context, deptID uuid.UUID, filter model.EntryFilter) ([]model.TimetableEntry, error) {
	where := []string{"e.department_id = $1"}
	args := []any{deptID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.DayOfWeek != nil {
		add("e.day_of_week = $%d", *filter.DayOfWeek)
	}
	if filter.RoomID != nil {
		add("e.room_id = $%d", *filter.RoomID)
	}
	if filter.FacultyID != nil {
		add("e.faculty_id = $%d", *filter.FacultyID)
	}
	if filter.Semester != nil {
		add("e.semester = $%d", *filter.Semester)
	}
	if filter.Section != nil {
		add("e.section = $%d", *filter.Section)
	}
	if filter.AcademicYear != nil {
		add("e.academic_year = $%d", *filter.AcademicYear)
	}

	query := entrySelect + ` WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY e.day_of_week, e.start_time, r.name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.TimetableEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// GetByID retrieves an entry of the department with its referenced records.
func (r *TimetableRepository) GetByID(ctx context.Context, deptID, id uuid.UUID) (*model.TimetableEntry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx, entrySelect+` WHERE e.department_id = $1 AND e.id = $2`, deptID, id))
	if err != nil {
		return nil, mapError(err)
	}
	return e, nil
}

// Delete removes an entry and returns the day it was scheduled on.
func (r *TimetableRepository) Delete(ctx context.Context, deptID, id uuid.UUID) (model.Weekday, error) {
	var day model.Weekday
	err := r.pool.QueryRow(ctx,
		`DELETE FROM timetable_entries WHERE department_id = $1 AND id = $2 RETURNING day_of_week`,
		deptID, id,
	).Scan(&day)
	if err != nil {
		return 0, mapError(err)
	}
	return day, nil
}

// WithSlotLock runs fn in a transaction holding the advisory lock for the
// department's day. Writers of the same (department, day) are serialized, so
// a conflict check made through the Writer stays valid until commit.
func (r *TimetableRepository) WithSlotLock(ctx context.Context, deptID uuid.UUID, day model.Weekday, fn func(w schedule.Writer) error) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		key := fmt.Sprintf("timetable:%s:%d", deptID, day)
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
			return fmt.Errorf("acquire slot lock: %w", err)
		}
		return fn(&txWriter{q: tx})
	})
}

// txWriter implements schedule.Writer on a single transaction.
type txWriter struct {
	q querier
}

const overlapQuery = `
	SELECT id FROM timetable_entries
	WHERE department_id = $1 AND day_of_week = $2 AND %s = $3
	  AND start_time < $4 AND end_time > $5
	  AND ($6::uuid IS NULL OR id <> $6::uuid)
	ORDER BY start_time
	LIMIT 1`

func (w *txWriter) findOverlap(ctx context.Context, column string, key uuid.UUID, slot model.Slot, exclude *uuid.UUID) (*uuid.UUID, error) {
	var id uuid.UUID
	err := w.q.QueryRow(ctx, fmt.Sprintf(overlapQuery, column),
		slot.DepartmentID, slot.DayOfWeek, key, clockParam(slot.End), clockParam(slot.Start), exclude,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (w *txWriter) FindRoomOverlap(ctx context.Context, slot model.Slot, exclude *uuid.UUID) (*uuid.UUID, error) {
	return w.findOverlap(ctx, "room_id", slot.RoomID, slot, exclude)
}

func (w *txWriter) FindFacultyOverlap(ctx context.Context, slot model.Slot, exclude *uuid.UUID) (*uuid.UUID, error) {
	return w.findOverlap(ctx, "faculty_id", slot.FacultyID, slot, exclude)
}

func (w *txWriter) MissingReferences(ctx context.Context, e *model.TimetableEntry) ([]string, error) {
	var faculty, room, subject bool
	err := w.q.QueryRow(ctx,
		`SELECT
		   EXISTS (SELECT 1 FROM faculty WHERE id = $2 AND department_id = $1),
		   EXISTS (SELECT 1 FROM rooms WHERE id = $3 AND department_id = $1),
		   EXISTS (SELECT 1 FROM subjects WHERE id = $4 AND department_id = $1)`,
		e.DepartmentID, e.FacultyID, e.RoomID, e.SubjectID,
	).Scan(&faculty, &room, &subject)
	if err != nil {
		return nil, err
	}

	var missing []string
	if !faculty {
		missing = append(missing, "faculty")
	}
	if !room {
		missing = append(missing, "room")
	}
	if !subject {
		missing = append(missing, "subject")
	}
	return missing, nil
}

func (w *txWriter) Insert(ctx context.Context, e *model.TimetableEntry) error {
	err := w.q.QueryRow(ctx,
		`INSERT INTO timetable_entries
		   (department_id, day_of_week, start_time, end_time, faculty_id, subject_id, room_id,
		    semester, section, academic_year)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		e.DepartmentID, e.DayOfWeek, clockParam(e.StartTime), clockParam(e.EndTime),
		e.FacultyID, e.SubjectID, e.RoomID, e.Semester, e.Section, e.AcademicYear,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return mapError(err)
}

func (w *txWriter) Update(ctx context.Context, e *model.TimetableEntry) error {
	err := w.q.QueryRow(ctx,
		`UPDATE timetable_entries
		 SET day_of_week = $1, start_time = $2, end_time = $3, faculty_id = $4, subject_id = $5,
		     room_id = $6, semester = $7, section = $8, academic_year = $9, updated_at = NOW()
		 WHERE department_id = $10 AND id = $11
		 RETURNING created_at, updated_at`,
		e.DayOfWeek, clockParam(e.StartTime), clockParam(e.EndTime), e.FacultyID, e.SubjectID,
		e.RoomID, e.Semester, e.Section, e.AcademicYear, e.DepartmentID, e.ID,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	return mapError(err)
}
