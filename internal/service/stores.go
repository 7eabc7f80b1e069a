package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/campusgrid/timetable-backend/internal/model"
	"github.com/campusgrid/timetable-backend/internal/schedule"
)

// Storage contracts the services depend on. The pgx repositories implement
// them in production and in-memory fakes stand in for them in tests.

type DepartmentStore interface {
	GetOrCreateByCode(ctx context.Context, code, name string) (*model.Department, error)
}

type FacultyStore interface {
	List(ctx context.Context, deptID uuid.UUID) ([]model.Faculty, error)
	GetByID(ctx context.Context, deptID, id uuid.UUID) (*model.Faculty, error)
	Create(ctx context.Context, f *model.Faculty) error
	Update(ctx context.Context, f *model.Faculty) error
	Delete(ctx context.Context, deptID, id uuid.UUID) error
}

type RoomStore interface {
	List(ctx context.Context, deptID uuid.UUID) ([]model.Room, error)
	GetByID(ctx context.Context, deptID, id uuid.UUID) (*model.Room, error)
	Create(ctx context.Context, r *model.Room) error
	Update(ctx context.Context, r *model.Room) error
	Delete(ctx context.Context, deptID, id uuid.UUID) error
}

type SubjectStore interface {
	List(ctx context.Context, deptID uuid.UUID) ([]model.Subject, error)
	GetByID(ctx context.Context, deptID, id uuid.UUID) (*model.Subject, error)
	Create(ctx context.Context, s *model.Subject) error
	Update(ctx context.Context, s *model.Subject) error
	Delete(ctx context.Context, deptID, id uuid.UUID) error
}

// EntryStore reads entries directly and writes them through WithSlotLock,
// which serializes writers of one department and day.
type EntryStore interface {
	List(ctx context.Context, deptID uuid.UUID, filter model.EntryFilter) ([]model.TimetableEntry, error)
	GetByID(ctx context.Context, deptID, id uuid.UUID) (*model.TimetableEntry, error)
	Delete(ctx context.Context, deptID, id uuid.UUID) (model.Weekday, error)
	WithSlotLock(ctx context.Context, deptID uuid.UUID, day model.Weekday, fn func(w schedule.Writer) error) error
}

type DocumentStore interface {
	Create(ctx context.Context, d *model.Document) error
	List(ctx context.Context, deptID uuid.UUID) ([]model.Document, error)
	GetByID(ctx context.Context, deptID, id uuid.UUID) (*model.Document, error)
	Delete(ctx context.Context, deptID, id uuid.UUID) (string, error)
}

// Publisher announces entry changes on a department's feed.
type Publisher interface {
	Publish(ctx context.Context, deptID uuid.UUID, event model.FeedEvent) error
}
