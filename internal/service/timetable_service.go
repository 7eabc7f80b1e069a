package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/model"
	"github.com/campusgrid/timetable-backend/internal/schedule"
)

// TimetableService manages timetable entries. Every create and update passes
// the conflict check on the same transaction that writes the entry.
type TimetableService struct {
	store     EntryStore
	publisher Publisher
	log       zerolog.Logger
}

// NewTimetableService creates a new TimetableService. publisher may be nil.
func NewTimetableService(store EntryStore, publisher Publisher, log zerolog.Logger) *TimetableService {
	return &TimetableService{
		store:     store,
		publisher: publisher,
		log:       log.With().Str("component", "timetable_service").Logger(),
	}
}

// List returns the department's entries matching filter.
func (s *TimetableService) List(ctx context.Context, scope *model.Scope, filter model.EntryFilter) ([]model.TimetableEntry, error) {
	if !scope.HasDepartment() {
		return []model.TimetableEntry{}, nil
	}
	return s.store.List(ctx, *scope.DepartmentID, filter)
}

// GetByID retrieves an entry of the caller's department.
func (s *TimetableService) GetByID(ctx context.Context, scope *model.Scope, id uuid.UUID) (*model.TimetableEntry, error) {
	if !scope.HasDepartment() {
		return nil, model.ErrNotFound
	}
	return s.store.GetByID(ctx, *scope.DepartmentID, id)
}

// Create schedules a new entry in the caller's department.
func (s *TimetableService) Create(ctx context.Context, scope *model.Scope, e *model.TimetableEntry) (*model.TimetableEntry, error) {
	deptID, err := scope.Department()
	if err != nil {
		return nil, err
	}
	e.ID = uuid.Nil
	e.DepartmentID = deptID

	if err := schedule.CheckEntry(e); err != nil {
		return nil, err
	}

	err = s.store.WithSlotLock(ctx, deptID, e.DayOfWeek, func(w schedule.Writer) error {
		if err := s.place(ctx, w, e, nil); err != nil {
			return err
		}
		return w.Insert(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("entry_id", e.ID.String()).
		Str("department_id", deptID.String()).
		Str("day", e.DayOfWeek.String()).
		Msg("Timetable entry created")

	s.publish(ctx, deptID, model.FeedEntryCreated, e.ID, e.DayOfWeek)
	return s.reload(ctx, e), nil
}

// Update replaces an entry. The entry does not conflict with its own
// previous placement.
func (s *TimetableService) Update(ctx context.Context, scope *model.Scope, id uuid.UUID, e *model.TimetableEntry) (*model.TimetableEntry, error) {
	deptID, err := scope.Department()
	if err != nil {
		return nil, err
	}
	e.ID = id
	e.DepartmentID = deptID

	if err := schedule.CheckEntry(e); err != nil {
		return nil, err
	}
	if _, err := s.store.GetByID(ctx, deptID, id); err != nil {
		return nil, err
	}

	err = s.store.WithSlotLock(ctx, deptID, e.DayOfWeek, func(w schedule.Writer) error {
		if err := s.place(ctx, w, e, &id); err != nil {
			return err
		}
		return w.Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, deptID, model.FeedEntryUpdated, e.ID, e.DayOfWeek)
	return s.reload(ctx, e), nil
}

// Delete removes an entry of the caller's department.
func (s *TimetableService) Delete(ctx context.Context, scope *model.Scope, id uuid.UUID) error {
	deptID, err := scope.Department()
	if err != nil {
		return err
	}
	day, err := s.store.Delete(ctx, deptID, id)
	if err != nil {
		return err
	}
	s.publish(ctx, deptID, model.FeedEntryDeleted, id, day)
	return nil
}

// place verifies the references and the slot of e under the slot lock.
func (s *TimetableService) place(ctx context.Context, w schedule.Writer, e *model.TimetableEntry, exclude *uuid.UUID) error {
	missing, err := w.MissingReferences(ctx, e)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		fields := make(model.FieldErrors, len(missing))
		for _, name := range missing {
			fields[name] = "does not exist in this department"
		}
		return fields
	}
	return schedule.Validate(ctx, w, e, exclude)
}

// reload fetches the stored entry with its referenced records. The write has
// already committed, so a failed read only costs the nested details.
func (s *TimetableService) reload(ctx context.Context, e *model.TimetableEntry) *model.TimetableEntry {
	full, err := s.store.GetByID(ctx, e.DepartmentID, e.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("entry_id", e.ID.String()).Msg("Failed to reload entry after write")
		return e
	}
	return full
}

func (s *TimetableService) publish(ctx context.Context, deptID uuid.UUID, kind model.FeedEventType, entryID uuid.UUID, day model.Weekday) {
	if s.publisher == nil {
		return
	}
	event := model.FeedEvent{Type: kind, EntryID: entryID, DayOfWeek: day, At: time.Now().UTC()}
	if err := s.publisher.Publish(ctx, deptID, event); err != nil {
		s.log.Warn().Err(err).Str("entry_id", entryID.String()).Msg("Failed to publish timetable change")
	}
}
