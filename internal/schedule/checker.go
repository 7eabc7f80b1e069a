// Package schedule decides whether a timetable entry may be placed in its slot.
package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusgrid/timetable-backend/internal/model"
)

// SlotFinder looks up persisted entries that overlap a slot. Implementations
// must run on the same transaction as the write that follows the check.
type SlotFinder interface {
	// FindRoomOverlap returns the id of an entry in the same department, day
	// and room whose interval overlaps the slot, or nil when there is none.
	FindRoomOverlap(ctx context.Context, slot model.Slot, exclude *uuid.UUID) (*uuid.UUID, error)
	// FindFacultyOverlap is FindRoomOverlap keyed on the faculty member.
	FindFacultyOverlap(ctx context.Context, slot model.Slot, exclude *uuid.UUID) (*uuid.UUID, error)
}

// Writer is the transactional handle an entry write runs on.
type Writer interface {
	SlotFinder
	// MissingReferences returns the names of the referenced records
	// ("faculty", "room", "subject") that do not exist in the entry's department.
	MissingReferences(ctx context.Context, e *model.TimetableEntry) ([]string, error)
	Insert(ctx context.Context, e *model.TimetableEntry) error
	Update(ctx context.Context, e *model.TimetableEntry) error
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Intervals that only touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd model.Clock) bool {
	return aStart < bEnd && aEnd > bStart
}

// Validate checks the candidate's interval and then its room and faculty
// availability, in that order. excludeID skips the entry being updated.
func Validate(ctx context.Context, finder SlotFinder, candidate *model.TimetableEntry, excludeID *uuid.UUID) error {
	if err := CheckEntry(candidate); err != nil {
		return err
	}

	slot := candidate.Slot()

	roomHit, err := finder.FindRoomOverlap(ctx, slot, excludeID)
	if err != nil {
		return fmt.Errorf("room overlap lookup: %w", err)
	}
	if roomHit != nil {
		return &model.ConflictError{Kind: model.RoomConflict, ConflictingID: *roomHit}
	}

	facultyHit, err := finder.FindFacultyOverlap(ctx, slot, excludeID)
	if err != nil {
		return fmt.Errorf("faculty overlap lookup: %w", err)
	}
	if facultyHit != nil {
		return &model.ConflictError{Kind: model.FacultyConflict, ConflictingID: *facultyHit}
	}
	return nil
}

// CheckEntry validates the fields of an entry that need no store lookups.
func CheckEntry(e *model.TimetableEntry) error {
	switch {
	case e == nil:
		return fmt.Errorf("%w: missing entry", model.ErrValidation)
	case e.DepartmentID == uuid.Nil:
		return model.NewFieldError("department", "is required")
	case !e.DayOfWeek.Valid():
		return model.NewFieldError("day_of_week", "must be between 0 (Monday) and 6 (Sunday)")
	case e.RoomID == uuid.Nil:
		return model.NewFieldError("room", "is required")
	case e.FacultyID == uuid.Nil:
		return model.NewFieldError("faculty", "is required")
	case e.StartTime >= e.EndTime:
		return &model.FieldError{Field: "end_time", Message: "End time must be after start time.", Err: model.ErrInvalidInterval}
	}
	return nil
}
