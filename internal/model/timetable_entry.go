package model

import (
	"time"

	"github.com/google/uuid"
)

// TimetableEntry is one weekly recurring class: a subject taught by a faculty
// member in a room on a given day between StartTime (inclusive) and EndTime (exclusive).
type TimetableEntry struct {
	ID           uuid.UUID `json:"id"`
	DepartmentID uuid.UUID `json:"department"`
	DayOfWeek    Weekday   `json:"day_of_week"`
	StartTime    Clock     `json:"start_time"`
	EndTime      Clock     `json:"end_time"`
	FacultyID    uuid.UUID `json:"faculty"`
	SubjectID    uuid.UUID `json:"subject"`
	RoomID       uuid.UUID `json:"room"`
	Semester     int       `json:"semester"`
	Section      string    `json:"section"`
	AcademicYear int       `json:"academic_year"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Populated on reads only.
	FacultyDetails *Faculty `json:"faculty_details,omitempty"`
	SubjectDetails *Subject `json:"subject_details,omitempty"`
	RoomDetails    *Room    `json:"room_details,omitempty"`
}

// Slot returns the (room, faculty, day, interval) the entry occupies.
func (e *TimetableEntry) Slot() Slot {
	return Slot{
		DepartmentID: e.DepartmentID,
		DayOfWeek:    e.DayOfWeek,
		RoomID:       e.RoomID,
		FacultyID:    e.FacultyID,
		Start:        e.StartTime,
		End:          e.EndTime,
	}
}

// Slot is the part of an entry the conflict checker looks at.
type Slot struct {
	DepartmentID uuid.UUID
	DayOfWeek    Weekday
	RoomID       uuid.UUID
	FacultyID    uuid.UUID
	Start        Clock
	End          Clock
}

// EntryRequest is the payload for creating or replacing a timetable entry.
type EntryRequest struct {
	DayOfWeek    *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime    string `json:"start_time" binding:"required,clock"`
	EndTime      string `json:"end_time" binding:"required,clock"`
	Faculty      string `json:"faculty" binding:"required,uuid"`
	Subject      string `json:"subject" binding:"required,uuid"`
	Room         string `json:"room" binding:"required,uuid"`
	Semester     int    `json:"semester" binding:"required,min=1,max=20"`
	Section      string `json:"section" binding:"required,min=1,max=10"`
	AcademicYear int    `json:"academic_year" binding:"required,min=1900,max=9999"`
}

// ToEntry converts a validated request into an entry. Binding has already
// checked the formats, so parse errors here are reported as field errors.
func (r *EntryRequest) ToEntry() (*TimetableEntry, error) {
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return nil, NewFieldError("start_time", err.Error())
	}
	end, err := ParseClock(r.EndTime)
	if err != nil {
		return nil, NewFieldError("end_time", err.Error())
	}
	ids := make(map[string]uuid.UUID, 3)
	for field, raw := range map[string]string{"faculty": r.Faculty, "subject": r.Subject, "room": r.Room} {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, NewFieldError(field, "must be a valid UUID")
		}
		ids[field] = id
	}
	day := Weekday(-1)
	if r.DayOfWeek != nil {
		day = Weekday(*r.DayOfWeek)
	}
	return &TimetableEntry{
		DayOfWeek:    day,
		StartTime:    start,
		EndTime:      end,
		FacultyID:    ids["faculty"],
		SubjectID:    ids["subject"],
		RoomID:       ids["room"],
		Semester:     r.Semester,
		Section:      r.Section,
		AcademicYear: r.AcademicYear,
	}, nil
}

// EntryFilter narrows an entry listing. Nil fields are ignored.
type EntryFilter struct {
	DayOfWeek    *Weekday
	RoomID       *uuid.UUID
	FacultyID    *uuid.UUID
	Semester     *int
	Section      *string
	AcademicYear *int
}
