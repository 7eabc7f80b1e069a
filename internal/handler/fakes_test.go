package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/campusgrid/timetable-backend/internal/model"
	"github.com/campusgrid/timetable-backend/internal/schedule"
	"github.com/campusgrid/timetable-backend/internal/storage"
)

// entryStore keeps entries in a slice and owns the reference ids it knows
// about. It implements service.EntryStore and schedule.Writer.
type entryStore struct {
	mu      sync.Mutex
	entries []model.TimetableEntry
	refs    map[uuid.UUID]uuid.UUID // faculty/room/subject id -> department
}

func newEntryStore() *entryStore {
	return &entryStore{refs: map[uuid.UUID]uuid.UUID{}}
}

func (s *entryStore) own(dept uuid.UUID, ids ...uuid.UUID) {
	for _, id := range ids {
		s.refs[id] = dept
	}
}

func (s *entryStore) List(_ context.Context, deptID uuid.UUID, filter model.EntryFilter) ([]model.TimetableEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.TimetableEntry{}
	for _, e := range s.entries {
		if e.DepartmentID != deptID {
			continue
		}
		if filter.DayOfWeek != nil && e.DayOfWeek != *filter.DayOfWeek {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *entryStore) GetByID(_ context.Context, deptID, id uuid.UUID) (*model.TimetableEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id && e.DepartmentID == deptID {
			return &e, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *entryStore) Delete(_ context.Context, deptID, id uuid.UUID) (model.Weekday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id && e.DepartmentID == deptID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return e.DayOfWeek, nil
		}
	}
	return 0, model.ErrNotFound
}

func (s *entryStore) WithSlotLock(_ context.Context, _ uuid.UUID, _ model.Weekday, fn func(w schedule.Writer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

func (s *entryStore) overlap(slot model.Slot, exclude *uuid.UUID, match func(model.TimetableEntry) bool) *uuid.UUID {
	for _, e := range s.entries {
		if exclude != nil && e.ID == *exclude {
			continue
		}
		if e.DepartmentID == slot.DepartmentID && e.DayOfWeek == slot.DayOfWeek && match(e) &&
			schedule.Overlaps(e.StartTime, e.EndTime, slot.Start, slot.End) {
			id := e.ID
			return &id
		}
	}
	return nil
}

func (s *entryStore) FindRoomOverlap(_ context.Context, slot model.Slot, exclude *uuid.UUID) (*uuid.UUID, error) {
	return s.overlap(slot, exclude, func(e model.TimetableEntry) bool { return e.RoomID == slot.RoomID }), nil
}

func (s *entryStore) FindFacultyOverlap(_ context.Context, slot model.Slot, exclude *uuid.UUID) (*uuid.UUID, error) {
	return s.overlap(slot, exclude, func(e model.TimetableEntry) bool { return e.FacultyID == slot.FacultyID }), nil
}

func (s *entryStore) MissingReferences(_ context.Context, e *model.TimetableEntry) ([]string, error) {
	var missing []string
	for name, id := range map[string]uuid.UUID{"faculty": e.FacultyID, "room": e.RoomID, "subject": e.SubjectID} {
		if s.refs[id] != e.DepartmentID {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func (s *entryStore) Insert(_ context.Context, e *model.TimetableEntry) error {
	e.ID = uuid.New()
	s.entries = append(s.entries, *e)
	return nil
}

func (s *entryStore) Update(_ context.Context, e *model.TimetableEntry) error {
	for i := range s.entries {
		if s.entries[i].ID == e.ID {
			s.entries[i] = *e
			return nil
		}
	}
	return model.ErrNotFound
}

// roomStore is a RoomStore over a map with per-department name uniqueness.
type roomStore struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]model.Room
}

func (s *roomStore) List(_ context.Context, deptID uuid.UUID) ([]model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Room{}
	for _, r := range s.rooms {
		if r.DepartmentID == deptID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *roomStore) GetByID(_ context.Context, deptID, id uuid.UUID) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok || r.DepartmentID != deptID {
		return nil, model.ErrNotFound
	}
	return &r, nil
}

func (s *roomStore) Create(_ context.Context, r *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rooms == nil {
		s.rooms = map[uuid.UUID]model.Room{}
	}
	for _, existing := range s.rooms {
		if existing.DepartmentID == r.DepartmentID && existing.Name == r.Name {
			return &model.FieldError{Field: "name", Message: "room with this name already exists", Err: model.ErrDuplicateKey}
		}
	}
	r.ID = uuid.New()
	s.rooms[r.ID] = *r
	return nil
}

func (s *roomStore) Update(_ context.Context, r *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.rooms[r.ID]
	if !ok || existing.DepartmentID != r.DepartmentID {
		return model.ErrNotFound
	}
	s.rooms[r.ID] = *r
	return nil
}

func (s *roomStore) Delete(_ context.Context, deptID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok || r.DepartmentID != deptID {
		return model.ErrNotFound
	}
	delete(s.rooms, id)
	return nil
}

// documentStore is a DocumentStore over a slice.
type documentStore struct {
	docs []model.Document
}

func (s *documentStore) Create(_ context.Context, d *model.Document) error {
	d.ID = uuid.New()
	s.docs = append(s.docs, *d)
	return nil
}

func (s *documentStore) List(_ context.Context, deptID uuid.UUID) ([]model.Document, error) {
	out := []model.Document{}
	for _, d := range s.docs {
		if d.DepartmentID == deptID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *documentStore) GetByID(_ context.Context, deptID, id uuid.UUID) (*model.Document, error) {
	for _, d := range s.docs {
		if d.ID == id && d.DepartmentID == deptID {
			return &d, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *documentStore) Delete(_ context.Context, deptID, id uuid.UUID) (string, error) {
	for i, d := range s.docs {
		if d.ID == id && d.DepartmentID == deptID {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return d.ObjectKey, nil
		}
	}
	return "", model.ErrNotFound
}

// blobStore counts every remote call.
type blobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	calls   int
}

func (b *blobStore) Store(_ context.Context, body []byte, filename, folder string) (*storage.StoredObject, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.objects == nil {
		b.objects = map[string][]byte{}
	}
	key := folder + "/" + filename
	b.objects[key] = body
	return &storage.StoredObject{Key: key, URL: "https://cdn.test/" + key, Size: int64(len(body))}, nil
}

func (b *blobStore) Fetch(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	body, ok := b.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: no such key", model.ErrFetchFailed)
	}
	return body, nil
}

func (b *blobStore) Delete(_ context.Context, key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	_, ok := b.objects[key]
	delete(b.objects, key)
	return ok
}

func (b *blobStore) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// departmentStore hands out one id per code.
type departmentStore struct {
	mu    sync.Mutex
	byKey map[string]uuid.UUID
}

func (s *departmentStore) GetOrCreateByCode(_ context.Context, code, name string) (*model.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byKey == nil {
		s.byKey = map[string]uuid.UUID{}
	}
	id, ok := s.byKey[code]
	if !ok {
		id = uuid.New()
		s.byKey[code] = id
	}
	return &model.Department{ID: id, Code: code, Name: name}, nil
}

// minimalPDF writes a one-page PDF with a correct cross-reference table.
func minimalPDF() []byte {
	var buf bytes.Buffer
	var offsets []int

	buf.WriteString("%PDF-1.4\n")
	for _, body := range []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	} {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}
