package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/campusgrid/timetable-backend/internal/model"
	"github.com/campusgrid/timetable-backend/internal/schedule"
	"github.com/campusgrid/timetable-backend/internal/storage"
)

// memEntryStore is an EntryStore over maps. WithSlotLock holds a single
// mutex for the whole callback, which is stricter than the per-day advisory
// lock but gives the same guarantee to writers of one slot.
type memEntryStore struct {
	mu       sync.Mutex
	entries  map[uuid.UUID]model.TimetableEntry
	faculty  map[uuid.UUID]uuid.UUID // id -> department
	rooms    map[uuid.UUID]uuid.UUID
	subjects map[uuid.UUID]uuid.UUID
	locks    int
}

func newMemEntryStore() *memEntryStore {
	return &memEntryStore{
		entries:  map[uuid.UUID]model.TimetableEntry{},
		faculty:  map[uuid.UUID]uuid.UUID{},
		rooms:    map[uuid.UUID]uuid.UUID{},
		subjects: map[uuid.UUID]uuid.UUID{},
	}
}

func (s *memEntryStore) addRefs(dept uuid.UUID, faculty, rooms, subjects []uuid.UUID) {
	for _, id := range faculty {
		s.faculty[id] = dept
	}
	for _, id := range rooms {
		s.rooms[id] = dept
	}
	for _, id := range subjects {
		s.subjects[id] = dept
	}
}

func (s *memEntryStore) List(_ context.Context, deptID uuid.UUID, filter model.EntryFilter) ([]model.TimetableEntry, error) {
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
		if filter.RoomID != nil && e.RoomID != *filter.RoomID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *memEntryStore) GetByID(_ context.Context, deptID, id uuid.UUID) (*model.TimetableEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.DepartmentID != deptID {
		return nil, model.ErrNotFound
	}
	e.RoomDetails = &model.Room{ID: e.RoomID, DepartmentID: deptID}
	e.FacultyDetails = &model.Faculty{ID: e.FacultyID, DepartmentID: deptID}
	e.SubjectDetails = &model.Subject{ID: e.SubjectID, DepartmentID: deptID}
	return &e, nil
}

func (s *memEntryStore) Delete(_ context.Context, deptID, id uuid.UUID) (model.Weekday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.DepartmentID != deptID {
		return 0, model.ErrNotFound
	}
	delete(s.entries, id)
	return e.DayOfWeek, nil
}

func (s *memEntryStore) WithSlotLock(ctx context.Context, _ uuid.UUID, _ model.Weekday, fn func(w schedule.Writer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks++
	return fn(&memWriter{s: s})
}

// memWriter runs with memEntryStore.mu held.
type memWriter struct {
	s *memEntryStore
}

func (w *memWriter) find(slot model.Slot, exclude *uuid.UUID, same func(e model.TimetableEntry) bool) *uuid.UUID {
	for _, e := range w.s.entries {
		if exclude != nil && e.ID == *exclude {
			continue
		}
		if e.DepartmentID == slot.DepartmentID && e.DayOfWeek == slot.DayOfWeek && same(e) &&
			schedule.Overlaps(e.StartTime, e.EndTime, slot.Start, slot.End) {
			id := e.ID
			return &id
		}
	}
	return nil
}

func (w *memWriter) FindRoomOverlap(_ context.Context, slot model.Slot, exclude *uuid.UUID) (*uuid.UUID, error) {
	return w.find(slot, exclude, func(e model.TimetableEntry) bool { return e.RoomID == slot.RoomID }), nil
}

func (w *memWriter) FindFacultyOverlap(_ context.Context, slot model.Slot, exclude *uuid.UUID) (*uuid.UUID, error) {
	return w.find(slot, exclude, func(e model.TimetableEntry) bool { return e.FacultyID == slot.FacultyID }), nil
}

func (w *memWriter) MissingReferences(_ context.Context, e *model.TimetableEntry) ([]string, error) {
	var missing []string
	if w.s.faculty[e.FacultyID] != e.DepartmentID {
		missing = append(missing, "faculty")
	}
	if w.s.rooms[e.RoomID] != e.DepartmentID {
		missing = append(missing, "room")
	}
	if w.s.subjects[e.SubjectID] != e.DepartmentID {
		missing = append(missing, "subject")
	}
	return missing, nil
}

func (w *memWriter) Insert(_ context.Context, e *model.TimetableEntry) error {
	e.ID = uuid.New()
	w.s.entries[e.ID] = *e
	return nil
}

func (w *memWriter) Update(_ context.Context, e *model.TimetableEntry) error {
	if _, ok := w.s.entries[e.ID]; !ok {
		return model.ErrNotFound
	}
	w.s.entries[e.ID] = *e
	return nil
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []model.FeedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, _ uuid.UUID, event model.FeedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

// memDocumentStore is a DocumentStore over a slice.
type memDocumentStore struct {
	docs      []model.Document
	createErr error
}

func (s *memDocumentStore) Create(_ context.Context, d *model.Document) error {
	if s.createErr != nil {
		return s.createErr
	}
	d.ID = uuid.New()
	s.docs = append(s.docs, *d)
	return nil
}

func (s *memDocumentStore) List(_ context.Context, deptID uuid.UUID) ([]model.Document, error) {
	out := []model.Document{}
	for _, d := range s.docs {
		if d.DepartmentID == deptID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *memDocumentStore) GetByID(_ context.Context, deptID, id uuid.UUID) (*model.Document, error) {
	for _, d := range s.docs {
		if d.ID == id && d.DepartmentID == deptID {
			return &d, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *memDocumentStore) Delete(_ context.Context, deptID, id uuid.UUID) (string, error) {
	for i, d := range s.docs {
		if d.ID == id && d.DepartmentID == deptID {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return d.ObjectKey, nil
		}
	}
	return "", model.ErrNotFound
}

// memBlobStore is a BlobStore that counts remote calls.
type memBlobStore struct {
	objects  map[string][]byte
	stores   int
	deletes  []string
	ctxErrs  []error
	storeErr error
	folders  []string
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: map[string][]byte{}}
}

func (b *memBlobStore) Store(_ context.Context, body []byte, filename, folder string) (*storage.StoredObject, error) {
	b.stores++
	b.folders = append(b.folders, folder)
	if b.storeErr != nil {
		return nil, b.storeErr
	}
	key := folder + "/" + filename
	b.objects[key] = body
	return &storage.StoredObject{Key: key, URL: "https://cdn.test/" + key, Size: int64(len(body))}, nil
}

func (b *memBlobStore) Fetch(_ context.Context, key string) ([]byte, error) {
	body, ok := b.objects[key]
	if !ok {
		return nil, errors.Join(model.ErrFetchFailed, errors.New("no such key"))
	}
	return body, nil
}

func (b *memBlobStore) Delete(ctx context.Context, key string) bool {
	b.deletes = append(b.deletes, key)
	b.ctxErrs = append(b.ctxErrs, ctx.Err())
	if ctx.Err() != nil {
		return false
	}
	_, ok := b.objects[key]
	delete(b.objects, key)
	return ok
}

func (b *memBlobStore) calls() int {
	return b.stores + len(b.deletes)
}

// memDepartmentStore hands out one id per code.
type memDepartmentStore struct {
	mu    sync.Mutex
	byKey map[string]*model.Department
	calls int
}

func (s *memDepartmentStore) GetOrCreateByCode(_ context.Context, code, name string) (*model.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.byKey == nil {
		s.byKey = map[string]*model.Department{}
	}
	if d, ok := s.byKey[code]; ok {
		return d, nil
	}
	d := &model.Department{ID: uuid.New(), Code: code, Name: name}
	s.byKey[code] = d
	return d, nil
}

func scopeFor(dept uuid.UUID, code string) *model.Scope {
	return &model.Scope{
		Identity:     model.Identity{UserID: "user_1", DepartmentCode: &code},
		DepartmentID: &dept,
	}
}

func noDepartmentScope() *model.Scope {
	return &model.Scope{Identity: model.Identity{UserID: "user_2"}}
}
