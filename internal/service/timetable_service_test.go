package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgrid/timetable-backend/internal/model"
)

type timetableFixture struct {
	svc       *TimetableService
	store     *memEntryStore
	publisher *recordingPublisher
	dept      uuid.UUID
	scope     *model.Scope
	r1, r2    uuid.UUID
	f1, f2    uuid.UUID
	subject   uuid.UUID
}

func newTimetableFixture() *timetableFixture {
	fx := &timetableFixture{
		store:     newMemEntryStore(),
		publisher: &recordingPublisher{},
		dept:      uuid.New(),
		r1:        uuid.New(),
		r2:        uuid.New(),
		f1:        uuid.New(),
		f2:        uuid.New(),
		subject:   uuid.New(),
	}
	fx.store.addRefs(fx.dept, []uuid.UUID{fx.f1, fx.f2}, []uuid.UUID{fx.r1, fx.r2}, []uuid.UUID{fx.subject})
	fx.scope = scopeFor(fx.dept, "CS")
	fx.svc = NewTimetableService(fx.store, fx.publisher, zerolog.Nop())
	return fx
}

func (fx *timetableFixture) entry(room, faculty uuid.UUID, day model.Weekday, start, end string) *model.TimetableEntry {
	return &model.TimetableEntry{
		DayOfWeek:    day,
		StartTime:    model.MustParseClock(start),
		EndTime:      model.MustParseClock(end),
		RoomID:       room,
		FacultyID:    faculty,
		SubjectID:    fx.subject,
		Semester:     3,
		Section:      "A",
		AcademicYear: 2024,
	}
}

func TestTimetableService_ConflictScenario(t *testing.T) {
	fx := newTimetableFixture()
	ctx := context.Background()

	a, err := fx.svc.Create(ctx, fx.scope, fx.entry(fx.r1, fx.f1, model.Monday, "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, fx.dept, a.DepartmentID)
	assert.NotNil(t, a.RoomDetails, "created entry is returned with nested details")

	// Same room, overlapping.
	_, err = fx.svc.Create(ctx, fx.scope, fx.entry(fx.r1, fx.f2, model.Monday, "09:30", "10:30"))
	var conflict *model.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, model.RoomConflict, conflict.Kind)
	assert.Equal(t, a.ID, conflict.ConflictingID)

	// Same faculty, other room, overlapping.
	_, err = fx.svc.Create(ctx, fx.scope, fx.entry(fx.r2, fx.f1, model.Monday, "09:30", "10:30"))
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, model.FacultyConflict, conflict.Kind)

	// Back-to-back in the same room with the same faculty.
	_, err = fx.svc.Create(ctx, fx.scope, fx.entry(fx.r1, fx.f1, model.Monday, "10:00", "11:00"))
	require.NoError(t, err)

	// Same slot on another day.
	_, err = fx.svc.Create(ctx, fx.scope, fx.entry(fx.r1, fx.f1, model.Tuesday, "09:00", "10:00"))
	require.NoError(t, err)

	entries, err := fx.svc.List(ctx, fx.scope, model.EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestTimetableService_InvalidIntervalSkipsStore(t *testing.T) {
	fx := newTimetableFixture()

	for _, times := range [][2]string{{"10:00", "09:00"}, {"09:00", "09:00"}} {
		_, err := fx.svc.Create(context.Background(), fx.scope, fx.entry(fx.r1, fx.f1, model.Monday, times[0], times[1]))
		assert.ErrorIs(t, err, model.ErrInvalidInterval)
	}
	assert.Zero(t, fx.store.locks)
	assert.Empty(t, fx.store.entries)
}

func TestTimetableService_UpdateExcludesItself(t *testing.T) {
	fx := newTimetableFixture()
	ctx := context.Background()

	a, err := fx.svc.Create(ctx, fx.scope, fx.entry(fx.r1, fx.f1, model.Monday, "09:00", "10:00"))
	require.NoError(t, err)

	moved, err := fx.svc.Update(ctx, fx.scope, a.ID, fx.entry(fx.r1, fx.f1, model.Monday, "09:30", "10:30"))
	require.NoError(t, err)
	assert.Equal(t, a.ID, moved.ID)
	assert.Equal(t, "09:30:00", moved.StartTime.String())
}

func TestTimetableService_UpdateIntoOccupiedSlot(t *testing.T) {
	fx := newTimetableFixture()
	ctx := context.Background()

	a, err := fx.svc.Create(ctx, fx.scope, fx.entry(fx.r1, fx.f1, model.Monday, "09:00", "10:00"))
	require.NoError(t, err)
	b, err := fx.svc.Create(ctx, fx.scope, fx.entry(fx.r2, fx.f2, model.Monday, "09:00", "10:00"))
	require.NoError(t, err)

	_, err = fx.svc.Update(ctx, fx.scope, b.ID, fx.entry(fx.r1, fx.f2, model.Monday, "09:00", "10:00"))
	var conflict *model.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, a.ID, conflict.ConflictingID)

	stored, err := fx.svc.GetByID(ctx, fx.scope, b.ID)
	require.NoError(t, err)
	assert.Equal(t, fx.r2, stored.RoomID, "rejected update leaves the entry unchanged")
}

func TestTimetableService_UpdateMissingEntry(t *testing.T) {
	fx := newTimetableFixture()
	_, err := fx.svc.Update(context.Background(), fx.scope, uuid.New(), fx.entry(fx.r1, fx.f1, model.Monday, "09:00", "10:00"))
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTimetableService_ReferencesMustBelongToDepartment(t *testing.T) {
	fx := newTimetableFixture()
	foreignRoom := uuid.New()
	fx.store.addRefs(uuid.New(), nil, []uuid.UUID{foreignRoom}, nil)

	_, err := fx.svc.Create(context.Background(), fx.scope, fx.entry(foreignRoom, fx.f1, model.Monday, "09:00", "10:00"))
	assert.ErrorIs(t, err, model.ErrValidation)

	var fields model.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "does not exist in this department", fields["room"])
	assert.NotContains(t, fields, "faculty")
}

func TestTimetableService_CreateIgnoresClientDepartment(t *testing.T) {
	fx := newTimetableFixture()
	e := fx.entry(fx.r1, fx.f1, model.Monday, "09:00", "10:00")
	e.DepartmentID = uuid.New()

	created, err := fx.svc.Create(context.Background(), fx.scope, e)
	require.NoError(t, err)
	assert.Equal(t, fx.dept, created.DepartmentID)
}

func TestTimetableService_NoDepartment(t *testing.T) {
	fx := newTimetableFixture()
	ctx := context.Background()
	_, err := fx.svc.Create(ctx, fx.scope, fx.entry(fx.r1, fx.f1, model.Monday, "09:00", "10:00"))
	require.NoError(t, err)

	scope := noDepartmentScope()

	entries, err := fx.svc.List(ctx, scope, model.EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = fx.svc.GetByID(ctx, scope, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = fx.svc.Create(ctx, scope, fx.entry(fx.r1, fx.f1, model.Friday, "09:00", "10:00"))
	assert.ErrorIs(t, err, model.ErrNoDepartmentAssigned)

	assert.ErrorIs(t, fx.svc.Delete(ctx, scope, uuid.New()), model.ErrNoDepartmentAssigned)
}

func TestTimetableService_OtherDepartmentIsInvisible(t *testing.T) {
	fx := newTimetableFixture()
	ctx := context.Background()
	a, err := fx.svc.Create(ctx, fx.scope, fx.entry(fx.r1, fx.f1, model.Monday, "09:00", "10:00"))
	require.NoError(t, err)

	other := scopeFor(uuid.New(), "EE")
	_, err = fx.svc.GetByID(ctx, other, a.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, fx.svc.Delete(ctx, other, a.ID), model.ErrNotFound)
}

func TestTimetableService_PublishesChanges(t *testing.T) {
	fx := newTimetableFixture()
	ctx := context.Background()

	a, err := fx.svc.Create(ctx, fx.scope, fx.entry(fx.r1, fx.f1, model.Monday, "09:00", "10:00"))
	require.NoError(t, err)
	_, err = fx.svc.Update(ctx, fx.scope, a.ID, fx.entry(fx.r1, fx.f1, model.Wednesday, "09:00", "10:00"))
	require.NoError(t, err)
	require.NoError(t, fx.svc.Delete(ctx, fx.scope, a.ID))

	require.Len(t, fx.publisher.events, 3)
	assert.Equal(t, model.FeedEntryCreated, fx.publisher.events[0].Type)
	assert.Equal(t, model.FeedEntryUpdated, fx.publisher.events[1].Type)
	assert.Equal(t, model.Wednesday, fx.publisher.events[1].DayOfWeek)
	assert.Equal(t, model.FeedEntryDeleted, fx.publisher.events[2].Type)
	assert.Equal(t, a.ID, fx.publisher.events[2].EntryID)
}

func TestTimetableService_PublishFailureDoesNotFailWrite(t *testing.T) {
	fx := newTimetableFixture()
	fx.publisher.err = errors.New("redis down")

	_, err := fx.svc.Create(context.Background(), fx.scope, fx.entry(fx.r1, fx.f1, model.Monday, "09:00", "10:00"))
	assert.NoError(t, err)
	assert.Len(t, fx.store.entries, 1)
}

func TestTimetableService_ConcurrentCreatesOfOneSlot(t *testing.T) {
	fx := newTimetableFixture()

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.svc.Create(context.Background(), fx.scope, fx.entry(fx.r1, fx.f1, model.Thursday, "14:00", "15:00"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if errors.Is(err, model.ErrRoomConflict) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, writers-1, conflicts)
}
