package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgrid/timetable-backend/internal/model"
)

// memRoomStore is a RoomStore over a map keyed by id.
type memRoomStore struct {
	rooms map[uuid.UUID]model.Room
}

func (s *memRoomStore) List(_ context.Context, deptID uuid.UUID) ([]model.Room, error) {
	out := []model.Room{}
	for _, r := range s.rooms {
		if r.DepartmentID == deptID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memRoomStore) GetByID(_ context.Context, deptID, id uuid.UUID) (*model.Room, error) {
	r, ok := s.rooms[id]
	if !ok || r.DepartmentID != deptID {
		return nil, model.ErrNotFound
	}
	return &r, nil
}

func (s *memRoomStore) Create(_ context.Context, r *model.Room) error {
	for _, existing := range s.rooms {
		if existing.DepartmentID == r.DepartmentID && existing.Name == r.Name {
			return &model.FieldError{Field: "name", Message: "exists", Err: model.ErrDuplicateKey}
		}
	}
	r.ID = uuid.New()
	s.rooms[r.ID] = *r
	return nil
}

func (s *memRoomStore) Update(_ context.Context, r *model.Room) error {
	existing, ok := s.rooms[r.ID]
	if !ok || existing.DepartmentID != r.DepartmentID {
		return model.ErrNotFound
	}
	s.rooms[r.ID] = *r
	return nil
}

func (s *memRoomStore) Delete(_ context.Context, deptID, id uuid.UUID) error {
	r, ok := s.rooms[id]
	if !ok || r.DepartmentID != deptID {
		return model.ErrNotFound
	}
	delete(s.rooms, id)
	return nil
}

func TestRoomService_ScopedCRUD(t *testing.T) {
	svc := NewRoomService(&memRoomStore{rooms: map[uuid.UUID]model.Room{}}, zerolog.Nop())
	ctx := context.Background()
	cs := scopeFor(uuid.New(), "CS")
	ee := scopeFor(uuid.New(), "EE")

	room, err := svc.Create(ctx, cs, &model.RoomRequest{Name: " R101 ", Capacity: 60, Type: model.RoomTypeLecture})
	require.NoError(t, err)
	assert.Equal(t, "R101", room.Name)
	assert.Equal(t, *cs.DepartmentID, room.DepartmentID)

	_, err = svc.Create(ctx, cs, &model.RoomRequest{Name: "R101", Capacity: 30, Type: model.RoomTypeLab})
	assert.ErrorIs(t, err, model.ErrDuplicateKey)

	// The same name is free in another department.
	_, err = svc.Create(ctx, ee, &model.RoomRequest{Name: "R101", Capacity: 30, Type: model.RoomTypeLab})
	require.NoError(t, err)

	rooms, err := svc.List(ctx, cs)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	_, err = svc.GetByID(ctx, ee, room.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	updated, err := svc.Update(ctx, cs, room.ID, &model.RoomRequest{Name: "R102", Capacity: 80, Type: model.RoomTypeSeminar})
	require.NoError(t, err)
	assert.Equal(t, 80, updated.Capacity)

	assert.ErrorIs(t, svc.Delete(ctx, ee, room.ID), model.ErrNotFound)
	assert.NoError(t, svc.Delete(ctx, cs, room.ID))
}

func TestRoomService_NoDepartment(t *testing.T) {
	svc := NewRoomService(&memRoomStore{rooms: map[uuid.UUID]model.Room{}}, zerolog.Nop())
	scope := noDepartmentScope()

	rooms, err := svc.List(context.Background(), scope)
	require.NoError(t, err)
	assert.NotNil(t, rooms)
	assert.Empty(t, rooms)

	_, err = svc.Create(context.Background(), scope, &model.RoomRequest{Name: "R1", Capacity: 1, Type: model.RoomTypeLab})
	assert.ErrorIs(t, err, model.ErrNoDepartmentAssigned)
}

func TestSubjectService_NormalizesCode(t *testing.T) {
	sub := &model.Subject{}
	credits := 4
	applySubject(sub, &model.SubjectRequest{Name: " Algorithms ", Code: " cs301 ", Credits: &credits})
	assert.Equal(t, "Algorithms", sub.Name)
	assert.Equal(t, "CS301", sub.Code)
	assert.Equal(t, 4, sub.Credits)
}

func TestFacultyService_NormalizesEmail(t *testing.T) {
	f := &model.Faculty{}
	applyFaculty(f, &model.FacultyRequest{Name: "Dr. Rao ", Email: " Rao@College.EDU "})
	assert.Equal(t, "Dr. Rao", f.Name)
	assert.Equal(t, "rao@college.edu", f.Email)
}
